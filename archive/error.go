package archive

import (
	"fmt"

	liberr "github.com/nabbar/golib/errors"
)

const minCode = 42500

const (
	ErrorUnsupportedVersion liberr.CodeError = iota + minCode
	ErrorMalformedHeader
	ErrorCompression
	ErrorDecryption
	ErrorFileIndex
	ErrorParams
)

func init() {
	if liberr.ExistInMapMessage(ErrorUnsupportedVersion) {
		panic(fmt.Errorf("error code collision go-hssp/archive"))
	}
	liberr.RegisterIdFctMessage(ErrorUnsupportedVersion, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrorUnsupportedVersion:
		return "archive format version is not supported"
	case ErrorMalformedHeader:
		return "archive header or index is malformed"
	case ErrorCompression:
		return "compression codec reported failure"
	case ErrorDecryption:
		return "decryption failed"
	case ErrorFileIndex:
		return "file index is out of range"
	case ErrorParams:
		return "given parameters are invalid"
	}
	return liberr.NullMessage
}
