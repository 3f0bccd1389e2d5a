package compress

import (
	"fmt"

	liberr "github.com/nabbar/golib/errors"
)

const minCode = 42200

const (
	ErrorUnsupported liberr.CodeError = iota + minCode
	ErrorReader
	ErrorWriter
)

func init() {
	if liberr.ExistInMapMessage(ErrorUnsupported) {
		panic(fmt.Errorf("error code collision go-hssp/compress"))
	}
	liberr.RegisterIdFctMessage(ErrorUnsupported, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrorUnsupported:
		return "compression tag is not supported"
	case ErrorReader:
		return "cannot build decompressing reader"
	case ErrorWriter:
		return "cannot build compressing writer"
	}
	return liberr.NullMessage
}
