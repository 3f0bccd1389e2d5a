package cipher

import (
	"fmt"

	liberr "github.com/nabbar/golib/errors"
)

const minCode = 42300

const (
	ErrorBlock liberr.CodeError = iota + minCode
	ErrorDecrypt
	ErrorEncrypt
)

func init() {
	if liberr.ExistInMapMessage(ErrorBlock) {
		panic(fmt.Errorf("error code collision go-hssp/cipher"))
	}
	liberr.RegisterIdFctMessage(ErrorBlock, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrorBlock:
		return "cannot build AES cipher block"
	case ErrorDecrypt:
		return "AES-CBC decryption failed (bad padding)"
	case ErrorEncrypt:
		return "AES-CBC encryption failed"
	}
	return liberr.NullMessage
}
