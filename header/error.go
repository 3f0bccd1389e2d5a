package header

import (
	"fmt"

	liberr "github.com/nabbar/golib/errors"
)

const minCode = 42100

const (
	ErrorMalformed liberr.CodeError = iota + minCode
)

func init() {
	if liberr.ExistInMapMessage(ErrorMalformed) {
		panic(fmt.Errorf("error code collision go-hssp/header"))
	}
	liberr.RegisterIdFctMessage(ErrorMalformed, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrorMalformed:
		return "archive header is malformed"
	}
	return liberr.NullMessage
}
