package checksum

import (
	"fmt"

	liberr "github.com/nabbar/golib/errors"
)

const minCode = 42400

const (
	ErrorRange liberr.CodeError = iota + minCode
)

func init() {
	if liberr.ExistInMapMessage(ErrorRange) {
		panic(fmt.Errorf("error code collision go-hssp/checksum"))
	}
	liberr.RegisterIdFctMessage(ErrorRange, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrorRange:
		return "cannot read stream range for checksum computation"
	}
	return liberr.NullMessage
}
