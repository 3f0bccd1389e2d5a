package stream

import (
	"fmt"

	liberr "github.com/nabbar/golib/errors"
)

const minCode = 42000

const (
	ErrorSeek liberr.CodeError = iota + minCode
	ErrorRead
	ErrorWrite
	ErrorShortRead
	ErrorWidth
)

func init() {
	if liberr.ExistInMapMessage(ErrorSeek) {
		panic(fmt.Errorf("error code collision go-hssp/stream"))
	}
	liberr.RegisterIdFctMessage(ErrorSeek, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrorSeek:
		return "cannot seek stream to requested position"
	case ErrorRead:
		return "cannot read from stream"
	case ErrorWrite:
		return "cannot write to stream"
	case ErrorShortRead:
		return "stream ended before requested length was satisfied"
	case ErrorWidth:
		return "unsupported integer width requested"
	}
	return liberr.NullMessage
}
