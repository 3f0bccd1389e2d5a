package compress

import (
	"compress/flate"
	"compress/zlib"
	"io"

	"github.com/ulikunitz/xz/lzma"

	liberr "github.com/nabbar/golib/errors"
)

// Reader returns a decompressing reader over r for the given algorithm,
// mirroring the teacher's Algorithm.Reader in archive/compress/io.go: one
// switch, stdlib where the format has stdlib support, a third-party codec
// where it does not. An Unsupported tag is still handed to its (missing)
// codec and surfaces as ErrorUnsupported, per spec.md §9.
func (a Algorithm) Reader(r io.Reader) (io.ReadCloser, liberr.Error) {
	switch a {
	case None:
		return io.NopCloser(r), nil
	case LZMA:
		lr, err := lzma.NewReader(r)
		if err != nil {
			return nil, ErrorReader.Error(err)
		}
		return io.NopCloser(lr), nil
	case Deflate:
		return flate.NewReader(r), nil
	case DeflateZlib:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, ErrorReader.Error(err)
		}
		return zr, nil
	default:
		return nil, ErrorUnsupported.Error(nil)
	}
}

// Writer returns a compressing writer over w for the given algorithm. The
// caller must Close it to flush trailing codec state before reading back
// Size()/Bytes() of the underlying sink.
func (a Algorithm) Writer(w io.Writer) (io.WriteCloser, liberr.Error) {
	switch a {
	case None:
		return nopWriteCloser{w}, nil
	case LZMA:
		lw, err := lzma.NewWriter(w)
		if err != nil {
			return nil, ErrorWriter.Error(err)
		}
		return lw, nil
	case Deflate:
		fw, err := flate.NewWriter(w, flate.DefaultCompression)
		if err != nil {
			return nil, ErrorWriter.Error(err)
		}
		return fw, nil
	case DeflateZlib:
		return zlib.NewWriter(w), nil
	default:
		return nil, ErrorUnsupported.Error(nil)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
