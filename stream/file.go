package stream

import (
	"os"

	liberr "github.com/nabbar/golib/errors"
)

// FileStream is a random-access stream backed by an *os.File, the usual
// raw-source representation for an archive read from disk (mirrors the
// teacher's ioutils.FileProgress, trimmed to what the archive pipeline
// actually needs: positioned reads/writes, size, close).
type FileStream struct {
	core
	f *os.File
}

// OpenFileStream opens path for reading.
func OpenFileStream(path string) (*FileStream, liberr.Error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrorRead.Error(err)
	}
	return newFileStream(f), nil
}

// CreateFileStream creates (or truncates) path for writing by the archive
// writer (component H).
func CreateFileStream(path string) (*FileStream, liberr.Error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, ErrorWrite.Error(err)
	}
	return newFileStream(f), nil
}

func newFileStream(f *os.File) *FileStream {
	fs := &FileStream{f: f}
	fs.ra = f
	fs.wa = f
	fs.sz = func() (int64, liberr.Error) {
		info, err := f.Stat()
		if err != nil {
			return 0, ErrorRead.Error(err)
		}
		return info.Size(), nil
	}
	fs.cl = f.Close
	return fs
}

// WriteAt implements Writer.
func (fs *FileStream) WriteAt(p []byte, pos int64) liberr.Error {
	if _, err := fs.f.WriteAt(p, pos); err != nil {
		return ErrorWrite.Error(err)
	}
	return nil
}
