package stream

import (
	"io"

	liberr "github.com/nabbar/golib/errors"
)

// memBacking is a growable byte slice implementing io.ReaderAt/io.WriterAt,
// the in-memory analogue of the teacher's ioutils.NewBufferReadCloser but
// positioned rather than sequential, since the layer resolver and extractor
// both need random access into decompressed/decrypted buffers.
type memBacking struct {
	buf []byte
}

func (m *memBacking) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *memBacking) WriteAt(p []byte, off int64) (int, error) {
	end := off + int64(len(p))
	if end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[off:end], p)
	return len(p), nil
}

// MemStream is an in-memory random-access stream: the decompressed buffer,
// the decrypted buffer, and (via NewMemStreamFromBytes) the raw source when
// the caller already holds the archive in memory.
type MemStream struct {
	core
	back *memBacking
}

// NewMemStream returns an empty, growable in-memory stream.
func NewMemStream() *MemStream {
	b := &memBacking{}
	return newMemStream(b)
}

// NewMemStreamFromBytes wraps an existing byte slice. The slice is copied so
// the stream owns its storage, matching the archive's ownership contract for
// intermediate buffers (spec.md §3, "Lifecycle").
func NewMemStreamFromBytes(data []byte) *MemStream {
	b := &memBacking{buf: append([]byte(nil), data...)}
	return newMemStream(b)
}

func newMemStream(b *memBacking) *MemStream {
	m := &MemStream{back: b}
	m.ra = b
	m.wa = b
	m.sz = func() (int64, liberr.Error) {
		return int64(len(b.buf)), nil
	}
	m.cl = func() error {
		b.buf = nil
		return nil
	}
	return m
}

// WriteAt implements Writer.
func (m *MemStream) WriteAt(p []byte, pos int64) liberr.Error {
	if _, err := m.back.WriteAt(p, pos); err != nil {
		return ErrorWrite.Error(err)
	}
	return nil
}

// Bytes returns the current contents. The returned slice aliases the
// stream's storage and must not be retained across further writes.
func (m *MemStream) Bytes() []byte {
	return m.back.buf
}
