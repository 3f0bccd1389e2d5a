package stream

import (
	"io"

	liberr "github.com/nabbar/golib/errors"
)

// Reader is a random-access, little-endian byte source. Every layer of the
// archive pipeline (raw source, decompressed body, decrypted body) is read
// through this single vocabulary.
type Reader interface {
	io.Reader
	io.Closer

	// Seek moves the cursor to an absolute position from the start.
	Seek(pos int64) liberr.Error
	// Jump moves the cursor by a relative offset.
	Jump(delta int64) liberr.Error
	// Position returns the current absolute cursor position.
	Position() (int64, liberr.Error)
	// Size returns the total size of the underlying data.
	Size() (int64, liberr.Error)

	// ReadBytes reads exactly n bytes, advancing the cursor.
	ReadBytes(n int) ([]byte, liberr.Error)
	// ReadU8 reads one unsigned byte.
	ReadU8() (uint8, liberr.Error)
	// ReadU16LE reads a little-endian uint16.
	ReadU16LE() (uint16, liberr.Error)
	// ReadU32LE reads a little-endian uint32.
	ReadU32LE() (uint32, liberr.Error)
	// ReadU64LE reads a little-endian uint64.
	ReadU64LE() (uint64, liberr.Error)
	// ReadUintLE reads a little-endian unsigned integer of arbitrary byte
	// width (1..8), zero-extended into a uint64. Used for the format's
	// 48-bit (6 byte) timestamp fields.
	ReadUintLE(width int) (uint64, liberr.Error)
	// ReadUTF8 reads n bytes and returns them as a Go string without any
	// validation; NUL-trimming, if required, is the caller's job.
	ReadUTF8(n int) (string, liberr.Error)

	// CopyToAt streams length bytes starting at srcPos of this reader into
	// sink at dstPos, using an intermediate buffer of bufferSize bytes.
	CopyToAt(srcPos, dstPos int64, length int64, sink Writer, bufferSize int) liberr.Error
}

// Writer is a random-access byte sink used by the archive writer (component
// H) to emit the header, index and payload at arbitrary positions.
type Writer interface {
	io.Closer

	// WriteAt writes p at the absolute position pos, extending the
	// underlying storage if necessary.
	WriteAt(p []byte, pos int64) liberr.Error
	// Size returns the current size of the underlying storage.
	Size() (int64, liberr.Error)
}
