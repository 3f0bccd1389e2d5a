package stream

import (
	"encoding/binary"
	"io"

	liberr "github.com/nabbar/golib/errors"
)

// core implements the read-side of Reader (and the positioned part of
// Writer) on top of any io.ReaderAt/io.WriterAt pair, tracking its own
// cursor the way the teacher's ioutils.FileProgress tracks a cursor over
// an *os.File. MemStream and FileStream both embed a core and differ only
// in what backs the ReaderAt/WriterAt/size/close functions.
type core struct {
	ra  io.ReaderAt
	wa  io.WriterAt
	sz  func() (int64, liberr.Error)
	cl  func() error
	pos int64
}

func (c *core) Read(p []byte) (int, error) {
	if c.ra == nil {
		return 0, io.EOF
	}
	n, err := c.ra.ReadAt(p, c.pos)
	c.pos += int64(n)
	if err == io.EOF && n > 0 {
		err = nil
	}
	return n, err
}

func (c *core) Close() error {
	if c.cl == nil {
		return nil
	}
	return c.cl()
}

func (c *core) Seek(pos int64) liberr.Error {
	if pos < 0 {
		return ErrorSeek.Error(nil)
	}
	c.pos = pos
	return nil
}

func (c *core) Jump(delta int64) liberr.Error {
	return c.Seek(c.pos + delta)
}

func (c *core) Position() (int64, liberr.Error) {
	return c.pos, nil
}

func (c *core) Size() (int64, liberr.Error) {
	return c.sz()
}

func (c *core) ReadBytes(n int) ([]byte, liberr.Error) {
	if n <= 0 {
		return []byte{}, nil
	}
	buf := make([]byte, n)
	read, err := c.ra.ReadAt(buf, c.pos)
	if read < n && (err == nil || err == io.EOF) {
		c.pos += int64(read)
		return buf[:read], ErrorShortRead.Error(nil)
	}
	if err != nil && err != io.EOF {
		return nil, ErrorRead.Error(err)
	}
	c.pos += int64(read)
	return buf, nil
}

func (c *core) ReadU8() (uint8, liberr.Error) {
	b, err := c.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *core) ReadU16LE() (uint16, liberr.Error) {
	b, err := c.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *core) ReadU32LE() (uint32, liberr.Error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *core) ReadU64LE() (uint64, liberr.Error) {
	b, err := c.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadUintLE reads a little-endian unsigned integer spanning 1 to 8 bytes,
// zero-extending it into a uint64. The format uses this for its 48-bit
// (6 byte) timestamp fields.
func (c *core) ReadUintLE(width int) (uint64, liberr.Error) {
	if width < 1 || width > 8 {
		return 0, ErrorWidth.Error(nil)
	}
	b, err := c.ReadBytes(width)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := width - 1; i >= 0; i-- {
		v = (v << 8) | uint64(b[i])
	}
	return v, nil
}

func (c *core) ReadUTF8(n int) (string, liberr.Error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (c *core) CopyToAt(srcPos, dstPos int64, length int64, sink Writer, bufferSize int) liberr.Error {
	if bufferSize <= 0 {
		bufferSize = 32 * 1024
	}
	buf := make([]byte, bufferSize)
	var copied int64

	for copied < length {
		want := int64(bufferSize)
		if remain := length - copied; remain < want {
			want = remain
		}

		n, err := c.ra.ReadAt(buf[:want], srcPos+copied)
		if n > 0 {
			if werr := sink.WriteAt(buf[:n], dstPos+copied); werr != nil {
				return werr
			}
			copied += int64(n)
		}
		if err != nil {
			if err == io.EOF {
				if copied < length {
					return ErrorShortRead.Error(nil)
				}
				break
			}
			return ErrorRead.Error(err)
		}
	}
	return nil
}
