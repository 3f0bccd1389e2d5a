package header

import (
	"strings"

	liberr "github.com/nabbar/golib/errors"

	"github.com/acridotheres/go-hssp/stream"
)

// Size is the fixed width of the HSSP v4 header, spec.md §4.2.
const Size = 128

// SupportedVersion is the only version this package understands, spec.md §3.
const SupportedVersion uint8 = 4

const (
	offVersion        = 4
	offFileCount      = 8
	offPwdHash        = 12
	offIV             = 44
	offCompression    = 60
	offChecksum       = 64
	offTotalFiles     = 68
	offContinue       = 76
	offPrevChecksum   = 84
	offNextChecksum   = 88
	offVolumeID       = 92
	offComment        = 96
	offGenerator      = 112
	commentFieldWidth = 16
)

// Header is the parsed, fixed-width portion of an HSSP v4 archive.
// Magic bytes (offset 0, width 4) are intentionally not exposed: spec.md
// §4.2 and §9 are explicit that the magic is never validated.
type Header struct {
	Version        uint8
	FileCount      uint32
	PasswordHash   [32]byte
	IV             [16]byte
	CompressionTag [4]byte
	Checksum       uint32
	TotalFiles     uint64
	ContinueOffset uint64
	PrevChecksum   uint32
	NextChecksum   uint32
	VolumeID       uint32
	Comment        *string
	Generator      *string
}

// Encrypted reports whether (PasswordHash, IV) is the all-zero pair that
// signals "unencrypted", spec.md §4.2.
func (h *Header) Encrypted() bool {
	return h.PasswordHash != [32]byte{} || h.IV != [16]byte{}
}

// Parse reads the fixed 128-byte header starting at the reader's current
// position (expected to be 0) and leaves the cursor at Size. It does not
// reject unsupported versions itself; callers check Version against
// SupportedVersion (spec.md §3: "other values fail with UnsupportedVersion").
func Parse(r stream.Reader) (*Header, liberr.Error) {
	h, err := parse(r)
	if err != nil {
		return nil, ErrorMalformed.Error(err)
	}
	return h, nil
}

func parse(r stream.Reader) (*Header, error) {
	if err := r.Jump(4); err != nil { // magic, skipped
		return nil, err
	}

	version, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	if err = r.Jump(3); err != nil { // reserved
		return nil, err
	}

	h := &Header{Version: version}

	if h.FileCount, err = r.ReadU32LE(); err != nil {
		return nil, err
	}

	pwd, err := r.ReadBytes(32)
	if err != nil {
		return nil, err
	}
	copy(h.PasswordHash[:], pwd)

	iv, err := r.ReadBytes(16)
	if err != nil {
		return nil, err
	}
	copy(h.IV[:], iv)

	tag, err := r.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	copy(h.CompressionTag[:], tag)

	if h.Checksum, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.TotalFiles, err = r.ReadU64LE(); err != nil {
		return nil, err
	}
	if h.ContinueOffset, err = r.ReadU64LE(); err != nil {
		return nil, err
	}
	if h.PrevChecksum, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.NextChecksum, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.VolumeID, err = r.ReadU32LE(); err != nil {
		return nil, err
	}

	comment, err := r.ReadUTF8(commentFieldWidth)
	if err != nil {
		return nil, err
	}
	h.Comment = trimNulOrNil(comment)

	generator, err := r.ReadUTF8(commentFieldWidth)
	if err != nil {
		return nil, err
	}
	h.Generator = trimNulOrNil(generator)

	return h, nil
}

// trimNulOrNil truncates at the first NUL byte (the header's fixed-width
// string convention, spec.md §4.2) and returns nil for the empty result.
func trimNulOrNil(s string) *string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return nil
	}
	return &s
}

// Write serializes h into exactly Size bytes, with the checksum field left
// as whatever h.Checksum currently holds — the writer (component H) patches
// it in place once the body has been produced, spec.md §4.7.
func Write(h *Header) []byte {
	buf := make([]byte, Size)
	copy(buf[0:4], "HSSP")
	buf[offVersion] = h.Version
	putU32(buf[offFileCount:], h.FileCount)
	copy(buf[offPwdHash:offPwdHash+32], h.PasswordHash[:])
	copy(buf[offIV:offIV+16], h.IV[:])
	copy(buf[offCompression:offCompression+4], h.CompressionTag[:])
	putU32(buf[offChecksum:], h.Checksum)
	putU64(buf[offTotalFiles:], h.TotalFiles)
	putU64(buf[offContinue:], h.ContinueOffset)
	putU32(buf[offPrevChecksum:], h.PrevChecksum)
	putU32(buf[offNextChecksum:], h.NextChecksum)
	putU32(buf[offVolumeID:], h.VolumeID)
	putFixedString(buf[offComment:offComment+commentFieldWidth], h.Comment)
	putFixedString(buf[offGenerator:offGenerator+commentFieldWidth], h.Generator)
	return buf
}

// PatchChecksum overwrites the checksum field of an already-serialized
// header in place.
func PatchChecksum(buf []byte, checksum uint32) {
	putU32(buf[offChecksum:], checksum)
}

func putU32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func putU64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

func putFixedString(dst []byte, s *string) {
	if s == nil {
		return
	}
	n := copy(dst, *s)
	_ = n // remaining bytes stay zero (NUL-padded)
}
