package archive

import (
	"bytes"
	"encoding/binary"

	liberr "github.com/nabbar/golib/errors"

	"github.com/acridotheres/go-hssp/checksum"
	"github.com/acridotheres/go-hssp/cipher"
	"github.com/acridotheres/go-hssp/compress"
	"github.com/acridotheres/go-hssp/header"
	"github.com/acridotheres/go-hssp/stream"
)

// FileWithSource pairs a FileEntry's metadata with the bytes to pack for it
// (component H input, spec.md §4.7). Offset is ignored on input: the writer
// computes it. Length is ignored too; it is derived from len(Source).
type FileWithSource struct {
	FileEntry
	Source []byte
}

// EncryptionRequest asks Create to AES-256-CBC encrypt the body it writes.
// IV is caller-supplied, matching the original creation signature's
// `(password, iv)` pair rather than having the writer generate one.
type EncryptionRequest struct {
	Password string
	IV       [16]byte
}

// Create serializes sources into an HSSP v4 archive written to sink
// (component H, spec.md §4.7). It reverses §4.4 exactly: the plaintext body
// (index + payloads) is built first, then encrypted if requested, then
// compressed if requested — encrypt-then-compress, the symmetric inverse of
// the read side's decompress-then-decrypt. See DESIGN.md for why this
// ordering was chosen over the source type layout's compress-then-encrypt
// suggestion, an open question the original left unresolved.
//
// mainFile, if non-nil, marks sources[*mainFile] as the archive's main file
// regardless of what FileEntry.Main on that entry says.
func Create(version uint8, sources []FileWithSource, encryption *EncryptionRequest, compression compress.Algorithm, mainFile *uint32, sink stream.Writer, bufferSize int) (int64, uint32, liberr.Error) {
	if sink == nil {
		return 0, 0, ErrorParams.Error(nil)
	}

	plain, err := serializeBody(sources, mainFile)
	if err != nil {
		return 0, 0, err
	}

	body := plain
	var pwdHash [32]byte
	var iv [16]byte

	if encryption != nil {
		key := cipher.DeriveKey(encryption.Password)
		pwdHash = cipher.VerificationHash(key)
		iv = encryption.IV

		enc, eerr := cipher.Encrypt(key, iv, plain)
		if eerr != nil {
			return 0, 0, ErrorDecryption.Error(eerr)
		}
		body = enc
	}

	var tag [4]byte
	copy(tag[:], compression.Tag())
	if tag == ([4]byte{}) {
		return 0, 0, ErrorParams.Error(nil)
	}

	if !compression.IsNone() {
		compressed, cerr := compressBytes(compression, body)
		if cerr != nil {
			return 0, 0, ErrorCompression.Error(cerr)
		}
		body = compressed
	}

	h := &header.Header{
		Version:        version,
		FileCount:      uint32(len(sources)),
		PasswordHash:   pwdHash,
		IV:             iv,
		CompressionTag: tag,
		TotalFiles:     uint64(len(sources)),
	}

	buf := header.Write(h)
	buf = append(buf, body...)

	ms := stream.NewMemStreamFromBytes(buf)
	calculated, cksErr := checksum.OfTail(ms)
	if cksErr != nil {
		return 0, 0, cksErr
	}
	header.PatchChecksum(buf, calculated)

	if werr := sink.WriteAt(buf, 0); werr != nil {
		return 0, 0, werr
	}

	return int64(len(buf)), calculated, nil
}

// serializeBody writes the file index followed by every payload, exactly
// the layout the index parser (component E) expects to read back,
// spec.md §4.5.
func serializeBody(sources []FileWithSource, mainFile *uint32) ([]byte, liberr.Error) {
	var index bytes.Buffer

	for _, f := range sources {
		entry := f.FileEntry
		writeU64(&index, uint64(len(f.Source)))
		writePrefixedString16(&index, entry.Path)
		writePrefixedString16(&index, entry.Owner)
		writePrefixedString16(&index, entry.Group)
		writeU32(&index, uint32(len(entry.Weblink)))
		index.WriteString(entry.Weblink)
		writeUintLE(&index, timeToMillis(entry.Creation), 6)
		writeUintLE(&index, timeToMillis(entry.Modification), 6)
		writeUintLE(&index, timeToMillis(entry.Access), 6)

		p1, p2 := encodePerm(entry.Permissions, flags{
			Directory:     entry.Directory,
			Hidden:        entry.Hidden,
			System:        entry.System,
			EnableBackup:  entry.EnableBackup,
			RequireBackup: entry.RequireBackup,
			ReadOnly:      entry.ReadOnly,
			Main:          entry.Main,
		})
		index.WriteByte(p1)
		index.WriteByte(p2)
	}

	if mainFile != nil {
		if int(*mainFile) >= len(sources) {
			return nil, ErrorParams.Error(nil)
		}
		// main_file overrides whatever the index already encoded for that
		// entry's bit 0 of byte P2 (spec.md §4.5 step 7).
		patchMainFlag(index.Bytes(), sources, int(*mainFile))
	}

	body := make([]byte, 0, index.Len()+totalPayloadLen(sources))
	body = append(body, index.Bytes()...)
	for _, f := range sources {
		body = append(body, f.Source...)
	}
	return body, nil
}

func totalPayloadLen(sources []FileWithSource) int {
	var n int
	for _, f := range sources {
		n += len(f.Source)
	}
	return n
}

// patchMainFlag walks the already-serialized index to find entry i's P2
// byte and sets its bit 0, without re-deriving each entry's byte offset
// from scratch.
func patchMainFlag(index []byte, sources []FileWithSource, i int) {
	pos := indexEntryOffset(sources, i)
	if pos < 0 || pos >= len(index) {
		return
	}
	index[pos] |= 0b0000_0001
}

// indexEntryOffset returns the byte offset of entry i's P2 byte within the
// serialized index, by replaying the fixed-plus-variable layout of every
// preceding entry.
func indexEntryOffset(sources []FileWithSource, i int) int {
	pos := 0
	for j := 0; j < i; j++ {
		pos += indexEntrySize(sources[j])
	}
	pos += indexEntrySize(sources[i]) - 1 // land on P2, the last byte
	return pos
}

func indexEntrySize(f FileWithSource) int {
	return 8 + 2 + len(f.Path) + 2 + len(f.Owner) + 2 + len(f.Group) + 4 + len(f.Weblink) + 6 + 6 + 6 + 2
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeU64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func writeUintLE(buf *bytes.Buffer, v uint64, width int) {
	b := make([]byte, width)
	for i := 0; i < width; i++ {
		b[i] = byte(v >> (8 * i))
	}
	buf.Write(b)
}

func writePrefixedString16(buf *bytes.Buffer, s string) {
	var n [2]byte
	binary.LittleEndian.PutUint16(n[:], uint16(len(s)))
	buf.Write(n[:])
	buf.WriteString(s)
}

// compressBytes runs data through algorithm's compressing writer to
// completion, returning the compressed form.
func compressBytes(algorithm compress.Algorithm, data []byte) ([]byte, liberr.Error) {
	var out bytes.Buffer
	w, err := algorithm.Writer(&out)
	if err != nil {
		return nil, err
	}
	if _, werr := w.Write(data); werr != nil {
		return nil, ErrorCompression.Error(werr)
	}
	if cerr := w.Close(); cerr != nil {
		return nil, ErrorCompression.Error(cerr)
	}
	return out.Bytes(), nil
}
