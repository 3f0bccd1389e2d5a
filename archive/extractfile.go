package archive

import (
	liberr "github.com/nabbar/golib/errors"

	"github.com/acridotheres/go-hssp/header"
	"github.com/acridotheres/go-hssp/stream"
)

// Extract writes file fileIndex's payload to sink at targetPos (component
// G, spec.md §4.6). The source buffer and offset bias are chosen by
// priority: a decrypted buffer, if the archive was encrypted, is always
// authoritative (it already incorporates any decompression that ran before
// decryption); failing that a decompressed buffer; failing that the raw
// source biased past the header. This mirrors original_source/src/extract.rs,
// which resolves encryption after compression and so has encryption win
// whenever both layers are present.
func Extract(source stream.Reader, meta *Metadata, fileIndex int, sink stream.Writer, bufferSize int, targetPos int64) liberr.Error {
	if fileIndex < 0 || fileIndex >= len(meta.Files) {
		return ErrorFileIndex.Error(nil)
	}
	file := meta.Files[fileIndex]

	var (
		src  stream.Reader
		bias int64
	)

	switch {
	case meta.Encryption != nil:
		src = stream.NewMemStreamFromBytes(meta.Encryption.Decrypted)
		bias = 0
	case meta.Compression != nil && meta.Compression.Decompressed != nil:
		src = stream.NewMemStreamFromBytes(meta.Compression.Decompressed)
		bias = 0
	default:
		src = source
		bias = header.Size
	}

	return src.CopyToAt(int64(file.Offset)+bias, targetPos, int64(file.Length), sink, bufferSize)
}
