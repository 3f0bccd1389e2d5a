package archive

import (
	"io"

	liberr "github.com/nabbar/golib/errors"

	"github.com/acridotheres/go-hssp/cipher"
	"github.com/acridotheres/go-hssp/compress"
	"github.com/acridotheres/go-hssp/header"
	"github.com/acridotheres/go-hssp/stream"
)

// resolved is the outcome of the layer resolver (component D, spec.md
// §4.4): either a ready-to-index plaintext body, or an "early" result
// meaning the caller should stop at a metadata-without-body Metadata.
type resolved struct {
	body        stream.Reader
	compression *Compression
	encryption  *Encryption
	early       bool
}

const copyBufferSize = 64 * 1024

// resolveLayers applies decompress-then-decrypt to the bytes that follow the
// header, exactly as spec.md §4.4 prescribes. raw must be positioned at
// header.Size (i.e. header.Parse has just consumed the fixed header).
func resolveLayers(raw stream.Reader, h *header.Header, password *string) (*resolved, liberr.Error) {
	method := compress.Parse(h.CompressionTag)

	// The reference decompressor runs unconditionally, even for Method::None
	// (_examples/original_source/src/metadata.rs:73-86): it always copies the
	// tail into a fresh buffer starting at origin 0. Materializing here, for
	// every method, is what makes body.Position() body-relative instead of
	// the raw stream's absolute position past the 128-byte header.
	rc, cerr := method.Reader(raw)
	if cerr != nil {
		return nil, ErrorCompression.Error(cerr)
	}
	dec, derr := drainToMemStream(rc)
	_ = rc.Close()
	if derr != nil {
		return nil, ErrorCompression.Error(derr)
	}

	var body stream.Reader = dec
	var comp *Compression
	var decompressed []byte

	if !method.IsNone() {
		decompressed = dec.Bytes()
		comp = &Compression{Method: method}
	}

	if !h.Encrypted() {
		if comp != nil {
			comp.Decompressed = decompressed
		}
		return &resolved{body: body, compression: comp}, nil
	}

	if password == nil {
		return &resolved{
			early:       true,
			compression: comp,
			encryption: &Encryption{
				HashExpected: h.PasswordHash,
				IV:           h.IV,
			},
		}, nil
	}

	key := cipher.DeriveKey(*password)
	hash := cipher.VerificationHash(key)

	if hash != h.PasswordHash {
		return &resolved{
			early:       true,
			compression: comp,
			encryption: &Encryption{
				Hash:         hash,
				HashExpected: h.PasswordHash,
				IV:           h.IV,
			},
		}, nil
	}

	pos, err := body.Position()
	if err != nil {
		return nil, err
	}
	size, err := body.Size()
	if err != nil {
		return nil, err
	}

	plain, derr := cipher.DecryptRange(body, key, h.IV, pos, size-pos)
	if derr != nil {
		return nil, ErrorDecryption.Error(derr)
	}

	if comp != nil {
		comp.Decompressed = decompressed
	}

	return &resolved{
		body: stream.NewMemStreamFromBytes(plain),
		compression: comp,
		encryption: &Encryption{
			Hash:         hash,
			HashExpected: h.PasswordHash,
			IV:           h.IV,
			Decrypted:    plain,
		},
	}, nil
}

// drainToMemStream copies rc to EOF into a fresh MemStream, the in-memory
// materialization the layer resolver needs so extraction can later seek
// freely into the decompressed body (spec.md Non-goals: no streaming
// extraction without a fully materialized body).
func drainToMemStream(rc io.Reader) (*stream.MemStream, liberr.Error) {
	dst := stream.NewMemStream()
	buf := make([]byte, copyBufferSize)
	var pos int64

	for {
		n, rerr := rc.Read(buf)
		if n > 0 {
			if werr := dst.WriteAt(buf[:n], pos); werr != nil {
				return nil, werr
			}
			pos += int64(n)
		}
		if rerr != nil {
			if rerr == io.EOF {
				break
			}
			return nil, ErrorCompression.Error(rerr)
		}
	}

	return dst, nil
}
