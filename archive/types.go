package archive

import (
	"math"
	"time"

	"github.com/acridotheres/go-hssp/compress"
)

// Metadata is the immutable result of parsing an archive, spec.md §3.
// Once returned by Parse it is read-only; extraction never mutates it.
type Metadata struct {
	Version     uint8
	Checksum    uint32
	Encryption  *Encryption
	Compression *Compression
	Multivol    *Multivol
	Comment     *string
	Generator   *string
	Files       []FileEntry
}

// Encryption is present iff the header's password hash or IV is non-zero,
// spec.md §3.
type Encryption struct {
	// Hash is the key-derivation hash actually observed: zero if no
	// password was supplied, SHA-256(SHA-256(password)) otherwise.
	Hash [32]byte
	// HashExpected is always header.pwd_hash.
	HashExpected [32]byte
	IV           [16]byte
	// Decrypted holds the plaintext body bytes once a correct password
	// has been supplied; empty otherwise.
	Decrypted []byte
}

// Verified reports whether the supplied password matched, spec.md §3
// invariant "encryption.hash == hash_expected iff the supplied password
// verified".
func (e *Encryption) Verified() bool {
	return e.Hash == e.HashExpected
}

// Compression is present iff the header's compression tag is not None.
type Compression struct {
	Method compress.Algorithm
	// Decompressed holds the decompressed buffer, or nil when the archive
	// is encrypted and no/wrong password was supplied: decompression still
	// runs in that case, but its output is not kept.
	Decompressed []byte
}

// Multivol is present iff either neighbor-checksum header field is non-zero.
type Multivol struct {
	TotalFiles       uint64
	ContinueOffset   uint64
	PreviousChecksum *uint32
	NextChecksum     *uint32
	VolumeID         uint32
}

// FileEntry describes one packed file, spec.md §3.
type FileEntry struct {
	Path    string
	Owner   string
	Group   string
	Weblink string

	Directory bool
	// Offset is relative to the plaintext body, not the raw stream,
	// spec.md §3 invariants.
	Offset uint64
	Length uint64

	Creation     time.Time
	Modification time.Time
	Access       time.Time

	Permissions Permissions

	Hidden        bool
	System        bool
	EnableBackup  bool
	RequireBackup bool
	ReadOnly      bool
	Main          bool
}

// millisToTime converts a 48-bit little-endian millisecond timestamp to
// UTC time, coercing to the Unix epoch if the value cannot be represented
// — spec.md §3 invariant and §9 "Timestamp width". The field is at most
// 48 bits so this branch is unreachable through the parser itself, but it
// preserves the reference library's defensive behavior for any caller
// feeding millisToTime a wider value directly.
func millisToTime(v uint64) time.Time {
	if v > math.MaxInt64 {
		return time.UnixMilli(0).UTC()
	}
	return time.UnixMilli(int64(v)).UTC()
}

// timeToMillis is the inverse used by the writer (component H); negative
// times (before the epoch) coerce to zero the same way out-of-range reads
// coerce to epoch on the parse side.
func timeToMillis(t time.Time) uint64 {
	ms := t.UnixMilli()
	if ms < 0 {
		return 0
	}
	return uint64(ms)
}
