// Package cipher implements the two password-related primitives the format
// needs on top of stdlib crypto: the double-SHA-256 key/verification-hash
// derivation, and AES-256-CBC over a byte range. Both SHA-256 and AES-CBC
// are out-of-scope external primitives per spec.md §1 — this package is
// the thin format-specific glue around crypto/sha256 and crypto/cipher,
// not a reimplementation of either, the same relationship the teacher's
// encoding/sha256 and encoding/aes packages have to their stdlib backers
// (see DESIGN.md for why CBC, specifically, stays on stdlib rather than
// picking up a third-party AEAD the way the teacher's own encoding/aes
// does with AES-GCM).
package cipher
