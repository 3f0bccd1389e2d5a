// Package checksum computes the archive's integrity checksum: a keyed
// 32-bit Murmur3 over the raw stream tail, using the third-party
// github.com/spaolacci/murmur3 implementation rather than a hand-rolled
// one (the algorithm itself is an out-of-scope external primitive per
// spec.md §1; only the keying and range it is applied over are
// format-specific).
package checksum
