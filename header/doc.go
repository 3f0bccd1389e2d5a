// Package header reads and writes the fixed 128-byte HSSP v4 header,
// spec.md §4.2. It does not interpret the layers that follow it (that is
// the archive package's job) — it only knows the fixed field grammar.
package header
