// Package archive implements the core of the HSSP v4 archive container:
// parsing (header, layered compression/encryption, file index), integrity
// verification, per-file extraction, and symmetric creation.
//
// The only entry points a caller needs are Parse, VerifyIntegrity, Extract
// and Create; everything else in this package is the plumbing spec.md's
// component table (§2) calls the layer resolver, index parser and
// extractor.
package archive
