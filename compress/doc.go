// Package compress dispatches the four HSSP compression tags (NONE, LZMA,
// DEFL, DFLT) onto concrete codecs, following the shape of the teacher's
// archive/compress package (an Algorithm enum with Parse/String plus
// Reader/Writer factory methods) but over the tag set this format defines
// rather than the teacher's own (none/gzip/bzip2/lz4/xz).
package compress
