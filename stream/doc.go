// Package stream provides the random-access byte stream abstraction shared by
// every layer of the HSSP archive pipeline: the raw source, the decompressed
// body, and the decrypted body are all just a stream.Reader (or, when
// writing, a stream.Writer), so the header parser, the layer resolver, the
// index parser and the extractor never special-case where their bytes
// actually live.
package stream
