package archive_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spaolacci/murmur3"

	. "github.com/acridotheres/go-hssp/archive"
	"github.com/acridotheres/go-hssp/checksum"
	"github.com/acridotheres/go-hssp/compress"
	"github.com/acridotheres/go-hssp/header"
	"github.com/acridotheres/go-hssp/stream"
)

// wantIndexEntrySize mirrors the field-length arithmetic of spec.md §4.5
// (length u64, three u16-prefixed strings, a u32-prefixed weblink, three
// 6-byte timestamps, two permission bytes), computed independently of the
// archive package's own serializeBody/indexEntrySize so it can serve as a
// ground truth for what Parse ought to report.
func wantIndexEntrySize(path, owner, group, weblink string) int64 {
	return 38 + int64(len(path)+len(owner)+len(group)+len(weblink))
}

var fixedTime = time.UnixMilli(1_700_000_000_000).UTC()

func fileWithSource(path string, data string) FileWithSource {
	return FileWithSource{
		FileEntry: FileEntry{
			Path:         path,
			Owner:        "owner",
			Group:        "group",
			Creation:     fixedTime,
			Modification: fixedTime,
			Access:       fixedTime,
			Permissions:  Permissions{7, 5, 5},
		},
		Source: []byte(data),
	}
}

func createTo(sources []FileWithSource, enc *EncryptionRequest, method compress.Algorithm, mainFile *uint32) *stream.MemStream {
	sink := stream.NewMemStream()
	_, _, err := Create(header.SupportedVersion, sources, enc, method, mainFile, sink, 4096)
	Expect(err).To(BeNil())
	return sink
}

var _ = Describe("Archive round trip", func() {
	It("parses a single unencrypted, uncompressed file and extracts its bytes", func() {
		sink := createTo([]FileWithSource{fileWithSource("test.txt", "Hello, world!")}, nil, compress.None, nil)

		r := stream.NewMemStreamFromBytes(sink.Bytes())
		meta, err := Parse(r, nil)
		Expect(err).To(BeNil())

		Expect(meta.Version).To(Equal(header.SupportedVersion))
		Expect(meta.Encryption).To(BeNil())
		Expect(meta.Compression).To(BeNil())
		Expect(meta.Files).To(HaveLen(1))
		Expect(meta.Files[0].Path).To(Equal("test.txt"))
		Expect(meta.Files[0].Length).To(Equal(uint64(13)))

		out := stream.NewMemStream()
		Expect(Extract(r, meta, 0, out, 4096, 0)).To(BeNil())
		Expect(out.Bytes()).To(Equal([]byte("Hello, world!")))

		ok, verr := VerifyIntegrity(r, meta)
		Expect(verr).To(BeNil())
		Expect(ok).To(BeTrue())
	})

	It("honors the offset invariant for an unencrypted, uncompressed archive", func() {
		sink := createTo([]FileWithSource{fileWithSource("a.txt", "abc")}, nil, compress.None, nil)
		r := stream.NewMemStreamFromBytes(sink.Bytes())
		meta, err := Parse(r, nil)
		Expect(err).To(BeNil())

		wantAbsolutePos := int64(meta.Files[0].Offset) + header.Size

		out := stream.NewMemStream()
		Expect(r.Seek(wantAbsolutePos)).To(BeNil())
		raw, rerr := r.ReadBytes(3)
		Expect(rerr).To(BeNil())
		Expect(string(raw)).To(Equal("abc"))
		_ = out
	})

	It("parses and extracts two files in sequence", func() {
		sources := []FileWithSource{
			fileWithSource("test.txt", "Hello, world!"),
			fileWithSource("test2.txt", "Hello, world! 2"),
		}
		sink := createTo(sources, nil, compress.None, nil)
		r := stream.NewMemStreamFromBytes(sink.Bytes())
		meta, err := Parse(r, nil)
		Expect(err).To(BeNil())
		Expect(meta.Files).To(HaveLen(2))

		for i, want := range []string{"Hello, world!", "Hello, world! 2"} {
			out := stream.NewMemStream()
			Expect(Extract(r, meta, i, out, 4096, 0)).To(BeNil())
			Expect(out.Bytes()).To(Equal([]byte(want)))
		}
	})

	It("marks the file named by mainFile as main", func() {
		sources := []FileWithSource{
			fileWithSource("a.txt", "a"),
			fileWithSource("b.txt", "b"),
		}
		mainIdx := uint32(1)
		sink := createTo(sources, nil, compress.None, &mainIdx)
		r := stream.NewMemStreamFromBytes(sink.Bytes())
		meta, err := Parse(r, nil)
		Expect(err).To(BeNil())

		Expect(meta.Files[0].Main).To(BeFalse())
		Expect(meta.Files[1].Main).To(BeTrue())
	})

	It("round-trips an LZMA-compressed archive", func() {
		sink := createTo([]FileWithSource{fileWithSource("test.txt", "Hello, world!")}, nil, compress.LZMA, nil)
		r := stream.NewMemStreamFromBytes(sink.Bytes())
		meta, err := Parse(r, nil)
		Expect(err).To(BeNil())
		Expect(meta.Compression).ToNot(BeNil())
		Expect(meta.Compression.Method).To(Equal(compress.LZMA))
		Expect(meta.Compression.Decompressed).ToNot(BeNil())

		out := stream.NewMemStream()
		Expect(Extract(r, meta, 0, out, 4096, 0)).To(BeNil())
		Expect(out.Bytes()).To(Equal([]byte("Hello, world!")))
	})

	Describe("encrypted archives", func() {
		var raw []byte

		BeforeEach(func() {
			sink := createTo(
				[]FileWithSource{fileWithSource("test.txt", "Hello, world!")},
				&EncryptionRequest{Password: "Password", IV: [16]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}},
				compress.None,
				nil,
			)
			raw = sink.Bytes()
		})

		It("extracts correctly with the right password", func() {
			pwd := "Password"
			meta, err := Parse(stream.NewMemStreamFromBytes(raw), &pwd)
			Expect(err).To(BeNil())
			Expect(meta.Encryption).ToNot(BeNil())
			Expect(meta.Encryption.Verified()).To(BeTrue())
			Expect(meta.Files).To(HaveLen(1))

			out := stream.NewMemStream()
			Expect(Extract(stream.NewMemStreamFromBytes(raw), meta, 0, out, 4096, 0)).To(BeNil())
			Expect(out.Bytes()).To(Equal([]byte("Hello, world!")))
		})

		It("returns an empty file list and a zero hash with no password", func() {
			meta, err := Parse(stream.NewMemStreamFromBytes(raw), nil)
			Expect(err).To(BeNil())
			Expect(meta.Files).To(BeEmpty())
			Expect(meta.Encryption.Hash).To(Equal([32]byte{}))
			Expect(meta.Encryption.Verified()).To(BeFalse())
		})

		It("returns an empty file list and the wrong-password hash with an incorrect password", func() {
			wrong := "x"
			meta, err := Parse(stream.NewMemStreamFromBytes(raw), &wrong)
			Expect(err).To(BeNil())
			Expect(meta.Files).To(BeEmpty())
			Expect(meta.Encryption.Hash).ToNot(Equal([32]byte{}))
			Expect(meta.Encryption.Verified()).To(BeFalse())
		})
	})

	It("detects corruption anywhere at or past offset 128", func() {
		sink := createTo([]FileWithSource{fileWithSource("test.txt", "Hello, world!")}, nil, compress.None, nil)
		buf := append([]byte(nil), sink.Bytes()...)
		buf[header.Size+2] ^= 0xFF

		r := stream.NewMemStreamFromBytes(buf)
		meta, err := Parse(r, nil)
		Expect(err).To(BeNil())

		ok, verr := VerifyIntegrity(r, meta)
		Expect(verr).To(BeNil())
		Expect(ok).To(BeFalse())
	})

	// The canonical fixtures original_source/tests/idxd.rs pins byte-exact
	// values against (tests/samples/idxd-*.hssp) aren't part of this
	// retrieval pack — only the Rust test source is. These tests reconstruct
	// an equivalent canonical archive under the test's own control and pin
	// it the same way idxd.rs does: an offset computed independently of the
	// package's own index-size arithmetic, and a checksum computed via a
	// direct murmur3 call rather than through the checksum package, so
	// neither assertion can pass merely because Create and Parse agree with
	// each other (the single-file case's literal offset 104 and the
	// checksum constants themselves are specific to byte content — owner,
	// group, weblink, timestamps — this session has no way to reproduce
	// byte-for-byte without the original samples).
	Describe("canonical fixture pinning", func() {
		It("reports a body-relative offset and an independently-computed checksum for one file", func() {
			f := fileWithSource("test.txt", "Hello, world!")
			sink := createTo([]FileWithSource{f}, nil, compress.None, nil)
			raw := sink.Bytes()

			wantOffset := wantIndexEntrySize("test.txt", "owner", "group", "")
			h := murmur3.New32WithSeed(checksum.Seed)
			_, _ = h.Write(raw[header.Size:])
			wantChecksum := h.Sum32()

			r := stream.NewMemStreamFromBytes(raw)
			meta, err := Parse(r, nil)
			Expect(err).To(BeNil())

			Expect(meta.Files).To(HaveLen(1))
			Expect(meta.Files[0].Offset).To(BeNumerically("<", header.Size))
			Expect(meta.Files[0].Offset).To(Equal(uint64(wantOffset)))
			Expect(meta.Checksum).To(Equal(wantChecksum))

			ok, verr := VerifyIntegrity(r, meta)
			Expect(verr).To(BeNil())
			Expect(ok).To(BeTrue())
		})

		It("reports sequential body-relative offsets and an independently-computed checksum for two files", func() {
			sources := []FileWithSource{
				fileWithSource("test.txt", "Hello, world!"),
				fileWithSource("test2.txt", "Hello, world! 2"),
			}
			sink := createTo(sources, nil, compress.None, nil)
			raw := sink.Bytes()

			entry0 := wantIndexEntrySize("test.txt", "owner", "group", "")
			entry1 := wantIndexEntrySize("test2.txt", "owner", "group", "")
			wantOffset0 := entry0 + entry1
			wantOffset1 := wantOffset0 + int64(len("Hello, world!"))

			h := murmur3.New32WithSeed(checksum.Seed)
			_, _ = h.Write(raw[header.Size:])
			wantChecksum := h.Sum32()

			r := stream.NewMemStreamFromBytes(raw)
			meta, err := Parse(r, nil)
			Expect(err).To(BeNil())

			Expect(meta.Files).To(HaveLen(2))
			Expect(meta.Files[0].Offset).To(BeNumerically("<", header.Size))
			Expect(meta.Files[0].Offset).To(Equal(uint64(wantOffset0)))
			Expect(meta.Files[1].Offset).To(Equal(uint64(wantOffset1)))
			Expect(meta.Checksum).To(Equal(wantChecksum))
		})

		It("keeps the offset body-relative once encryption is layered on", func() {
			sink := createTo(
				[]FileWithSource{fileWithSource("test.txt", "Hello, world!")},
				&EncryptionRequest{Password: "Password", IV: [16]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}},
				compress.None,
				nil,
			)
			raw := sink.Bytes()

			h := murmur3.New32WithSeed(checksum.Seed)
			_, _ = h.Write(raw[header.Size:])
			wantChecksum := h.Sum32()

			pwd := "Password"
			meta, err := Parse(stream.NewMemStreamFromBytes(raw), &pwd)
			Expect(err).To(BeNil())

			Expect(meta.Files).To(HaveLen(1))
			Expect(meta.Files[0].Offset).To(BeNumerically("<", header.Size))
			Expect(meta.Files[0].Offset).To(Equal(uint64(wantIndexEntrySize("test.txt", "owner", "group", ""))))
			Expect(meta.Checksum).To(Equal(wantChecksum))
		})
	})

	It("rejects an unsupported version", func() {
		sink := createTo([]FileWithSource{fileWithSource("test.txt", "Hello, world!")}, nil, compress.None, nil)
		buf := append([]byte(nil), sink.Bytes()...)
		buf[4] = 5

		_, err := Parse(stream.NewMemStreamFromBytes(buf), nil)
		Expect(err).ToNot(BeNil())
		Expect(err.IsCode(ErrorUnsupportedVersion)).To(BeTrue())
	})
})
