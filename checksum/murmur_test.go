package checksum_test

import (
	"github.com/spaolacci/murmur3"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/acridotheres/go-hssp/checksum"
	"github.com/acridotheres/go-hssp/stream"
)

var _ = Describe("Murmur3 checksum", func() {
	It("matches a direct murmur3.New32WithSeed computation over the same range", func() {
		payload := []byte("the quick brown fox jumps over the lazy dog, twice for good measure")
		buf := append(make([]byte, 128), payload...)

		h := murmur3.New32WithSeed(Seed)
		_, _ = h.Write(payload)
		want := h.Sum32()

		got, err := OfTail(stream.NewMemStreamFromBytes(buf))
		Expect(err).To(BeNil())
		Expect(got).To(Equal(want))
	})

	It("changes when any byte at or past offset 128 is mutated", func() {
		buf := append(make([]byte, 128), []byte("payload bytes for mutation test")...)
		before, err := OfTail(stream.NewMemStreamFromBytes(buf))
		Expect(err).To(BeNil())

		mutated := append([]byte(nil), buf...)
		mutated[140] ^= 0xFF
		after, err := OfTail(stream.NewMemStreamFromBytes(mutated))
		Expect(err).To(BeNil())

		Expect(after).ToNot(Equal(before))
	})

	It("is blind to mutations inside the header", func() {
		buf := append(make([]byte, 128), []byte("stable payload")...)
		before, err := OfTail(stream.NewMemStreamFromBytes(buf))
		Expect(err).To(BeNil())

		mutated := append([]byte(nil), buf...)
		mutated[10] ^= 0xFF
		after, err := OfTail(stream.NewMemStreamFromBytes(mutated))
		Expect(err).To(BeNil())

		Expect(after).To(Equal(before))
	})
})
