package checksum

import (
	liberr "github.com/nabbar/golib/errors"
	"github.com/spaolacci/murmur3"

	"github.com/acridotheres/go-hssp/stream"
)

// Seed is the format-defined Murmur3 seed, spec.md §4.3.
const Seed uint32 = 0x31082007

// headerSize is the fixed header width the checksum skips, spec.md §4.2.
const headerSize = 128

const bufferSize = 64 * 1024

// OfRange computes the keyed Murmur3-32 of r over [start, end) without
// disturbing the caller's idea of where the cursor should end up: the
// reader is repositioned to start before reading and left at start+consumed
// afterward.
func OfRange(r stream.Reader, start, end int64) (uint32, liberr.Error) {
	if err := r.Seek(start); err != nil {
		return 0, err
	}

	h := murmur3.New32WithSeed(Seed)
	remaining := end - start
	buf := make([]byte, bufferSize)

	for remaining > 0 {
		want := int64(len(buf))
		if remaining < want {
			want = remaining
		}
		n, rerr := r.Read(buf[:want])
		if n > 0 {
			h.Write(buf[:n])
			remaining -= int64(n)
		}
		if rerr != nil {
			if remaining > 0 {
				return 0, ErrorRange.Error(rerr)
			}
			break
		}
	}

	return h.Sum32(), nil
}

// OfTail computes the archive-body checksum: Murmur3 over [128, size).
func OfTail(r stream.Reader) (uint32, liberr.Error) {
	size, err := r.Size()
	if err != nil {
		return 0, err
	}
	return OfRange(r, headerSize, size)
}
