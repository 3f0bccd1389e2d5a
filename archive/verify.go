package archive

import (
	liberr "github.com/nabbar/golib/errors"

	"github.com/acridotheres/go-hssp/checksum"
	"github.com/acridotheres/go-hssp/stream"
)

// VerifyIntegrity recomputes the keyed Murmur3-32 checksum over the raw
// source's [128, size) range and compares it against meta.Checksum
// (component F, spec.md §4.3). It never touches compression or encryption:
// corruption is detected on the serialized form.
func VerifyIntegrity(r stream.Reader, meta *Metadata) (bool, liberr.Error) {
	calculated, err := checksum.OfTail(r)
	if err != nil {
		return false, err
	}
	return calculated == meta.Checksum, nil
}
