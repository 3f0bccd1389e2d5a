package archive

import (
	liberr "github.com/nabbar/golib/errors"

	"github.com/acridotheres/go-hssp/header"
	"github.com/acridotheres/go-hssp/stream"
)

// Parse reads an HSSP v4 archive from r and returns its Metadata (component
// C+D+E tied together, spec.md §4.2/§4.4/§4.5). password is nil when the
// caller has none to offer.
//
// For an encrypted archive with a missing or incorrect password this is
// still a successful return: Metadata.Files is empty and Metadata.Encryption
// carries the observed and expected hashes so the caller can tell the two
// failure shapes apart (see Encryption.Verified).
func Parse(r stream.Reader, password *string) (*Metadata, liberr.Error) {
	h, err := header.Parse(r)
	if err != nil {
		return nil, err
	}
	if h.Version != header.SupportedVersion {
		return nil, ErrorUnsupportedVersion.Error(nil)
	}

	layers, err := resolveLayers(r, h, password)
	if err != nil {
		return nil, err
	}

	meta := &Metadata{
		Version:     h.Version,
		Checksum:    h.Checksum,
		Compression: layers.compression,
		Multivol:    buildMultivol(h),
		Comment:     h.Comment,
		Generator:   h.Generator,
	}

	if layers.early {
		meta.Encryption = layers.encryption
		meta.Files = []FileEntry{}
		return meta, nil
	}

	files, err := parseIndex(layers.body, h.FileCount)
	if err != nil {
		return nil, err
	}

	meta.Encryption = layers.encryption
	meta.Files = files
	return meta, nil
}

func buildMultivol(h *header.Header) *Multivol {
	if h.PrevChecksum == 0 && h.NextChecksum == 0 {
		return nil
	}

	m := &Multivol{
		TotalFiles:     h.TotalFiles,
		ContinueOffset: h.ContinueOffset,
		VolumeID:       h.VolumeID,
	}
	if h.PrevChecksum != 0 {
		v := h.PrevChecksum
		m.PreviousChecksum = &v
	}
	if h.NextChecksum != 0 {
		v := h.NextChecksum
		m.NextChecksum = &v
	}
	return m
}
