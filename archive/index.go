package archive

import (
	liberr "github.com/nabbar/golib/errors"

	"github.com/acridotheres/go-hssp/stream"
)

// parseIndex reads the variable-length file index from the plaintext body
// (component E, spec.md §4.5), wrapping any structural failure as
// ErrorMalformedHeader at the boundary, the same shape header.Parse uses
// around its own internal parse helper. A truncated length prefix or a
// path/owner/group/weblink that runs past the end of the body is malformed
// index data, not a caller-argument mistake (that's ErrorFileIndex, reserved
// for Extract's fileIndex bounds check). A declared payload length that runs
// past the end of the body is not checked here: offsets are still assigned
// from it.
func parseIndex(body stream.Reader, fileCount uint32) ([]FileEntry, liberr.Error) {
	files, err := parseIndexEntries(body, fileCount)
	if err != nil {
		return nil, ErrorMalformedHeader.Error(err)
	}
	return files, nil
}

func parseIndexEntries(body stream.Reader, fileCount uint32) ([]FileEntry, liberr.Error) {
	files := make([]FileEntry, fileCount)

	for i := range files {
		f, err := readIndexEntry(body)
		if err != nil {
			return nil, err
		}
		files[i] = *f
	}

	for i := range files {
		pos, err := body.Position()
		if err != nil {
			return nil, err
		}
		files[i].Offset = uint64(pos)
		if err := body.Jump(int64(files[i].Length)); err != nil {
			return nil, err
		}
	}

	return files, nil
}

func readIndexEntry(body stream.Reader) (*FileEntry, liberr.Error) {
	length, err := body.ReadU64LE()
	if err != nil {
		return nil, err
	}

	path, err := readPrefixedString16(body)
	if err != nil {
		return nil, err
	}
	owner, err := readPrefixedString16(body)
	if err != nil {
		return nil, err
	}
	group, err := readPrefixedString16(body)
	if err != nil {
		return nil, err
	}

	weblinkLen, err := body.ReadU32LE()
	if err != nil {
		return nil, err
	}
	weblink, err := body.ReadUTF8(int(weblinkLen))
	if err != nil {
		return nil, err
	}

	creation, err := body.ReadUintLE(6)
	if err != nil {
		return nil, err
	}
	modification, err := body.ReadUintLE(6)
	if err != nil {
		return nil, err
	}
	access, err := body.ReadUintLE(6)
	if err != nil {
		return nil, err
	}

	p1, err := body.ReadU8()
	if err != nil {
		return nil, err
	}
	p2, err := body.ReadU8()
	if err != nil {
		return nil, err
	}
	perm, fl := decodePerm(p1, p2)

	return &FileEntry{
		Path:          path,
		Owner:         owner,
		Group:         group,
		Weblink:       weblink,
		Length:        length,
		Creation:      millisToTime(creation),
		Modification:  millisToTime(modification),
		Access:        millisToTime(access),
		Permissions:   perm,
		Directory:     fl.Directory,
		Hidden:        fl.Hidden,
		System:        fl.System,
		EnableBackup:  fl.EnableBackup,
		RequireBackup: fl.RequireBackup,
		ReadOnly:      fl.ReadOnly,
		Main:          fl.Main,
	}, nil
}

func readPrefixedString16(body stream.Reader) (string, liberr.Error) {
	n, err := body.ReadU16LE()
	if err != nil {
		return "", err
	}
	return body.ReadUTF8(int(n))
}
