package compress

// Algorithm is the decoded form of the header's 4-byte ASCII compression
// tag, spec.md §4.2 / §6.
type Algorithm uint8

const (
	None Algorithm = iota
	LZMA
	Deflate
	DeflateZlib
	Unsupported
)

// Tag returns the 4-byte ASCII header tag for a, or an empty string for
// Unsupported (which has no canonical tag of its own: any unrecognized
//4 bytes parse to Unsupported).
func (a Algorithm) Tag() string {
	switch a {
	case None:
		return "NONE"
	case LZMA:
		return "LZMA"
	case Deflate:
		return "DEFL"
	case DeflateZlib:
		return "DFLT"
	}
	return ""
}

func (a Algorithm) String() string {
	switch a {
	case None:
		return "none"
	case LZMA:
		return "lzma"
	case Deflate:
		return "deflate"
	case DeflateZlib:
		return "deflate-zlib"
	}
	return "unsupported"
}

func (a Algorithm) IsNone() bool {
	return a == None
}

// Parse maps a raw 4-byte header tag to an Algorithm. Any tag other than
// the four known ones yields Unsupported; spec.md §9 Open Questions
// preserves this rather than rejecting unknown tags outright.
func Parse(tag [4]byte) Algorithm {
	switch string(tag[:]) {
	case "NONE":
		return None
	case "LZMA":
		return LZMA
	case "DEFL":
		return Deflate
	case "DFLT":
		return DeflateZlib
	default:
		return Unsupported
	}
}
