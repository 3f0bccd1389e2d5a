package archive

// Permissions is the format's [owner, group, other] permission triplet,
// each octet 0-7 — the same three-bit-per-class shape as a Unix mode,
// but packed across two header bytes rather than stored as a single
// os.FileMode the way the teacher's file/perm.Perm is. Adapted from that
// package's table-driven feel (see file/perm/format.go) rather than its
// FileMode-backed representation, since this format has no notion of
// setuid/sticky/type bits — only the three 3-bit classes.
type Permissions [3]uint8

// String renders the triplet the way `ls -l` renders a mode, e.g. "rwxr-x---".
func (p Permissions) String() string {
	b := make([]byte, 0, 9)
	for _, octet := range p {
		b = append(b, rwxChar(octet, 4, 'r'), rwxChar(octet, 2, 'w'), rwxChar(octet, 1, 'x'))
	}
	return string(b)
}

func rwxChar(octet uint8, bit uint8, c byte) byte {
	if octet&bit != 0 {
		return c
	}
	return '-'
}

// flags bundles the six boolean attribute bits plus the directory bit that
// share the second permission byte (P2) with the lowest bit of the third
// permission octet, spec.md §4.5 step 7.
type flags struct {
	Directory     bool
	Hidden        bool
	System        bool
	EnableBackup  bool
	RequireBackup bool
	ReadOnly      bool
	Main          bool
}

// decodePerm splits the two packed permission/flag bytes exactly as
// spec.md §4.5 step 7 specifies — bit positions straddle the byte
// boundary and must be reproduced verbatim, not re-derived.
func decodePerm(p1, p2 byte) (Permissions, flags) {
	perm := Permissions{
		p1 >> 5,
		(p1 >> 2) & 0b111,
		((p1 & 0b11) << 1) | (p2 >> 7),
	}
	f := flags{
		Directory:     p2&0b0100_0000 != 0,
		Hidden:        p2&0b0010_0000 != 0,
		System:        p2&0b0001_0000 != 0,
		EnableBackup:  p2&0b0000_1000 != 0,
		RequireBackup: p2&0b0000_0100 != 0,
		ReadOnly:      p2&0b0000_0010 != 0,
		Main:          p2&0b0000_0001 != 0,
	}
	return perm, f
}

// encodePerm is the exact inverse of decodePerm, used by the writer
// (component H).
func encodePerm(perm Permissions, f flags) (byte, byte) {
	p1 := (perm[0] << 5) | (perm[1] << 2) | (perm[2] >> 1)
	p2 := (perm[2] & 1) << 7
	p2 |= boolBit(f.Directory, 0b0100_0000)
	p2 |= boolBit(f.Hidden, 0b0010_0000)
	p2 |= boolBit(f.System, 0b0001_0000)
	p2 |= boolBit(f.EnableBackup, 0b0000_1000)
	p2 |= boolBit(f.RequireBackup, 0b0000_0100)
	p2 |= boolBit(f.ReadOnly, 0b0000_0010)
	p2 |= boolBit(f.Main, 0b0000_0001)
	return p1, p2
}

func boolBit(b bool, bit byte) byte {
	if b {
		return bit
	}
	return 0
}
