// Package m4a reads iTunes-style metadata from MP4 containers
// (moov → udta → meta → ilst).
package m4a

import (
	"fmt"

	"github.com/simonhull/audiocatalog/internal/binary"
	"github.com/simonhull/audiocatalog/internal/types"
)

// atomHeaderSize is the 32-bit size plus the type code. 64-bit sizes
// (size field 1) are not supported and read as malformed.
const atomHeaderSize = 8

// Atom represents an MP4 atom (box)
type Atom struct {
	Size   uint64 // Total size including header
	Type   string // 4-character type code
	Offset int64  // Position in file
}

// DataSize returns the size of the atom's data (excluding header)
func (a *Atom) DataSize() uint64 {
	if a.Size < atomHeaderSize {
		return 0
	}
	return a.Size - atomHeaderSize
}

// DataOffset returns the file offset where the atom's data starts
func (a *Atom) DataOffset() int64 {
	return a.Offset + atomHeaderSize
}

var containerTypes = map[string]bool{
	"moov": true, // Movie container
	"udta": true, // User data
	"meta": true, // Metadata container, 4 bytes of version/flags first
	"ilst": true, // iTunes metadata list
	"trak": true, // Track container
	"mdia": true, // Media container
	"minf": true, // Media information
	"stbl": true, // Sample table
	"edts": true, // Edit list container
}

// IsContainer returns true if this atom type can contain other atoms
func (a *Atom) IsContainer() bool {
	return containerTypes[a.Type]
}

// readAtomHeader reads an atom header at the given offset. It returns nil
// with a nil error when fewer than 8 bytes remain.
func readAtomHeader(sr *binary.SafeReader, offset int64) (*Atom, error) {
	hdr, err := sr.ReadRange(offset, atomHeaderSize, "atom header")
	if err != nil {
		return nil, err
	}
	if len(hdr) < atomHeaderSize {
		return nil, nil
	}

	atom := &Atom{
		Size:   uint64(binary.Uint32(hdr[0:4], binary.BigEndian)),
		Type:   string(hdr[4:8]),
		Offset: offset,
	}

	if atom.Size < atomHeaderSize {
		return nil, &types.CorruptedFileError{
			Path:   sr.Path(),
			Offset: offset,
			Reason: fmt.Sprintf("invalid atom size %d for %q", atom.Size, atom.Type),
		}
	}
	return atom, nil
}

// findAtom scans sibling atoms in [start, end) for atomType. end < 0 means
// scan until the source runs out.
func findAtom(sr *binary.SafeReader, start, end int64, atomType string) (*Atom, error) {
	offset := start
	for end < 0 || offset < end {
		atom, err := readAtomHeader(sr, offset)
		if err != nil || atom == nil {
			return nil, err
		}
		if atom.Type == atomType {
			return atom, nil
		}
		offset += int64(atom.Size)
	}
	return nil, nil
}

// Walk visits every atom in the file depth-first, descending into container
// atoms and into the items of an ilst. It stops at the first invalid header.
func Walk(sr *binary.SafeReader, visit func(a *Atom, depth int)) error {
	return walk(sr, 0, sr.Size(), 0, "", visit)
}

func walk(sr *binary.SafeReader, offset, end int64, depth int, parent string, visit func(*Atom, int)) error {
	for end < 0 || offset < end {
		atom, err := readAtomHeader(sr, offset)
		if err != nil || atom == nil {
			return err
		}
		visit(atom, depth)

		if atom.IsContainer() || parent == "ilst" {
			dataOffset := atom.DataOffset()
			if atom.Type == "meta" {
				dataOffset += 4
			}
			if err := walk(sr, dataOffset, atom.Offset+int64(atom.Size), depth+1, atom.Type, visit); err != nil {
				return err
			}
		}
		offset += int64(atom.Size)
	}
	return nil
}

// child returns the payload of the first direct child of typ within buf.
// An atom running past the end of buf stops the search and is reported
// through truncated.
func child(buf []byte, typ string) (payload []byte, found, truncated bool) {
	var out []byte
	truncated = eachAtom(buf, func(t string, p []byte) bool {
		if t == typ {
			out, found = p, true
			return false
		}
		return true
	})
	return out, found, truncated
}

// eachAtom calls fn for each atom in buf until fn returns false. It reports
// whether iteration stopped on a malformed or overflowing atom.
func eachAtom(buf []byte, fn func(typ string, payload []byte) bool) (truncated bool) {
	c := binary.NewCursor(buf)
	for c.Remaining() >= atomHeaderSize {
		start := c.Offset()
		size32, _ := binary.Read[uint32](c, binary.BigEndian, "atom size")
		typ, _ := c.Take(4, "atom type")

		size := int(size32)
		if size < atomHeaderSize || size > len(buf)-start {
			return true
		}
		payload, _ := c.Take(size-atomHeaderSize, "atom payload")
		if !fn(string(typ), payload) {
			return false
		}
	}
	return false
}
