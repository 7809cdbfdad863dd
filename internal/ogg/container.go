package ogg

import (
	"github.com/simonhull/audiocatalog/internal/binary"
)

const (
	pageHeaderSize = 27

	headerTypeContinued = 0x01
)

// Page represents an Ogg page.
//
// An Ogg page is the fundamental unit of the Ogg container format: a 27-byte
// header, a segment table of lacing values, and a body holding one or more
// (possibly partial) packets.
type Page struct {
	Offset          int64
	HeaderType      byte   // Bit flags: 0x01=continued, 0x02=BOS, 0x04=EOS
	GranulePosition uint64 // Position in samples
	SerialNumber    uint32 // Logical bitstream identifier
	SequenceNumber  uint32 // Page sequence number
	Segments        []byte // Lacing values
	Data            []byte // Page body, shorter than declared when truncated
	Truncated       bool
}

// span is one packet, or packet fragment, within a page body.
type span struct {
	start, end int
	complete   bool // false when the packet continues on the next page
}

// readPage reads the page at offset. A nil page with a nil error means no
// page could be read there: the signature is missing or the header is cut
// short.
func readPage(sr *binary.SafeReader, offset int64) (*Page, int64, error) {
	hdr, err := sr.ReadRange(offset, pageHeaderSize, "Ogg page header")
	if err != nil {
		return nil, 0, err
	}
	if len(hdr) < pageHeaderSize || string(hdr[0:4]) != "OggS" {
		return nil, 0, nil
	}

	segCount := int(hdr[26])
	segments, err := sr.ReadRange(offset+pageHeaderSize, segCount, "segment table")
	if err != nil {
		return nil, 0, err
	}
	if len(segments) < segCount {
		return nil, 0, nil
	}

	bodySize := 0
	for _, s := range segments {
		bodySize += int(s)
	}
	bodyOffset := offset + pageHeaderSize + int64(segCount)
	data, err := sr.ReadRange(bodyOffset, bodySize, "page data")
	if err != nil {
		return nil, 0, err
	}

	page := &Page{
		Offset:          offset,
		HeaderType:      hdr[5],
		GranulePosition: binary.Uint64(hdr[6:14], binary.LittleEndian),
		SerialNumber:    binary.Uint32(hdr[14:18], binary.LittleEndian),
		SequenceNumber:  binary.Uint32(hdr[18:22], binary.LittleEndian),
		Segments:        segments,
		Data:            data,
		Truncated:       len(data) < bodySize,
	}
	return page, bodyOffset + int64(bodySize), nil
}

// Continued reports whether the page begins with the tail of a packet from
// the previous page.
func (p *Page) Continued() bool {
	return p.HeaderType&headerTypeContinued != 0
}

// spans splits the body into packets using the lacing values. A packet ends
// at the first lacing value below 255; a trailing run of 255s leaves the
// last packet open.
func (p *Page) spans() []span {
	var out []span
	start, pos := 0, 0
	for _, lace := range p.Segments {
		pos += int(lace)
		if lace < 255 {
			out = append(out, span{start: start, end: pos, complete: true})
			start = pos
		}
	}
	if pos > start {
		out = append(out, span{start: start, end: pos, complete: false})
	}
	for i := range out {
		out[i].start = min(out[i].start, len(p.Data))
		out[i].end = min(out[i].end, len(p.Data))
	}
	return out
}
