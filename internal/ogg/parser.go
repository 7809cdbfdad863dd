// Package ogg reads Vorbis and Opus comment headers from the leading pages
// of an Ogg stream.
package ogg

import (
	"bytes"
	"fmt"

	"github.com/simonhull/audiocatalog/internal/binary"
	"github.com/simonhull/audiocatalog/internal/types"
	"github.com/simonhull/audiocatalog/internal/vorbis"
)

const stage = "ogg"

const (
	// maxPages is the page budget for locating a comment header.
	maxPages = 10
	// maxCommentPacket bounds reassembly of a comment packet spread over
	// several pages (large embedded pictures).
	maxCommentPacket = 16 << 20
)

var (
	sigVorbisComment = []byte("\x03vorbis")
	sigOpusTags      = []byte("OpusTags")
)

// Read scans the first pages of the stream for a comment header.
//
// The identification page (index 0) is skipped. The packets of each later
// page are searched for "\x03vorbis" or "OpusTags" and the bytes after the
// signature are decoded as a Vorbis comment block. The scan stops once a title or
// artist has been found or the page budget runs out.
func Read(sr *binary.SafeReader) (types.TagRecord, []types.Warning, error) {
	var rec types.TagRecord
	var warnings []types.Warning
	warn := func(kind types.WarningKind, off int64, format string, args ...any) {
		warnings = append(warnings, types.Warning{
			Kind:    kind,
			Stage:   stage,
			Message: fmt.Sprintf(format, args...),
			Offset:  off,
		})
	}

	offset := int64(0)
	found := false
	for index := 0; index < maxPages; index++ {
		page, next, err := readPage(sr, offset)
		if err != nil {
			return rec, warnings, err
		}
		if page == nil {
			if index == 0 {
				warn(types.WarnNoTag, offset, "missing OggS capture pattern")
			} else if !found {
				warn(types.WarnTruncated, offset, "no Ogg page at offset %d", offset)
			}
			break
		}
		offset = next
		if page.Truncated {
			warn(types.WarnTruncated, page.Offset, "page %d body cut short", page.SequenceNumber)
		}
		if index == 0 {
			continue
		}

		s, start, sigLen, ok := findCommentHeader(page)
		if !ok {
			if i, _ := signatureIndex(page.Data); i >= 0 {
				warn(types.WarnMalformed, page.Offset+int64(i), "comment signature crosses a packet boundary on page %d", page.SequenceNumber)
			}
			continue
		}
		found = true

		packet, nextOffset, err := collectPacket(sr, page, s, start, next)
		if err != nil {
			return rec, warnings, err
		}
		offset = nextOffset
		if len(packet) < sigLen {
			warn(types.WarnMalformed, page.Offset, "comment packet shorter than its signature")
			continue
		}

		comments, w := vorbis.DecodeComments(packet[sigLen:])
		for _, cw := range w {
			cw.Offset = page.Offset
			warnings = append(warnings, cw)
		}
		rec.Merge(comments)

		if rec.Title != nil || rec.Artist != nil {
			break
		}
	}

	if !found && len(warnings) == 0 {
		warn(types.WarnNoTag, 0, "no comment header in first %d pages", maxPages)
	}
	return rec, warnings, nil
}

// findCommentHeader returns the packet holding the earliest comment
// signature, the body index of the signature and its length. A signature
// only counts when it lies wholly inside one packet.
func findCommentHeader(p *Page) (span, int, int, bool) {
	for _, s := range p.spans() {
		if i, n := signatureIndex(p.Data[s.start:s.end]); i >= 0 {
			return s, s.start + i, n, true
		}
	}
	return span{}, -1, 0, false
}

// signatureIndex returns the index of the earliest comment signature in
// data and the signature length, or -1.
func signatureIndex(data []byte) (int, int) {
	v := bytes.Index(data, sigVorbisComment)
	o := bytes.Index(data, sigOpusTags)
	switch {
	case v >= 0 && (o < 0 || v < o):
		return v, len(sigVorbisComment)
	case o >= 0:
		return o, len(sigOpusTags)
	default:
		return -1, 0
	}
}

// collectPacket returns the packet s from body index start, following
// continuation pages when the packet does not end on this page. It returns
// the offset of the first page not consumed.
func collectPacket(sr *binary.SafeReader, page *Page, s span, start int, next int64) ([]byte, int64, error) {
	packet := page.Data[start:s.end]
	if s.complete || page.Truncated {
		return packet, next, nil
	}

	packet = bytes.Clone(packet)
	for len(packet) < maxCommentPacket {
		cont, after, err := readPage(sr, next)
		if err != nil {
			return nil, 0, err
		}
		if cont == nil || !cont.Continued() {
			break
		}
		next = after

		spans := cont.spans()
		if len(spans) == 0 {
			break
		}
		first := spans[0]
		packet = append(packet, cont.Data[first.start:first.end]...)
		if first.complete || cont.Truncated {
			break
		}
	}
	return packet, next, nil
}
