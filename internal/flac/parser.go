// Package flac reads Vorbis comments and pictures from FLAC metadata blocks.
package flac

import (
	"fmt"

	"github.com/simonhull/audiocatalog/internal/binary"
	"github.com/simonhull/audiocatalog/internal/types"
	"github.com/simonhull/audiocatalog/internal/vorbis"
)

const stage = "flac"

// Metadata block types
const (
	blockTypeVorbisComment = 4
	blockTypePicture       = 6
)

const (
	blockHeaderSize = 4
	// maxBlocks bounds the metadata walk; real files carry a handful.
	maxBlocks = 128
)

// BlockHeader is the 4-byte header preceding every metadata block.
type BlockHeader struct {
	IsLast bool
	Type   uint8
	Length uint32
}

// ParseBlockHeader decodes isLast(1 bit) | type(7 bits) | length(24 bits).
// Callers guarantee len(b) >= 4.
func ParseBlockHeader(b []byte) BlockHeader {
	v := binary.Uint32(b, binary.BigEndian)
	return BlockHeader{
		IsLast: v>>31 == 1,
		Type:   uint8(v >> 24 & 0x7F),
		Length: v & 0x00FFFFFF,
	}
}

// Read reads the metadata blocks following the "fLaC" magic.
//
// Only block headers plus the Vorbis comment and picture block bodies are
// fetched. The walk stops at the last-block flag or when a header cannot be
// read in full.
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

	magic, err := sr.ReadRange(0, 4, "FLAC magic bytes")
	if err != nil {
		return rec, nil, err
	}
	if string(magic) != "fLaC" {
		warn(types.WarnNoTag, 0, "missing fLaC magic")
		return rec, warnings, nil
	}

	offset := int64(4)
	for i := 0; i < maxBlocks; i++ {
		buf, err := sr.ReadRange(offset, blockHeaderSize, "metadata block header")
		if err != nil {
			return rec, warnings, err
		}
		if len(buf) < blockHeaderSize {
			if len(buf) > 0 {
				warn(types.WarnTruncated, offset, "short metadata block header")
			}
			break
		}

		header := ParseBlockHeader(buf)
		body := offset + blockHeaderSize

		switch header.Type {
		case blockTypeVorbisComment:
			data, err := readBlock(sr, body, header, "Vorbis comment block")
			if err != nil {
				return rec, warnings, err
			}
			if len(data) < int(header.Length) {
				warn(types.WarnTruncated, body, "Vorbis comment block declares %d bytes, %d available",
					header.Length, len(data))
			}
			comments, w := vorbis.DecodeComments(data)
			for _, cw := range w {
				cw.Offset += body
				warnings = append(warnings, cw)
			}
			rec.Merge(comments)

		case blockTypePicture:
			if rec.Picture != nil {
				break
			}
			data, err := readBlock(sr, body, header, "picture block")
			if err != nil {
				return rec, warnings, err
			}
			pic, err := vorbis.ParsePicture(data)
			if err != nil {
				warn(types.WarnMalformed, body, "picture block: %v", err)
				break
			}
			rec.SetPicture(pic)
		}

		if header.IsLast {
			break
		}
		offset = body + int64(header.Length)
	}

	return rec, warnings, nil
}

func readBlock(sr *binary.SafeReader, off int64, h BlockHeader, what string) ([]byte, error) {
	return sr.ReadRange(off, int(h.Length), what)
}
