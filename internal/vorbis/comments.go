// Package vorbis provides the Vorbis comment decoder shared by the FLAC and
// Ogg readers, plus the FLAC picture-block layout both of them embed.
//
// A comment block is little-endian:
//
//	vendorLength(4) vendor commentCount(4) [commentLength(4) "KEY=value"]*
package vorbis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/simonhull/audiocatalog/internal/binary"
	"github.com/simonhull/audiocatalog/internal/types"
)

const stage = "vorbis"

// DecodeComments parses a Vorbis comment block.
//
// Keys are matched case-insensitively against TITLE, ARTIST, ALBUM,
// TRACKNUMBER and METADATA_BLOCK_PICTURE; the first value of each wins.
// A truncated block returns whatever was decoded before the cut. A picture
// that fails to decode is reported as a warning and otherwise ignored.
func DecodeComments(data []byte) (types.TagRecord, []types.Warning) {
	var rec types.TagRecord
	var warnings []types.Warning

	c := binary.NewCursor(data)
	truncated := func(err error) {
		warnings = append(warnings, types.Warning{
			Kind:    types.WarnTruncated,
			Stage:   stage,
			Message: err.Error(),
			Offset:  int64(c.Offset()),
		})
	}

	vendorLen, err := binary.Read[uint32](c, binary.LittleEndian, "vendor length")
	if err != nil {
		truncated(err)
		return rec, warnings
	}
	if err := c.Skip(int(vendorLen), "vendor string"); err != nil {
		truncated(err)
		return rec, warnings
	}

	count, err := binary.Read[uint32](c, binary.LittleEndian, "comment count")
	if err != nil {
		truncated(err)
		return rec, warnings
	}

	for i := uint32(0); i < count; i++ {
		length, err := binary.Read[uint32](c, binary.LittleEndian, "comment length")
		if err != nil {
			truncated(err)
			break
		}
		if uint64(length) > uint64(c.Remaining()) {
			truncated(fmt.Errorf("%w: comment %d declares %d bytes, %d remaining",
				binary.ErrTruncated, i, length, c.Remaining()))
			break
		}
		raw, _ := c.Take(int(length), "comment")

		if w, ok := applyComment(&rec, string(raw)); !ok {
			w.Offset = int64(c.Offset())
			warnings = append(warnings, w)
		}
	}

	return rec, warnings
}

// applyComment maps one KEY=value comment onto rec. It returns false with a
// warning when a picture value could not be decoded.
func applyComment(rec *types.TagRecord, comment string) (types.Warning, bool) {
	key, value, found := strings.Cut(comment, "=")
	if !found {
		return types.Warning{}, true
	}

	switch strings.ToUpper(key) {
	case "TITLE":
		rec.Set(types.FieldTitle, value)
	case "ARTIST":
		rec.Set(types.FieldArtist, value)
	case "ALBUM":
		rec.Set(types.FieldAlbum, value)
	case "TRACKNUMBER":
		rec.Set(types.FieldTrack, value)
	case "METADATA_BLOCK_PICTURE":
		if rec.Picture != nil {
			return types.Warning{}, true
		}
		pic, err := DecodeBlockPicture(value)
		if err != nil {
			kind := types.WarnMalformed
			if errors.Is(err, binary.ErrTruncated) {
				kind = types.WarnTruncated
			}
			return types.Warning{Kind: kind, Stage: stage, Message: err.Error()}, false
		}
		rec.SetPicture(pic)
	}
	return types.Warning{}, true
}
