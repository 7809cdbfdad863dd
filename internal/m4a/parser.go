package m4a

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/simonhull/audiocatalog/internal/binary"
	"github.com/simonhull/audiocatalog/internal/cover"
	"github.com/simonhull/audiocatalog/internal/types"
)

const stage = "mp4"

// iTunes item atoms. In MP4, © is the byte 0xA9.
const (
	itemTitle  = "\xA9nam"
	itemArtist = "\xA9ART"
	itemAlbum  = "\xA9alb"
	itemTrack  = "trkn"
	itemCover  = "covr"
)

// covr data type flags
const (
	flagJPEG = 13
	flagPNG  = 14
	flagBMP  = 27
)

// Read locates the top-level moov atom and decodes the ilst items under
// moov/udta/meta.
//
// The moov payload is fetched in one clamped read and navigated in memory.
// Missing atoms yield an empty record; overflowing atoms end their branch
// with a warning. Only byte-source failures are returned as errors.
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

	moov, err := findAtom(sr, 0, sr.Size(), "moov")
	if err != nil {
		var corrupt *types.CorruptedFileError
		if errors.As(err, &corrupt) {
			warn(types.WarnMalformed, corrupt.Offset, "%s", corrupt.Reason)
			return rec, warnings, nil
		}
		return rec, warnings, err
	}
	if moov == nil {
		warn(types.WarnNoTag, 0, "no moov atom")
		return rec, warnings, nil
	}

	size := int(min(moov.DataSize(), math.MaxInt32))
	payload, err := sr.ReadRange(moov.DataOffset(), size, "moov")
	if err != nil {
		return rec, warnings, err
	}
	if uint64(len(payload)) < moov.DataSize() {
		warn(types.WarnTruncated, moov.Offset, "moov declares %d bytes, read %d", moov.DataSize(), len(payload))
	}

	ilst, ok := locateIlst(payload, func(path string) {
		warn(types.WarnTruncated, moov.Offset, "atom overflows its parent in %s", path)
	})
	if !ok {
		return rec, warnings, nil
	}

	if eachAtom(ilst, func(typ string, item []byte) bool {
		applyItem(&rec, typ, item)
		return true
	}) {
		warn(types.WarnTruncated, moov.Offset, "ilst item overflows its parent")
	}
	return rec, warnings, nil
}

// locateIlst walks udta → meta → ilst within the moov payload.
func locateIlst(moov []byte, truncated func(path string)) ([]byte, bool) {
	udta, found, cut := child(moov, "udta")
	if !found {
		if cut {
			truncated("moov")
		}
		return nil, false
	}
	meta, found, cut := child(udta, "meta")
	if !found {
		if cut {
			truncated("udta")
		}
		return nil, false
	}
	if len(meta) < 4 {
		return nil, false
	}
	ilst, found, cut := child(meta[4:], "ilst")
	if !found && cut {
		truncated("meta")
	}
	return ilst, found
}

// applyItem decodes the first data atom of an ilst item into rec.
func applyItem(rec *types.TagRecord, typ string, item []byte) {
	data, found, _ := child(item, "data")
	// version(1) + flags(3) + reserved(4)
	if !found || len(data) < 8 {
		return
	}
	flags := binary.Uint32(data[0:4], binary.BigEndian) & 0x00FFFFFF
	value := data[8:]

	switch typ {
	case itemTitle:
		rec.Set(types.FieldTitle, text(value))
	case itemArtist:
		rec.Set(types.FieldArtist, text(value))
	case itemAlbum:
		rec.Set(types.FieldAlbum, text(value))
	case itemTrack:
		// reserved(2) track(2) total(2) reserved(2)
		if len(value) < 4 {
			return
		}
		if n := binary.Uint16(value[2:4], binary.BigEndian); n != 0 {
			rec.Set(types.FieldTrack, strconv.Itoa(int(n)))
		}
	case itemCover:
		if len(value) == 0 {
			return
		}
		rec.SetPicture(&types.Picture{MIME: coverMIME(flags), Data: bytes.Clone(value)})
	}
}

func text(b []byte) string {
	return strings.TrimRight(string(b), "\x00")
}

func coverMIME(flags uint32) string {
	switch flags {
	case flagPNG:
		return cover.MIMEPNG
	case flagBMP:
		return cover.MIMEBMP
	default:
		return cover.MIMEJPEG
	}
}
