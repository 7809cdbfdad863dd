// Package mp3 reads ID3v2.3 and ID3v2.4 tags from the start of MP3 files.
package mp3

import (
	"bytes"
	"fmt"

	"github.com/simonhull/audiocatalog/internal/binary"
	"github.com/simonhull/audiocatalog/internal/types"
)

const (
	stage           = "id3v2"
	headerSize      = 10
	frameHeaderSize = 10

	flagUnsynchronisation = 0x80
	flagExtendedHeader    = 0x40

	// v2.4 frame format flags
	frameFlagUnsynchronised = 0x0002
	frameFlagDataLength     = 0x0001
)

// Header is the fixed 10-byte ID3v2 tag header.
type Header struct {
	Version  byte // Major version (3 or 4)
	Revision byte
	Flags    byte
	Size     uint32 // Tag size excluding the header, syncsafe on disk
}

// Frame is one tag frame. Data aliases the tag buffer.
type Frame struct {
	ID    string
	Size  uint32
	Flags uint16
	Data  []byte
}

// Read reads the ID3v2 tag at the start of the source.
//
// A missing "ID3" signature or an unsupported major version yields an
// empty record with a warning. Truncated frames end the frame loop and the
// partial record is returned. Only a failing byte source produces an error.
func Read(sr *binary.SafeReader) (types.TagRecord, []types.Warning, error) {
	var rec types.TagRecord

	buf, err := sr.ReadRange(0, headerSize, "ID3v2 header")
	if err != nil {
		return rec, nil, err
	}
	header, w, ok := parseHeader(buf)
	if !ok {
		return rec, []types.Warning{w}, nil
	}

	body, err := sr.ReadRange(headerSize, int(header.Size), "ID3v2 tag body")
	if err != nil {
		return rec, nil, err
	}

	var warnings []types.Warning
	if len(body) < int(header.Size) {
		warnings = append(warnings, types.Warning{
			Kind:    types.WarnTruncated,
			Stage:   stage,
			Message: fmt.Sprintf("tag declares %d bytes, %d available", header.Size, len(body)),
			Offset:  headerSize,
		})
	}

	// v2.3 unsynchronises the whole tag and frame sizes count the
	// resynchronised bytes. v2.4 does it per frame.
	if header.Version == 3 && header.Flags&flagUnsynchronisation != 0 {
		body = resync(body)
	}

	warnings = append(warnings, parseFrames(header, body, &rec)...)
	return rec, warnings, nil
}

// parseHeader validates the signature and version. ok is false when there is
// no usable tag.
func parseHeader(buf []byte) (Header, types.Warning, bool) {
	if len(buf) < headerSize || string(buf[0:3]) != "ID3" {
		return Header{}, types.Warning{
			Kind:    types.WarnNoTag,
			Stage:   stage,
			Message: "missing ID3 signature",
		}, false
	}

	h := Header{
		Version:  buf[3],
		Revision: buf[4],
		Flags:    buf[5],
		Size:     binary.Syncsafe(buf[6:10]),
	}
	if h.Version != 3 && h.Version != 4 {
		return h, types.Warning{
			Kind:    types.WarnUnsupported,
			Stage:   stage,
			Message: fmt.Sprintf("unsupported ID3v2 version 2.%d", h.Version),
		}, false
	}
	return h, types.Warning{}, true
}

// parseFrames walks the frame sequence in body and fills rec.
func parseFrames(h Header, body []byte, rec *types.TagRecord) []types.Warning {
	var warnings []types.Warning
	warn := func(kind types.WarningKind, off int, format string, args ...any) {
		warnings = append(warnings, types.Warning{
			Kind:    kind,
			Stage:   stage,
			Message: fmt.Sprintf(format, args...),
			Offset:  int64(headerSize + off),
		})
	}

	c := binary.NewCursor(body)
	if h.Flags&flagExtendedHeader != 0 {
		if err := skipExtendedHeader(c, h.Version); err != nil {
			warn(types.WarnTruncated, c.Offset(), "extended header: %v", err)
			return warnings
		}
	}

	for c.Remaining() >= frameHeaderSize {
		hdr, _ := c.Peek(frameHeaderSize, "frame header")
		if hdr[0] == 0 {
			break // padding
		}
		start := c.Offset()
		_ = c.Skip(frameHeaderSize, "frame header")

		frame := Frame{
			ID:    string(hdr[0:4]),
			Size:  frameSize(h.Version, hdr[4:8]),
			Flags: binary.Uint16(hdr[8:10], binary.BigEndian),
		}
		if uint64(frame.Size) > uint64(c.Remaining()) {
			warn(types.WarnTruncated, start, "frame %s declares %d bytes, %d remaining",
				frame.ID, frame.Size, c.Remaining())
			break
		}
		frame.Data, _ = c.Take(int(frame.Size), "frame data")
		if h.Version == 4 {
			frame.Data = frameData(h, frame)
		}

		if w, ok := applyFrame(frame, rec); !ok {
			w.Offset = int64(headerSize + start)
			warnings = append(warnings, w)
		}
	}
	return warnings
}

// skipExtendedHeader skips the v2.4 syncsafe-sized extended header (size
// includes itself) or the v2.3 plain-sized one (size excludes its 4 bytes).
func skipExtendedHeader(c *binary.Cursor, version byte) error {
	if version == 4 {
		size, err := c.Syncsafe32("extended header size")
		if err != nil {
			return err
		}
		if size < 4 {
			return nil
		}
		return c.Skip(int(size)-4, "extended header")
	}
	size, err := binary.Read[uint32](c, binary.BigEndian, "extended header size")
	if err != nil {
		return err
	}
	if uint64(size) > uint64(c.Remaining()) {
		return fmt.Errorf("%w: extended header declares %d bytes", binary.ErrTruncated, size)
	}
	return c.Skip(int(size), "extended header")
}

// frameData strips a v2.4 data length indicator and reverses per-frame
// unsynchronisation.
func frameData(h Header, f Frame) []byte {
	data := f.Data
	if f.Flags&frameFlagDataLength != 0 && len(data) >= 4 {
		data = data[4:]
	}
	if f.Flags&frameFlagUnsynchronised != 0 || h.Flags&flagUnsynchronisation != 0 {
		data = resync(data)
	}
	return data
}

// resync turns every 0xFF 0x00 pair back into 0xFF.
func resync(b []byte) []byte {
	if !bytes.Contains(b, []byte{0xFF, 0x00}) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		out = append(out, b[i])
		if b[i] == 0xFF && i+1 < len(b) && b[i+1] == 0x00 {
			i++
		}
	}
	return out
}

func frameSize(version byte, b []byte) uint32 {
	if version == 4 {
		return binary.Syncsafe(b)
	}
	return binary.Uint32(b, binary.BigEndian)
}

// applyFrame decodes the frames the catalog needs; all others are skipped.
func applyFrame(f Frame, rec *types.TagRecord) (types.Warning, bool) {
	var field types.Field
	switch f.ID {
	case "TIT2":
		field = types.FieldTitle
	case "TPE1":
		field = types.FieldArtist
	case "TALB":
		field = types.FieldAlbum
	case "TRCK":
		field = types.FieldTrack
	case "APIC":
		pic, err := parseAPIC(f.Data)
		if err != nil {
			return types.Warning{Kind: types.WarnMalformed, Stage: stage, Message: err.Error()}, false
		}
		rec.SetPicture(pic)
		return types.Warning{}, true
	default:
		return types.Warning{}, true
	}

	text, err := decodeTextFrame(f.Data)
	if err != nil {
		return types.Warning{
			Kind:    types.WarnUnsupported,
			Stage:   stage,
			Message: fmt.Sprintf("frame %s: %v", f.ID, err),
		}, false
	}
	rec.Set(field, text)
	return types.Warning{}, true
}
