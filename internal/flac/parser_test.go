package flac

import (
	"bytes"
	"encoding/binary"
	"testing"

	binutil "github.com/simonhull/audiocatalog/internal/binary"
	"github.com/simonhull/audiocatalog/internal/types"
)

const blockTypeStreamInfo = 0

type block struct {
	typ  byte
	data []byte
}

// createFLAC builds "fLaC" followed by the given metadata blocks, marking
// the final one as last.
func createFLAC(blocks ...block) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("fLaC")
	for i, b := range blocks {
		head := b.typ & 0x7F
		if i == len(blocks)-1 {
			head |= 0x80
		}
		n := len(b.data)
		buf.Write([]byte{head, byte(n >> 16), byte(n >> 8), byte(n)})
		buf.Write(b.data)
	}
	// a few bytes standing in for audio frames
	buf.Write([]byte{0xFF, 0xF8, 0x69, 0x08})
	return buf.Bytes()
}

func streamInfo() block {
	return block{typ: blockTypeStreamInfo, data: make([]byte, 34)}
}

func commentBlock(comments ...string) block {
	data := &bytes.Buffer{}
	vendor := "audiocatalog"
	binary.Write(data, binary.LittleEndian, uint32(len(vendor)))
	data.WriteString(vendor)
	binary.Write(data, binary.LittleEndian, uint32(len(comments)))
	for _, c := range comments {
		binary.Write(data, binary.LittleEndian, uint32(len(c)))
		data.WriteString(c)
	}
	return block{typ: blockTypeVorbisComment, data: data.Bytes()}
}

func pictureBlock(mime string, img []byte) block {
	data := &bytes.Buffer{}
	binary.Write(data, binary.BigEndian, uint32(3))
	binary.Write(data, binary.BigEndian, uint32(len(mime)))
	data.WriteString(mime)
	binary.Write(data, binary.BigEndian, uint32(0))
	data.Write(make([]byte, 16))
	binary.Write(data, binary.BigEndian, uint32(len(img)))
	data.Write(img)
	return block{typ: blockTypePicture, data: data.Bytes()}
}

func read(t *testing.T, data []byte) (types.TagRecord, []types.Warning) {
	t.Helper()
	sr := binutil.NewSafeReader(bytes.NewReader(data), "test.flac", 0)
	rec, warnings, err := Read(sr)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	return rec, warnings
}

func TestRead_TitleArtist(t *testing.T) {
	rec, warnings := read(t, createFLAC(commentBlock("TITLE=Foo", "ARTIST=Bar")))

	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if got := types.Value(rec.Title); got != "Foo" {
		t.Errorf("expected title %q, got %q", "Foo", got)
	}
	if got := types.Value(rec.Artist); got != "Bar" {
		t.Errorf("expected artist %q, got %q", "Bar", got)
	}
	if rec.Album != nil || rec.Track != nil || rec.Picture != nil {
		t.Errorf("expected only title and artist, got %+v", rec)
	}
}

func TestRead_SkipsOtherBlocks(t *testing.T) {
	img := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A}
	data := createFLAC(
		streamInfo(),
		block{typ: 1, data: make([]byte, 100)}, // padding
		pictureBlock("image/png", img),
		commentBlock("ALBUM=Album", "TRACKNUMBER=02"),
	)

	rec, _ := read(t, data)

	if got := types.Value(rec.Album); got != "Album" {
		t.Errorf("expected album %q, got %q", "Album", got)
	}
	if got := types.Value(rec.Track); got != "02" {
		t.Errorf("expected track %q, got %q", "02", got)
	}
	if rec.Picture == nil || rec.Picture.MIME != "image/png" || !bytes.Equal(rec.Picture.Data, img) {
		t.Errorf("unexpected picture %+v", rec.Picture)
	}
}

func TestRead_StopsAtLastBlock(t *testing.T) {
	data := createFLAC(streamInfo())
	// Append a well-formed comment block after the last-flagged block.
	extra := createFLAC(commentBlock("TITLE=Hidden"))
	data = append(data[:len(data)-4], extra[4:]...)

	rec, _ := read(t, data)
	if rec.Title != nil {
		t.Errorf("expected blocks after the last flag to be ignored, got %q", *rec.Title)
	}
}

func TestRead_InvalidMagic(t *testing.T) {
	rec, warnings := read(t, []byte("OggS\x00\x00\x00\x00"))

	if !rec.IsEmpty() {
		t.Errorf("expected empty record, got %+v", rec)
	}
	if len(warnings) != 1 || warnings[0].Kind != types.WarnNoTag {
		t.Errorf("expected one no-tag warning, got %v", warnings)
	}
}

func TestRead_TruncatedCommentBlock(t *testing.T) {
	data := createFLAC(streamInfo(), commentBlock("TITLE=Kept", "ARTIST=Cut off here"))
	data = data[:len(data)-4-6] // drop fake audio and the tail of the last comment

	rec, warnings := read(t, data)

	if got := types.Value(rec.Title); got != "Kept" {
		t.Errorf("expected partial title %q, got %q", "Kept", got)
	}
	if rec.Artist != nil {
		t.Errorf("expected artist absent, got %q", *rec.Artist)
	}
	if len(warnings) == 0 {
		t.Error("expected truncation warnings")
	}
	for _, w := range warnings {
		if w.Kind != types.WarnTruncated {
			t.Errorf("expected only truncation warnings, got %v", w)
		}
	}
}

func TestRead_MalformedPicture(t *testing.T) {
	bad := block{typ: blockTypePicture, data: []byte{0, 0, 0, 3, 0xFF, 0xFF, 0xFF, 0xFF}}
	rec, warnings := read(t, createFLAC(bad, commentBlock("TITLE=Fine")))

	if rec.Picture != nil {
		t.Error("expected no picture")
	}
	if got := types.Value(rec.Title); got != "Fine" {
		t.Errorf("expected title %q, got %q", "Fine", got)
	}
	if len(warnings) != 1 || warnings[0].Kind != types.WarnMalformed {
		t.Errorf("expected one malformed warning, got %v", warnings)
	}
}

func TestParseBlockHeader(t *testing.T) {
	h := ParseBlockHeader([]byte{0x84, 0x01, 0x02, 0x03})
	if !h.IsLast || h.Type != 4 || h.Length != 0x010203 {
		t.Errorf("unexpected header %+v", h)
	}

	h = ParseBlockHeader([]byte{0x06, 0x00, 0x00, 0x10})
	if h.IsLast || h.Type != 6 || h.Length != 16 {
		t.Errorf("unexpected header %+v", h)
	}
}

func BenchmarkRead(b *testing.B) {
	data := createFLAC(streamInfo(), commentBlock("TITLE=Bench", "ARTIST=Mark", "ALBUM=Suite"))
	r := bytes.NewReader(data)

	b.ReportAllocs()
	for b.Loop() {
		sr := binutil.NewSafeReader(r, "bench.flac", 0)
		if _, _, err := Read(sr); err != nil {
			b.Fatal(err)
		}
	}
}
