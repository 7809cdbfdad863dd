package ogg

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	binutil "github.com/simonhull/audiocatalog/internal/binary"
	"github.com/simonhull/audiocatalog/internal/types"
)

// lace returns the lacing values for a packet of n bytes. An open packet
// continues on the next page and so gets no terminating value.
func lace(n int, open bool) []byte {
	var out []byte
	for n >= 255 {
		out = append(out, 255)
		n -= 255
	}
	if !open {
		out = append(out, byte(n))
	}
	return out
}

// createPage builds one Ogg page from a body and its lacing values.
func createPage(headerType byte, seq uint32, body []byte, lacing []byte) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("OggS")
	buf.WriteByte(0) // version
	buf.WriteByte(headerType)
	binary.Write(buf, binary.LittleEndian, uint64(0))      // granule position
	binary.Write(buf, binary.LittleEndian, uint32(0x1234)) // serial
	binary.Write(buf, binary.LittleEndian, seq)
	binary.Write(buf, binary.LittleEndian, uint32(0)) // checksum, not verified
	buf.WriteByte(byte(len(lacing)))
	buf.Write(lacing)
	buf.Write(body)
	return buf.Bytes()
}

// packetPage builds a page holding the given complete packets.
func packetPage(seq uint32, packets ...[]byte) []byte {
	var body, lacing []byte
	for _, p := range packets {
		body = append(body, p...)
		lacing = append(lacing, lace(len(p), false)...)
	}
	return createPage(0, seq, body, lacing)
}

func commentBlock(comments ...string) []byte {
	buf := &bytes.Buffer{}
	vendor := "audiocatalog"
	binary.Write(buf, binary.LittleEndian, uint32(len(vendor)))
	buf.WriteString(vendor)
	binary.Write(buf, binary.LittleEndian, uint32(len(comments)))
	for _, c := range comments {
		binary.Write(buf, binary.LittleEndian, uint32(len(c)))
		buf.WriteString(c)
	}
	return buf.Bytes()
}

func vorbisIdent() []byte {
	return append([]byte("\x01vorbis"), make([]byte, 23)...)
}

func read(t *testing.T, data []byte) (types.TagRecord, []types.Warning) {
	t.Helper()
	sr := binutil.NewSafeReader(bytes.NewReader(data), "test.ogg", 0)
	rec, warnings, err := Read(sr)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	return rec, warnings
}

func TestRead_VorbisCommentOnSecondPage(t *testing.T) {
	comment := append([]byte("\x03vorbis"), commentBlock("TITLE=Foo", "ARTIST=Bar", "TRACKNUMBER=3/12")...)
	setup := []byte("\x05vorbis setup data")

	var file []byte
	file = append(file, createPage(0x02, 0, vorbisIdent(), lace(30, false))...)
	file = append(file, packetPage(1, comment, setup)...)

	rec, warnings := read(t, file)

	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if got := types.Value(rec.Title); got != "Foo" {
		t.Errorf("expected title Foo, got %q", got)
	}
	if got := types.Value(rec.Artist); got != "Bar" {
		t.Errorf("expected artist Bar, got %q", got)
	}
	if got := types.Value(rec.Track); got != "3/12" {
		t.Errorf("expected raw track 3/12, got %q", got)
	}
}

func TestRead_OpusTags(t *testing.T) {
	head := append([]byte("OpusHead"), make([]byte, 11)...)
	tags := append([]byte("OpusTags"), commentBlock("title=Opus Song", "album=Opus Album")...)

	var file []byte
	file = append(file, packetPage(0, head)...)
	file = append(file, packetPage(1, tags)...)

	rec, _ := read(t, file)

	if got := types.Value(rec.Title); got != "Opus Song" {
		t.Errorf("expected title %q, got %q", "Opus Song", got)
	}
	if got := types.Value(rec.Album); got != "Opus Album" {
		t.Errorf("expected album %q, got %q", "Opus Album", got)
	}
}

func TestRead_CommentSpanningPages(t *testing.T) {
	long := strings.Repeat("x", 600)
	comment := append([]byte("\x03vorbis"), commentBlock("ALBUM="+long, "TITLE=After The Split")...)
	split := 510

	var file []byte
	file = append(file, packetPage(0, vorbisIdent())...)
	file = append(file, createPage(0, 1, comment[:split], lace(split, true))...)
	rest := comment[split:]
	file = append(file, createPage(headerTypeContinued, 2, rest, lace(len(rest), false))...)

	rec, warnings := read(t, file)

	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if got := types.Value(rec.Title); got != "After The Split" {
		t.Errorf("expected title from continuation page, got %q", got)
	}
	if got := types.Value(rec.Album); got != long {
		t.Errorf("expected %d-byte album, got %d bytes", len(long), len(got))
	}
}

func TestRead_CommentOnLaterPage(t *testing.T) {
	comment := append([]byte("\x03vorbis"), commentBlock("ARTIST=Late")...)

	var file []byte
	file = append(file, packetPage(0, vorbisIdent())...)
	file = append(file, packetPage(1, []byte("unrelated"))...)
	file = append(file, packetPage(2, comment)...)

	rec, _ := read(t, file)
	if got := types.Value(rec.Artist); got != "Late" {
		t.Errorf("expected artist Late, got %q", got)
	}
}

func TestRead_PageBudget(t *testing.T) {
	var file []byte
	file = append(file, packetPage(0, vorbisIdent())...)
	for i := 1; i < maxPages; i++ {
		file = append(file, packetPage(uint32(i), []byte("audio"))...)
	}
	comment := append([]byte("\x03vorbis"), commentBlock("TITLE=Too Far")...)
	file = append(file, packetPage(maxPages, comment)...)

	rec, warnings := read(t, file)

	if rec.Title != nil {
		t.Errorf("expected comment past the page budget to be ignored, got %q", *rec.Title)
	}
	if len(warnings) != 1 || warnings[0].Kind != types.WarnNoTag {
		t.Errorf("expected one no-tag warning, got %v", warnings)
	}
}

func TestRead_SignatureAcrossPackets(t *testing.T) {
	var file []byte
	file = append(file, packetPage(0, vorbisIdent())...)
	file = append(file, packetPage(1, []byte("abc\x03"), append([]byte("vorbis"), commentBlock("TITLE=X")...))...)

	rec, warnings := read(t, file)

	if !rec.IsEmpty() {
		t.Errorf("expected empty record, got %+v", rec)
	}
	if len(warnings) == 0 || warnings[0].Kind != types.WarnMalformed {
		t.Errorf("expected a malformed warning first, got %v", warnings)
	}
}

func TestRead_SignatureInSecondPacket(t *testing.T) {
	comment := append([]byte("\x03vorbis"), commentBlock("TITLE=Second")...)

	var file []byte
	file = append(file, packetPage(0, vorbisIdent())...)
	file = append(file, packetPage(1, []byte("abc\x03"), comment)...)

	rec, warnings := read(t, file)

	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if got := types.Value(rec.Title); got != "Second" {
		t.Errorf("expected title Second, got %q", got)
	}
}

func TestRead_NotOgg(t *testing.T) {
	rec, warnings := read(t, []byte("RIFF\x00\x00\x00\x00WAVEfmt "))

	if !rec.IsEmpty() {
		t.Error("expected empty record")
	}
	if len(warnings) != 1 || warnings[0].Kind != types.WarnNoTag {
		t.Errorf("expected one no-tag warning, got %v", warnings)
	}
}

func TestRead_TruncatedBody(t *testing.T) {
	comment := append([]byte("\x03vorbis"), commentBlock("TITLE=Kept", "ARTIST=Cut off here")...)

	var file []byte
	file = append(file, packetPage(0, vorbisIdent())...)
	file = append(file, packetPage(1, comment)...)
	file = file[:len(file)-6]

	rec, warnings := read(t, file)

	if got := types.Value(rec.Title); got != "Kept" {
		t.Errorf("expected partial title, got %q", got)
	}
	if len(warnings) == 0 {
		t.Error("expected truncation warnings")
	}
	for _, w := range warnings {
		if w.Kind != types.WarnTruncated {
			t.Errorf("unexpected warning %v", w)
		}
	}
}

func TestPage_Spans(t *testing.T) {
	p := &Page{
		Segments: []byte{255, 10, 255, 255},
		Data:     make([]byte, 255+10+510),
	}
	spans := p.spans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0] != (span{start: 0, end: 265, complete: true}) {
		t.Errorf("unexpected first span %+v", spans[0])
	}
	if spans[1] != (span{start: 265, end: 775, complete: false}) {
		t.Errorf("unexpected open span %+v", spans[1])
	}
}
