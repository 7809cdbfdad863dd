package vorbis

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"testing"

	"github.com/simonhull/audiocatalog/internal/types"
)

// createCommentBlock builds a little-endian Vorbis comment block.
func createCommentBlock(vendor string, comments ...string) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(vendor)))
	buf.WriteString(vendor)
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(comments)))
	for _, c := range comments {
		_ = binary.Write(&buf, binary.LittleEndian, uint32(len(c)))
		buf.WriteString(c)
	}
	return buf.Bytes()
}

// createPictureBlock builds a FLAC picture block.
func createPictureBlock(mime string, data []byte) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, uint32(3)) // front cover
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(mime)))
	buf.WriteString(mime)
	desc := "cover"
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(desc)))
	buf.WriteString(desc)
	buf.Write(make([]byte, 16)) // width, height, depth, colors
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(data)))
	buf.Write(data)
	return buf.Bytes()
}

func TestDecodeComments_Fields(t *testing.T) {
	block := createCommentBlock("reference libvorbis",
		"TITLE=Foo",
		"artist=Bar",
		"Album=Baz",
		"TRACKNUMBER=7",
		"GENRE=Ignored",
		"no separator",
	)

	rec, warnings := DecodeComments(block)

	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	checks := map[types.Field]string{
		types.FieldTitle:  "Foo",
		types.FieldArtist: "Bar",
		types.FieldAlbum:  "Baz",
		types.FieldTrack:  "7",
	}
	for f, want := range checks {
		if got, ok := rec.Get(f); !ok || got != want {
			t.Errorf("%s: expected %q, got %q (present=%v)", f, want, got, ok)
		}
	}
}

func TestDecodeComments_FirstValueWins(t *testing.T) {
	rec, _ := DecodeComments(createCommentBlock("v", "ARTIST=First", "ARTIST=Second"))
	if got := types.Value(rec.Artist); got != "First" {
		t.Errorf("expected %q, got %q", "First", got)
	}
}

func TestDecodeComments_ValueMayContainEquals(t *testing.T) {
	rec, _ := DecodeComments(createCommentBlock("v", "TITLE=a=b"))
	if got := types.Value(rec.Title); got != "a=b" {
		t.Errorf("expected %q, got %q", "a=b", got)
	}
}

func TestDecodeComments_Truncated(t *testing.T) {
	block := createCommentBlock("v", "TITLE=Kept", "ARTIST=Lost in the cut")
	block = block[:len(block)-5]

	rec, warnings := DecodeComments(block)

	if got := types.Value(rec.Title); got != "Kept" {
		t.Errorf("expected partial record with title, got %q", got)
	}
	if rec.Artist != nil {
		t.Errorf("expected artist absent, got %q", *rec.Artist)
	}
	if len(warnings) != 1 || warnings[0].Kind != types.WarnTruncated {
		t.Errorf("expected one truncation warning, got %v", warnings)
	}
}

func TestDecodeComments_Empty(t *testing.T) {
	rec, warnings := DecodeComments(nil)
	if !rec.IsEmpty() {
		t.Error("expected empty record")
	}
	if len(warnings) == 0 {
		t.Error("expected a truncation warning")
	}
}

func TestDecodeComments_Picture(t *testing.T) {
	img := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	pic := base64.StdEncoding.EncodeToString(createPictureBlock("image/png", img))

	rec, warnings := DecodeComments(createCommentBlock("v", "TITLE=Song", "METADATA_BLOCK_PICTURE="+pic))

	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if rec.Picture == nil {
		t.Fatal("expected picture")
	}
	if rec.Picture.MIME != "image/png" {
		t.Errorf("expected image/png, got %q", rec.Picture.MIME)
	}
	if !bytes.Equal(rec.Picture.Data, img) {
		t.Errorf("picture data mismatch: % x", rec.Picture.Data)
	}
}

func TestDecodeComments_BadPictureIsSwallowed(t *testing.T) {
	rec, warnings := DecodeComments(createCommentBlock("v",
		"METADATA_BLOCK_PICTURE=!!!not base64!!!",
		"TITLE=Still Here",
	))

	if rec.Picture != nil {
		t.Error("expected no picture")
	}
	if got := types.Value(rec.Title); got != "Still Here" {
		t.Errorf("expected parsing to continue, got title %q", got)
	}
	if len(warnings) != 1 || warnings[0].Kind != types.WarnMalformed {
		t.Errorf("expected one malformed warning, got %v", warnings)
	}
}

func TestParsePicture(t *testing.T) {
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}

	t.Run("valid", func(t *testing.T) {
		pic, err := ParsePicture(createPictureBlock("image/jpeg", jpeg))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pic.MIME != "image/jpeg" || !bytes.Equal(pic.Data, jpeg) {
			t.Errorf("unexpected picture %+v", pic)
		}
	})

	t.Run("missing mime is sniffed", func(t *testing.T) {
		pic, err := ParsePicture(createPictureBlock("", jpeg))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pic.MIME != "image/jpeg" {
			t.Errorf("expected sniffed image/jpeg, got %q", pic.MIME)
		}
	})

	t.Run("data length overflows", func(t *testing.T) {
		block := createPictureBlock("image/jpeg", jpeg)
		if _, err := ParsePicture(block[:len(block)-2]); err == nil {
			t.Error("expected error for truncated picture")
		}
	})

	t.Run("copy is owned", func(t *testing.T) {
		block := createPictureBlock("image/jpeg", jpeg)
		pic, err := ParsePicture(block)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		block[len(block)-1] = 0xAA
		if pic.Data[len(pic.Data)-1] == 0xAA {
			t.Error("picture data aliases the source buffer")
		}
	})
}

func TestDecodeBlockPicture_Unpadded(t *testing.T) {
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	value := base64.RawStdEncoding.EncodeToString(createPictureBlock("image/jpeg", jpeg))

	pic, err := DecodeBlockPicture(value)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(pic.Data, jpeg) {
		t.Errorf("picture data mismatch: % x", pic.Data)
	}
}
