package types

import (
	"strconv"
	"strings"
)

// TagRecord is the normalized result of reading one file's tags.
//
// Every field is optional. A nil field means the tag did not carry that
// value; values that are empty after trimming are stored as nil, so a
// present field is never the empty string.
type TagRecord struct {
	Title   *string  `json:"title,omitempty"`
	Artist  *string  `json:"artist,omitempty"`
	Album   *string  `json:"album,omitempty"`
	Track   *string  `json:"track,omitempty"`
	Picture *Picture `json:"picture,omitempty"`
}

// Picture is an embedded image and its MIME type.
type Picture struct {
	MIME string `json:"mime"`
	Data []byte `json:"-"`
}

// Field identifies one of the text fields of a TagRecord.
type Field int

const (
	FieldTitle Field = iota
	FieldArtist
	FieldAlbum
	FieldTrack
)

func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldArtist:
		return "artist"
	case FieldAlbum:
		return "album"
	case FieldTrack:
		return "track"
	default:
		return "unknown"
	}
}

func (r *TagRecord) slot(f Field) **string {
	switch f {
	case FieldTitle:
		return &r.Title
	case FieldArtist:
		return &r.Artist
	case FieldAlbum:
		return &r.Album
	case FieldTrack:
		return &r.Track
	default:
		return nil
	}
}

// Set stores value for field unless the field is already present or the
// trimmed value is empty. It reports whether the value was stored.
func (r *TagRecord) Set(f Field, value string) bool {
	p := r.slot(f)
	if p == nil || *p != nil {
		return false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	*p = &value
	return true
}

// Get returns the value of field and whether it is present.
func (r *TagRecord) Get(f Field) (string, bool) {
	p := r.slot(f)
	if p == nil || *p == nil {
		return "", false
	}
	return **p, true
}

// SetPicture stores pic unless a picture is already present or pic is empty.
func (r *TagRecord) SetPicture(pic *Picture) bool {
	if r.Picture != nil || pic == nil || len(pic.Data) == 0 {
		return false
	}
	r.Picture = pic
	return true
}

// HasText reports whether any of title, artist or album is present.
func (r *TagRecord) HasText() bool {
	return r.Title != nil || r.Artist != nil || r.Album != nil
}

// IsEmpty reports whether the record carries nothing at all.
func (r *TagRecord) IsEmpty() bool {
	return !r.HasText() && r.Track == nil && r.Picture == nil
}

// Merge fills fields that are absent in r from other. Present fields are
// never overwritten.
func (r *TagRecord) Merge(other TagRecord) {
	for _, f := range []Field{FieldTitle, FieldArtist, FieldAlbum, FieldTrack} {
		if v, ok := other.Get(f); ok {
			r.Set(f, v)
		}
	}
	r.SetPicture(other.Picture)
}

// TrackNumber parses the leading run of digits of the track field, so
// "03" and "3/12" both yield 3. ok is false when the field is absent or
// does not start with a digit.
func (r *TagRecord) TrackNumber() (n int, ok bool) {
	if r.Track == nil {
		return 0, false
	}
	return LeadingInt(*r.Track)
}

// LeadingInt parses the run of ASCII digits at the start of s.
func LeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Value dereferences an optional string, returning "" when it is nil.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
