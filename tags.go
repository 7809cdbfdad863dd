package audiocatalog

import "github.com/simonhull/audiocatalog/internal/types"

// TagRecord is the normalized metadata of one file. Absent fields are nil.
type TagRecord = types.TagRecord

// Picture is an embedded cover image.
type Picture = types.Picture

// Field names one text field of a TagRecord.
type Field = types.Field

const (
	FieldTitle  = types.FieldTitle
	FieldArtist = types.FieldArtist
	FieldAlbum  = types.FieldAlbum
	FieldTrack  = types.FieldTrack
)

// AudioFileRef identifies a file to read: its forward-slash path and the
// byte source serving its contents.
type AudioFileRef = types.AudioFileRef

// Value dereferences an optional field, returning "" when it is absent.
func Value(s *string) string {
	return types.Value(s)
}
