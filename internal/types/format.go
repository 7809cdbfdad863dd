package types

import (
	"path"
	"strings"
)

// Format selects which tag reader handles a file. It is resolved once from
// the file extension.
type Format int

const (
	// FormatUnsupported covers audio files with no tag reader.
	FormatUnsupported Format = iota
	// FormatID3 covers MP3 files carrying ID3v2 tags.
	FormatID3
	// FormatFLAC covers native FLAC files.
	FormatFLAC
	// FormatOgg covers Ogg Vorbis and Ogg Opus files.
	FormatOgg
	// FormatMP4 covers MP4/M4A files with iTunes-style ilst metadata.
	FormatMP4
)

func (f Format) String() string {
	switch f {
	case FormatID3:
		return "ID3v2"
	case FormatFLAC:
		return "FLAC"
	case FormatOgg:
		return "Ogg"
	case FormatMP4:
		return "MP4"
	default:
		return "Unsupported"
	}
}

// Extensions returns the file extensions mapped to this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatID3:
		return []string{".mp3"}
	case FormatFLAC:
		return []string{".flac"}
	case FormatOgg:
		return []string{".ogg", ".opus"}
	case FormatMP4:
		return []string{".m4a", ".aac"}
	default:
		return nil
	}
}

// FormatFromPath resolves the format from the extension of p,
// case-insensitively. Unknown extensions yield FormatUnsupported.
func FormatFromPath(p string) Format {
	switch strings.ToLower(path.Ext(p)) {
	case ".mp3":
		return FormatID3
	case ".flac":
		return FormatFLAC
	case ".ogg", ".opus":
		return FormatOgg
	case ".m4a", ".aac":
		return FormatMP4
	default:
		return FormatUnsupported
	}
}

// AudioExtensions lists every extension treated as audio during discovery,
// including ones that have no tag reader.
var AudioExtensions = []string{
	".mp3", ".flac", ".ogg", ".opus", ".m4a", ".aac", ".wav", ".aiff", ".aif", ".wma",
}
