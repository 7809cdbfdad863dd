package types

import "time"

// Catalog is the grouped, sorted result of a scan pass.
type Catalog struct {
	Albums []Album `json:"albums"`
}

// Album is one (album, artist) group.
type Album struct {
	Title  string  `json:"title"`
	Artist string  `json:"artist"`
	Cover  Cover   `json:"cover"`
	Tracks []Track `json:"tracks"`
}

// Track is one playable entry of an album. Path maps back to the
// AudioFileRef that produced it.
type Track struct {
	Title string `json:"title"`
	// Number is the parsed track number, 0 when the tag had none.
	Number int `json:"number,omitempty"`
	// Duration is a placeholder; tags are read without decoding audio.
	Duration time.Duration `json:"duration"`
	Path     string        `json:"path"`
}

// Cover is a resolved cover reference. Placeholder is set when no file in
// the album carried a picture.
type Cover struct {
	MIME        string `json:"mime,omitempty"`
	Data        []byte `json:"-"`
	Size        int    `json:"size,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Placeholder bool   `json:"placeholder"`
}
