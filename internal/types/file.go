// Package types provides the core data structures shared by the tag readers,
// the scan pipeline and the catalog.
package types

import "io"

// AudioFileRef identifies one file to scan: its forward-slash relative path
// and the byte source that serves reads of its contents.
type AudioFileRef struct {
	Path   string
	Source io.ReaderAt
}

// File is the outcome of reading one file's tags.
type File struct {
	// Path is the forward-slash path from the AudioFileRef.
	Path string

	// Format selected from the extension.
	Format Format

	// Tags is the normalized record after any path fallback.
	Tags TagRecord

	// PathDerived is set when title, artist or album came from the path
	// rather than from the tag.
	PathDerived bool

	// Warnings encountered during parsing (non-fatal issues).
	Warnings []Warning
}
