package types

import "fmt"

// UnreadableError is returned when the byte source fails to produce bytes
// for a file. The scan pipeline drops such files from the catalog.
type UnreadableError struct {
	Path string
	Err  error
}

func (e *UnreadableError) Error() string {
	return fmt.Sprintf("%s: unreadable: %v", e.Path, e.Err)
}

func (e *UnreadableError) Unwrap() error {
	return e.Err
}

// PanicError records a panic recovered while reading one file. The scan
// pipeline treats it like an unreadable file.
type PanicError struct {
	Path  string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s: panic while reading tags: %v", e.Path, e.Value)
}

// CorruptedFileError describes an invalid structure. Readers record it as a
// Warning rather than failing the file.
type CorruptedFileError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	return fmt.Sprintf("%s: corrupted file at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// WarningKind classifies a non-fatal parsing problem.
type WarningKind int

const (
	// WarnNoTag means the expected signature was absent.
	WarnNoTag WarningKind = iota
	// WarnTruncated means a declared size or offset ran past the available bytes.
	WarnTruncated
	// WarnUnsupported means an unrecognized version or text encoding.
	WarnUnsupported
	// WarnMalformed means a structure was present but could not be decoded.
	WarnMalformed
)

func (k WarningKind) String() string {
	switch k {
	case WarnNoTag:
		return "no-tag"
	case WarnTruncated:
		return "truncated"
	case WarnUnsupported:
		return "unsupported"
	case WarnMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Warning represents a non-fatal issue encountered during parsing.
//
// Warnings never stop a read: the record built so far is still returned.
// They are collected in File.Warnings.
type Warning struct {
	Kind WarningKind

	// Stage where the warning occurred ("id3v2", "flac", "ogg", "mp4", "vorbis").
	Stage string

	Message string

	// Offset within the file or tag buffer (0 if not applicable).
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s %s (at offset %d): %s", w.Stage, w.Kind, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s %s: %s", w.Stage, w.Kind, w.Message)
}
