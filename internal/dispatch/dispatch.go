// Package dispatch selects a tag reader by file extension and applies the
// path-derived fallback when the tag carries no text.
package dispatch

import (
	"errors"
	"fmt"
	"path"

	"github.com/simonhull/audiocatalog/internal/binary"
	"github.com/simonhull/audiocatalog/internal/flac"
	"github.com/simonhull/audiocatalog/internal/m4a"
	"github.com/simonhull/audiocatalog/internal/mp3"
	"github.com/simonhull/audiocatalog/internal/ogg"
	"github.com/simonhull/audiocatalog/internal/types"
)

// ErrNoSource is wrapped in an UnreadableError for references without a
// byte source.
var ErrNoSource = errors.New("no byte source")

// Options controls a single read.
type Options struct {
	// MaxRead caps each range read from the byte source. 0 selects
	// binary.DefaultMaxRead.
	MaxRead int

	// PathFallback derives title, artist and album from the path when the
	// tag carries none of them.
	PathFallback bool
}

// DefaultOptions returns the options used when the caller sets none.
func DefaultOptions() Options {
	return Options{PathFallback: true}
}

// Read reads the tags of one file.
//
// The only error returned is *types.UnreadableError, when the byte source
// fails. Structural problems in the tag end up in File.Warnings.
func Read(ref types.AudioFileRef, opts Options) (*types.File, error) {
	if ref.Source == nil {
		return nil, &types.UnreadableError{Path: ref.Path, Err: ErrNoSource}
	}

	format := types.FormatFromPath(ref.Path)
	sr := binary.NewSafeReader(ref.Source, ref.Path, opts.MaxRead)

	rec, warnings, err := readFormat(format, sr)
	if err != nil {
		return nil, &types.UnreadableError{Path: ref.Path, Err: err}
	}

	file := &types.File{
		Path:     ref.Path,
		Format:   format,
		Tags:     rec,
		Warnings: warnings,
	}
	if opts.PathFallback && !file.Tags.HasText() {
		file.PathDerived = ApplyPathFallback(&file.Tags, ref.Path)
	}
	return file, nil
}

func readFormat(format types.Format, sr *binary.SafeReader) (types.TagRecord, []types.Warning, error) {
	switch format {
	case types.FormatID3:
		return mp3.Read(sr)
	case types.FormatFLAC:
		return flac.Read(sr)
	case types.FormatOgg:
		return ogg.Read(sr)
	case types.FormatMP4:
		return m4a.Read(sr)
	default:
		return types.TagRecord{}, []types.Warning{{
			Kind:    types.WarnUnsupported,
			Stage:   "dispatch",
			Message: fmt.Sprintf("no tag reader for %q files", path.Ext(sr.Path())),
		}}, nil
	}
}
