package audiocatalog

import (
	"io"
	"os"
	"path/filepath"

	"github.com/simonhull/audiocatalog/internal/dispatch"
	"github.com/simonhull/audiocatalog/internal/types"
)

// File is the outcome of reading one file's tags.
//
//   - Tags holds the normalized record
//   - Warnings lists non-fatal parsing problems
//   - PathDerived reports that title/artist/album came from the path
type File = types.File

// ReadTags reads the tags of one file reference.
//
// The format is chosen from the extension of ref.Path. Problems inside the
// tag are reported in File.Warnings; the only error is *UnreadableError,
// returned when ref.Source fails.
//
// Example:
//
//	ref := audiocatalog.AudioFileRef{Path: "Artist/Album/01 - Song.mp3", Source: bytes.NewReader(data)}
//	file, err := audiocatalog.ReadTags(ref)
func ReadTags(ref AudioFileRef, opts ...Option) (*File, error) {
	return dispatch.Read(ref, applyOptions(opts).readOptions())
}

// Open reads the tags of a file on disk. The file is closed before Open
// returns.
//
// Example:
//
//	file, err := audiocatalog.Open("song.flac")
//	if err != nil {
//		return err
//	}
//	for _, w := range file.Warnings {
//		log.Printf("warning: %s", w)
//	}
func Open(path string, opts ...Option) (*File, error) {
	slashPath := filepath.ToSlash(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, &UnreadableError{Path: slashPath, Err: err}
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, &UnreadableError{Path: slashPath, Err: err}
	}

	return ReadTags(AudioFileRef{
		Path:   slashPath,
		Source: io.NewSectionReader(f, 0, stat.Size()),
	}, opts...)
}
