// Package source discovers audio files on a filesystem and serves their
// bytes to the tag readers.
package source

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/simonhull/audiocatalog/internal/types"
)

// Discover walks fsys in lexical order and returns a reference for every
// regular file whose extension (case-insensitive) is in exts. Hidden files
// and directories are skipped. Paths are the forward-slash paths of fsys.
func Discover(fsys fs.FS, exts []string) ([]types.AudioFileRef, error) {
	want := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		want[strings.ToLower(e)] = struct{}{}
	}

	var refs []types.AudioFileRef
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != "." && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if _, ok := want[strings.ToLower(path.Ext(p))]; !ok {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", p, err)
		}
		refs = append(refs, types.AudioFileRef{
			Path:   p,
			Source: &File{fsys: fsys, name: p, size: info.Size()},
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover audio files: %w", err)
	}
	return refs, nil
}

// File is a lazily opened byte source. Each ReadAt opens the file, reads
// and closes it again, so discovering a large library holds no descriptors.
type File struct {
	fsys fs.FS
	name string
	size int64
}

// Size returns the file size recorded at discovery.
func (f *File) Size() int64 {
	return f.size
}

// ReadAt implements io.ReaderAt. A read past the end returns the bytes
// available and io.EOF.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, &fs.PathError{Op: "readat", Path: f.name, Err: fs.ErrInvalid}
	}
	file, err := f.fsys.Open(f.name)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	if ra, ok := file.(io.ReaderAt); ok {
		return ra.ReadAt(p, off)
	}

	if s, ok := file.(io.Seeker); ok {
		if _, err := s.Seek(off, io.SeekStart); err != nil {
			return 0, err
		}
	} else if _, err := io.CopyN(io.Discard, file, off); err != nil {
		return 0, err
	}

	n, err := io.ReadFull(file, p)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}
	return n, err
}
