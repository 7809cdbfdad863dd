// Package binary provides bounds-checked binary reading primitives shared by
// every tag reader.
package binary

import (
	"errors"
	"fmt"
	"io"
)

// DefaultMaxRead caps a single ReadRange call when no limit is configured.
const DefaultMaxRead = 64 << 20

// sizer is implemented by sources that know their length, such as
// *bytes.Reader, *io.SectionReader and the filesystem sources.
type sizer interface {
	Size() int64
}

// SafeReader wraps an io.ReaderAt byte source with clamped range reads and
// path-annotated errors.
type SafeReader struct {
	r       io.ReaderAt
	path    string
	size    int64 // -1 when unknown
	maxRead int
}

// NewSafeReader creates a SafeReader. maxRead <= 0 selects DefaultMaxRead.
func NewSafeReader(r io.ReaderAt, path string, maxRead int) *SafeReader {
	if maxRead <= 0 {
		maxRead = DefaultMaxRead
	}
	size := int64(-1)
	if s, ok := r.(sizer); ok {
		size = s.Size()
	}
	return &SafeReader{
		r:       r,
		path:    path,
		size:    size,
		maxRead: maxRead,
	}
}

// Path returns the file path associated with this reader.
func (sr *SafeReader) Path() string {
	return sr.path
}

// Size returns the source length, or -1 when the source does not report one.
func (sr *SafeReader) Size() int64 {
	return sr.size
}

// ReadRange reads up to n bytes starting at off.
//
// Hitting the end of the source is not an error: the returned slice is simply
// shorter than n (possibly empty). The request is also clamped to the
// reader's maximum read size. Any other failure from the underlying source is
// returned wrapped with the path and what was being read.
func (sr *SafeReader) ReadRange(off int64, n int, what string) ([]byte, error) {
	if off < 0 || n <= 0 {
		return nil, nil
	}
	if n > sr.maxRead {
		n = sr.maxRead
	}
	if sr.size >= 0 {
		if off >= sr.size {
			return nil, nil
		}
		if avail := sr.size - off; int64(n) > avail {
			n = int(avail)
		}
	}

	buf := make([]byte, n)
	got, err := sr.r.ReadAt(buf, off)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: failed to read %s at offset %d: %w", sr.path, what, off, err)
	}
	return buf[:got], nil
}
