package dispatch

import (
	"path"
	"regexp"
	"strings"

	"github.com/simonhull/audiocatalog/internal/types"
)

// trackPrefix matches a leading track number and its separator, as in
// "02 - Song" or "7.Song".
var trackPrefix = regexp.MustCompile(`^(\d+)[\s.\-_]*`)

// FromPath derives a record from a forward-slash relative path laid out as
// Artist/Album/NN - Title.ext. Shorter paths yield less: with two segments
// the directory is the album, with one only the title and track are set.
func FromPath(p string) types.TagRecord {
	var segs []string
	for _, s := range strings.Split(p, "/") {
		if s != "" && s != "." {
			segs = append(segs, s)
		}
	}

	var rec types.TagRecord
	n := len(segs)
	if n == 0 {
		return rec
	}

	base := segs[n-1]
	stem := strings.TrimSuffix(base, path.Ext(base))
	title := stem
	if m := trackPrefix.FindStringSubmatch(stem); m != nil {
		rec.Set(types.FieldTrack, m[1])
		if rest := strings.TrimSpace(stem[len(m[0]):]); rest != "" {
			title = rest
		}
	}
	rec.Set(types.FieldTitle, title)

	switch {
	case n >= 3:
		rec.Set(types.FieldArtist, segs[n-3])
		rec.Set(types.FieldAlbum, segs[n-2])
	case n == 2:
		rec.Set(types.FieldAlbum, segs[0])
	}
	return rec
}

// ApplyPathFallback fills absent fields of rec from the path. It reports
// whether rec gained a title, artist or album.
func ApplyPathFallback(rec *types.TagRecord, p string) bool {
	had := rec.HasText()
	rec.Merge(FromPath(p))
	return !had && rec.HasText()
}
