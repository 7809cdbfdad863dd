// Package catalog folds per-file tag records into albums keyed by
// (album, artist) and emits them as a sorted Catalog.
package catalog

import (
	"path"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/simonhull/audiocatalog/internal/cover"
	"github.com/simonhull/audiocatalog/internal/types"
)

const (
	UnknownAlbum  = "Unknown Album"
	UnknownArtist = "Unknown Artist"

	// missingTrack sorts untagged tracks after numbered ones.
	missingTrack = 9999
)

type trackDraft struct {
	title  string
	number int
	path   string
}

type group struct {
	key     string
	album   string
	artist  string
	picture *types.Picture
	tracks  []trackDraft
}

// Key returns the grouping key for a record.
func Key(rec types.TagRecord) string {
	album, artist := names(rec)
	return album + "|||" + artist
}

func names(rec types.TagRecord) (album, artist string) {
	album, artist = types.Value(rec.Album), types.Value(rec.Artist)
	if album == "" {
		album = UnknownAlbum
	}
	if artist == "" {
		artist = UnknownArtist
	}
	return album, artist
}

// Build groups files into albums. files is in scan order; nil entries
// (unreadable files) are skipped. Titles compare under the collation rules
// of locale, falling back to English for an unparseable tag.
//
// Build is deterministic: the same input always yields the same catalog.
func Build(files []*types.File, locale string) types.Catalog {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	col := collate.New(tag)

	groups := make(map[string]*group)
	var order []*group

	for _, f := range files {
		if f == nil {
			continue
		}
		key := Key(f.Tags)
		g, ok := groups[key]
		if !ok {
			album, artist := names(f.Tags)
			g = &group{key: key, album: album, artist: artist}
			groups[key] = g
			order = append(order, g)
		}
		if g.picture == nil && f.Tags.Picture != nil && len(f.Tags.Picture.Data) > 0 {
			g.picture = f.Tags.Picture
		}

		n, ok := f.Tags.TrackNumber()
		if !ok {
			n = missingTrack
		}
		g.tracks = append(g.tracks, trackDraft{
			title:  trackTitle(f),
			number: n,
			path:   f.Path,
		})
	}

	slices.SortStableFunc(order, func(a, b *group) int {
		if c := col.CompareString(a.album, b.album); c != 0 {
			return c
		}
		if c := col.CompareString(a.artist, b.artist); c != 0 {
			return c
		}
		return strings.Compare(a.key, b.key)
	})

	albums := make([]types.Album, 0, len(order))
	for _, g := range order {
		slices.SortStableFunc(g.tracks, func(a, b trackDraft) int {
			if a.number != b.number {
				return a.number - b.number
			}
			if c := col.CompareString(a.title, b.title); c != 0 {
				return c
			}
			return strings.Compare(a.path, b.path)
		})

		album := types.Album{
			Title:  g.album,
			Artist: g.artist,
			Cover:  cover.Resolve(g.picture),
			Tracks: make([]types.Track, len(g.tracks)),
		}
		for i, t := range g.tracks {
			number := t.number
			if number == missingTrack {
				number = 0
			}
			album.Tracks[i] = types.Track{Title: t.title, Number: number, Path: t.path}
		}
		albums = append(albums, album)
	}

	return types.Catalog{Albums: albums}
}

// trackTitle falls back to the file name when the record has no title.
func trackTitle(f *types.File) string {
	if t := types.Value(f.Tags.Title); t != "" {
		return t
	}
	base := path.Base(f.Path)
	return strings.TrimSuffix(base, path.Ext(base))
}
