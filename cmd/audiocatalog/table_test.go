package main

import (
	"strings"
	"testing"

	"github.com/simonhull/audiocatalog"
)

func TestRenderTable_Albums(t *testing.T) {
	albums := []audiocatalog.Album{
		{
			Title:  "Debut",
			Artist: "Band",
			Cover:  audiocatalog.Cover{MIME: "image/png", Size: 2048, Width: 600, Height: 600},
			Tracks: []audiocatalog.Track{{Title: "One"}, {Title: "Two"}},
		},
		{Title: "Demos", Artist: "Band", Cover: audiocatalog.Cover{Placeholder: true}},
	}

	out := renderTable(albumColumns, albumRows(albums))

	for _, want := range []string{"Album", "Cover", "Debut", "image/png 600x600 2.0 kB", "Demos"} {
		requireContains(t, out, want)
	}
}

func TestTrackRows_OmitsMissingNumbers(t *testing.T) {
	rows := trackRows([]audiocatalog.Track{
		{Title: "Numbered", Number: 4, Path: "a.flac"},
		{Title: "Loose", Path: "b.flac"},
	})

	if rows[0][0] != 4 {
		t.Errorf("expected track number 4, got %v", rows[0][0])
	}
	if rows[1][0] != "" {
		t.Errorf("expected blank number, got %v", rows[1][0])
	}
}

func TestCoverSummary(t *testing.T) {
	if got := coverSummary(audiocatalog.Cover{Placeholder: true}); got != "-" {
		t.Errorf("placeholder summary = %q", got)
	}
	got := coverSummary(audiocatalog.Cover{Size: 10})
	if !strings.HasPrefix(got, "unknown ") {
		t.Errorf("expected unknown MIME, got %q", got)
	}
}
