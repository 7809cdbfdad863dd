package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/simonhull/audiocatalog"
)

type column struct {
	title string
	align text.Align
}

var (
	albumColumns = []column{
		{"Album", text.AlignLeft},
		{"Artist", text.AlignLeft},
		{"Tracks", text.AlignRight},
		{"Cover", text.AlignLeft},
	}
	trackColumns = []column{
		{"#", text.AlignRight},
		{"Title", text.AlignLeft},
		{"Path", text.AlignLeft},
	}
	fieldColumns = []column{
		{"Field", text.AlignLeft},
		{"Value", text.AlignLeft},
	}
)

func renderTable(columns []column, rows []table.Row) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col.title
		configs[i] = table.ColumnConfig{Number: i + 1, Align: col.align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.AppendRows(rows)
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func albumRows(albums []audiocatalog.Album) []table.Row {
	rows := make([]table.Row, 0, len(albums))
	for _, album := range albums {
		rows = append(rows, table.Row{album.Title, album.Artist, len(album.Tracks), coverSummary(album.Cover)})
	}
	return rows
}

func trackRows(tracks []audiocatalog.Track) []table.Row {
	rows := make([]table.Row, 0, len(tracks))
	for _, track := range tracks {
		var number any = ""
		if track.Number > 0 {
			number = track.Number
		}
		rows = append(rows, table.Row{number, track.Title, track.Path})
	}
	return rows
}

// fieldRows turns name/value pairs into two-column rows.
func fieldRows(pairs ...[2]string) []table.Row {
	rows := make([]table.Row, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, table.Row{p[0], p[1]})
	}
	return rows
}

// coverSummary renders a cover as "image/jpeg 600x600 48 kB".
func coverSummary(c audiocatalog.Cover) string {
	if c.Placeholder {
		return "-"
	}
	out := c.MIME
	if out == "" {
		out = "unknown"
	}
	if c.Width > 0 && c.Height > 0 {
		out += fmt.Sprintf(" %dx%d", c.Width, c.Height)
	}
	return out + " " + humanize.Bytes(uint64(c.Size))
}
