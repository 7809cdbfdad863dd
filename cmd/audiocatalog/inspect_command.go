package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/audiocatalog"
	"github.com/simonhull/audiocatalog/internal/cover"
)

type inspectOutput struct {
	Path        string              `json:"path"`
	Format      string              `json:"format"`
	Title       string              `json:"title,omitempty"`
	Artist      string              `json:"artist,omitempty"`
	Album       string              `json:"album,omitempty"`
	Track       string              `json:"track,omitempty"`
	Picture     *audiocatalog.Cover `json:"picture,omitempty"`
	PathDerived bool                `json:"path_derived"`
	Warnings    []string            `json:"warnings,omitempty"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Print the tags read from audio files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			opts := scanOptions(cfg, nil)

			outputs := make([]inspectOutput, 0, len(args))
			for _, path := range args {
				file, err := audiocatalog.Open(path, opts...)
				if err != nil {
					return err
				}
				outputs = append(outputs, newInspectOutput(file))
			}

			if jsonOutput {
				return writeJSON(cmd, outputs)
			}
			out := cmd.OutOrStdout()
			for i, o := range outputs {
				if i > 0 {
					fmt.Fprintln(out)
				}
				printInspect(out, o)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the tags as JSON")
	return cmd
}

func newInspectOutput(file *audiocatalog.File) inspectOutput {
	o := inspectOutput{
		Path:        file.Path,
		Format:      file.Format.String(),
		Title:       audiocatalog.Value(file.Tags.Title),
		Artist:      audiocatalog.Value(file.Tags.Artist),
		Album:       audiocatalog.Value(file.Tags.Album),
		Track:       audiocatalog.Value(file.Tags.Track),
		PathDerived: file.PathDerived,
	}
	if file.Tags.Picture != nil {
		c := cover.Resolve(file.Tags.Picture)
		o.Picture = &c
	}
	for _, w := range file.Warnings {
		o.Warnings = append(o.Warnings, w.String())
	}
	return o
}

func printInspect(out io.Writer, o inspectOutput) {
	picture := "-"
	if o.Picture != nil {
		picture = coverSummary(*o.Picture)
	}
	pairs := [][2]string{
		{"Path", o.Path},
		{"Format", o.Format},
		{"Title", orDash(o.Title)},
		{"Artist", orDash(o.Artist)},
		{"Album", orDash(o.Album)},
		{"Track", orDash(o.Track)},
		{"Picture", picture},
		{"From path", yesNo(o.PathDerived)},
	}
	if len(o.Warnings) > 0 {
		pairs = append(pairs, [2]string{"Warnings", strings.Join(o.Warnings, "\n")})
	}
	fmt.Fprintln(out, renderTable(fieldColumns, fieldRows(pairs...)))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
