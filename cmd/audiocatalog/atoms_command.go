package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/simonhull/audiocatalog/internal/binary"
	"github.com/simonhull/audiocatalog/internal/m4a"
)

func newAtomsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "atoms <file>",
		Short:       "Print the atom tree of an MP4/M4A file",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpAtoms(cmd.OutOrStdout(), args[0])
		},
	}
}

func dumpAtoms(out io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	sr := binary.NewSafeReader(io.NewSectionReader(f, 0, info.Size()), filepath.ToSlash(path), 0)
	count := 0
	err = m4a.Walk(sr, func(a *m4a.Atom, depth int) {
		count++
		fmt.Fprintf(out, "%s%s  offset=%d size=%s\n",
			strings.Repeat("  ", depth), a.Type, a.Offset, humanize.Bytes(a.Size))
	})
	if err != nil {
		return err
	}
	if count == 0 {
		fmt.Fprintln(out, "No atoms found")
	}
	return nil
}
