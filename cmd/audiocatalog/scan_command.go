package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/simonhull/audiocatalog"
)

type scanOutput struct {
	ScanID    string               `json:"scan_id"`
	Processed int                  `json:"processed"`
	Failed    int                  `json:"failed"`
	Duration  string               `json:"duration"`
	Albums    []audiocatalog.Album `json:"albums"`
	Failures  []scanFailure        `json:"failures,omitempty"`
}

type scanFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var showTracks bool
	var noProgress bool
	var concurrency int

	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Scan a directory and print its album catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			opts := scanOptions(cfg, logger)
			if concurrency > 0 {
				opts = append(opts, audiocatalog.WithConcurrency(concurrency))
			}

			stderr := cmd.ErrOrStderr()
			var bar *progressbar.ProgressBar
			if !noProgress && !jsonOutput && isTerminal(stderr) {
				opts = append(opts, audiocatalog.WithProgress(func(processed, total int) {
					if bar == nil {
						bar = newProgressBar(stderr, total)
					}
					_ = bar.Set(processed)
				}))
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			report, err := audiocatalog.ScanDir(runCtx, args[0], opts...)
			if bar != nil {
				_ = bar.Finish()
			}
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, newScanOutput(report))
			}
			printCatalog(cmd.OutOrStdout(), report, showTracks)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the catalog as JSON")
	cmd.Flags().BoolVarP(&showTracks, "tracks", "t", false, "List the tracks of every album")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "Files read at once (overrides scan.concurrency)")
	return cmd
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("scanning"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func newScanOutput(report *audiocatalog.Report) scanOutput {
	out := scanOutput{
		ScanID:    report.ID,
		Processed: report.Processed,
		Failed:    report.Failed,
		Duration:  report.Duration.Round(time.Millisecond).String(),
		Albums:    report.Catalog.Albums,
	}
	if out.Albums == nil {
		out.Albums = []audiocatalog.Album{}
	}
	for _, res := range report.Results {
		if res.Err != nil {
			out.Failures = append(out.Failures, scanFailure{Path: failurePath(res.Err), Error: res.Err.Error()})
		}
	}
	return out
}

func failurePath(err error) string {
	switch e := err.(type) {
	case *audiocatalog.UnreadableError:
		return e.Path
	case *audiocatalog.PanicError:
		return e.Path
	default:
		return ""
	}
}

func printCatalog(out io.Writer, report *audiocatalog.Report, showTracks bool) {
	albums := report.Catalog.Albums
	switch {
	case len(albums) == 0:
		fmt.Fprintln(out, "No albums found")
	case showTracks:
		for _, album := range albums {
			fmt.Fprintf(out, "%s - %s\n", album.Artist, album.Title)
			fmt.Fprintln(out, renderTable(trackColumns, trackRows(album.Tracks)))
		}
	default:
		fmt.Fprintln(out, renderTable(albumColumns, albumRows(albums)))
	}

	fmt.Fprintf(out, "%d files, %d albums, %d unreadable in %s\n",
		report.Processed, len(albums), report.Failed, report.Duration.Round(time.Millisecond))
}
