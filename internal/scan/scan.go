// Package scan runs the tag readers over a list of files with bounded
// concurrency and folds the results into a catalog.
package scan

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/simonhull/audiocatalog/internal/catalog"
	"github.com/simonhull/audiocatalog/internal/dispatch"
	"github.com/simonhull/audiocatalog/internal/logging"
	"github.com/simonhull/audiocatalog/internal/types"
)

// ProgressFunc receives (processed, total) after every file. Calls are
// serialized and processed increases by one each time.
type ProgressFunc func(processed, total int)

// Options configures a scan.
type Options struct {
	// Concurrency is the worker count. <= 0 selects runtime.NumCPU().
	Concurrency int

	Progress ProgressFunc

	// Logger receives scan events. nil discards them.
	Logger *slog.Logger

	// Locale drives title collation in the catalog.
	Locale string

	Read dispatch.Options
}

// Result is the outcome for one input file: File on success, Err when the
// file was unreadable or its reader panicked.
type Result struct {
	File *types.File
	Err  error
}

// Report is the outcome of a scan.
type Report struct {
	ID      string
	Catalog types.Catalog

	// Results is indexed like the input refs.
	Results []Result

	Processed int
	Failed    int
	Duration  time.Duration
}

// Run reads every ref and builds the catalog.
//
// A file that cannot be read, or whose reader panics, is recorded in its
// Result and logged; it never fails the scan. The only error returned is
// the context's: after cancellation workers stop claiming files, files
// already in flight finish, and the partial report comes back without a
// catalog.
func Run(ctx context.Context, refs []types.AudioFileRef, opts Options) (*Report, error) {
	start := time.Now()
	total := len(refs)

	workers := opts.Concurrency
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, total)

	report := &Report{
		ID:      uuid.NewString(),
		Results: make([]Result, total),
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.With("component", "scan", "scan_id", report.ID)
	logger.Info("scan started", "files", total, "concurrency", workers)

	var (
		next    atomic.Int64
		mu      sync.Mutex
		sampler = logging.NewProgressSampler(10)
	)
	done := func() {
		mu.Lock()
		defer mu.Unlock()
		report.Processed++
		if opts.Progress != nil {
			opts.Progress(report.Processed, total)
		}
		if sampler.ShouldLog(report.Processed, total) {
			logger.Info("scan progress", "processed", report.Processed, "total", total)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for range workers {
		g.Go(func() error {
			for {
				if err := gctx.Err(); err != nil {
					return err
				}
				i := int(next.Add(1) - 1)
				if i >= total {
					return nil
				}
				report.Results[i] = readOne(refs[i], opts.Read, logger)
				done()
			}
		})
	}
	waitErr := g.Wait()

	for _, r := range report.Results {
		if r.Err != nil {
			report.Failed++
		}
	}
	report.Duration = time.Since(start)

	if err := ctx.Err(); err != nil {
		logger.Warn("scan cancelled", "processed", report.Processed, "total", total, "error", err)
		return report, err
	}
	if waitErr != nil {
		return report, waitErr
	}

	files := make([]*types.File, total)
	for i, r := range report.Results {
		files[i] = r.File
	}
	report.Catalog = catalog.Build(files, opts.Locale)

	logger.Info("scan finished",
		"albums", len(report.Catalog.Albums),
		"failed", report.Failed,
		"duration", report.Duration,
	)
	return report, nil
}

func readOne(ref types.AudioFileRef, opts dispatch.Options, logger *slog.Logger) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("file panicked", "path", ref.Path, "panic", r)
			res = Result{Err: &types.PanicError{Path: ref.Path, Value: r}}
		}
	}()

	file, err := dispatch.Read(ref, opts)
	if err != nil {
		logger.Warn("file unreadable", "path", ref.Path, "error", err)
		return Result{Err: err}
	}
	logger.Debug("file read",
		"path", ref.Path,
		"format", file.Format.String(),
		"path_derived", file.PathDerived,
		"warnings", len(file.Warnings),
	)
	return Result{File: file}
}
