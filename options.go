package audiocatalog

import (
	"log/slog"
	"strings"

	"github.com/simonhull/audiocatalog/internal/dispatch"
	"github.com/simonhull/audiocatalog/internal/scan"
	"github.com/simonhull/audiocatalog/internal/types"
)

// Option configures reads and scans.
//
// Options use the functional options pattern:
//
//	report, err := audiocatalog.ScanDir(ctx, "/music",
//	    audiocatalog.WithConcurrency(4),
//	    audiocatalog.WithLocale("sv"),
//	)
type Option func(*options)

type options struct {
	concurrency  int
	progress     func(processed, total int)
	logger       *slog.Logger
	locale       string
	maxTagSize   int
	extensions   []string
	pathFallback bool
}

func defaultOptions() *options {
	return &options{
		locale:       "en",
		extensions:   types.AudioExtensions,
		pathFallback: true,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithConcurrency sets how many files a scan reads at once.
// n <= 0 selects runtime.NumCPU().
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithProgress registers a callback invoked after every scanned file with
// the processed and total counts. Calls are serialized; processed grows by
// one per call and the final call reports (total, total).
func WithProgress(fn func(processed, total int)) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithLogger sends scan events to logger. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLocale sets the BCP 47 language whose collation orders album and
// track titles. Default is "en".
func WithLocale(locale string) Option {
	return func(o *options) {
		o.locale = locale
	}
}

// WithMaxTagSize caps any single read from a file, in bytes. A corrupt size
// field cannot make a reader allocate more than this. Default is 64 MiB.
func WithMaxTagSize(bytes int) Option {
	return func(o *options) {
		o.maxTagSize = bytes
	}
}

// WithExtensions replaces the extensions ScanDir discovers.
//
// Example:
//
//	audiocatalog.ScanDir(ctx, dir, audiocatalog.WithExtensions(".flac", ".mp3"))
func WithExtensions(exts ...string) Option {
	return func(o *options) {
		o.extensions = make([]string, 0, len(exts))
		for _, e := range exts {
			e = strings.ToLower(strings.TrimSpace(e))
			if e != "" && !strings.HasPrefix(e, ".") {
				e = "." + e
			}
			if e != "" {
				o.extensions = append(o.extensions, e)
			}
		}
	}
}

// WithoutPathFallback keeps records empty when a file has no tag text
// instead of deriving fields from the path.
func WithoutPathFallback() Option {
	return func(o *options) {
		o.pathFallback = false
	}
}

func (o *options) readOptions() dispatch.Options {
	return dispatch.Options{
		MaxRead:      o.maxTagSize,
		PathFallback: o.pathFallback,
	}
}

func (o *options) scanOptions() scan.Options {
	return scan.Options{
		Concurrency: o.concurrency,
		Progress:    o.progress,
		Logger:      o.logger,
		Locale:      o.locale,
		Read:        o.readOptions(),
	}
}
