package audiocatalog

import (
	"context"
	"fmt"
	"os"

	"github.com/simonhull/audiocatalog/internal/scan"
	"github.com/simonhull/audiocatalog/internal/source"
	"github.com/simonhull/audiocatalog/internal/types"
)

// Catalog is the sorted list of albums produced by a scan.
type Catalog = types.Catalog

// Album is one (album, artist) group with its tracks sorted by track number.
type Album = types.Album

// Track is one entry of an album.
type Track = types.Track

// Cover is an album's resolved cover reference.
type Cover = types.Cover

// Report is the outcome of a scan: the catalog plus one FileResult per
// input, in input order.
type Report = scan.Report

// FileResult holds either the File read for one input or the error that
// kept it out of the catalog.
type FileResult = scan.Result

// Scan reads every reference with bounded concurrency and groups the
// results into a catalog.
//
// Individual failures never fail the scan. The returned error is non-nil
// only when ctx is cancelled, in which case the partial Report (without a
// catalog) is returned alongside ctx.Err().
//
// Example:
//
//	report, err := audiocatalog.Scan(ctx, refs, audiocatalog.WithConcurrency(4))
//	if err != nil {
//		return err
//	}
//	fmt.Printf("%d albums, %d unreadable\n", len(report.Catalog.Albums), report.Failed)
func Scan(ctx context.Context, refs []AudioFileRef, opts ...Option) (*Report, error) {
	return scan.Run(ctx, refs, applyOptions(opts).scanOptions())
}

// ScanDir discovers audio files under root, skipping hidden entries, and
// scans them. Paths in the catalog are relative to root.
func ScanDir(ctx context.Context, root string, opts ...Option) (*Report, error) {
	o := applyOptions(opts)

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan %s: not a directory", root)
	}

	refs, err := source.Discover(os.DirFS(root), o.extensions)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return scan.Run(ctx, refs, o.scanOptions())
}
