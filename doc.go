// Package audiocatalog reads title, artist, album, track and cover art from
// audio files without decoding audio, and groups the results into an album
// catalog.
//
// # Quick Start
//
// Reading the tags of one file:
//
//	file, err := audiocatalog.Open("song.flac")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%s - %s\n", audiocatalog.Value(file.Tags.Artist), audiocatalog.Value(file.Tags.Title))
//
// Building a catalog from a music directory:
//
//	report, err := audiocatalog.ScanDir(ctx, "/music",
//	    audiocatalog.WithConcurrency(8),
//	    audiocatalog.WithProgress(func(done, total int) {
//	        fmt.Printf("\r%d/%d", done, total)
//	    }),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, album := range report.Catalog.Albums {
//		fmt.Println(album.Artist, "-", album.Title)
//	}
//
// # Supported Formats
//
//   - MP3: ID3v2.3 and ID3v2.4 (TIT2, TPE1, TALB, TRCK, APIC)
//   - FLAC: Vorbis comment and picture metadata blocks
//   - Ogg Vorbis and Ogg Opus: comment headers in the first pages
//   - MP4/M4A: iTunes ilst items (©nam, ©ART, ©alb, trkn, covr)
//
// Other audio extensions (.wav, .aiff, .wma) have no tag reader. Their
// metadata comes from the path alone.
//
// # Path Fallback
//
// When a file carries no title, artist or album, they are derived from its
// path, laid out as Artist/Album/NN - Title.ext. File.PathDerived reports
// when that happened. WithoutPathFallback disables it.
//
// # Error Handling
//
// Tag problems never fail a read. Missing signatures, truncated frames,
// unknown encodings and malformed pictures are recorded in File.Warnings
// and the fields decoded so far are kept. Only a failing byte source is an
// error, reported as *UnreadableError.
//
// A scan never fails because of one file: unreadable files, and files whose
// reader panics, are recorded in Report.Results and left out of the catalog.
// Cancelling the context stops the scan early and returns the partial
// report with the context's error.
package audiocatalog
