package audiocatalog

import "github.com/simonhull/audiocatalog/internal/types"

// Format is an alias to types.Format.
type Format = types.Format

const (
	FormatUnsupported = types.FormatUnsupported
	FormatID3         = types.FormatID3
	FormatFLAC        = types.FormatFLAC
	FormatOgg         = types.FormatOgg
	FormatMP4         = types.FormatMP4
)

// FormatFromPath resolves the tag format from a file extension.
func FormatFromPath(path string) Format {
	return types.FormatFromPath(path)
}

// AudioExtensions returns the extensions discovered by ScanDir by default.
func AudioExtensions() []string {
	return append([]string(nil), types.AudioExtensions...)
}
