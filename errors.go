package audiocatalog

import (
	"github.com/simonhull/audiocatalog/internal/types"
)

// UnreadableError is an alias to types.UnreadableError.
// Re-exporting from internal/types to maintain public API.
type UnreadableError = types.UnreadableError

// PanicError is an alias to types.PanicError.
type PanicError = types.PanicError

// CorruptedFileError is an alias to types.CorruptedFileError.
type CorruptedFileError = types.CorruptedFileError

// Warning is an alias to types.Warning.
type Warning = types.Warning

// WarningKind is an alias to types.WarningKind.
type WarningKind = types.WarningKind

const (
	WarnNoTag       = types.WarnNoTag
	WarnTruncated   = types.WarnTruncated
	WarnUnsupported = types.WarnUnsupported
	WarnMalformed   = types.WarnMalformed
)
