package config

import "github.com/simonhull/audiocatalog/internal/types"

const (
	defaultConcurrency = 8
	defaultLocale      = "en"
	defaultMaxTagBytes = 64 << 20
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"

	maxConcurrency = 256
)

// Default returns a Config populated with defaults.
func Default() Config {
	return Config{
		Scan: Scan{
			Concurrency:  defaultConcurrency,
			Extensions:   append([]string(nil), types.AudioExtensions...),
			Locale:       defaultLocale,
			MaxTagBytes:  defaultMaxTagBytes,
			PathFallback: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
