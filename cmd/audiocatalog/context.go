package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/simonhull/audiocatalog"
	"github.com/simonhull/audiocatalog/internal/config"
	"github.com/simonhull/audiocatalog/internal/logging"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the logger from the [logging] section, applying the
// --log-level override.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logCfg := cfg.Logging
		if c.logLevelFlag != nil {
			if level := strings.ToLower(strings.TrimSpace(*c.logLevelFlag)); level != "" {
				switch level {
				case "debug", "info", "warn", "error":
					logCfg.Level = level
				default:
					c.loggerErr = fmt.Errorf("log level: unsupported value %q", *c.logLevelFlag)
					return
				}
			}
		}
		c.logger, c.loggerErr = logging.NewFromConfig(logCfg)
	})
	return c.logger, c.loggerErr
}

// scanOptions translates the [scan] section into library options.
func scanOptions(cfg *config.Config, logger *slog.Logger) []audiocatalog.Option {
	opts := []audiocatalog.Option{
		audiocatalog.WithConcurrency(cfg.Scan.Concurrency),
		audiocatalog.WithExtensions(cfg.Scan.Extensions...),
		audiocatalog.WithLocale(cfg.Scan.Locale),
		audiocatalog.WithMaxTagSize(cfg.Scan.MaxTagBytes),
	}
	if !cfg.Scan.PathFallback {
		opts = append(opts, audiocatalog.WithoutPathFallback())
	}
	if logger != nil {
		opts = append(opts, audiocatalog.WithLogger(logger))
	}
	return opts
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
