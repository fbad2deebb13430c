// Package logs configures the process-wide slog logger.
package logs

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aws/smithy-go/logging"
	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Level maps a -v count onto a log level: warnings by default, info at -v,
// debug from -vv.
func Level(verbose int) slog.Level {
	switch {
	case verbose >= 2:
		return slog.LevelDebug
	case verbose == 1:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// Setup installs a tint console handler on stderr as the default logger.
func Setup(verbose int) *slog.Logger {
	return setup(os.Stderr, verbose, !isTerminal(os.Stderr))
}

func setup(w io.Writer, verbose int, noColor bool) *slog.Logger {
	logger := slog.New(tint.NewHandler(w, &tint.Options{
		Level:      Level(verbose),
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}))
	slog.SetDefault(logger)
	return logger
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// SDKLogger routes AWS SDK client logs through slog at debug level.
func SDKLogger() logging.Logger {
	return logging.LoggerFunc(func(classification logging.Classification, format string, v ...interface{}) {
		msg := fmt.Sprintf(format, v...)
		switch classification {
		case logging.Warn:
			slog.Warn(msg, "source", "aws-sdk")
		default:
			slog.Debug(msg, "source", "aws-sdk")
		}
	})
}
