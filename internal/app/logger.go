package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pterm/pterm"
)

// NewLogger renders slog records through pterm's logger at the given level.
func NewLogger(level string, w io.Writer) (*slog.Logger, error) {
	lvl, err := parseLogLevel(level)
	if err != nil {
		return nil, err
	}

	plog := pterm.DefaultLogger.
		WithLevel(lvl).
		WithWriter(w)

	return slog.New(pterm.NewSlogHandler(plog)), nil
}

func parseLogLevel(level string) (pterm.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return pterm.LogLevelTrace, nil
	case "debug":
		return pterm.LogLevelDebug, nil
	case "info":
		return pterm.LogLevelInfo, nil
	case "", "warn", "warning":
		return pterm.LogLevelWarn, nil
	case "error":
		return pterm.LogLevelError, nil
	case "off", "disabled":
		return pterm.LogLevelDisabled, nil
	default:
		return 0, fmt.Errorf("unknown log level '%s'", level)
	}
}
