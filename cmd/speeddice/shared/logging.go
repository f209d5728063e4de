package shared

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// SetupLogger builds the CLI logger. format is one of text, json or logfmt.
func SetupLogger(w io.Writer, debug bool, format string) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	formatter := log.TextFormatter
	switch format {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
}
