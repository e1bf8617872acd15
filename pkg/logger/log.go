// Package logger builds the loggers used by the command line tools.
package logger

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w at the named level ("debug",
// "info", "warn", ...).  An empty level means "warn".
func New(w io.Writer, level string) (zerolog.Logger, error) {
	if level == "" {
		level = zerolog.WarnLevel.String()
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}
	out := zerolog.ConsoleWriter{Out: w, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}
	return zerolog.New(out).Level(lvl), nil
}

