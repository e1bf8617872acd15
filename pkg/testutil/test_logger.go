package testutil

import (
	"testing"

	"github.com/rs/zerolog"
)

// NewTestLogger returns a logger that writes every level to t.Log, so the
// output only shows up for failed or verbose tests.
func NewTestLogger(t *testing.T) zerolog.Logger {
	return zerolog.New(zerolog.NewTestWriter(t)).
		Level(zerolog.TraceLevel).
		With().
		Str("test", t.Name()).
		Logger()
}
