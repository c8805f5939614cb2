// Package logging holds the single zerolog construction point shared by
// every package that logs.
package logging

import (
	"io"

	"github.com/rs/zerolog"
)

// New builds the service-wide logger: timestamped JSON written to w.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
