package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a new logger with a component identifier.
// Uses the "cmp" key for consistency with zerolog conventions.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

// Version creates a component logger bound to a browsed version.
func Version(name string, versionID int) zerolog.Logger {
	return log.With().Str("cmp", name).Int("version_id", versionID).Logger()
}
