// Package logging adapts zerolog to the calculation engine's Logger interface.
package logging

import (
	"io"

	"github.com/rs/zerolog"
)

// Adapter implements calculation.Logger on top of zerolog
type Adapter struct {
	Log zerolog.Logger
}

func (a Adapter) Debugf(format string, args ...any) { a.Log.Debug().Msgf(format, args...) }
func (a Adapter) Infof(format string, args ...any)  { a.Log.Info().Msgf(format, args...) }
func (a Adapter) Warnf(format string, args ...any)  { a.Log.Warn().Msgf(format, args...) }
func (a Adapter) Errorf(format string, args ...any) { a.Log.Error().Msgf(format, args...) }

// New builds a human-readable logger writing to w at the named level
func New(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}
