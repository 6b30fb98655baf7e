package storage

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// badgerLogger routes badger's printf-style logging into zerolog.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msg(trimmed(format, args))
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msg(trimmed(format, args))
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Info().Msg(trimmed(format, args))
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug().Msg(trimmed(format, args))
}

func trimmed(format string, args []interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}
