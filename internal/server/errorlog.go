package server

import (
	"log"
	"strings"

	"github.com/hatif03/researcher/internal/logger"
)

type errorLogWriter struct {
	logger *logger.Logger
}

func (w errorLogWriter) Write(p []byte) (int, error) {
	w.logger.Warn().Str("source", "net/http").Msg(strings.TrimSpace(string(p)))
	return len(p), nil
}

// newErrorLog routes net/http's internal error log (TLS handshake errors,
// panics in handlers without recovery) into zerolog.
func newErrorLog(l *logger.Logger) *log.Logger {
	return log.New(errorLogWriter{logger: l}, "", 0)
}
