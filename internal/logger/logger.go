// Package logger wraps zerolog.Logger with the constructors and context helpers
// used across the DeepR API.
//
// Application code passes *Logger by pointer and obtains request-scoped loggers
// via FromRequest or FromContext.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger so the full zerolog API is available on *Logger.
type Logger struct {
	zerolog.Logger
}

func init() {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"
	zerolog.TimestampFieldName = "ts"
}

// NewLogger builds a logger for the given role label (e.g. "api", "authstub").
//
// Entries carry a "role" field, a "ts" timestamp and a "func" caller field. Output is
// JSON on os.Stdout, or a human readable console format when pretty is set.
func NewLogger(role string, level zerolog.Level, pretty bool) *Logger {
	var w io.Writer = os.Stdout
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	return newLogger(w, role, level)
}

func newLogger(w io.Writer, role string, level zerolog.Level) *Logger {
	l := zerolog.New(w).
		Level(level).
		With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{l}
}

// Nop returns a *Logger that discards all output. Intended for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a logger that inherits all fields of the receiver and
// can be enriched without touching the parent.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromRequest returns the logger attached to the request context by the trace
// middleware.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger stored in ctx. If none was attached, zerolog
// falls back to its default context logger, so the result is never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
