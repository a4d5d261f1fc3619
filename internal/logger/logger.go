// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the terminal. Every entry is JSON with a
// role, a timestamp and the calling function. Request and drain scoped
// loggers travel in context.Context and are read back with FromContext.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MKhiriev/go-pos-terminal/models"
)

// DefaultLogFile is the log file name used by [NewFileLogger] when no path is given.
const DefaultLogFile = "pos-terminal.log"

// Logger embeds zerolog.Logger, so the whole zerolog API is available on it.
type Logger struct {
	zerolog.Logger
}

// NewLogger writes JSON entries tagged with role to stdout.
func NewLogger(role string) *Logger {
	return newJSONLogger(os.Stdout, role)
}

// NewFileLogger is like [NewLogger] but appends to path. An empty path
// resolves to [DefaultLogFile] next to the executable. When the file cannot
// be opened the logger falls back to stdout.
func NewFileLogger(role, path string) *Logger {
	if path == "" {
		execPath, _ := os.Executable()
		path = filepath.Join(filepath.Dir(execPath), DefaultLogFile)
	}

	var out io.Writer = os.Stdout
	if logFile, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
		out = logFile
	}

	return newJSONLogger(out, role)
}

func newJSONLogger(out io.Writer, role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	// caller is the function name, not file:line
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	return &Logger{zerolog.New(out).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()}
}

// Nop discards everything. Used in tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// FromRequest returns the logger attached to the request context.
func FromRequest(r *http.Request) *Logger {
	return &Logger{*log.Ctx(r.Context())}
}

// FromContext returns the logger attached to ctx. Without one, zerolog's
// default context logger is returned, never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

// WithTraceID returns a child logger tagged with the local API trace id.
func (l *Logger) WithTraceID(traceID string) *Logger {
	return &Logger{l.With().Str("trace_id", traceID).Logger()}
}

// WithSaleID returns a child logger tagged with the sale identifier.
func (l *Logger) WithSaleID(saleID string) *Logger {
	return &Logger{l.With().Str("sale_id", saleID).Logger()}
}

// WithQueueItem returns a child logger tagged with the queue row, its sale
// and its attempt state.
func (l *Logger) WithQueueItem(item models.SyncQueueItem) *Logger {
	return &Logger{l.With().
		Int64("queue_id", item.ID).
		Str("sale_id", item.Payload.SaleID).
		Int("tries", item.Tries).
		Str("status", string(item.Status)).
		Logger()}
}
