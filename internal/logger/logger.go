// Package logger wraps zerolog with request-scoped helpers.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ukaji3/sheetgroup-go/internal/config"
)

type requestIDKey struct{}

// Init configures the global logger and the default context logger.
// The returned closer releases the log file, if any.
func Init(cfg config.LogConfig) (io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closer = f, f
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: cfg.File != ""}
	}

	l := zerolog.New(out).Level(level).With().Timestamp().Logger()
	log.Logger = l
	zerolog.DefaultContextLogger = &log.Logger
	return closer, nil
}

// WithRequestID attaches a request id to ctx and to its logger.
func WithRequestID(ctx context.Context, id string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey{}, id)
	l := zerolog.Ctx(ctx).With().Str("request_id", id).Logger()
	return l.WithContext(ctx)
}

// RequestID returns the request id stored by WithRequestID.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func InfoLog(ctx context.Context, format string, args ...interface{}) {
	zerolog.Ctx(ctx).Info().Msgf(format, args...)
}

func WarnLog(ctx context.Context, format string, args ...interface{}) {
	zerolog.Ctx(ctx).Warn().Msgf(format, args...)
}

func ErrorLog(ctx context.Context, format string, args ...interface{}) {
	zerolog.Ctx(ctx).Error().Msgf(format, args...)
}

func DebugLog(ctx context.Context, format string, args ...interface{}) {
	zerolog.Ctx(ctx).Debug().Msgf(format, args...)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
