// Package logging builds the structured logger and the HTTP access log.
package logging

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/felixge/httpsnoop"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/moneysupermarket/component-catalog/internal/config"
)

// AppName is reported with every log record.
const AppName = "component-catalog-app"

// New returns a logger writing to w in the configured format. Every record
// carries appName, appVersion and logsource.
func New(cfg config.LogConfig, version string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var h slog.Handler
	if cfg.Format == config.LogFormatText {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	attrs := []slog.Attr{
		slog.String("appName", AppName),
		slog.String("appVersion", version),
	}
	if cfg.Source != "" {
		attrs = append(attrs, slog.String("logsource", cfg.Source))
	}
	return slog.New(h.WithAttrs(attrs))
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else
// is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// AccessLog logs one record per request with the status, size and duration
// captured by httpsnoop.
func AccessLog(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(next, w, r)

			level := slog.LevelInfo
			if m.Code >= 500 {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", m.Code),
				slog.Int64("bytes", m.Written),
				slog.Duration("duration", m.Duration),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
