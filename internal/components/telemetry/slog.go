package telemetry

import (
	"fmt"
	"log/slog"
	"os"
)

// SlogAPI implements API using the log/slog package.
type SlogAPI struct {
	logger *slog.Logger
}

// NewSlogAPI wraps a logger, a nil logger falls back to slog.Default().
func NewSlogAPI(logger *slog.Logger) SlogAPI {
	if logger == nil {
		logger = slog.Default()
	}
	return SlogAPI{logger: logger}
}

// InitSlog installs the default slog handler, json for production and text
// for local runs.
func InitSlog(debug bool, json bool) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if json {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func (s SlogAPI) log() *slog.Logger {
	if s.logger == nil {
		return slog.Default()
	}
	return s.logger
}

// attrs keys errors as "err" so they can be filtered on, anything else is
// keyed by position.
func attrs(head []any, params []any) []any {
	out := head
	for i, p := range params {
		if err, ok := p.(error); ok {
			out = append(out, slog.String("err", err.Error()))
			continue
		}
		out = append(out, slog.Any(fmt.Sprintf("params.%d", i), p))
	}
	return out
}

func (s SlogAPI) ReportBroken(id string, params ...any) {
	s.log().Error("broken component", attrs([]any{"id", id}, params)...)
}

func (s SlogAPI) ReportWarning(id string, params ...any) {
	s.log().Warn("warning", attrs([]any{"id", id}, params)...)
}

func (s SlogAPI) ReportDebug(message string, params ...any) {
	s.log().Debug(message, attrs(nil, params)...)
}

func (s SlogAPI) ReportCount(id string, count int64) {
	s.log().Info("count", "id", id, "n", count)
}
