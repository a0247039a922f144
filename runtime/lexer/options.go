package lexer

import (
	"log/slog"
	"os"
	"time"
)

// LexerOpt represents a lexer configuration option
type LexerOpt func(*LexerConfig)

// TelemetryMode controls telemetry collection (production-safe)
type TelemetryMode int

const (
	TelemetryOff    TelemetryMode = iota // Zero overhead (default)
	TelemetryBasic                       // Token counts only
	TelemetryTiming                      // Token counts + timing per kind
)

// DebugLevel controls debug tracing (development only)
type DebugLevel int

const (
	DebugOff      DebugLevel = iota // No debug info (default)
	DebugPaths                      // Token begin/end tracing
	DebugDetailed                   // State transition tracing
)

// LexerConfig holds lexer configuration
type LexerConfig struct {
	telemetry TelemetryMode
	debug     DebugLevel
	logger    *slog.Logger
}

// WithTelemetryBasic enables basic telemetry (token counts only)
func WithTelemetryBasic() LexerOpt {
	return func(c *LexerConfig) {
		c.telemetry = TelemetryBasic
	}
}

// WithTelemetryTiming enables timing telemetry (counts + time spent per kind)
func WithTelemetryTiming() LexerOpt {
	return func(c *LexerConfig) {
		c.telemetry = TelemetryTiming
	}
}

// WithDebugPaths records an event for every token begun and finished
func WithDebugPaths() LexerOpt {
	return func(c *LexerConfig) {
		c.debug = DebugPaths
	}
}

// WithDebugDetailed additionally records every state transition
func WithDebugDetailed() LexerOpt {
	return func(c *LexerConfig) {
		c.debug = DebugDetailed
	}
}

// WithLogger sets the logger used for lexer debug output.
// Defaults to a stderr text logger at info level, or debug level when
// FRONTC_DEBUG_LEXER is set.
func WithLogger(logger *slog.Logger) LexerOpt {
	return func(c *LexerConfig) {
		c.logger = logger
	}
}

// TokenTelemetry holds per-token kind telemetry (production-safe)
type TokenTelemetry struct {
	ID        TokenID
	Count     int
	TotalTime time.Duration
	AvgTime   time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// DebugEvent holds debug tracing information (development only)
type DebugEvent struct {
	Event  string // "begin_token", "end_token", "transition", "error"
	Pos    int    // byte offset being examined
	Line   int
	Column int
	State  State  // state after the event
	Detail string // token kind, message, etc.
}

// defaultLogger builds the stderr logger used when no WithLogger option is given.
func defaultLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("FRONTC_DEBUG_LEXER") != "" {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Remove timestamp and level for cleaner output
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
