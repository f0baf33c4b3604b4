package posthog

import (
	"log"
	"log/slog"
	"os"
)

// Logger is a minimal printf-style logging interface.
// It is compatible with the standard library log.Logger.
type Logger interface {
	Printf(format string, v ...any)
}

// StructuredLogger provides leveled, structured logging for the SDK.
// It is compatible with Go's slog package via NewSlogAdapter().
type StructuredLogger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// defaultStderrLogger is used when debug mode is enabled without a logger.
var defaultStderrLogger = &defaultLogger{
	logger: log.New(os.Stderr, "posthog: ", log.LstdFlags),
}

// defaultLogger wraps the standard library logger.
type defaultLogger struct {
	logger *log.Logger
}

func (l *defaultLogger) Printf(format string, v ...any) {
	l.logger.Printf(format, v...)
}

// WrapStdLogger wraps a standard library *log.Logger as a Logger.
func WrapStdLogger(l *log.Logger) Logger {
	return &defaultLogger{logger: l}
}

// NopLogger is a logger that discards all log messages.
// Use this to disable logging entirely.
type NopLogger struct{}

// Printf implements Logger.Printf.
func (NopLogger) Printf(format string, v ...any) {}

// Debug implements StructuredLogger.Debug.
func (NopLogger) Debug(msg string, args ...any) {}

// Info implements StructuredLogger.Info.
func (NopLogger) Info(msg string, args ...any) {}

// Warn implements StructuredLogger.Warn.
func (NopLogger) Warn(msg string, args ...any) {}

// Error implements StructuredLogger.Error.
func (NopLogger) Error(msg string, args ...any) {}

// Ensure NopLogger implements both interfaces.
var (
	_ Logger           = NopLogger{}
	_ StructuredLogger = NopLogger{}
)

// SlogAdapter adapts a slog.Logger to the StructuredLogger interface.
//
// Example:
//
//	client, _ := posthog.New(key,
//	    posthog.WithStructuredLogger(posthog.NewSlogAdapter(slog.Default())),
//	)
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter wrapping the given slog.Logger.
// If logger is nil, slog.Default() is used.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Debug implements StructuredLogger.Debug.
func (a *SlogAdapter) Debug(msg string, args ...any) {
	a.logger.Debug(msg, args...)
}

// Info implements StructuredLogger.Info.
func (a *SlogAdapter) Info(msg string, args ...any) {
	a.logger.Info(msg, args...)
}

// Warn implements StructuredLogger.Warn.
func (a *SlogAdapter) Warn(msg string, args ...any) {
	a.logger.Warn(msg, args...)
}

// Error implements StructuredLogger.Error.
func (a *SlogAdapter) Error(msg string, args ...any) {
	a.logger.Error(msg, args...)
}

// Ensure SlogAdapter implements StructuredLogger.
var _ StructuredLogger = (*SlogAdapter)(nil)

// MaskCredential masks a credential string for safe logging, showing only
// the last four characters.
//
// Examples:
//
//	MaskCredential("phc_1234567890abcdef") => "**************cdef"
//	MaskCredential("key") => "****"
func MaskCredential(s string) string {
	if s == "" {
		return ""
	}

	const visibleSuffix = 4
	if len(s) <= visibleSuffix {
		return "****"
	}

	masked := make([]byte, len(s)-visibleSuffix)
	for i := range masked {
		masked[i] = '*'
	}
	return string(masked) + s[len(s)-visibleSuffix:]
}
