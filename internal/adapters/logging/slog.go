// Package logging adapts the standard library's structured logger to the
// narrow ports.Logger capability the verification core consumes.
package logging

import (
	"fmt"
	"log/slog"
)

// SlogAdapter satisfies ports.Logger with a *slog.Logger, matching the
// slog.NewJSONHandler setup cmd/dnssecd configures at startup.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter wraps logger for use as a ports.Logger.
func NewSlogAdapter(logger *slog.Logger) SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return SlogAdapter{logger: logger}
}

// Debugf implements ports.Logger. The core only ever calls this at
// algorithm-debug verbosity; it never gates security-relevant behavior.
func (a SlogAdapter) Debugf(format string, args ...any) {
	a.logger.Debug(fmt.Sprintf(format, args...))
}
