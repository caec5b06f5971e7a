package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/gutencore"
)

// Ensure LoggingCompleter implements gutencore.Completer at compile time.
var _ gutencore.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer and logs each model call with prompt
// and completion sizes. Prompt contents are never logged; they embed large
// chunks of book text.
type LoggingCompleter struct {
	inner  gutencore.Completer
	logger *slog.Logger
}

// NewLoggingCompleter creates a logging decorator around inner.
func NewLoggingCompleter(inner gutencore.Completer, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{inner: inner, logger: logger}
}

// Complete delegates to the inner completer and logs the outcome.
func (c *LoggingCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	completion, err := c.inner.Complete(ctx, prompt)
	if err != nil {
		c.logger.Error("complete", "prompt_bytes", len(prompt), "duration", time.Since(start), "err", err)
		return "", err
	}
	c.logger.Info("complete", "prompt_bytes", len(prompt), "completion_bytes", len(completion), "duration", time.Since(start))
	return completion, nil
}
