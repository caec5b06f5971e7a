package mock

import (
	"context"

	"github.com/fwojciec/gutencore"
)

var _ gutencore.Completer = (*Completer)(nil)

// Completer is a mock implementation of gutencore.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, prompt string) (string, error)
}

func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteFn(ctx, prompt)
}

// ScriptedCompleter is a Completer that replies with the given responses
// in order and errors once they run out.
type ScriptedCompleter struct {
	Responses []string

	calls int
}

var _ gutencore.Completer = (*ScriptedCompleter)(nil)

func (c *ScriptedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if c.calls >= len(c.Responses) {
		return "", gutencore.Errorf(gutencore.EINTERNAL, "scripted completer exhausted after %d calls", c.calls)
	}
	resp := c.Responses[c.calls]
	c.calls++
	return resp, nil
}

// Calls returns the number of Complete invocations so far.
func (c *ScriptedCompleter) Calls() int {
	return c.calls
}
