package ai

import "context"

// Completer sends one system instruction plus one user message and returns
// the raw text of the first choice.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
