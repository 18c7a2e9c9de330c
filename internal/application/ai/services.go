package ai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bryanwahyu/earnings-analyst/internal/domain/ai"
	"github.com/bryanwahyu/earnings-analyst/internal/domain/queries"
)

// DefaultTimeout bounds one classification call.
const DefaultTimeout = 15 * time.Second

// Service is the intent classifier. One outbound call per query, no retries,
// no caching; anything that goes wrong becomes a Failure classification.
type Service struct {
	client  ai.Completer
	prompt  string
	timeout time.Duration
	logger  *slog.Logger
}

func NewService(client ai.Completer, systemPrompt string, timeout time.Duration, logger *slog.Logger) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, prompt: systemPrompt, timeout: timeout, logger: logger}
}

// Classify asks the model which analysis fits the query.
func (s *Service) Classify(ctx context.Context, query string) queries.Classification {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.client.Complete(ctx, s.prompt, query)
	if err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("classifier timed out after %s: %w", s.timeout, err)
		}
		s.logger.Warn("classifier failed", "error", err)
		return queries.Failure(err)
	}

	c, ok := queries.ParseReply(reply)
	if !ok {
		return queries.Failure(ai.ErrEmptyCompletion)
	}
	s.logger.Debug("classifier replied", "reply", reply, "outcome", c.Outcome.String())
	return c
}

// Disabled is a classifier for offline runs: every query fails over to the
// keyword resolver.
type Disabled struct{}

func (Disabled) Classify(context.Context, string) queries.Classification {
	return queries.Failure(ai.ErrDisabled)
}
