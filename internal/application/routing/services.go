package routing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bryanwahyu/earnings-analyst/internal/application"
	"github.com/bryanwahyu/earnings-analyst/internal/domain/earnings"
	"github.com/bryanwahyu/earnings-analyst/internal/domain/queries"
)

// ModelNotRecognized answers a classifier reply that is neither a command
// nor "unknown". The keyword resolver is deliberately not consulted.
const ModelNotRecognized queries.Report = "Команда не распознана моделью. Попробуйте уточнить запрос."

// Runner executes one analysis; *analysis.Library satisfies it.
type Runner interface {
	Run(c queries.Command, ds *earnings.Dataset) (queries.Report, error)
}

// matcher is implemented by resolvers that can say which rule fired.
type matcher interface {
	Match(query string) (queries.Command, bool)
}

// Answer is the outcome of routing one query.
type Answer struct {
	Text    queries.Report `json:"answer"`
	Path    queries.Path   `json:"path"`
	Command string         `json:"command,omitempty"`
	Outcome string         `json:"classifier"`
}

// Service routes free-text queries: classifier first, keyword resolver as
// fallback, analysis library last. It keeps no state between queries and is
// safe for concurrent use as long as its collaborators are.
type Service struct {
	Dataset    *earnings.Dataset
	Classifier queries.Classifier
	Resolver   queries.Resolver
	Library    Runner
	Observer   queries.Observer // optional
	Clock      application.Clock
	Logger     *slog.Logger
}

// Route answers one query. The error is non-nil only when an analysis cannot
// run against the dataset (a *earnings.SchemaError).
func (s *Service) Route(ctx context.Context, query string) (Answer, error) {
	start := s.now()
	c := s.Classifier.Classify(ctx, query)

	ans := Answer{Outcome: c.Outcome.String()}
	var err error
	switch c.Outcome {
	case queries.OutcomeCommand:
		ans.Path = queries.PathDispatch
		ans.Command = c.Command.String()
		ans.Text, err = s.Library.Run(c.Command, s.Dataset)

	case queries.OutcomeUnknown, queries.OutcomeFailure:
		ans.Path = queries.PathFallback
		if m, ok := s.Resolver.(matcher); ok {
			if cmd, found := m.Match(query); found {
				ans.Command = cmd.String()
			}
		}
		ans.Text, err = s.Resolver.Resolve(query, s.Dataset)

	case queries.OutcomeUnrecognized:
		ans.Path = queries.PathUnrecognized
		ans.Text = ModelNotRecognized

	default:
		return Answer{}, fmt.Errorf("invalid classification outcome %d", int(c.Outcome))
	}

	elapsed := s.now().Sub(start)
	if err != nil {
		s.logger().Error("route failed", "path", ans.Path, "command", ans.Command, "error", err)
		return Answer{}, fmt.Errorf("%s: %w", ans.Path, err)
	}

	s.logger().Info("query routed",
		"path", ans.Path,
		"classifier", c.String(),
		"command", ans.Command,
		"elapsed", elapsed,
	)
	if s.Observer != nil {
		s.Observer.ObserveRoute(ans.Path, c.Outcome, ans.Command, elapsed)
	}
	return ans, nil
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return application.SystemClock{}.Now()
	}
	return s.Clock.Now()
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
