package queries

import (
	"context"
	"time"

	"github.com/bryanwahyu/earnings-analyst/internal/domain/earnings"
)

// Report is the rendered text of an analysis. It is the only output type.
type Report string

// Classifier maps free text to a Classification. Implementations never
// return errors; failures are the OutcomeFailure variant.
type Classifier interface {
	Classify(ctx context.Context, query string) Classification
}

// Analyzer computes one fixed statistic over the dataset.
type Analyzer interface {
	Analyze(ds *earnings.Dataset) (Report, error)
}

// AnalyzerFunc adapts a plain function to Analyzer.
type AnalyzerFunc func(ds *earnings.Dataset) (Report, error)

func (f AnalyzerFunc) Analyze(ds *earnings.Dataset) (Report, error) { return f(ds) }

// Resolver is the keyword fallback used when the classifier gives up.
type Resolver interface {
	Resolve(query string, ds *earnings.Dataset) (Report, error)
}

// Path is the branch the router took for a query.
type Path string

const (
	PathDispatch     Path = "dispatch"
	PathFallback     Path = "fallback"
	PathUnrecognized Path = "unrecognized"
)

// Observer receives one event per routed query.
type Observer interface {
	ObserveRoute(path Path, outcome Outcome, command string, elapsed time.Duration)
}
