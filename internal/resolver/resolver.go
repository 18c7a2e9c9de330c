package resolver

import (
	"strings"

	"github.com/bryanwahyu/earnings-analyst/internal/domain/earnings"
	"github.com/bryanwahyu/earnings-analyst/internal/domain/queries"
)

// NotRecognized is returned when no rule matches.
const NotRecognized queries.Report = "Извините, я не смог распознать ваш запрос. Попробуйте переформулировать."

// Rule fires when the query contains at least one keyword of every group.
type Rule struct {
	Command queries.Command
	AllOf   [][]string
}

func (r Rule) matches(q string) bool {
	for _, anyOf := range r.AllOf {
		hit := false
		for _, kw := range anyOf {
			if strings.Contains(q, kw) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return len(r.AllOf) > 0
}

func anyOf(kw ...string) []string { return kw }

// DefaultRules in priority order; keyword sets overlap, first match wins.
var DefaultRules = []Rule{
	{queries.CompareCryptoEarnings, [][]string{anyOf("криптовалют", "crypto")}},
	{queries.EarningsByRegion, [][]string{anyOf("регион", "region")}},
	{queries.ExpertsUnder100Projects, [][]string{anyOf("эксперт"), anyOf("< 100", "менее 100")}},
	{queries.HighEarnersRating, [][]string{anyOf("рейтинг"), anyOf("10000")}},
	{queries.HighestAvgHourlyByPlatform, [][]string{anyOf("платформа"), anyOf("почасовая ставка")}},
	{queries.ExperienceVsRehire, [][]string{anyOf("опыт"), anyOf("повторн")}},
	{queries.MarketingSpendByCategory, [][]string{anyOf("маркетинг", "расходы")}},
	{queries.ProjectTypeEarnings, [][]string{anyOf("тип проекта", "fixed", "hourly")}},
}

// Runner executes one analysis; *analysis.Library satisfies it.
type Runner interface {
	Run(c queries.Command, ds *earnings.Dataset) (queries.Report, error)
}

// Resolver is the keyword fallback. Matching is case-insensitive whatever
// the caller did to the query.
type Resolver struct {
	rules  []Rule
	runner Runner
}

func New(runner Runner) *Resolver {
	return &Resolver{rules: DefaultRules, runner: runner}
}

// WithRules returns a copy of r using rules instead of DefaultRules.
func (r *Resolver) WithRules(rules []Rule) *Resolver {
	return &Resolver{rules: rules, runner: r.runner}
}

// Match returns the first rule's command that fires for query.
func (r *Resolver) Match(query string) (queries.Command, bool) {
	q := strings.ToLower(query)
	for _, rule := range r.rules {
		if rule.matches(q) {
			return rule.Command, true
		}
	}
	return 0, false
}

// Resolve runs the matched analysis, or returns NotRecognized.
func (r *Resolver) Resolve(query string, ds *earnings.Dataset) (queries.Report, error) {
	c, ok := r.Match(query)
	if !ok {
		return NotRecognized, nil
	}
	return r.runner.Run(c, ds)
}
