package analysis

import (
	"fmt"

	"github.com/bryanwahyu/earnings-analyst/internal/domain/earnings"
	"github.com/bryanwahyu/earnings-analyst/internal/domain/queries"
)

// Entry is one row of the dispatch table.
type Entry struct {
	Command     queries.Command        `json:"command"`
	Description string                 `json:"description"`
	Requires    []earnings.Requirement `json:"-"`
	Analyzer    queries.Analyzer       `json:"-"`
}

// Library is the dispatch table from canonical command to analysis.
type Library struct {
	entries map[queries.Command]Entry
}

// NewLibrary wires all eight analyses.
func NewLibrary() *Library {
	l := &Library{entries: make(map[queries.Command]Entry)}
	l.add(queries.CompareCryptoEarnings, "Средний доход: оплата в криптовалюте против остальных способов",
		CompareCryptoEarnings, text(earnings.ColPaymentMethod), number(earnings.ColEarningsUSD))
	l.add(queries.EarningsByRegion, "Средний доход по регионам клиентов",
		EarningsByRegion, text(earnings.ColClientRegion), number(earnings.ColEarningsUSD))
	l.add(queries.ExpertsUnder100Projects, "Доля экспертов, выполнивших менее 100 проектов",
		ExpertsUnder100Projects, text(earnings.ColExperienceLevel), number(earnings.ColJobCompleted))
	l.add(queries.HighEarnersRating, "Средний рейтинг фрилансеров с доходом выше $10,000",
		HighEarnersRating, number(earnings.ColEarningsUSD), number(earnings.ColClientRating))
	l.add(queries.HighestAvgHourlyByPlatform, "Платформа с самой высокой средней почасовой ставкой",
		HighestAvgHourlyByPlatform, text(earnings.ColPlatform), number(earnings.ColHourlyRate))
	l.add(queries.ExperienceVsRehire, "Доля повторных заказов по уровню опыта",
		ExperienceVsRehire, text(earnings.ColExperienceLevel), number(earnings.ColRehireRate))
	l.add(queries.MarketingSpendByCategory, "Маркетинговые расходы по категориям работ",
		MarketingSpendByCategory, text(earnings.ColJobCategory), number(earnings.ColMarketingSpend))
	l.add(queries.ProjectTypeEarnings, "Средний доход по типу проекта (fixed / hourly)",
		ProjectTypeEarnings, text(earnings.ColProjectType), number(earnings.ColEarningsUSD))
	return l
}

func (l *Library) add(c queries.Command, desc string, fn queries.AnalyzerFunc, reqs ...earnings.Requirement) {
	l.entries[c] = Entry{Command: c, Description: desc, Requires: reqs, Analyzer: fn}
}

// Entries lists the table in canonical command order.
func (l *Library) Entries() []Entry {
	out := make([]Entry, 0, len(l.entries))
	for _, c := range queries.Commands() {
		if e, ok := l.entries[c]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Analyzer returns the analysis registered for c.
func (l *Library) Analyzer(c queries.Command) (queries.Analyzer, bool) {
	e, ok := l.entries[c]
	return e.Analyzer, ok
}

// Run executes the analysis for c.
func (l *Library) Run(c queries.Command, ds *earnings.Dataset) (queries.Report, error) {
	a, ok := l.Analyzer(c)
	if !ok {
		return "", fmt.Errorf("no analysis registered for %s", c)
	}
	return a.Analyze(ds)
}

// Validate checks that ds carries every column any analysis needs. Call it
// before accepting queries; the error is a *earnings.SchemaError.
func (l *Library) Validate(ds *earnings.Dataset) error {
	for _, e := range l.Entries() {
		if err := ds.Require(e.Requires...); err != nil {
			return fmt.Errorf("%s: %w", e.Command, err)
		}
	}
	return nil
}
