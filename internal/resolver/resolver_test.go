package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/earnings-analyst/internal/analysis"
	"github.com/bryanwahyu/earnings-analyst/internal/domain/earnings/earningstest"
	"github.com/bryanwahyu/earnings-analyst/internal/domain/queries"
)

func TestResolver_Match(t *testing.T) {
	r := New(analysis.NewLibrary())

	tests := []struct {
		query string
		want  queries.Command
	}{
		{"доход при оплате в криптовалюте", queries.CompareCryptoEarnings},
		{"crypto vs others", queries.CompareCryptoEarnings},
		{"доход по регионам", queries.EarningsByRegion},
		{"earnings by region", queries.EarningsByRegion},
		{"сколько эксперт выполнили менее 100 проектов", queries.ExpertsUnder100Projects},
		{"эксперт с < 100 проектов", queries.ExpertsUnder100Projects},
		{"рейтинг при доходе выше 10000", queries.HighEarnersRating},
		{"какая платформа имеет самую высокую почасовая ставка", queries.HighestAvgHourlyByPlatform},
		{"опыт и повторные заказы", queries.ExperienceVsRehire},
		{"маркетинг по категориям", queries.MarketingSpendByCategory},
		{"расходы на рекламу", queries.MarketingSpendByCategory},
		{"тип проекта и доход", queries.ProjectTypeEarnings},
		{"fixed or hourly", queries.ProjectTypeEarnings},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, ok := r.Match(tt.query)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_MatchNeedsAllGroups(t *testing.T) {
	r := New(analysis.NewLibrary())
	for _, q := range []string{
		"эксперт",
		"рейтинг",
		"платформа",
		"опыт работы",
		"погода завтра",
		"",
	} {
		_, ok := r.Match(q)
		assert.False(t, ok, q)
	}
}

func TestResolver_Priority(t *testing.T) {
	r := New(analysis.NewLibrary())

	got, ok := r.Match("регион и маркетинг")
	require.True(t, ok)
	assert.Equal(t, queries.EarningsByRegion, got)

	got, ok = r.Match("crypto по регионам")
	require.True(t, ok)
	assert.Equal(t, queries.CompareCryptoEarnings, got)

	got, ok = r.Match("опыт повторных заказов и расходы")
	require.True(t, ok)
	assert.Equal(t, queries.ExperienceVsRehire, got)
}

func TestResolver_CaseInsensitive(t *testing.T) {
	r := New(analysis.NewLibrary())

	got, ok := r.Match("Доход по РЕГИОНАМ")
	require.True(t, ok)
	assert.Equal(t, queries.EarningsByRegion, got)

	got, ok = r.Match("CRYPTO")
	require.True(t, ok)
	assert.Equal(t, queries.CompareCryptoEarnings, got)
}

func TestResolver_Resolve(t *testing.T) {
	lib := analysis.NewLibrary()
	r := New(lib)
	ds := earningstest.Sample(t)

	got, err := r.Resolve("регион и маркетинг", ds)
	require.NoError(t, err)
	want, err := analysis.EarningsByRegion(ds)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = r.Resolve("расскажи анекдот", ds)
	require.NoError(t, err)
	assert.Equal(t, NotRecognized, got)
}

func TestResolver_WithRules(t *testing.T) {
	r := New(analysis.NewLibrary()).WithRules([]Rule{
		{queries.HighEarnersRating, [][]string{anyOf("stars")}},
	})
	got, ok := r.Match("Stars please")
	require.True(t, ok)
	assert.Equal(t, queries.HighEarnersRating, got)

	_, ok = r.Match("регион")
	assert.False(t, ok)
}
