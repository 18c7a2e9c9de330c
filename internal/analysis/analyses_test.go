package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/earnings-analyst/internal/domain/earnings"
	"github.com/bryanwahyu/earnings-analyst/internal/domain/earnings/earningstest"
	"github.com/bryanwahyu/earnings-analyst/internal/domain/queries"
)

func TestAnalyses_Sample(t *testing.T) {
	ds := earningstest.Sample(t)

	tests := []struct {
		name string
		fn   queries.AnalyzerFunc
		want string
	}{
		{"crypto", CompareCryptoEarnings,
			"Средний доход (Crypto): $8000.00\nСредний доход (другое): $11500.00\nРазница: $-3500.00"},
		{"region", EarningsByRegion,
			"Доход по регионам:\nAsia 13500.00\nEurope 6000.00"},
		{"experts", ExpertsUnder100Projects,
			"50.00% экспертов выполнили менее 100 проектов"},
		{"high earners", HighEarnersRating,
			"Средний рейтинг фрилансеров с доходом выше $10,000: 4.25"},
		{"platform", HighestAvgHourlyByPlatform,
			"Платформа с самой высокой средней почасовой ставкой: Toptal ($90.00/час)"},
		{"rehire", ExperienceVsRehire,
			"Средняя доля повторных заказов по уровням опыта:\nExpert 0.60\nIntermediate 0.40\nBeginner 0.20"},
		{"marketing", MarketingSpendByCategory,
			"Средние маркетинговые расходы по категориям:\nDesign 300.00\nWeb 150.00\nWriting 50.00"},
		{"project type", ProjectTypeEarnings,
			"Средний доход по типу проекта:\nFixed 13500.00\nHourly 6000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(ds)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))

			again, err := tt.fn(ds)
			require.NoError(t, err)
			assert.Equal(t, got, again, "second run must be identical")
		})
	}
}

func TestExpertsUnder100Projects_NoExperts(t *testing.T) {
	ds := earningstest.Build(t, []map[string]any{
		{"Experience_Level": "Beginner", "Job_Completed": 5},
		{"Experience_Level": "Intermediate", "Job_Completed": 500},
	})
	got, err := ExpertsUnder100Projects(ds)
	require.NoError(t, err)
	assert.Equal(t, "0.00% экспертов выполнили менее 100 проектов", string(got))
}

func TestCompareCryptoEarnings_NoCryptoRows(t *testing.T) {
	ds := earningstest.Build(t, []map[string]any{
		{"Payment_Method": "PayPal", "Earnings_USD": 100},
		{"Payment_Method": "Bank Transfer", "Earnings_USD": 300},
	})
	got, err := CompareCryptoEarnings(ds)
	require.NoError(t, err)
	assert.Equal(t,
		"Средний доход (Crypto): $NaN\nСредний доход (другое): $200.00\nРазница: $NaN",
		string(got))
}

func TestHighEarnersRating_NobodyAboveFloor(t *testing.T) {
	ds := earningstest.Build(t, []map[string]any{
		{"Earnings_USD": 10000, "Client_Rating": 5},
		{"Earnings_USD": 50, "Client_Rating": 1},
	})
	got, err := HighEarnersRating(ds)
	require.NoError(t, err)
	assert.Equal(t, "Средний рейтинг фрилансеров с доходом выше $10,000: NaN", string(got))
}

func TestHighestAvgHourlyByPlatform(t *testing.T) {
	t.Run("two platforms", func(t *testing.T) {
		ds := earningstest.Build(t, []map[string]any{
			{"Platform": "A", "Hourly_Rate": 50},
			{"Platform": "B", "Hourly_Rate": 80},
		})
		got, err := HighestAvgHourlyByPlatform(ds)
		require.NoError(t, err)
		assert.Equal(t, "Платформа с самой высокой средней почасовой ставкой: B ($80.00/час)", string(got))
	})

	t.Run("tie goes to first name", func(t *testing.T) {
		ds := earningstest.Build(t, []map[string]any{
			{"Platform": "Upwork", "Hourly_Rate": 70},
			{"Platform": "Fiverr", "Hourly_Rate": 70},
		})
		got, err := HighestAvgHourlyByPlatform(ds)
		require.NoError(t, err)
		assert.Contains(t, string(got), "Fiverr ($70.00/час)")
	})

	t.Run("no rows", func(t *testing.T) {
		b := earnings.NewBuilder([]string{"Platform", "Hourly_Rate"})
		ds, err := b.Build()
		require.NoError(t, err)

		got, err := HighestAvgHourlyByPlatform(ds)
		require.NoError(t, err)
		assert.Equal(t, "Платформа с самой высокой средней почасовой ставкой: нет данных", string(got))
	})
}

func TestAnalyses_MissingColumn(t *testing.T) {
	rows := earningstest.Without(earningstest.SampleRows(), earnings.ColMarketingSpend)
	ds := earningstest.Build(t, rows)

	_, err := MarketingSpendByCategory(ds)
	var se *earnings.SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, earnings.ColMarketingSpend, se.Column)

	// others are unaffected
	_, err = EarningsByRegion(ds)
	assert.NoError(t, err)
}

func TestMeanBy_NaNGroupsSinkToEnd(t *testing.T) {
	nan := mean(nil)
	groups := meanBy([]string{"b", "a", "c"}, []float64{1, nan, 3})
	require.Len(t, groups, 3)
	assert.Equal(t, "c", groups[0].key)
	assert.Equal(t, "b", groups[1].key)
	assert.Equal(t, "a", groups[2].key)
}
