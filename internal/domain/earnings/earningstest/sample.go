// Package earningstest provides small datasets for tests.
package earningstest

import (
	"testing"

	"github.com/bryanwahyu/earnings-analyst/internal/domain/earnings"
)

// SampleRows is a four-row dataset that touches every analysed column.
func SampleRows() []map[string]any {
	return []map[string]any{
		{
			"Payment_Method": "Crypto", "Earnings_USD": 12000, "Client_Region": "Asia",
			"Experience_Level": "Expert", "Job_Completed": 50, "Client_Rating": 4.5,
			"Platform": "Upwork", "Hourly_Rate": 40, "Rehire_Rate": 0.5,
			"Job_Category": "Web", "Marketing_Spend": 100, "Project_Type": "Fixed",
		},
		{
			"Payment_Method": "PayPal", "Earnings_USD": 8000, "Client_Region": "Europe",
			"Experience_Level": "Beginner", "Job_Completed": 10, "Client_Rating": 3.0,
			"Platform": "Fiverr", "Hourly_Rate": 20, "Rehire_Rate": 0.2,
			"Job_Category": "Design", "Marketing_Spend": 300, "Project_Type": "Hourly",
		},
		{
			"Payment_Method": "Bank Transfer", "Earnings_USD": 15000, "Client_Region": "Asia",
			"Experience_Level": "Expert", "Job_Completed": 150, "Client_Rating": 4.0,
			"Platform": "Upwork", "Hourly_Rate": 60, "Rehire_Rate": 0.7,
			"Job_Category": "Web", "Marketing_Spend": 200, "Project_Type": "Fixed",
		},
		{
			"Payment_Method": "Crypto", "Earnings_USD": 4000, "Client_Region": "Europe",
			"Experience_Level": "Intermediate", "Job_Completed": 80, "Client_Rating": 5.0,
			"Platform": "Toptal", "Hourly_Rate": 90, "Rehire_Rate": 0.4,
			"Job_Category": "Writing", "Marketing_Spend": 50, "Project_Type": "Hourly",
		},
	}
}

// Sample returns SampleRows as a dataset.
func Sample(t testing.TB) *earnings.Dataset {
	t.Helper()
	return Build(t, SampleRows())
}

// Build turns row maps into a dataset or fails the test.
func Build(t testing.TB, rows []map[string]any) *earnings.Dataset {
	t.Helper()
	ds, err := earnings.FromMaps(rows)
	if err != nil {
		t.Fatalf("build dataset: %v", err)
	}
	return ds
}

// Without returns rows with the named columns removed.
func Without(rows []map[string]any, columns ...string) []map[string]any {
	out := make([]map[string]any, len(rows))
	for i, r := range rows {
		c := make(map[string]any, len(r))
		for k, v := range r {
			c[k] = v
		}
		for _, name := range columns {
			delete(c, name)
		}
		out[i] = c
	}
	return out
}
