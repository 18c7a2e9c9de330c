package earnings

import (
	"slices"
	"strconv"
)

// Column names used by the analyses.
const (
	ColPaymentMethod   = "Payment_Method"
	ColEarningsUSD     = "Earnings_USD"
	ColClientRegion    = "Client_Region"
	ColExperienceLevel = "Experience_Level"
	ColJobCompleted    = "Job_Completed"
	ColClientRating    = "Client_Rating"
	ColPlatform        = "Platform"
	ColHourlyRate      = "Hourly_Rate"
	ColRehireRate      = "Rehire_Rate"
	ColJobCategory     = "Job_Category"
	ColMarketingSpend  = "Marketing_Spend"
	ColProjectType     = "Project_Type"
)

// Kind describes how a column was typed when the dataset was built.
type Kind int

const (
	KindText Kind = iota
	KindNumber
)

func (k Kind) String() string {
	if k == KindNumber {
		return "number"
	}
	return "text"
}

type column struct {
	kind    Kind
	text    []string // also set for blank numeric columns
	numbers []float64
}

// Dataset is an immutable column table. It is built once and shared
// read-only by every query; accessors hand out copies.
type Dataset struct {
	order   []string
	columns map[string]column
	rows    int
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return d.rows }

// Columns returns column names in source order.
func (d *Dataset) Columns() []string { return slices.Clone(d.order) }

// Kind reports the type of a column and whether it exists.
func (d *Dataset) Kind(name string) (Kind, bool) {
	c, ok := d.columns[name]
	return c.kind, ok
}

// Text returns the values of a column as strings. Numeric columns are
// formatted back to their shortest representation so they can be grouped.
func (d *Dataset) Text(name string) ([]string, error) {
	c, ok := d.columns[name]
	if !ok {
		return nil, missing(name)
	}
	if c.kind == KindText || c.text != nil {
		return slices.Clone(c.text), nil
	}
	out := make([]string, len(c.numbers))
	for i, v := range c.numbers {
		out[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return out, nil
}

// Numbers returns the values of a numeric column.
func (d *Dataset) Numbers(name string) ([]float64, error) {
	c, ok := d.columns[name]
	if !ok {
		return nil, missing(name)
	}
	if c.kind != KindNumber {
		return nil, &SchemaError{Column: name, Reason: "is not numeric"}
	}
	return slices.Clone(c.numbers), nil
}

// Requirement names a column and the kind an analysis needs it to be.
type Requirement struct {
	Column string
	Kind   Kind
}

// Require checks that every requirement is satisfied and returns the first
// violation as a *SchemaError.
func (d *Dataset) Require(reqs ...Requirement) error {
	for _, r := range reqs {
		c, ok := d.columns[r.Column]
		if !ok {
			return missing(r.Column)
		}
		// text requirements accept numeric columns, grouping formats them
		if r.Kind == KindNumber && c.kind != KindNumber {
			return &SchemaError{Column: r.Column, Reason: "is not numeric"}
		}
	}
	return nil
}
