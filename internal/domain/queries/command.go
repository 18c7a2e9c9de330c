package queries

import "fmt"

// Command is one of the canonical analyses a query can be routed to.
type Command int

const (
	CompareCryptoEarnings Command = iota + 1
	EarningsByRegion
	ExpertsUnder100Projects
	HighEarnersRating
	HighestAvgHourlyByPlatform
	ExperienceVsRehire
	MarketingSpendByCategory
	ProjectTypeEarnings
)

var commandNames = map[Command]string{
	CompareCryptoEarnings:      "compare_crypto_earnings",
	EarningsByRegion:           "earnings_by_region",
	ExpertsUnder100Projects:    "experts_under_100_projects",
	HighEarnersRating:          "high_earners_rating",
	HighestAvgHourlyByPlatform: "highest_avg_hourly_by_platform",
	ExperienceVsRehire:         "experience_vs_rehire",
	MarketingSpendByCategory:   "marketing_spend_by_category",
	ProjectTypeEarnings:        "project_type_earnings",
}

var commandsByName = func() map[string]Command {
	m := make(map[string]Command, len(commandNames))
	for c, n := range commandNames {
		m[n] = c
	}
	return m
}()

// Commands returns every canonical command in declaration order.
func Commands() []Command {
	return []Command{
		CompareCryptoEarnings,
		EarningsByRegion,
		ExpertsUnder100Projects,
		HighEarnersRating,
		HighestAvgHourlyByPlatform,
		ExperienceVsRehire,
		MarketingSpendByCategory,
		ProjectTypeEarnings,
	}
}

// ParseCommand looks up a canonical name. Matching is exact.
func ParseCommand(name string) (Command, bool) {
	c, ok := commandsByName[name]
	return c, ok
}

func (c Command) Valid() bool {
	_, ok := commandNames[c]
	return ok
}

func (c Command) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// MarshalText lets commands appear as their canonical names in JSON.
func (c Command) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid command %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Command) UnmarshalText(b []byte) error {
	parsed, ok := ParseCommand(string(b))
	if !ok {
		return fmt.Errorf("unknown command %q", string(b))
	}
	*c = parsed
	return nil
}
