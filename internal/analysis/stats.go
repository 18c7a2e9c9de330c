package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// mean of the non-NaN values; NaN when there are none.
func mean(values []float64) float64 {
	var sum float64
	n := 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

type group struct {
	key  string
	mean float64
}

// meanBy groups values by key and returns the groups ordered by mean,
// highest first. Groups start in ascending key order and the sort is
// stable, so equal means keep alphabetical order. NaN means sink to the end.
func meanBy(keys []string, values []float64) []group {
	buckets := make(map[string][]float64)
	for i, k := range keys {
		buckets[k] = append(buckets[k], values[i])
	}

	groups := make([]group, 0, len(buckets))
	for k, vs := range buckets {
		groups = append(groups, group{key: k, mean: mean(vs)})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].key < groups[j].key })
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].mean, groups[j].mean
		if math.IsNaN(a) || math.IsNaN(b) {
			return !math.IsNaN(a) && math.IsNaN(b)
		}
		return a > b
	})
	return groups
}

// table renders a title followed by one "key value" line per group.
func table(title string, groups []group) string {
	var sb strings.Builder
	sb.WriteString(title)
	for _, g := range groups {
		fmt.Fprintf(&sb, "\n%s %.2f", g.key, g.mean)
	}
	return sb.String()
}
