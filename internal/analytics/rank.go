package analytics

import (
	"sort"

	"github.com/storepulse/storepulse/internal/model"
)

// RankLabels counts label occurrences across items and returns the most
// frequent ones, descending by count, ties broken by first appearance,
// truncated to limit. Items with an empty label are skipped.
func RankLabels[T any](items []T, label func(T) string, limit int) []model.RankedItem {
	counts := make(map[string]int64)
	firstSeen := make(map[string]int)
	var order []string

	for i, item := range items {
		l := label(item)
		if l == "" {
			continue
		}
		if _, ok := counts[l]; !ok {
			firstSeen[l] = i
			order = append(order, l)
		}
		counts[l]++
	}

	ranked := make([]model.RankedItem, 0, len(order))
	for _, l := range order {
		ranked = append(ranked, model.RankedItem{Label: l, Count: counts[l]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return firstSeen[ranked[i].Label] < firstSeen[ranked[j].Label]
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
