package country

import (
	"cmp"
	"countries/internal/domain"
	"slices"
)

const summaryTopN = 5

// Rank returns up to n countries by estimated GDP, highest first. Ties keep
// the input order. The input slice is not modified.
func Rank(countries []domain.Country, n int) []domain.Country {
	ranked := slices.Clone(countries)
	sortByGDPDesc(ranked)
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func sortByGDPDesc(countries []domain.Country) {
	slices.SortStableFunc(countries, func(a, b domain.Country) int {
		return cmp.Compare(b.EstimatedGDP, a.EstimatedGDP)
	})
}
