package classify

import "sort"

var Labels = map[Category]string{
	CategoryPayment: "Payments",
	CategoryDEX:     "DEX",
	CategoryAccount: "Account",
	CategoryNFT:     "NFT",
	CategoryXChain:  "Cross-Chain",
	CategoryMPT:     "MPT",
	CategoryPseudo:  "Pseudo",
	CategoryOther:   "Other",
}

type CategoryStat struct {
	Category   Category `json:"category"`
	Label      string   `json:"label"`
	Count      int      `json:"count"`
	Percentage float64  `json:"percentage"`
}

// Breakdown counts transaction types per category. Stats are ordered by
// count, ties keep the order of Categories.
func Breakdown(types []string) []CategoryStat {
	if len(types) == 0 {
		return []CategoryStat{}
	}

	counts := make(map[Category]int, len(Categories))
	for _, t := range types {
		counts[CategoryOf(t)]++
	}

	total := float64(len(types))
	stats := make([]CategoryStat, 0, len(counts))
	for _, c := range Categories {
		n, ok := counts[c]
		if !ok {
			continue
		}
		stats = append(stats, CategoryStat{
			Category:   c,
			Label:      Labels[c],
			Count:      n,
			Percentage: float64(n) / total * 100,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	return stats
}
