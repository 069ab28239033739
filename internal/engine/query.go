package engine

import (
	"fmt"
	"sort"

	"supermarket/internal/models"
)

// TopN is the size of the leaderboard returned by FilterAndRank.
const TopN = 3

// FilterAndRank keeps the records in params.City with Rating >= params.MinRating
// and ranks them by DailyRevenue. records is not modified.
func FilterAndRank(records []models.StoreRecord, params models.QueryParams) models.QueryResult {
	res := models.QueryResult{
		Params:  params,
		Matches: make([]models.StoreRecord, 0),
		Top:     make([]models.TopEntry, 0, TopN),
	}

	for _, r := range records {
		if r.City == params.City && r.Rating >= params.MinRating {
			res.Matches = append(res.Matches, r)
		}
	}

	if len(res.Matches) == 0 {
		res.Empty = true
		res.Notice = fmt.Sprintf("No stores in %s with rating >= %.1f", params.City, params.MinRating)
		return res
	}

	// Rank a copy so Matches keeps generation order for the scatter plot.
	ranked := make([]models.StoreRecord, len(res.Matches))
	copy(ranked, res.Matches)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].DailyRevenue != ranked[j].DailyRevenue {
			return ranked[i].DailyRevenue > ranked[j].DailyRevenue
		}
		return ranked[i].StoreID < ranked[j].StoreID
	})
	if len(ranked) > TopN {
		ranked = ranked[:TopN]
	}

	for _, r := range ranked {
		res.Top = append(res.Top, models.TopEntry{
			StoreID:      r.StoreID,
			Market:       r.Market,
			DailyRevenue: r.DailyRevenue,
			Rating:       r.Rating,
			SquareMeters: r.SquareMeters,
		})
	}
	return res
}

// DistinctCities returns the cities present in records, in first-seen order.
func DistinctCities(records []models.StoreRecord) []string {
	return distinct(records, func(r models.StoreRecord) string { return r.City })
}

// DistinctMarkets returns the markets present in records, in first-seen order.
func DistinctMarkets(records []models.StoreRecord) []string {
	return distinct(records, func(r models.StoreRecord) string { return r.Market })
}

func distinct(records []models.StoreRecord, key func(models.StoreRecord) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range records {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// Preview returns at most n leading records.
func Preview(records []models.StoreRecord, n int) []models.StoreRecord {
	if n < 0 {
		n = 0
	}
	if n > len(records) {
		n = len(records)
	}
	return records[:n]
}
