package engine

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"supermarket/internal/models"
)

const (
	DefaultSize = 200
	DefaultSeed = 42
)

var ErrInvalidArgument = errors.New("invalid argument")

var (
	Markets = []string{"ATB", "Silpo", "Novus", "Auchan", "Metro", "Fora"}
	Cities  = []string{"Kyiv", "Kharkiv", "Lviv", "Odesa", "Dnipro"}
)

// Field ranges. Integer and AvgCheck ranges are half-open, Rating is closed after rounding.
const (
	minSquareMeters  = 100
	maxSquareMeters  = 5000
	minDailyVisitors = 200
	maxDailyVisitors = 3000
	minAvgCheck      = 150.0
	maxAvgCheck      = 1500.0
	MinRating        = 2.5
	MaxRating        = 5.0
	minParking       = 0
	maxParking       = 150
)

// NewRand returns the PRNG used by Generate for a given seed.
// Negative seeds are valid; their two's-complement bits seed the PCG.
func NewRand(seed int64) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s))
}

// Generate builds n store records from seed. Same n and seed give the same table.
func Generate(n int, seed int64) ([]models.StoreRecord, error) {
	return GenerateWith(n, NewRand(seed))
}

// GenerateWith draws every field from rng, one column at a time
// (all markets, then all cities, and so on), then derives DailyRevenue.
func GenerateWith(n int, rng *rand.Rand) ([]models.StoreRecord, error) {
	if n <= 0 {
		return nil, fmt.Errorf("generate %d records: %w", n, ErrInvalidArgument)
	}
	if rng == nil {
		return nil, fmt.Errorf("generate: nil random source: %w", ErrInvalidArgument)
	}

	records := make([]models.StoreRecord, n)
	for i := range records {
		records[i].StoreID = i + 1
	}

	for i := range records {
		records[i].Market = Markets[rng.IntN(len(Markets))]
	}
	for i := range records {
		records[i].City = Cities[rng.IntN(len(Cities))]
	}
	for i := range records {
		records[i].SquareMeters = uniformInt(rng, minSquareMeters, maxSquareMeters)
	}
	for i := range records {
		records[i].DailyVisitors = uniformInt(rng, minDailyVisitors, maxDailyVisitors)
	}
	for i := range records {
		records[i].AvgCheck = uniformFloat(rng, minAvgCheck, maxAvgCheck)
	}
	for i := range records {
		records[i].Rating = roundTo1(uniformFloat(rng, MinRating, MaxRating))
	}
	for i := range records {
		records[i].ParkingSpaces = uniformInt(rng, minParking, maxParking)
	}

	for i := range records {
		records[i].DailyRevenue = float64(records[i].DailyVisitors) * records[i].AvgCheck
	}
	return records, nil
}

// uniformInt draws from [lo, hi).
func uniformInt(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo)
}

// uniformFloat draws from [lo, hi).
func uniformFloat(rng *rand.Rand, lo, hi float64) float64 {
	v := lo + rng.Float64()*(hi-lo)
	if v >= hi {
		v = math.Nextafter(hi, lo)
	}
	return v
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
