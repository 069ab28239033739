package engine

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(5, DefaultSeed)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(5, DefaultSeed)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("Expected identical tables for the same seed\n%+v\n%+v", a, b)
	}

	c, err := Generate(5, DefaultSeed+1)
	if err != nil {
		t.Fatal(err)
	}
	if reflect.DeepEqual(a, c) {
		t.Error("Expected a different table for a different seed")
	}
}

func TestGenerateWithCallerRand(t *testing.T) {
	a, err := GenerateWith(50, NewRand(7))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(50, 7)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("GenerateWith(NewRand(seed)) should match Generate(seed)")
	}
}

func TestGenerateInvariants(t *testing.T) {
	records, err := Generate(DefaultSize, DefaultSeed)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != DefaultSize {
		t.Fatalf("Expected %d rows, got %d", DefaultSize, len(records))
	}

	markets := toSet(Markets)
	cities := toSet(Cities)
	ids := make(map[int]bool)

	for i, r := range records {
		if r.StoreID != i+1 {
			t.Errorf("Row %d: StoreID expected %d, got %d", i, i+1, r.StoreID)
		}
		ids[r.StoreID] = true

		if !markets[r.Market] {
			t.Errorf("Row %d: unknown market %q", i, r.Market)
		}
		if !cities[r.City] {
			t.Errorf("Row %d: unknown city %q", i, r.City)
		}
		if r.SquareMeters < 100 || r.SquareMeters >= 5000 {
			t.Errorf("Row %d: SquareMeters out of range: %d", i, r.SquareMeters)
		}
		if r.DailyVisitors < 200 || r.DailyVisitors >= 3000 {
			t.Errorf("Row %d: DailyVisitors out of range: %d", i, r.DailyVisitors)
		}
		if r.AvgCheck < 150.0 || r.AvgCheck >= 1500.0 {
			t.Errorf("Row %d: AvgCheck out of range: %f", i, r.AvgCheck)
		}
		if r.Rating < 2.5 || r.Rating > 5.0 {
			t.Errorf("Row %d: Rating out of range: %f", i, r.Rating)
		}
		if math.Abs(r.Rating*10-math.Round(r.Rating*10)) > 1e-9 {
			t.Errorf("Row %d: Rating not rounded to 1 decimal: %v", i, r.Rating)
		}
		if r.ParkingSpaces < 0 || r.ParkingSpaces >= 150 {
			t.Errorf("Row %d: ParkingSpaces out of range: %d", i, r.ParkingSpaces)
		}
		if math.Abs(r.DailyRevenue-float64(r.DailyVisitors)*r.AvgCheck) > 1e-9 {
			t.Errorf("Row %d: DailyRevenue %f != %d * %f", i, r.DailyRevenue, r.DailyVisitors, r.AvgCheck)
		}
	}

	if len(ids) != DefaultSize {
		t.Errorf("Expected %d unique StoreIDs, got %d", DefaultSize, len(ids))
	}
}

func TestGenerateInvalidSize(t *testing.T) {
	for _, n := range []int{0, -1, -200} {
		records, err := Generate(n, DefaultSeed)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("n=%d: expected ErrInvalidArgument, got %v", n, err)
		}
		if records != nil {
			t.Errorf("n=%d: expected nil records, got %d", n, len(records))
		}
	}

	if _, err := GenerateWith(10, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil rng: expected ErrInvalidArgument, got %v", err)
	}
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}

func TestGenerateNegativeSeed(t *testing.T) {
	a, err := Generate(20, -42)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(20, -42)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("Expected identical tables for the same negative seed")
	}

	c, err := Generate(20, 42)
	if err != nil {
		t.Fatal(err)
	}
	if reflect.DeepEqual(a, c) {
		t.Error("Expected seeds -42 and 42 to give different tables")
	}
}
