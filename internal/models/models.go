package models

// StoreRecord is one row of the generated supermarket table.
type StoreRecord struct {
	StoreID       int     `json:"store_id"`
	Market        string  `json:"market"`
	City          string  `json:"city"`
	SquareMeters  int     `json:"square_m"`
	DailyVisitors int     `json:"daily_visitors"`
	AvgCheck      float64 `json:"avg_check_uah"`
	Rating        float64 `json:"rating"`
	ParkingSpaces int     `json:"parking_spaces"`
	DailyRevenue  float64 `json:"daily_revenue"`
}

// TopEntry is the display projection used by the leaderboard table.
type TopEntry struct {
	StoreID      int     `json:"store_id"`
	Market       string  `json:"market"`
	DailyRevenue float64 `json:"daily_revenue"`
	Rating       float64 `json:"rating"`
	SquareMeters int     `json:"square_m"`
}

type QueryParams struct {
	City      string  `json:"city"`
	MinRating float64 `json:"min_rating"`
}

// QueryResult carries both the scatter-plot rows and the top ranking.
// Empty is set when nothing matched; Notice is then the text to show instead of charts.
type QueryResult struct {
	Params  QueryParams   `json:"params"`
	Matches []StoreRecord `json:"matches"`
	Top     []TopEntry    `json:"top"`
	Empty   bool          `json:"empty"`
	Notice  string        `json:"notice,omitempty"`
}

type Overview struct {
	Rows    int           `json:"rows"`
	Seed    int64         `json:"seed"`
	Cities  []string      `json:"cities"`
	Markets []string      `json:"markets"`
	Rating  RatingSpan    `json:"rating"`
	Preview []StoreRecord `json:"preview"`
}

// RatingSpan describes the rating slider.
type RatingSpan struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
}

type HistogramBin struct {
	Lower  float64        `json:"lower"`
	Upper  float64        `json:"upper"`
	Counts map[string]int `json:"counts"`
}

type Histogram struct {
	Column  string         `json:"column"`
	GroupBy string         `json:"group_by"`
	Groups  []string       `json:"groups"`
	Bins    []HistogramBin `json:"bins"`
}

// CorrelationMatrix is square; Values[i][j] is nil where a column has zero variance.
type CorrelationMatrix struct {
	Columns []string     `json:"columns"`
	Values  [][]*float64 `json:"values"`
}
