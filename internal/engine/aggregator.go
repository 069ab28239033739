package engine

import (
	"fmt"
	"math"

	"supermarket/internal/models"
)

const DefaultHistogramBins = 20

// Histogram buckets AvgCheck into equal-width bins over [min, max] and
// counts stores per market in each bin.
func (cs *ColumnStore) Histogram(bins int) (*models.Histogram, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("histogram with %d bins: %w", bins, ErrInvalidArgument)
	}
	values, err := cs.Float64Column(ColAvgCheck)
	if err != nil {
		return nil, err
	}
	groups, err := cs.StringColumn(ColMarket)
	if err != nil {
		return nil, err
	}

	hist := &models.Histogram{
		Column:  ColAvgCheck,
		GroupBy: ColMarket,
		Groups:  make([]string, 0),
		Bins:    make([]models.HistogramBin, 0, bins),
	}
	if len(values) == 0 {
		return hist, nil
	}

	seen := make(map[string]bool)
	for _, g := range groups {
		if !seen[g] {
			seen[g] = true
			hist.Groups = append(hist.Groups, g)
		}
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	width := (hi - lo) / float64(bins)
	if width == 0 {
		width = 1
	}

	for i := 0; i < bins; i++ {
		bin := models.HistogramBin{
			Lower:  lo + float64(i)*width,
			Upper:  lo + float64(i+1)*width,
			Counts: make(map[string]int, len(hist.Groups)),
		}
		for _, g := range hist.Groups {
			bin.Counts[g] = 0
		}
		hist.Bins = append(hist.Bins, bin)
	}
	hist.Bins[bins-1].Upper = math.Max(hi, hist.Bins[bins-1].Upper)

	for i, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			// max lands on the closing edge of the last bin
			idx = bins - 1
		}
		hist.Bins[idx].Counts[groups[i]]++
	}
	return hist, nil
}

// Correlation computes the Pearson correlation matrix over NumericColumns.
// Pairs involving a zero-variance column are left nil.
func (cs *ColumnStore) Correlation() (*models.CorrelationMatrix, error) {
	k := len(NumericColumns)
	cols := make([][]float64, k)
	for i, name := range NumericColumns {
		col, err := cs.Float64Column(name)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}

	means := make([]float64, k)
	stds := make([]float64, k)
	for i, col := range cols {
		means[i], stds[i] = meanStd(col)
	}

	m := &models.CorrelationMatrix{
		Columns: append([]string(nil), NumericColumns...),
		Values:  make([][]*float64, k),
	}
	for i := range m.Values {
		m.Values[i] = make([]*float64, k)
	}

	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			if stds[i] == 0 || stds[j] == 0 {
				continue
			}
			var r float64
			if i == j {
				r = 1
			} else {
				r = covariance(cols[i], cols[j], means[i], means[j]) / (stds[i] * stds[j])
				r = math.Max(-1, math.Min(1, r))
			}
			m.Values[i][j] = &r
			m.Values[j][i] = &r
		}
	}
	return m, nil
}

// meanStd returns the mean and the population standard deviation.
func meanStd(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / float64(len(xs)))
}

func covariance(xs, ys []float64, mx, my float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var s float64
	for i := range xs {
		s += (xs[i] - mx) * (ys[i] - my)
	}
	return s / float64(len(xs))
}
