package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// DefaultForecastMonths is the projection horizon when none is given.
const DefaultForecastMonths = 6

// ForecastStatus tells whether a forecast could be produced.
type ForecastStatus string

// Forecast statuses.
const (
	ForecastOK               ForecastStatus = "ok"
	ForecastInsufficientData ForecastStatus = "insufficient_data"
)

// Trend is the direction of the fitted line.
type Trend string

// Trends.
const (
	TrendIncreasing Trend = "Increasing"
	TrendDecreasing Trend = "Decreasing"
	TrendStable     Trend = "Stable"
)

// Confidence is a coarse label derived from residual variability. It is not
// a statistical confidence interval.
type Confidence string

// Confidence levels.
const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// ForecastPoint is one projected period.
type ForecastPoint struct {
	Period string  `json:"period"`
	Amount float64 `json:"amount"`
}

// ForecastResult is a least-squares projection of monthly spend.
type ForecastResult struct {
	Status      ForecastStatus  `json:"status"`
	Trend       Trend           `json:"trend,omitempty"`
	Confidence  Confidence      `json:"confidence,omitempty"`
	Points      []ForecastPoint `json:"points,omitempty"`
	Slope       float64         `json:"slope"`
	Intercept   float64         `json:"intercept"`
	Mean        float64         `json:"mean"`
	Variability float64         `json:"variability"`
	NextChange  float64         `json:"next_change"`
}

// OK reports whether the forecast has projections.
func (f ForecastResult) OK() bool {
	return f.Status == ForecastOK
}

// Sum totals the first n projected periods.
func (f ForecastResult) Sum(n int) float64 {
	var total float64
	for i, p := range f.Points {
		if i >= n {
			break
		}
		total += p.Amount
	}
	return total
}

// Forecast fits y = slope*x + intercept over the monthly history (x = 0..n-1
// in chronological order) and projects months periods forward. Fewer than
// two history points yields ForecastInsufficientData. Projections never go
// below zero.
func Forecast(history []PeriodTotal, months int) ForecastResult {
	if len(history) < 2 {
		return ForecastResult{Status: ForecastInsufficientData}
	}
	if months <= 0 {
		months = DefaultForecastMonths
	}

	sorted := make([]PeriodTotal, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Period < sorted[j].Period
	})

	y := make([]float64, len(sorted))
	for i, p := range sorted {
		y[i] = p.Amount
	}

	slope, intercept := linearFit(y)
	n := len(y)
	mean := meanOf(y)

	residuals := make([]float64, n)
	for i, v := range y {
		residuals[i] = v - (slope*float64(i) + intercept)
	}

	variability := 0.0
	if mean > 0 {
		variability = stddev(residuals) / mean * 100
	}

	points := make([]ForecastPoint, months)
	last := sorted[n-1].Period
	for i := range points {
		x := float64(n + i)
		points[i] = ForecastPoint{
			Period: nextPeriod(last, i+1),
			Amount: math.Max(slope*x+intercept, 0),
		}
	}

	nextChange := 0.0
	if lastValue := y[n-1]; lastValue > 0 {
		nextChange = (points[0].Amount - lastValue) / lastValue * 100
	}

	return ForecastResult{
		Status:      ForecastOK,
		Trend:       classifyTrend(slope, mean),
		Confidence:  classifyConfidence(variability),
		Points:      points,
		Slope:       slope,
		Intercept:   intercept,
		Mean:        mean,
		Variability: variability,
		NextChange:  nextChange,
	}
}

// linearFit is ordinary least squares over x = 0..len(y)-1.
func linearFit(y []float64) (slope, intercept float64) {
	n := float64(len(y))
	var sumX, sumY, sumXY, sumX2 float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumX2 += x * x
	}
	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

func meanOf(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// stddev is the population standard deviation.
func stddev(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	m := meanOf(v)
	var ss float64
	for _, x := range v {
		ss += (x - m) * (x - m)
	}
	return math.Sqrt(ss / float64(len(v)))
}

func classifyTrend(slope, mean float64) Trend {
	switch {
	case slope > mean*0.05:
		return TrendIncreasing
	case slope < -mean*0.05:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

func classifyConfidence(variability float64) Confidence {
	switch {
	case variability < 20:
		return ConfidenceHigh
	case variability < 40:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// nextPeriod labels the period offset months after a YYYY-MM label. Labels
// that are not months fall back to a relative "+N".
func nextPeriod(last string, offset int) string {
	t, err := time.Parse(MonthLayout, last)
	if err != nil {
		return fmt.Sprintf("+%d", offset)
	}
	return t.AddDate(0, offset, 0).Format(MonthLayout)
}
