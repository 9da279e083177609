package analytics

// BudgetLevel classifies spend against a limit.
type BudgetLevel string

// Budget levels.
const (
	BudgetOnTrack     BudgetLevel = "On Track"
	BudgetApproaching BudgetLevel = "Approaching Limit"
	BudgetExceeded    BudgetLevel = "Exceeded"
)

// Threshold bounds, in percent of the limit.
const (
	MinThreshold     = 50.0
	MaxThreshold     = 100.0
	DefaultThreshold = 80.0
)

// BudgetStatus is spend measured against a budget limit.
type BudgetStatus struct {
	Level      BudgetLevel `json:"level"`
	Spend      float64     `json:"spend"`
	Limit      float64     `json:"limit"`
	Remaining  float64     `json:"remaining"`
	Percentage float64     `json:"percentage"`
	Threshold  float64     `json:"threshold"`
}

// ClampThreshold forces a warning threshold into [MinThreshold, MaxThreshold].
func ClampThreshold(threshold float64) float64 {
	switch {
	case threshold < MinThreshold:
		return MinThreshold
	case threshold > MaxThreshold:
		return MaxThreshold
	default:
		return threshold
	}
}

// Budget classifies spend against limit. A limit <= 0 reports 0% and is
// always on track. Remaining goes negative once the limit is passed.
func Budget(spend, limit, threshold float64) BudgetStatus {
	threshold = ClampThreshold(threshold)
	pct := percentOf(spend, limit)

	level := BudgetOnTrack
	switch {
	case pct >= 100:
		level = BudgetExceeded
	case pct >= threshold:
		level = BudgetApproaching
	}

	return BudgetStatus{
		Level:      level,
		Spend:      spend,
		Limit:      limit,
		Remaining:  limit - spend,
		Percentage: pct,
		Threshold:  threshold,
	}
}

// OverBy is how far spend exceeds the limit, or 0.
func (b BudgetStatus) OverBy() float64 {
	if b.Remaining >= 0 {
		return 0
	}
	return -b.Remaining
}

// Alert reports whether the status warrants a warning.
func (b BudgetStatus) Alert() bool {
	return b.Level != BudgetOnTrack
}

// Fill is the percentage clamped to 100 for progress displays.
func (b BudgetStatus) Fill() float64 {
	if b.Percentage > 100 {
		return 100
	}
	return b.Percentage
}
