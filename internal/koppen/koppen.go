package koppen

// Result is a completed classification: the code plus the statistics and
// aridity threshold it was derived from, kept for reporting.
type Result struct {
	Code      string  `json:"code"`
	Threshold float64 `json:"threshold"`
	Stats     Stats   `json:"stats"`
}

// Group returns the result's top-level climate group letter, or "Unknown"
// for the fallback code.
func (r Result) Group() string {
	if r.Code == "" || r.Code == CodeUnknown {
		return CodeUnknown
	}
	return r.Code[:1]
}

// Classify derives statistics from twelve months of precipitation (mm) and
// temperature (°C), computes the aridity threshold, and walks the decision
// tree. It is the package's single entry point and the only function
// collaborators need.
//
// The computation is pure and stateless; classifying records concurrently
// requires no coordination. The only error is ErrInvalidInput when either
// series does not hold exactly twelve values.
func Classify(precip, temp []float64, southern bool) (Result, error) {
	rec, err := NewMonthlyRecord(precip, temp, southern)
	if err != nil {
		return Result{}, err
	}
	return ClassifyRecord(rec)
}

// ClassifyRecord classifies an already-validated record.
func ClassifyRecord(rec MonthlyRecord) (Result, error) {
	stats, err := DeriveStats(rec)
	if err != nil {
		return Result{}, err
	}
	threshold := PrecipThreshold(stats)
	return Result{
		Code:      ClassifyStats(stats, threshold),
		Threshold: threshold,
		Stats:     stats,
	}, nil
}
