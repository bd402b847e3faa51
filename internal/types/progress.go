package types

// YearProgress is the calendar progress of a single day within its year.
type YearProgress struct {
	Year          int `json:"year"`
	ElapsedDays   int `json:"elapsed_days"`
	TotalDays     int `json:"total_days"`
	RemainingDays int `json:"remaining_days"`
	Percent       int `json:"percent"`
}

// Ratio returns the unrounded completion percentage.
func (p YearProgress) Ratio() float64 {
	if p.TotalDays == 0 {
		return 0
	}
	return float64(p.ElapsedDays) / float64(p.TotalDays) * 100
}
