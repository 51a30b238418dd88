package storage

// Flock — одна привезённая партия птицы на день.
type Flock struct {
	Name             string  `json:"name"`
	Count            int     `json:"count"`
	AvgWeightKg      float64 `json:"avg_weight_kg"`
	DeviationPercent float64 `json:"deviation_percent"`
}

func (f Flock) TotalWeightKg() float64 {
	return float64(f.Count) * f.AvgWeightKg
}

// Виды событий линии.
const (
	EventPause     = "pause"
	EventBreakdown = "breakdown"
)

// ProductionEvent — перерыв или поломка. StartTime в формате "15:04".
// У перерыва длительность фиксированная, DurationMinutes заполняется
// только у поломки.
type ProductionEvent struct {
	Kind            string  `json:"kind"`
	StartTime       string  `json:"start_time"`
	DurationMinutes float64 `json:"duration_minutes,omitempty"`
}
