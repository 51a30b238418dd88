package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"drubez-planner/internal/storage"
)

const (
	monday   = "2025-06-02"
	saturday = "2025-06-07"
)

func startAt(date, hhmm string) time.Time {
	t, _ := time.Parse("2006-01-02 15:04", date+" "+hhmm)
	return t
}

func TestComputeTimeline_ZeroFlocks(t *testing.T) {
	res := ComputeTimeline(monday, nil, 9000, startAt(monday, "07:00"), 0, nil)

	assert.Empty(t, res.Timeline)
	assert.Zero(t, res.Totals.TotalChickens)
	assert.Zero(t, res.Totals.TotalWeightKg)
	assert.Zero(t, res.Totals.TotalMinutes)
}

func TestComputeTimeline_Monotonicity(t *testing.T) {
	flocks := []storage.Flock{
		{Name: "Novák", Count: 9000, AvgWeightKg: 1.8},
		{Name: "Dvořák", Count: 4500, AvgWeightKg: 2.0},
	}
	start := startAt(monday, "07:00")

	res := ComputeTimeline(monday, flocks, 9000, start, 0, nil)

	assert.Equal(t, start, res.Timeline[0].Start)
	for i := 1; i < len(res.Timeline); i++ {
		assert.Equal(t, res.Timeline[i-1].End, res.Timeline[i].Start)
	}
}

func TestComputeTimeline_DelayShiftsEverything(t *testing.T) {
	flocks := []storage.Flock{
		{Name: "Novák", Count: 9000, AvgWeightKg: 1.8},
		{Name: "Dvořák", Count: 4500, AvgWeightKg: 2.0},
	}
	start := startAt(monday, "07:00")

	base := ComputeTimeline(monday, flocks, 9000, start, 0, nil)
	delayed := ComputeTimeline(monday, flocks, 9000, start, 45, nil)

	assert.Equal(t, len(base.Timeline), len(delayed.Timeline))
	shift := 45 * time.Minute
	for i := range base.Timeline {
		assert.Equal(t, base.Timeline[i].Start.Add(shift), delayed.Timeline[i].Start)
		assert.Equal(t, base.Timeline[i].End.Add(shift), delayed.Timeline[i].End)
		assert.Equal(t, base.Timeline[i].DurationMinutes, delayed.Timeline[i].DurationMinutes)
	}
}

func TestComputeTimeline_AutoPauseMonday(t *testing.T) {
	flocks := []storage.Flock{{Name: "Novák", Count: 9000, AvgWeightKg: 1.8}}

	res := ComputeTimeline(monday, flocks, 9000, startAt(monday, "07:00"), 0, nil)

	// Перерыв не задан — в понедельник подставляется 09:30 на 30 минут.
	var pauses []Interval
	for _, iv := range res.Timeline {
		if iv.Kind == IntervalPause {
			pauses = append(pauses, iv)
		}
	}
	assert.Len(t, pauses, 1)
	assert.Equal(t, 30.0, pauses[0].DurationMinutes)
}

func TestComputeTimeline_NoAutoPauseOnWeekend(t *testing.T) {
	flocks := []storage.Flock{{Name: "Novák", Count: 9000, AvgWeightKg: 1.8}}

	res := ComputeTimeline(saturday, flocks, 9000, startAt(saturday, "07:00"), 0, nil)

	for _, iv := range res.Timeline {
		assert.NotEqual(t, IntervalPause, iv.Kind)
	}
}

func TestComputeTimeline_UserPauseSuppressesAuto(t *testing.T) {
	flocks := []storage.Flock{{Name: "Novák", Count: 9000, AvgWeightKg: 1.8}}
	events := []storage.ProductionEvent{{Kind: storage.EventPause, StartTime: "10:00"}}

	res := ComputeTimeline(monday, flocks, 9000, startAt(monday, "07:00"), 0, events)

	count := 0
	for _, iv := range res.Timeline {
		if iv.Kind == IntervalPause {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestComputeTimeline_TotalsCountFlockTimeOnly(t *testing.T) {
	flocks := []storage.Flock{
		{Name: "Novák", Count: 9000, AvgWeightKg: 1.8},
		{Name: "Dvořák", Count: 4500, AvgWeightKg: 2.0},
	}
	events := []storage.ProductionEvent{
		{Kind: storage.EventBreakdown, StartTime: "08:00", DurationMinutes: 25},
	}

	res := ComputeTimeline(monday, flocks, 9000, startAt(monday, "07:00"), 0, events)

	// 9000/9000·60 + 4500/9000·60 = 90 минут забоя; перерыв и поломка
	// в сумму не входят, но в таймлайне есть.
	assert.InDelta(t, 90.0, res.Totals.TotalMinutes, 1e-9)
	assert.Equal(t, 13500, res.Totals.TotalChickens)
	assert.InDelta(t, 9000*1.8+4500*2.0, res.Totals.TotalWeightKg, 1e-9)
	assert.Len(t, res.Timeline, 4) // 2 стада + поломка + автоперерыв
}

func TestComputeTimeline_BreakdownDuration(t *testing.T) {
	flocks := []storage.Flock{{Name: "Novák", Count: 9000, AvgWeightKg: 1.8}}
	events := []storage.ProductionEvent{
		{Kind: storage.EventBreakdown, StartTime: "07:30", DurationMinutes: 40},
	}

	res := ComputeTimeline(saturday, flocks, 9000, startAt(saturday, "07:00"), 0, events)

	var breakdown *Interval
	for i := range res.Timeline {
		if res.Timeline[i].Kind == IntervalBreakdown {
			breakdown = &res.Timeline[i]
		}
	}
	if assert.NotNil(t, breakdown) {
		assert.Equal(t, 40.0, breakdown.DurationMinutes)
		assert.Equal(t, breakdown.Start.Add(40*time.Minute), breakdown.End)
	}
}

func TestComputeTimeline_ZeroLineSpeed(t *testing.T) {
	flocks := []storage.Flock{{Name: "Novák", Count: 9000, AvgWeightKg: 1.8}}

	res := ComputeTimeline(saturday, flocks, 0, startAt(saturday, "07:00"), 0, nil)

	// Нулевая скорость не делит на ноль, время просто нулевое.
	assert.Zero(t, res.Totals.TotalMinutes)
	assert.Equal(t, 9000, res.Totals.TotalChickens)
}
