package timeline

import (
	"sort"
	"time"

	"drubez-planner/internal/constants"
	"drubez-planner/internal/storage"
)

// Виды интервалов таймлайна.
const (
	IntervalFlock     = "flock"
	IntervalPause     = "pause"
	IntervalBreakdown = "breakdown"
)

// Interval — один отрезок линии. Минуты дробные, округляет отображение.
type Interval struct {
	Kind            string    `json:"kind"`
	Name            string    `json:"name"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes float64   `json:"duration_minutes"`

	// Kind == IntervalFlock
	Count    int     `json:"count,omitempty"`
	WeightKg float64 `json:"weight_kg,omitempty"`
}

type Totals struct {
	TotalChickens int     `json:"total_chickens"`
	TotalWeightKg float64 `json:"total_weight_kg"`
	// TotalMinutes — только время забоя, перерывы и поломки не входят.
	TotalMinutes float64 `json:"total_minutes"`
}

type Result struct {
	Timeline []Interval `json:"timeline"`
	Totals   Totals     `json:"totals"`
}

// ComputeTimeline прогоняет линию через стада и события дня.
// Задержка не вставляет дырку, а равномерно сдвигает весь график.
// Ноль стад — пустой таймлайн, это "забой не запланирован", не ошибка.
func ComputeTimeline(date string, flocks []storage.Flock, lineSpeedPerHour float64, start time.Time, delayMinutes float64, events []storage.ProductionEvent) Result {
	if len(flocks) == 0 {
		return Result{Timeline: []Interval{}}
	}

	events = withAutoPause(date, events)

	// Номинальные интервалы: стада подряд от старта, события — по своему
	// времени. Сортировка по номинальному старту задаёт порядок прогона.
	var intervals []Interval
	cursor := start
	for _, f := range flocks {
		minutes := 0.0
		if lineSpeedPerHour > 0 {
			minutes = float64(f.Count) / lineSpeedPerHour * 60
		}
		intervals = append(intervals, Interval{
			Kind:            IntervalFlock,
			Name:            f.Name,
			Start:           cursor,
			DurationMinutes: minutes,
			Count:           f.Count,
			WeightKg:        f.TotalWeightKg(),
		})
		cursor = cursor.Add(minutesDuration(minutes))
	}

	for _, ev := range events {
		nominal, ok := eventStart(date, ev.StartTime)
		if !ok {
			continue
		}
		iv := Interval{Start: nominal}
		switch ev.Kind {
		case storage.EventPause:
			iv.Kind = IntervalPause
			iv.Name = "Přestávka"
			iv.DurationMinutes = constants.PauseMinutes
		case storage.EventBreakdown:
			iv.Kind = IntervalBreakdown
			iv.Name = "Porucha"
			iv.DurationMinutes = ev.DurationMinutes
		default:
			continue
		}
		intervals = append(intervals, iv)
	}

	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})

	// Повторный проход: реальные времена от start+delay, часы двигаются
	// на длительность каждого интервала.
	clock := start.Add(minutesDuration(delayMinutes))
	totals := Totals{}
	for i := range intervals {
		intervals[i].Start = clock
		intervals[i].End = clock.Add(minutesDuration(intervals[i].DurationMinutes))
		clock = intervals[i].End

		if intervals[i].Kind == IntervalFlock {
			totals.TotalChickens += intervals[i].Count
			totals.TotalWeightKg += intervals[i].WeightKg
			totals.TotalMinutes += intervals[i].DurationMinutes
		}
	}

	return Result{Timeline: intervals, Totals: totals}
}

// withAutoPause — если пользователь не задал перерыв, подставляем по дню
// недели: понедельник 09:30, вт–пт 11:30, выходные без перерыва.
func withAutoPause(date string, events []storage.ProductionEvent) []storage.ProductionEvent {
	for _, ev := range events {
		if ev.Kind == storage.EventPause {
			return events
		}
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return events
	}
	at, ok := constants.AutoPauseByWeekday[int(day.Weekday())]
	if !ok {
		return events
	}

	out := make([]storage.ProductionEvent, len(events), len(events)+1)
	copy(out, events)
	return append(out, storage.ProductionEvent{Kind: storage.EventPause, StartTime: at})
}

func eventStart(date, hhmm string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02 15:04", date+" "+hhmm)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func minutesDuration(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}
