package plan

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"drubez-planner/internal/service/catalog"
	"drubez-planner/internal/service/demand"
	"drubez-planner/internal/service/timeline"
	"drubez-planner/internal/service/yield"
	"drubez-planner/internal/storage"
)

type PlanStorage interface {
	GetMaterials(ctx context.Context) ([]storage.RawMaterial, error)
	GetOrdersByDate(ctx context.Context, date string) ([]storage.Order, error)
	GetBoxWeights(ctx context.Context) ([]storage.BoxWeight, error)
	GetBoxWeightOverrides(ctx context.Context, date string) ([]storage.BoxWeightOverride, error)
	GetFlocks(ctx context.Context, date string) ([]storage.Flock, error)
	GetEvents(ctx context.Context, date string) ([]storage.ProductionEvent, error)
	GetYieldSettings(ctx context.Context) (storage.YieldSettings, error)
	GetThighSplit(ctx context.Context) (storage.ThighSplit, error)
	GetYieldOverrides(ctx context.Context, date string) ([]storage.YieldOverride, error)
	GetPartStock(ctx context.Context, date string) ([]storage.PartStock, error)
}

type PlanService struct {
	storage PlanStorage
}

func NewPlanService(storage PlanStorage) *PlanService {
	return &PlanService{storage: storage}
}

// Params — параметры расчёта дня.
type Params struct {
	Date             string   `json:"date"`
	LineSpeedPerHour float64  `json:"line_speed_per_hour"`
	StartTime        string   `json:"start_time"`
	DelayMinutes     float64  `json:"delay_minutes"`
	IgnoreCompleted  bool     `json:"ignore_completed"`
	ExcludeCustomers []string `json:"exclude_customers"`
}

// DayPlan — полный расчёт дня: потребность, выход, таймлайн.
type DayPlan struct {
	Date     string             `json:"date"`
	Demand   map[string]float64 `json:"demand"`
	Yield    yield.Result       `json:"yield"`
	Timeline timeline.Result    `json:"timeline"`
}

type dayState struct {
	materials      []storage.RawMaterial
	orders         []storage.Order
	weights        []storage.BoxWeight
	weightOverride []storage.BoxWeightOverride
	flocks         []storage.Flock
	events         []storage.ProductionEvent
	settings       storage.YieldSettings
	split          storage.ThighSplit
	yieldOverrides []storage.YieldOverride
	partStock      []storage.PartStock
}

// ComputeDayPlan собирает срез состояния на дату параллельно и прогоняет
// через чистые расчёты. Сам сервис ничего не кэширует — после каждой
// мутации состояния его зовут заново.
func (s *PlanService) ComputeDayPlan(ctx context.Context, p Params) (*DayPlan, error) {
	const op = "service.plan.ComputeDayPlan"

	st, err := s.loadDayState(ctx, p.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cat := catalog.New(st.materials)
	weights := demand.NewWeightTable(st.weights, st.weightOverride)

	demandKg := demand.ComputeDemand(p.Date, st.orders, cat, weights, demand.Options{
		IgnoreCompleted: p.IgnoreCompleted,
		CustomerFilter:  excludeFilter(p.ExcludeCustomers),
	})

	tl := timeline.ComputeTimeline(p.Date, st.flocks, p.LineSpeedPerHour, s.startOfDay(p), p.DelayMinutes, st.events)

	overrides := make(map[string]float64, len(st.yieldOverrides))
	for _, o := range st.yieldOverrides {
		overrides[o.PartKey] = o.Kg
	}
	stock := make(map[string]float64, len(st.partStock))
	for _, ps := range st.partStock {
		stock[ps.PartKey] = ps.Kg
	}

	yl := yield.ComputeYield(yield.Input{
		Date:          p.Date,
		Flocks:        st.flocks,
		TotalWeightKg: tl.Totals.TotalWeightKg,
		Demand:        demandKg,
		Settings:      st.settings,
		Split:         st.split,
		Overrides:     overrides,
		PartStock:     stock,
	}, cat)

	return &DayPlan{Date: p.Date, Demand: demandKg, Yield: yl, Timeline: tl}, nil
}

func (s *PlanService) loadDayState(ctx context.Context, date string) (*dayState, error) {
	st := &dayState{}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		st.materials, err = s.storage.GetMaterials(gCtx)
		if err != nil {
			return fmt.Errorf("materials: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		st.orders, err = s.storage.GetOrdersByDate(gCtx, date)
		if err != nil {
			return fmt.Errorf("orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		st.weights, err = s.storage.GetBoxWeights(gCtx)
		if err != nil {
			return fmt.Errorf("box weights: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		st.weightOverride, err = s.storage.GetBoxWeightOverrides(gCtx, date)
		if err != nil {
			return fmt.Errorf("box weight overrides: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		st.flocks, err = s.storage.GetFlocks(gCtx, date)
		if err != nil {
			return fmt.Errorf("flocks: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		st.events, err = s.storage.GetEvents(gCtx, date)
		if err != nil {
			return fmt.Errorf("events: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		st.settings, err = s.storage.GetYieldSettings(gCtx)
		if err != nil {
			return fmt.Errorf("yield settings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		st.split, err = s.storage.GetThighSplit(gCtx)
		if err != nil {
			return fmt.Errorf("thigh split: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		st.yieldOverrides, err = s.storage.GetYieldOverrides(gCtx, date)
		if err != nil {
			return fmt.Errorf("yield overrides: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		st.partStock, err = s.storage.GetPartStock(gCtx, date)
		if err != nil {
			return fmt.Errorf("part stock: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *PlanService) startOfDay(p Params) time.Time {
	start, err := time.Parse("2006-01-02 15:04", p.Date+" "+p.StartTime)
	if err != nil {
		// Без валидного старта считаем от полуночи, фронт шлёт "07:00".
		start, _ = time.Parse("2006-01-02", p.Date)
	}
	return start
}

func excludeFilter(exclude []string) func(string) bool {
	if len(exclude) == 0 {
		return nil
	}
	skip := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}
	return func(customerID string) bool {
		return !skip[customerID]
	}
}
