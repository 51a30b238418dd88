package plan

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"drubez-planner/internal/constants"
	"drubez-planner/internal/storage"
)

type MockPlanStorage struct {
	mock.Mock
}

func (m *MockPlanStorage) GetMaterials(ctx context.Context) ([]storage.RawMaterial, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.RawMaterial), args.Error(1)
}

func (m *MockPlanStorage) GetOrdersByDate(ctx context.Context, date string) ([]storage.Order, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Order), args.Error(1)
}

func (m *MockPlanStorage) GetBoxWeights(ctx context.Context) ([]storage.BoxWeight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.BoxWeight), args.Error(1)
}

func (m *MockPlanStorage) GetBoxWeightOverrides(ctx context.Context, date string) ([]storage.BoxWeightOverride, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.BoxWeightOverride), args.Error(1)
}

func (m *MockPlanStorage) GetFlocks(ctx context.Context, date string) ([]storage.Flock, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Flock), args.Error(1)
}

func (m *MockPlanStorage) GetEvents(ctx context.Context, date string) ([]storage.ProductionEvent, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.ProductionEvent), args.Error(1)
}

func (m *MockPlanStorage) GetYieldSettings(ctx context.Context) (storage.YieldSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(storage.YieldSettings), args.Error(1)
}

func (m *MockPlanStorage) GetThighSplit(ctx context.Context) (storage.ThighSplit, error) {
	args := m.Called(ctx)
	return args.Get(0).(storage.ThighSplit), args.Error(1)
}

func (m *MockPlanStorage) GetYieldOverrides(ctx context.Context, date string) ([]storage.YieldOverride, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.YieldOverride), args.Error(1)
}

func (m *MockPlanStorage) GetPartStock(ctx context.Context, date string) ([]storage.PartStock, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.PartStock), args.Error(1)
}

const testDate = "2025-06-02"

func setupHappyStorage() *MockPlanStorage {
	m := new(MockPlanStorage)

	m.On("GetMaterials", mock.Anything).Return([]storage.RawMaterial{
		{ID: constants.PartBreast, Name: "Prsa", Kind: storage.KindBase},
		{ID: constants.PartThigh, Name: "Stehna", Kind: storage.KindBase},
	}, nil)
	m.On("GetOrdersByDate", mock.Anything, testDate).Return([]storage.Order{
		{
			ID: "o1", Date: testDate, CustomerID: "kfc",
			Items: []storage.OrderItem{
				{ID: "i1", MaterialID: constants.PartBreast, Variant: "VL", BoxCount: 10, IsActive: true},
			},
		},
	}, nil)
	m.On("GetBoxWeights", mock.Anything).Return([]storage.BoxWeight{}, nil)
	m.On("GetBoxWeightOverrides", mock.Anything, testDate).Return([]storage.BoxWeightOverride{}, nil)
	m.On("GetFlocks", mock.Anything, testDate).Return([]storage.Flock{
		{Name: "Novák", Count: 9000, AvgWeightKg: 1.8},
	}, nil)
	m.On("GetEvents", mock.Anything, testDate).Return([]storage.ProductionEvent{}, nil)
	m.On("GetYieldSettings", mock.Anything).Return(storage.YieldSettings{
		constants.PartBreast: 22,
		constants.PartThigh:  30,
	}, nil)
	m.On("GetThighSplit", mock.Anything).Return(storage.ThighSplit{UpperPercent: 60, LowerPercent: 40}, nil)
	m.On("GetYieldOverrides", mock.Anything, testDate).Return([]storage.YieldOverride{}, nil)
	m.On("GetPartStock", mock.Anything, testDate).Return([]storage.PartStock{}, nil)

	return m
}

func TestComputeDayPlan_Happy(t *testing.T) {
	// 1. Мок хранилища с маленьким, но связным днём
	mockStorage := setupHappyStorage()
	service := NewPlanService(mockStorage)

	// 2. Считаем план
	plan, err := service.ComputeDayPlan(context.Background(), Params{
		Date:             testDate,
		LineSpeedPerHour: 9000,
		StartTime:        "07:00",
	})

	// 3. Проверяем все три ветки расчёта
	assert.NoError(t, err)
	assert.InDelta(t, 100.0, plan.Demand[constants.PartBreast], 1e-9)

	assert.Equal(t, 9000, plan.Timeline.Totals.TotalChickens)
	assert.InDelta(t, 16200.0, plan.Timeline.Totals.TotalWeightKg, 1e-9)
	assert.InDelta(t, 60.0, plan.Timeline.Totals.TotalMinutes, 1e-9)

	// Вес дня из таймлайна уходит в расчёт выхода: 16200 × 22%.
	var foundBreast bool
	for _, p := range plan.Yield.Parts {
		if p.PartKey == constants.PartBreast {
			foundBreast = true
			assert.InDelta(t, 3564.0, p.ProducedKg, 1e-6)
			assert.InDelta(t, 100.0, p.NeededKg, 1e-9)
		}
	}
	assert.True(t, foundBreast)

	mockStorage.AssertExpectations(t)
}

func TestComputeDayPlan_ExcludeCustomers(t *testing.T) {
	mockStorage := setupHappyStorage()
	service := NewPlanService(mockStorage)

	plan, err := service.ComputeDayPlan(context.Background(), Params{
		Date:             testDate,
		LineSpeedPerHour: 9000,
		StartTime:        "07:00",
		ExcludeCustomers: []string{"kfc"},
	})

	assert.NoError(t, err)
	assert.Zero(t, plan.Demand[constants.PartBreast])
}

func TestComputeDayPlan_StorageError(t *testing.T) {
	mockStorage := setupHappyStorage()
	// Поверх happy-настройки: материалы падают
	mockStorage.ExpectedCalls = nil
	mockStorage.On("GetMaterials", mock.Anything).Return(nil, errors.New("db down"))
	mockStorage.On("GetOrdersByDate", mock.Anything, testDate).Return([]storage.Order{}, nil).Maybe()
	mockStorage.On("GetBoxWeights", mock.Anything).Return([]storage.BoxWeight{}, nil).Maybe()
	mockStorage.On("GetBoxWeightOverrides", mock.Anything, testDate).Return([]storage.BoxWeightOverride{}, nil).Maybe()
	mockStorage.On("GetFlocks", mock.Anything, testDate).Return([]storage.Flock{}, nil).Maybe()
	mockStorage.On("GetEvents", mock.Anything, testDate).Return([]storage.ProductionEvent{}, nil).Maybe()
	mockStorage.On("GetYieldSettings", mock.Anything).Return(storage.YieldSettings{}, nil).Maybe()
	mockStorage.On("GetThighSplit", mock.Anything).Return(storage.ThighSplit{}, nil).Maybe()
	mockStorage.On("GetYieldOverrides", mock.Anything, testDate).Return([]storage.YieldOverride{}, nil).Maybe()
	mockStorage.On("GetPartStock", mock.Anything, testDate).Return([]storage.PartStock{}, nil).Maybe()

	service := NewPlanService(mockStorage)

	_, err := service.ComputeDayPlan(context.Background(), Params{Date: testDate, StartTime: "07:00"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "materials")
}
