package calculate_plan

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"drubez-planner/internal/service/plan"
)

type MockDayPlanner struct {
	mock.Mock
}

func (m *MockDayPlanner) ComputeDayPlan(ctx context.Context, p plan.Params) (*plan.DayPlan, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plan.DayPlan), args.Error(1)
}

func TestComputeDayPlan_Success(t *testing.T) {
	mockPlanner := new(MockDayPlanner)

	mockPlanner.On("ComputeDayPlan", mock.Anything, mock.MatchedBy(func(p plan.Params) bool {
		return p.Date == "2025-06-02" && p.LineSpeedPerHour == 9000
	})).Return(&plan.DayPlan{
		Date:   "2025-06-02",
		Demand: map[string]float64{"prsa": 100},
	}, nil)

	log := slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
	handler := ComputeDayPlan(log, mockPlanner)

	body := `{"date":"2025-06-02","line_speed_per_hour":9000,"start_time":"07:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp plan.DayPlan
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 100.0, resp.Demand["prsa"])

	mockPlanner.AssertExpectations(t)
}

func TestComputeDayPlan_BadDate(t *testing.T) {
	mockPlanner := new(MockDayPlanner)
	log := slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
	handler := ComputeDayPlan(log, mockPlanner)

	body := `{"date":"02.06.2025"}`
	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockPlanner.AssertNotCalled(t, "ComputeDayPlan")
}

func TestComputeDayPlan_BadJSON(t *testing.T) {
	mockPlanner := new(MockDayPlanner)
	log := slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
	handler := ComputeDayPlan(log, mockPlanner)

	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader("{не json"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestComputeDayPlan_ServiceError(t *testing.T) {
	mockPlanner := new(MockDayPlanner)
	mockPlanner.On("ComputeDayPlan", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	log := slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
	handler := ComputeDayPlan(log, mockPlanner)

	body := `{"date":"2025-06-02"}`
	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
