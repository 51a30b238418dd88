package calculate_plan

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"drubez-planner/internal/service/plan"
)

type DayPlanner interface {
	ComputeDayPlan(ctx context.Context, p plan.Params) (*plan.DayPlan, error)
}

// ComputeDayPlan — один вход для фронта: потребность, выход и таймлайн
// считаются всегда вместе, между собой они связаны общим весом дня.
func ComputeDayPlan(log *slog.Logger, planner DayPlanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.plan.ComputeDayPlan"

		var params plan.Params
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			http.Error(w, "Некорректный JSON", http.StatusBadRequest)
			return
		}

		if _, err := time.Parse("2006-01-02", params.Date); err != nil {
			http.Error(w, "Invalid date", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		dayPlan, err := planner.ComputeDayPlan(ctx, params)
		if err != nil {
			log.Error("Failed to compute day plan", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, dayPlan)
	}
}
