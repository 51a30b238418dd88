package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"drubez-planner/internal/storage"
)

type FlockSaver interface {
	SaveFlocks(ctx context.Context, date string, flocks []storage.Flock) error
	SaveEvents(ctx context.Context, date string, events []storage.ProductionEvent) error
}

func SaveFlocks(log *slog.Logger, saver FlockSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.flocks.SaveFlocks"

		var req struct {
			Date   string          `json:"date"`
			Flocks []storage.Flock `json:"flocks"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Некорректный JSON", http.StatusBadRequest)
			return
		}

		if _, err := time.Parse("2006-01-02", req.Date); err != nil {
			http.Error(w, "Invalid date", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := saver.SaveFlocks(ctx, req.Date, req.Flocks); err != nil {
			log.Error("Ошибка сохранения стад", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func SaveEvents(log *slog.Logger, saver FlockSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.flocks.SaveEvents"

		var req struct {
			Date   string                    `json:"date"`
			Events []storage.ProductionEvent `json:"events"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Некорректный JSON", http.StatusBadRequest)
			return
		}

		if _, err := time.Parse("2006-01-02", req.Date); err != nil {
			http.Error(w, "Invalid date", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := saver.SaveEvents(ctx, req.Date, req.Events); err != nil {
			log.Error("Ошибка сохранения событий", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
