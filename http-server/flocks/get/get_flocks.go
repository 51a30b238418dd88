package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"drubez-planner/internal/storage"
)

type FlockProvider interface {
	GetFlocks(ctx context.Context, date string) ([]storage.Flock, error)
	GetEvents(ctx context.Context, date string) ([]storage.ProductionEvent, error)
}

type Resp struct {
	Flocks []storage.Flock           `json:"flocks"`
	Events []storage.ProductionEvent `json:"events"`
}

// GetFlocks отдаёт стада и события дня одним ответом — фронт рисует их
// на одном экране линии.
func GetFlocks(log *slog.Logger, provider FlockProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.flocks.GetFlocks"

		date := r.URL.Query().Get("date")
		if _, err := time.Parse("2006-01-02", date); err != nil {
			http.Error(w, "Invalid date", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		flocks, err := provider.GetFlocks(ctx, date)
		if err != nil {
			log.Error("Ошибка получения стад", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		events, err := provider.GetEvents(ctx, date)
		if err != nil {
			log.Error("Ошибка получения событий", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Resp{Flocks: flocks, Events: events})
	}
}
