package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"drubez-planner/internal/storage"
)

type OrdersProvider interface {
	GetOrdersByDate(ctx context.Context, date string) ([]storage.Order, error)
}

func GetOrdersByDate(log *slog.Logger, orders OrdersProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.orders.GetOrdersByDate"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		date := r.URL.Query().Get("date")
		if _, err := time.Parse("2006-01-02", date); err != nil {
			log.Error("Invalid date", slog.String("date", date))
			http.Error(w, "Invalid date", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		result, err := orders.GetOrdersByDate(ctx, date)
		if err != nil {
			log.Error("Ошибка при получении заказов дня", slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, result)
	}
}
