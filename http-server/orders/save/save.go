package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"drubez-planner/internal/storage"
)

type OrderSaver interface {
	SaveOrder(ctx context.Context, order storage.Order) (string, error)
}

type Resp struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func SaveOrder(log *slog.Logger, saver OrderSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.orders.SaveOrder"

		var order storage.Order
		if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
			http.Error(w, "Некорректный JSON", http.StatusBadRequest)
			return
		}

		if _, err := time.Parse("2006-01-02", order.Date); err != nil {
			http.Error(w, "Invalid date", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := saver.SaveOrder(ctx, order)
		if err != nil {
			log.Error("Ошибка сохранения заказа", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Resp{ID: id, Status: "OK"})
	}
}
