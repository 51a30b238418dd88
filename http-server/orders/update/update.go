package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

type ItemDoneUpdater interface {
	UpdateItemDone(ctx context.Context, itemID string, doneCount float64) error
}

// UpdateItemDone — цех отмечает сделанные коробки по позиции.
func UpdateItemDone(log *slog.Logger, updater ItemDoneUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.orders.UpdateItemDone"

		var req struct {
			ItemID    string  `json:"item_id"`
			DoneCount float64 `json:"done_count"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Некорректный JSON", http.StatusBadRequest)
			return
		}

		if req.ItemID == "" {
			http.Error(w, "Missing item_id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := updater.UpdateItemDone(ctx, req.ItemID, req.DoneCount); err != nil {
			log.Error("Ошибка обновления позиции", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
