package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"drubez-planner/internal/storage"
)

type OverrideSaver interface {
	UpsertYieldOverride(ctx context.Context, o storage.YieldOverride) error
}

// SaveYieldOverride — ручная корректировка выхода на дату: мастер взвесил
// реальный выход и перебил расчётный процент.
func SaveYieldOverride(log *slog.Logger, saver OverrideSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.SaveYieldOverride"

		var override storage.YieldOverride
		if err := json.NewDecoder(r.Body).Decode(&override); err != nil {
			http.Error(w, "Неверный JSON", http.StatusBadRequest)
			return
		}

		if _, err := time.Parse("2006-01-02", override.Date); err != nil {
			http.Error(w, "Invalid date", http.StatusBadRequest)
			return
		}
		if override.PartKey == "" {
			http.Error(w, "Missing part_key", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := saver.UpsertYieldOverride(ctx, override); err != nil {
			log.Error("Ошибка сохранения корректировки", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
