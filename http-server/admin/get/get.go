package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"drubez-planner/internal/storage"
)

type SettingsProvider interface {
	GetYieldSettings(ctx context.Context) (storage.YieldSettings, error)
	GetThighSplit(ctx context.Context) (storage.ThighSplit, error)
	GetBoxWeights(ctx context.Context) ([]storage.BoxWeight, error)
}

func GetYieldSettingsAdmin(log *slog.Logger, settings SettingsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.GetYieldSettingsAdmin"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		result, err := settings.GetYieldSettings(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("ошибка получения процентов выхода")
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, result)
	}
}

func GetThighSplitAdmin(log *slog.Logger, settings SettingsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.GetThighSplitAdmin"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		result, err := settings.GetThighSplit(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("ошибка получения деления бедра")
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, result)
	}
}

func GetBoxWeightsAdmin(log *slog.Logger, settings SettingsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.GetBoxWeightsAdmin"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		result, err := settings.GetBoxWeights(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("ошибка получения таблицы весов")
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, result)
	}
}
