package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"drubez-planner/internal/storage"
)

type SettingsUpdater interface {
	UpdateYieldSettings(ctx context.Context, settings storage.YieldSettings) error
	UpdateThighSplit(ctx context.Context, split storage.ThighSplit) error
	UpsertBoxWeight(ctx context.Context, w storage.BoxWeight) error
	UpdateMaterial(ctx context.Context, m storage.RawMaterial) error
}

func UpdateYieldSettingsAdmin(log *slog.Logger, update SettingsUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.UpdateYieldSettingsAdmin"

		var settings storage.YieldSettings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			http.Error(w, "Неверный JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := update.UpdateYieldSettings(ctx, settings); err != nil {
			log.Error("Ошибка обновления процентов выхода", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func UpdateThighSplitAdmin(log *slog.Logger, update SettingsUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.UpdateThighSplitAdmin"

		var split storage.ThighSplit
		if err := json.NewDecoder(r.Body).Decode(&split); err != nil {
			http.Error(w, "Неверный JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := update.UpdateThighSplit(ctx, split); err != nil {
			log.Error("Ошибка обновления деления бедра", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func UpdateBoxWeightAdmin(log *slog.Logger, update SettingsUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.UpdateBoxWeightAdmin"

		var weight storage.BoxWeight
		if err := json.NewDecoder(r.Body).Decode(&weight); err != nil {
			http.Error(w, "Неверный JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := update.UpsertBoxWeight(ctx, weight); err != nil {
			log.Error("Ошибка обновления веса коробки", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func UpdateMaterialAdmin(log *slog.Logger, update SettingsUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.UpdateMaterialAdmin"

		var material storage.RawMaterial
		if err := json.NewDecoder(r.Body).Decode(&material); err != nil {
			http.Error(w, "Неверный JSON", http.StatusBadRequest)
			return
		}

		if material.ID == "" {
			http.Error(w, "Missing material id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := update.UpdateMaterial(ctx, material); err != nil {
			log.Error("Ошибка обновления материала", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
