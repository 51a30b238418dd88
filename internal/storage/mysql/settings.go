package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"drubez-planner/internal/storage"
)

func (s *Storage) GetYieldSettings(ctx context.Context) (storage.YieldSettings, error) {
	const op = "storage.mysql.settings.GetYieldSettings"

	stmt := `SELECT part_key, percent FROM yield_settings`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка выполнения запроса настроек выхода %w", op, err)
	}

	defer rows.Close()

	settings := storage.YieldSettings{}

	for rows.Next() {
		var key string
		var percent float64

		if err = rows.Scan(&key, &percent); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки настроек %w", op, err)
		}

		settings[key] = percent
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка чтения строк настроек %w", op, err)
	}

	return settings, nil
}

func (s *Storage) UpdateYieldSettings(ctx context.Context, settings storage.YieldSettings) error {
	const op = "storage.mysql.settings.UpdateYieldSettings"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO yield_settings (part_key, percent) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE percent = VALUES(percent)
	`)
	if err != nil {
		return fmt.Errorf("%s: prepare statement: %w", op, err)
	}

	for key, percent := range settings {
		if _, err = stmt.ExecContext(ctx, key, percent); err != nil {
			return fmt.Errorf("%s: ошибка сохранения процента '%s': %w", op, key, err)
		}
	}

	return tx.Commit()
}

// GetThighSplit — деление бедра хранится одной строкой; пустая таблица даёт
// нули, расчёт на нулях просто обнуляет пересчёт верх/низ.
func (s *Storage) GetThighSplit(ctx context.Context) (storage.ThighSplit, error) {
	const op = "storage.mysql.settings.GetThighSplit"

	stmt := `SELECT upper_percent, lower_percent FROM thigh_split LIMIT 1`

	var split storage.ThighSplit

	err := s.db.QueryRowContext(ctx, stmt).Scan(&split.UpperPercent, &split.LowerPercent)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ThighSplit{}, nil
		}
		return storage.ThighSplit{}, fmt.Errorf("%s: %w", op, err)
	}

	return split, nil
}

func (s *Storage) UpdateThighSplit(ctx context.Context, split storage.ThighSplit) error {
	const op = "storage.mysql.settings.UpdateThighSplit"

	stmt := `UPDATE thigh_split SET upper_percent = ?, lower_percent = ?`

	if _, err := s.db.ExecContext(ctx, stmt, split.UpperPercent, split.LowerPercent); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetBoxWeights(ctx context.Context) ([]storage.BoxWeight, error) {
	const op = "storage.mysql.settings.GetBoxWeights"

	stmt := `SELECT customer_id, material_id, variant, grams FROM box_weights`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка выполнения запроса таблицы весов %w", op, err)
	}

	defer rows.Close()

	var weights []storage.BoxWeight

	for rows.Next() {
		var w storage.BoxWeight

		if err = rows.Scan(&w.CustomerID, &w.MaterialID, &w.Variant, &w.Grams); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки весов %w", op, err)
		}

		weights = append(weights, w)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка чтения строк весов %w", op, err)
	}

	return weights, nil
}

func (s *Storage) UpsertBoxWeight(ctx context.Context, w storage.BoxWeight) error {
	const op = "storage.mysql.settings.UpsertBoxWeight"

	stmt := `INSERT INTO box_weights (customer_id, material_id, variant, grams) VALUES (?, ?, ?, ?)
				ON DUPLICATE KEY UPDATE grams = VALUES(grams)`

	if _, err := s.db.ExecContext(ctx, stmt, w.CustomerID, w.MaterialID, w.Variant, w.Grams); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetBoxWeightOverrides(ctx context.Context, date string) ([]storage.BoxWeightOverride, error) {
	const op = "storage.mysql.settings.GetBoxWeightOverrides"

	stmt := `SELECT date, customer_id, material_id, variant, grams FROM box_weight_overrides WHERE date = ?`

	rows, err := s.db.QueryContext(ctx, stmt, date)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка выполнения запроса дневных весов %w", op, err)
	}

	defer rows.Close()

	var overrides []storage.BoxWeightOverride

	for rows.Next() {
		var o storage.BoxWeightOverride

		if err = rows.Scan(&o.Date, &o.CustomerID, &o.MaterialID, &o.Variant, &o.Grams); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки дневных весов %w", op, err)
		}

		overrides = append(overrides, o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка чтения строк дневных весов %w", op, err)
	}

	return overrides, nil
}

func (s *Storage) GetYieldOverrides(ctx context.Context, date string) ([]storage.YieldOverride, error) {
	const op = "storage.mysql.settings.GetYieldOverrides"

	stmt := `SELECT date, part_key, kg FROM yield_overrides WHERE date = ?`

	rows, err := s.db.QueryContext(ctx, stmt, date)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка выполнения запроса корректировок %w", op, err)
	}

	defer rows.Close()

	var overrides []storage.YieldOverride

	for rows.Next() {
		var o storage.YieldOverride

		if err = rows.Scan(&o.Date, &o.PartKey, &o.Kg); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки корректировки %w", op, err)
		}

		overrides = append(overrides, o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка чтения строк корректировок %w", op, err)
	}

	return overrides, nil
}

func (s *Storage) UpsertYieldOverride(ctx context.Context, o storage.YieldOverride) error {
	const op = "storage.mysql.settings.UpsertYieldOverride"

	stmt := `INSERT INTO yield_overrides (date, part_key, kg) VALUES (?, ?, ?)
				ON DUPLICATE KEY UPDATE kg = VALUES(kg)`

	if _, err := s.db.ExecContext(ctx, stmt, o.Date, o.PartKey, o.Kg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetPartStock(ctx context.Context, date string) ([]storage.PartStock, error) {
	const op = "storage.mysql.settings.GetPartStock"

	stmt := `SELECT date, part_key, kg FROM part_stock WHERE date = ?`

	rows, err := s.db.QueryContext(ctx, stmt, date)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка выполнения запроса склада %w", op, err)
	}

	defer rows.Close()

	var stock []storage.PartStock

	for rows.Next() {
		var ps storage.PartStock

		if err = rows.Scan(&ps.Date, &ps.PartKey, &ps.Kg); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки склада %w", op, err)
		}

		stock = append(stock, ps)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка чтения строк склада %w", op, err)
	}

	return stock, nil
}
