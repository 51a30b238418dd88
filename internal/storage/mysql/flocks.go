package mysql

import (
	"context"
	"fmt"

	"drubez-planner/internal/storage"
)

func (s *Storage) GetFlocks(ctx context.Context, date string) ([]storage.Flock, error) {
	const op = "storage.mysql.flocks.GetFlocks"

	stmt := `SELECT name, count, avg_weight_kg, deviation_percent FROM flocks WHERE date = ? ORDER BY sort`

	rows, err := s.db.QueryContext(ctx, stmt, date)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка выполнения запроса стад %w", op, err)
	}

	defer rows.Close()

	var flocks []storage.Flock

	for rows.Next() {
		var f storage.Flock

		err = rows.Scan(&f.Name, &f.Count, &f.AvgWeightKg, &f.DeviationPercent)
		if err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки стада %w", op, err)
		}

		flocks = append(flocks, f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка чтения строк стад %w", op, err)
	}

	return flocks, nil
}

// SaveFlocks перезаписывает список стад на дату целиком, порядок — порядок
// привоза, его задаёт фронт.
func (s *Storage) SaveFlocks(ctx context.Context, date string, flocks []storage.Flock) error {
	const op = "storage.mysql.flocks.SaveFlocks"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM flocks WHERE date = ?`, date); err != nil {
		return fmt.Errorf("%s: ошибка очистки стад: %w", op, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO flocks (date, name, count, avg_weight_kg, deviation_percent, sort)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%s: prepare statement: %w", op, err)
	}

	for i, f := range flocks {
		_, err = stmt.ExecContext(ctx, date, f.Name, f.Count, f.AvgWeightKg, f.DeviationPercent, i)
		if err != nil {
			return fmt.Errorf("%s: ошибка сохранения стада '%s': %w", op, f.Name, err)
		}
	}

	return tx.Commit()
}

func (s *Storage) GetEvents(ctx context.Context, date string) ([]storage.ProductionEvent, error) {
	const op = "storage.mysql.flocks.GetEvents"

	stmt := `SELECT kind, start_time, duration_minutes FROM production_events WHERE date = ? ORDER BY start_time`

	rows, err := s.db.QueryContext(ctx, stmt, date)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка выполнения запроса событий %w", op, err)
	}

	defer rows.Close()

	var events []storage.ProductionEvent

	for rows.Next() {
		var ev storage.ProductionEvent

		err = rows.Scan(&ev.Kind, &ev.StartTime, &ev.DurationMinutes)
		if err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки события %w", op, err)
		}

		events = append(events, ev)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка чтения строк событий %w", op, err)
	}

	return events, nil
}

func (s *Storage) SaveEvents(ctx context.Context, date string, events []storage.ProductionEvent) error {
	const op = "storage.mysql.flocks.SaveEvents"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM production_events WHERE date = ?`, date); err != nil {
		return fmt.Errorf("%s: ошибка очистки событий: %w", op, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO production_events (date, kind, start_time, duration_minutes) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%s: prepare statement: %w", op, err)
	}

	for _, ev := range events {
		_, err = stmt.ExecContext(ctx, date, ev.Kind, ev.StartTime, ev.DurationMinutes)
		if err != nil {
			return fmt.Errorf("%s: ошибка сохранения события: %w", op, err)
		}
	}

	return tx.Commit()
}
