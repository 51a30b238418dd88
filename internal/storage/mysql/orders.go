package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"drubez-planner/internal/storage"
)

func (s *Storage) GetOrdersByDate(ctx context.Context, date string) ([]storage.Order, error) {
	const op = "storage.mysql.orders.GetOrdersByDate"

	stmt := `SELECT o.id, o.date, o.customer_id, o.customer_name,
				i.id, i.material_id, i.variant, i.box_count, i.done_count, i.is_active, i.ratio_override
				FROM orders o
				LEFT JOIN order_items i ON i.order_id = o.id
				WHERE o.date = ?
				ORDER BY o.customer_name, i.id`

	rows, err := s.db.QueryContext(ctx, stmt, date)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка выполнения запроса заказов %w", op, err)
	}

	defer rows.Close()

	var orders []storage.Order
	index := make(map[string]int)

	for rows.Next() {
		var o storage.Order
		var itemID, materialID, variant, ratioJSON sql.NullString
		var boxCount, doneCount sql.NullFloat64
		var isActive sql.NullBool

		err = rows.Scan(&o.ID, &o.Date, &o.CustomerID, &o.Customer,
			&itemID, &materialID, &variant, &boxCount, &doneCount, &isActive, &ratioJSON)
		if err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки заказа %w", op, err)
		}

		pos, ok := index[o.ID]
		if !ok {
			pos = len(orders)
			index[o.ID] = pos
			orders = append(orders, o)
		}

		// Заказ без позиций тоже валиден (LEFT JOIN даёт NULL-позицию).
		if !itemID.Valid {
			continue
		}

		item := storage.OrderItem{
			ID:         itemID.String,
			MaterialID: materialID.String,
			Variant:    variant.String,
			BoxCount:   boxCount.Float64,
			DoneCount:  doneCount.Float64,
			IsActive:   isActive.Bool,
		}
		if ratioJSON.Valid && ratioJSON.String != "" {
			if err := json.Unmarshal([]byte(ratioJSON.String), &item.RatioOverride); err != nil {
				return nil, fmt.Errorf("%s: ошибка парсинга JSON ratio_override позиции '%s': %w", op, item.ID, err)
			}
		}

		orders[pos].Items = append(orders[pos].Items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка чтения строк заказов %w", op, err)
	}

	return orders, nil
}

// SaveOrder пишет заказ целиком: шапку и позиции в одной транзакции.
// Пустые ID добиваются uuid — фронт новые сущности шлёт без идентификаторов.
func (s *Storage) SaveOrder(ctx context.Context, order storage.Order) (string, error) {
	const op = "storage.mysql.orders.SaveOrder"

	if order.ID == "" {
		order.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer tx.Rollback()

	stmt := `INSERT INTO orders (id, date, customer_id, customer_name) VALUES (?, ?, ?, ?)
				ON DUPLICATE KEY UPDATE customer_id = VALUES(customer_id), customer_name = VALUES(customer_name)`

	_, err = tx.ExecContext(ctx, stmt, order.ID, order.Date, order.CustomerID, order.Customer)
	if err != nil {
		return "", fmt.Errorf("%s: ошибка сохранения шапки заказа: %w", op, err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = ?`, order.ID); err != nil {
		return "", fmt.Errorf("%s: ошибка очистки позиций заказа: %w", op, err)
	}

	itemStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO order_items (id, order_id, material_id, variant, box_count, done_count, is_active, ratio_override)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", fmt.Errorf("%s: prepare statement: %w", op, err)
	}

	for _, item := range order.Items {
		if item.ID == "" {
			item.ID = uuid.NewString()
		}

		var ratioJSON []byte
		if len(item.RatioOverride) > 0 {
			ratioJSON, err = json.Marshal(item.RatioOverride)
			if err != nil {
				return "", fmt.Errorf("%s: сериализация ratio_override: %w", op, err)
			}
		}

		_, err = itemStmt.ExecContext(ctx, item.ID, order.ID, item.MaterialID, item.Variant,
			item.BoxCount, item.DoneCount, item.IsActive, nullableString(ratioJSON))
		if err != nil {
			return "", fmt.Errorf("%s: ошибка сохранения позиции заказа: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("%s: commit: %w", op, err)
	}

	return order.ID, nil
}

// UpdateItemDone двигает выполненное количество по позиции.
func (s *Storage) UpdateItemDone(ctx context.Context, itemID string, doneCount float64) error {
	const op = "storage.mysql.orders.UpdateItemDone"

	stmt := `UPDATE order_items SET done_count = ? WHERE id = ?`

	res, err := s.db.ExecContext(ctx, stmt, doneCount, itemID)
	if err != nil {
		return fmt.Errorf("%s: ошибка обновления позиции '%s': %w", op, itemID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: позиция '%s' не найдена", op, itemID)
	}

	return nil
}

func nullableString(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
