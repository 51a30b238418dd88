package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"drubez-planner/internal/storage"
)

// GetMaterials читает весь каталог. Состав микса и спецификация изделия
// лежат в JSON-колонках, kind назначается здесь — расчёт по именам больше
// не матчится.
func (s *Storage) GetMaterials(ctx context.Context) ([]storage.RawMaterial, error) {
	const op = "storage.mysql.materials.GetMaterials"

	stmt := `SELECT id, name, kind, box_weight_grams, palette_weight_kg, stock_palettes, components, derived
				FROM materials WHERE is_active = TRUE`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка выполнения запроса каталога %w", op, err)
	}

	defer rows.Close()

	var materials []storage.RawMaterial

	for rows.Next() {
		var m storage.RawMaterial
		var componentsJSON, derivedJSON sql.NullString

		err = rows.Scan(&m.ID, &m.Name, &m.Kind, &m.BoxWeightGrams, &m.PaletteWeightKg, &m.StockPalettes, &componentsJSON, &derivedJSON)
		if err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки каталога %w", op, err)
		}

		if m.Kind == storage.KindMix && componentsJSON.Valid {
			if err := json.Unmarshal([]byte(componentsJSON.String), &m.Components); err != nil {
				return nil, fmt.Errorf("%s: ошибка парсинга JSON состава микса '%s': %w", op, m.ID, err)
			}
		}
		if m.Kind == storage.KindDerived && derivedJSON.Valid {
			if err := json.Unmarshal([]byte(derivedJSON.String), &m.Derived); err != nil {
				return nil, fmt.Errorf("%s: ошибка парсинга JSON спецификации изделия '%s': %w", op, m.ID, err)
			}
		}

		materials = append(materials, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка чтения строк каталога %w", op, err)
	}

	return materials, nil
}

// GetMaterialByID — один материал; sql.ErrNoRows наверх не течёт, вызывающий
// получает nil и сам решает, что позиция без материала не считается.
func (s *Storage) GetMaterialByID(ctx context.Context, id string) (*storage.RawMaterial, error) {
	const op = "storage.mysql.materials.GetMaterialByID"

	stmt := `SELECT id, name, kind, box_weight_grams, palette_weight_kg, stock_palettes, components, derived
				FROM materials WHERE id = ? AND is_active = TRUE`

	var m storage.RawMaterial
	var componentsJSON, derivedJSON sql.NullString

	err := s.db.QueryRowContext(ctx, stmt, id).Scan(&m.ID, &m.Name, &m.Kind, &m.BoxWeightGrams, &m.PaletteWeightKg, &m.StockPalettes, &componentsJSON, &derivedJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if componentsJSON.Valid {
		if err := json.Unmarshal([]byte(componentsJSON.String), &m.Components); err != nil {
			return nil, fmt.Errorf("%s: ошибка парсинга JSON состава микса: %w", op, err)
		}
	}
	if derivedJSON.Valid {
		if err := json.Unmarshal([]byte(derivedJSON.String), &m.Derived); err != nil {
			return nil, fmt.Errorf("%s: ошибка парсинга JSON спецификации изделия: %w", op, err)
		}
	}

	return &m, nil
}

// UpdateMaterial перезаписывает карточку материала из админки.
func (s *Storage) UpdateMaterial(ctx context.Context, m storage.RawMaterial) error {
	const op = "storage.mysql.materials.UpdateMaterial"

	componentsJSON, err := json.Marshal(m.Components)
	if err != nil {
		return fmt.Errorf("%s: сериализация состава: %w", op, err)
	}
	derivedJSON, err := json.Marshal(m.Derived)
	if err != nil {
		return fmt.Errorf("%s: сериализация спецификации: %w", op, err)
	}

	stmt := `UPDATE materials SET name = ?, kind = ?, box_weight_grams = ?, palette_weight_kg = ?,
				stock_palettes = ?, components = ?, derived = ? WHERE id = ?`

	_, err = s.db.ExecContext(ctx, stmt, m.Name, m.Kind, m.BoxWeightGrams, m.PaletteWeightKg,
		m.StockPalettes, string(componentsJSON), string(derivedJSON), m.ID)
	if err != nil {
		return fmt.Errorf("%s: ошибка обновления материала '%s': %w", op, m.ID, err)
	}

	return nil
}
