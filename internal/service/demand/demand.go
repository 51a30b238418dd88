package demand

import (
	"drubez-planner/internal/constants"
	"drubez-planner/internal/service/catalog"
	"drubez-planner/internal/storage"
)

// WeightTable — вес коробки с цепочкой фолбэков:
// дневной override → (клиент, материал, вариант) → (клиент, материал, VL) →
// общий дефолт 10 кг.
type WeightTable struct {
	rows      map[weightKey]float64
	overrides map[overrideKey]float64
}

type weightKey struct {
	customerID string
	materialID string
	variant    string
}

type overrideKey struct {
	date string
	weightKey
}

func NewWeightTable(rows []storage.BoxWeight, overrides []storage.BoxWeightOverride) *WeightTable {
	t := &WeightTable{
		rows:      make(map[weightKey]float64, len(rows)),
		overrides: make(map[overrideKey]float64, len(overrides)),
	}
	for _, r := range rows {
		t.rows[weightKey{r.CustomerID, r.MaterialID, r.Variant}] = r.Grams
	}
	for _, o := range overrides {
		t.overrides[overrideKey{o.Date, weightKey{o.CustomerID, o.MaterialID, o.Variant}}] = o.Grams
	}
	return t
}

func (t *WeightTable) PerBoxGrams(date, customerID, materialID, variant string) float64 {
	key := weightKey{customerID, materialID, variant}
	if g, ok := t.overrides[overrideKey{date, key}]; ok && g > 0 {
		return g
	}
	if g, ok := t.rows[key]; ok && g > 0 {
		return g
	}
	if g, ok := t.rows[weightKey{customerID, materialID, constants.DefaultVariant}]; ok && g > 0 {
		return g
	}
	return constants.DefaultBoxWeightGrams
}

type Options struct {
	// IgnoreCompleted — считать полный объём заказа, не вычитая сделанное.
	IgnoreCompleted bool
	// CustomerFilter — произвольный фильтр клиентов (nil = все). Политика
	// вроде "без KFC" живёт у вызывающего, не здесь.
	CustomerFilter func(customerID string) bool
}

// ComputeDemand раскладывает заказы дня в кг по базовым материалам.
// Чистая суммация: порядок заказов не важен, округление — забота отображения.
// Позиции с неизвестным материалом молча пропускаются.
func ComputeDemand(date string, orders []storage.Order, cat *catalog.Catalog, weights *WeightTable, opts Options) map[string]float64 {
	acc := make(map[string]float64)

	for _, order := range orders {
		if opts.CustomerFilter != nil && !opts.CustomerFilter(order.CustomerID) {
			continue
		}

		for _, item := range order.Items {
			if !item.IsActive {
				continue
			}

			remaining := item.Remaining(opts.IgnoreCompleted)
			if remaining <= 0 {
				continue
			}

			material, ok := cat.Resolve(item.MaterialID)
			if !ok {
				continue
			}

			totalKg := remaining * perBoxGrams(date, order.CustomerID, item, material, weights) / 1000

			switch material.Kind {
			case storage.KindBase:
				acc[material.ID] += totalKg

			case storage.KindMix:
				components := material.Components
				if len(item.RatioOverride) > 0 {
					components = item.RatioOverride
				}
				// Компоненты микса считаются базовыми, микс в миксе не
				// раскладывается.
				for _, comp := range components {
					acc[comp.MaterialID] += totalKg * comp.Percent / 100
				}

			case storage.KindDerived:
				if material.Derived == nil {
					continue
				}
				acc[material.Derived.BaseMaterialID] += rawWeightKg(totalKg, material.Derived)
			}
		}
	}

	return acc
}

// rawWeightKg — из готового веса в сырьё: сначала снимаем маринад (добавка),
// потом компенсируем усушку.
func rawWeightKg(totalKg float64, spec *storage.DerivedSpec) float64 {
	meat := totalKg
	if spec.MarinadePercent > 0 {
		meat = totalKg * (1 - spec.MarinadePercent/100)
	}
	if spec.LossPercent > 0 && spec.LossPercent < 100 {
		return meat / (1 - spec.LossPercent/100)
	}
	return meat
}

func perBoxGrams(date, customerID string, item storage.OrderItem, material *storage.RawMaterial, weights *WeightTable) float64 {
	// Изделия в лотках: count — это лотки, вес берём прямо из спецификации.
	if material.Kind == storage.KindDerived && material.Derived != nil && material.Derived.OrderInTrays {
		return material.Derived.TrayWeightGrams
	}
	return weights.PerBoxGrams(date, customerID, item.MaterialID, item.Variant)
}
