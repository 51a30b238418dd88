package storage

type Order struct {
	ID         string      `json:"id"`
	Date       string      `json:"date"`
	CustomerID string      `json:"customer_id"`
	Customer   string      `json:"customer"`
	Items      []OrderItem `json:"items"`
}

type OrderItem struct {
	ID         string  `json:"id"`
	MaterialID string  `json:"material_id"`
	Variant    string  `json:"variant"`
	BoxCount   float64 `json:"box_count"`
	DoneCount  float64 `json:"done_count"`
	IsActive   bool    `json:"is_active"`

	// RatioOverride заменяет состав микса только для этой позиции.
	RatioOverride []MixComponent `json:"ratio_override,omitempty"`
}

// Remaining — сколько коробок осталось сделать. ignoreCompleted — для
// планирования вперёд, когда выполненное не вычитается.
func (i OrderItem) Remaining(ignoreCompleted bool) float64 {
	if ignoreCompleted {
		return i.BoxCount
	}
	if i.BoxCount <= i.DoneCount {
		return 0
	}
	return i.BoxCount - i.DoneCount
}

// BoxWeight — строка таблицы весов коробки (клиент, материал, вариант).
type BoxWeight struct {
	CustomerID string  `json:"customer_id"`
	MaterialID string  `json:"material_id"`
	Variant    string  `json:"variant"`
	Grams      float64 `json:"grams"`
}

// BoxWeightOverride — временный вес на один день, перекрывает таблицу.
type BoxWeightOverride struct {
	Date string `json:"date"`
	BoxWeight
}
