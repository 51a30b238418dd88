package storage

// Виды материала. Kind назначается при загрузке каталога из базы, по нему
// выбирается способ разложения позиции заказа.
const (
	KindBase    = "base"
	KindMix     = "mix"
	KindDerived = "derived"
)

type RawMaterial struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Kind            string  `json:"kind"`
	BoxWeightGrams  float64 `json:"box_weight_grams"`
	PaletteWeightKg float64 `json:"palette_weight_kg"`
	StockPalettes   float64 `json:"stock_palettes"`

	// Kind == KindMix
	Components []MixComponent `json:"components,omitempty"`

	// Kind == KindDerived
	Derived *DerivedSpec `json:"derived,omitempty"`
}

type MixComponent struct {
	MaterialID string  `json:"material_id"`
	Percent    float64 `json:"percent"`
}

// DerivedSpec — готовое изделие из одного базового материала. Маринад — добавка
// к готовому весу, потеря — усушка при пересчёте обратно в сырьё.
type DerivedSpec struct {
	BaseMaterialID  string  `json:"base_material_id"`
	MarinadePercent float64 `json:"marinade_percent"`
	LossPercent     float64 `json:"loss_percent"`
	OrderInTrays    bool    `json:"order_in_trays"`
	TrayWeightGrams float64 `json:"tray_weight_grams"`
}

// PartStock — склад по части на дату (кг). Сейчас используется только для
// řízky, но ключ общий.
type PartStock struct {
	Date    string  `json:"date"`
	PartKey string  `json:"part_key"`
	Kg      float64 `json:"kg"`
}
