package storage

// YieldSettings — ожидаемый выход по частям, процент от общего веса.
// Сумма должна быть <=100, но это не проверяется — см. валидацию на фронте.
type YieldSettings map[string]float64

// ThighSplit — как кг целого бедра делится на верх/низ.
type ThighSplit struct {
	UpperPercent float64 `json:"upper_percent"`
	LowerPercent float64 `json:"lower_percent"`
}

// YieldOverride — ручная корректировка выхода на дату и часть. Если запись
// есть, она побеждает расчёт по проценту.
type YieldOverride struct {
	Date    string  `json:"date"`
	PartKey string  `json:"part_key"`
	Kg      float64 `json:"kg"`
}
