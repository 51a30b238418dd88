package constants

// Константы расчёта. Раньше эти числа были рассыпаны по вызовам — менять их
// можно только здесь, это изменение конфигурации, а не кода.
const (
	// DefaultBoxWeightGrams — вес коробки, когда у клиента нет своей таблицы.
	DefaultBoxWeightGrams = 10000.0

	// DefaultVariant — фолбэк-вариант коробки в таблице весов.
	DefaultVariant = "VL"

	// SchnitzelYield — выход řízky из кг грудки.
	SchnitzelYield = 0.70

	// QuarterThighRatio / QuarterFrameRatio — состав čtvrtky: доля бедра
	// (уходит в потребность stehna) и доля скелета (съедается из выхода skelety).
	QuarterThighRatio = 0.727
	QuarterFrameRatio = 0.273

	// MaykawaYield — выход стейка из целого бедра после кости и кожи.
	MaykawaYield = 0.55

	// PauseMinutes — фиксированная длительность перерыва.
	PauseMinutes = 30.0

	// TailPerBirdKg — prdele: фиксированный вес с птицы.
	TailPerBirdKg = 0.030
	// TailMinAvgWeightKg / TailMaxAvgWeightKg — prdele дают только стада
	// со средним весом в этом диапазоне.
	TailMinAvgWeightKg = 0.8
	TailMaxAvgWeightKg = 1.45
)

// Автоперерыв по дню недели: понедельник 09:30, вт–пт 11:30, выходные без
// перерыва (ключа нет).
var AutoPauseByWeekday = map[int]string{
	1: "09:30",
	2: "11:30",
	3: "11:30",
	4: "11:30",
	5: "11:30",
}
