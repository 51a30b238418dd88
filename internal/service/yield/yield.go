package yield

import (
	"drubez-planner/internal/constants"
	"drubez-planner/internal/service/catalog"
	"drubez-planner/internal/storage"
)

// PartResult — одна строка отчёта по выходу.
type PartResult struct {
	PartKey    string  `json:"part_key"`
	Name       string  `json:"name"`
	ProducedKg float64 `json:"produced_kg"`
	NeededKg   float64 `json:"needed_kg"`
	// Difference = Produced − Needed; плюс — излишек, минус — нехватка.
	DifferenceKg float64 `json:"difference_kg"`
	Overridden   bool    `json:"overridden"`
}

// ThighBreakdown — из чего складывается потребность в целом бедре.
type ThighBreakdown struct {
	DirectKg       float64 `json:"direct_kg"`
	FromQuartersKg float64 `json:"from_quarters_kg"`
	FromSplitKg    float64 `json:"from_split_kg"`
	FromMaykawaKg  float64 `json:"from_maykawa_kg"`
	TotalNeededKg  float64 `json:"total_needed_kg"`
	ProducedKg     float64 `json:"produced_kg"`
	UpperKg        float64 `json:"upper_kg"`
	LowerKg        float64 `json:"lower_kg"`
}

type Result struct {
	Parts []PartResult   `json:"parts"`
	Thigh ThighBreakdown `json:"thigh"`
}

// Input — всё, что нужно расчёту на один день. Движок ничего не читает сам
// и ничего не мутирует.
type Input struct {
	Date          string
	Flocks        []storage.Flock
	TotalWeightKg float64
	// Demand — кг по материалам из разложения заказов.
	Demand map[string]float64
	// Settings — процент выхода по частям.
	Settings storage.YieldSettings
	Split    storage.ThighSplit
	// Overrides — ручные корректировки на дату, ключ — часть.
	Overrides map[string]float64
	// PartStock — склад по частям (сейчас только řízky).
	PartStock map[string]float64
}

// ComputeYield считает выход по частям и сравнивает с потребностью.
// Все деления защищены проверкой на положительность — нулевой процент
// обнуляет зависимую величину, а не даёт Inf/NaN.
func ComputeYield(in Input, cat *catalog.Catalog) Result {
	produced := baselineProduced(in)

	// Čtvrtky съедают бедро и скелет в фиксированной пропорции.
	quarterDemand := in.Demand[constants.PartQuarter]
	thighFromQuarters := 0.0
	if quarterDemand > 0 {
		thighFromQuarters = quarterDemand * constants.QuarterThighRatio
		produced[constants.PartFrame] -= quarterDemand * constants.QuarterFrameRatio
	}

	// Řízky: сначала гасим складом, остаток переводим в грудку.
	breastFromSchnitzel := 0.0
	schnitzelNeed := in.Demand[constants.PartSchnitzel]
	if stock := in.PartStock[constants.PartSchnitzel]; stock > 0 {
		schnitzelNeed -= stock
		if schnitzelNeed < 0 {
			schnitzelNeed = 0
		}
	}
	if schnitzelNeed > 0 && constants.SchnitzelYield > 0 {
		breastFromSchnitzel = schnitzelNeed / constants.SchnitzelYield
	}

	// Верх/низ бедра: обратный пересчёт в целое бедро. Узкое место — та
	// половина, которой нужно больше целого.
	thighFromSplit := 0.0
	upperDemand := in.Demand[constants.PartUpperThigh]
	lowerDemand := in.Demand[constants.PartLowerThigh]
	if (upperDemand > 0 || lowerDemand > 0) && in.Split.UpperPercent > 0 && in.Split.LowerPercent > 0 {
		fromUpper := upperDemand / (in.Split.UpperPercent / 100)
		fromLower := lowerDemand / (in.Split.LowerPercent / 100)
		thighFromSplit = fromUpper
		if fromLower > thighFromSplit {
			thighFromSplit = fromLower
		}
	}

	// Майкава: стейк назад в целое бедро через выход после кости и кожи.
	thighFromMaykawa := 0.0
	if steak := in.Demand[constants.PartSteak]; steak > 0 && constants.MaykawaYield > 0 {
		thighFromMaykawa = steak / constants.MaykawaYield
	}

	thigh := ThighBreakdown{
		DirectKg:       in.Demand[constants.PartThigh],
		FromQuartersKg: thighFromQuarters,
		FromSplitKg:    thighFromSplit,
		FromMaykawaKg:  thighFromMaykawa,
		ProducedKg:     produced[constants.PartThigh],
		UpperKg:        produced[constants.PartThigh] * in.Split.UpperPercent / 100,
		LowerKg:        produced[constants.PartThigh] * in.Split.LowerPercent / 100,
	}
	thigh.TotalNeededKg = thigh.DirectKg + thigh.FromQuartersKg + thigh.FromSplitKg + thigh.FromMaykawaKg

	var parts []PartResult
	for _, key := range constants.YieldParts {
		needed := partNeeded(key, in, cat)

		switch key {
		case constants.PartBreast:
			needed += breastFromSchnitzel
		case constants.PartThigh:
			needed = thigh.TotalNeededKg
		case constants.PartUpperThigh:
			if _, ok := in.Overrides[key]; !ok {
				produced[key] = thigh.UpperKg
			}
		case constants.PartLowerThigh:
			if _, ok := in.Overrides[key]; !ok {
				produced[key] = thigh.LowerKg
			}
		case constants.PartTail:
			// Prdele показываем только когда есть что показать.
			if produced[key] == 0 && needed == 0 {
				continue
			}
		}

		_, overridden := in.Overrides[key]
		parts = append(parts, PartResult{
			PartKey:      key,
			Name:         partName(key, cat),
			ProducedKg:   produced[key],
			NeededKg:     needed,
			DifferenceKg: produced[key] - needed,
			Overridden:   overridden,
		})
	}

	return Result{Parts: parts, Thigh: thigh}
}

// baselineProduced — базовый выход: ручная корректировка побеждает процент.
func baselineProduced(in Input) map[string]float64 {
	produced := make(map[string]float64, len(constants.YieldParts))
	for _, key := range constants.YieldParts {
		if kg, ok := in.Overrides[key]; ok {
			produced[key] = kg
			continue
		}
		if key == constants.PartTail {
			produced[key] = tailProduced(in.Flocks)
			continue
		}
		produced[key] = in.TotalWeightKg * in.Settings[key] / 100
	}
	return produced
}

// tailProduced — prdele режутся только со стад в весовом диапазоне,
// по фиксированному весу с птицы.
func tailProduced(flocks []storage.Flock) float64 {
	var kg float64
	for _, f := range flocks {
		if f.AvgWeightKg >= constants.TailMinAvgWeightKg && f.AvgWeightKg <= constants.TailMaxAvgWeightKg {
			kg += float64(f.Count) * constants.TailPerBirdKg
		}
	}
	return kg
}

// partNeeded — прямая потребность части. Часть без материала в каталоге
// остаётся в отчёте с needed=0 (живёт только на базовом выходе).
func partNeeded(key string, in Input, cat *catalog.Catalog) float64 {
	if _, ok := cat.Resolve(key); !ok {
		return 0
	}
	return in.Demand[key]
}

func partName(key string, cat *catalog.Catalog) string {
	if m, ok := cat.Resolve(key); ok {
		return m.Name
	}
	return key
}
