package constants

// Стабильные ключи частей. Раньше расчёт узнавал часть по названию материала
// (UPPER-case сравнение с "STEHNA" и т.п.) и переименование в каталоге тихо
// ломало расчёт. Теперь ключ назначается один раз при загрузке каталога.
const (
	PartBreast     = "prsa"
	PartSchnitzel  = "rizky"
	PartThigh      = "stehna"
	PartUpperThigh = "horni-stehna"
	PartLowerThigh = "dolni-stehna"
	PartQuarter    = "ctvrtky"
	PartFrame      = "skelety"
	PartWing       = "kridla"
	PartSteak      = "steak"
	PartTail       = "prdele"
	PartLiver      = "jatra"
	PartGizzard    = "zaludky"
	PartHeart      = "srdce"
	PartNeck       = "krky"
)

// YieldParts — фиксированный порядок частей в отчёте по выходу.
var YieldParts = []string{
	PartBreast,
	PartSchnitzel,
	PartThigh,
	PartUpperThigh,
	PartLowerThigh,
	PartQuarter,
	PartFrame,
	PartWing,
	PartSteak,
	PartTail,
	PartLiver,
	PartGizzard,
	PartHeart,
	PartNeck,
}
