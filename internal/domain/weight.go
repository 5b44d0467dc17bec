package domain

// WeightClass весовая категория питомца, определяющая строку тарифной таблицы
type WeightClass string

const (
	WeightUpTo5  WeightClass = "UP_TO_5"
	WeightKg10   WeightClass = "KG_10"
	WeightKg15   WeightClass = "KG_15"
	WeightKg20   WeightClass = "KG_20"
	WeightKg25   WeightClass = "KG_25"
	WeightKg30   WeightClass = "KG_30"
	WeightOver30 WeightClass = "OVER_30"
)

// WeightClasses все весовые категории в порядке возрастания
var WeightClasses = []WeightClass{
	WeightUpTo5,
	WeightKg10,
	WeightKg15,
	WeightKg20,
	WeightKg25,
	WeightKg30,
	WeightOver30,
}

// IsValid проверяет, что весовая категория известна системе
func (w WeightClass) IsValid() bool {
	for _, known := range WeightClasses {
		if w == known {
			return true
		}
	}
	return false
}
