package domain

// Рабочие часы салона (гражданское время UTC-3)
// 13:00 - обеденный перерыв, записи на этот час не принимаются
var WorkingHours = []int{9, 10, 11, 12, 14, 15, 16, 17}

// Рабочие часы ознакомительных визитов (creche/hotel) - без последнего слота
var VisitWorkingHours = []int{9, 10, 11, 12, 14, 15, 16}

// LunchHour обеденный перерыв
const LunchHour = 13

// Default значения конфигурации движка бронирования
const (
	// DefaultSlotCapacity лимит одновременных записей на один слот (два грумера)
	DefaultSlotCapacity = 2

	// DefaultPackageDiscount фиксированная абонементная скидка с каждой единицы услуги
	DefaultPackageDiscount = 10.0

	// DefaultUTCOffsetHours фиксированное смещение гражданского календаря (UTC-3, без DST)
	DefaultUTCOffsetHours = -3
)

// Ограничения валидации
const (
	MaxNotesLength  = 500
	MinMonthDay     = 1
	MaxMonthDay     = 31
	MinWeekDayToken = 1 // понедельник
	MaxWeekDayToken = 5 // пятница
)

// Форматы даты и времени
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// IsWorkingHour проверяет, входит ли час в опубликованные рабочие часы
// Для наборов из одних визитов действует сокращённое расписание
func IsWorkingHour(hour int, visitOnly bool) bool {
	hours := WorkingHours
	if visitOnly {
		hours = VisitWorkingHours
	}
	for _, h := range hours {
		if h == hour {
			return true
		}
	}
	return false
}
