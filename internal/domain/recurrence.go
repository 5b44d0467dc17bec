package domain

// RecurrenceType тип повторения абонемента
type RecurrenceType string

const (
	RecurrenceWeekly   RecurrenceType = "weekly"
	RecurrenceBiWeekly RecurrenceType = "bi-weekly"
	RecurrenceMonthly  RecurrenceType = "monthly"
)

// IsValid проверяет, что тип повторения известен системе
func (t RecurrenceType) IsValid() bool {
	switch t {
	case RecurrenceWeekly, RecurrenceBiWeekly, RecurrenceMonthly:
		return true
	default:
		return false
	}
}

// OccurrenceCount возвращает количество генерируемых вхождений для типа
func (t RecurrenceType) OccurrenceCount() int {
	switch t {
	case RecurrenceWeekly:
		return 4
	case RecurrenceBiWeekly:
		return 2
	case RecurrenceMonthly:
		return 1
	default:
		return 0
	}
}

// IntervalDays возвращает шаг между вхождениями в днях
// Для monthly не используется (шаг - календарный месяц)
func (t RecurrenceType) IntervalDays() int {
	switch t {
	case RecurrenceWeekly:
		return 7
	case RecurrenceBiWeekly:
		return 15
	default:
		return 0
	}
}

// RecurrenceRule правило повторения
// DayToken - день недели (1=понедельник..5=пятница) для weekly/bi-weekly
// или день месяца (1-31) для monthly
type RecurrenceRule struct {
	Type      RecurrenceType
	DayToken  int
	HourOfDay int
}
