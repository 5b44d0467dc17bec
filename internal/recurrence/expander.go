package recurrence

import (
	"fmt"
	"time"

	"github.com/riquelima/SandyPetShop-BookingService/internal/civiltime"
	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
)

// Expander разворачивает правило повторения в конечную упорядоченную
// последовательность инстантов будущих записей.
//
// Разворачивание привязано к явной опорной дате (выбранной администратором),
// а не к "текущему моменту": абонемент может начинаться с будущей даты.
// Вызывающая сторона при ОБНОВЛЕНИИ существующего абонемента передает
// опорной датой "сейчас", чтобы не регенерировать уже прошедшие вхождения -
// оба варианта вызова являются частью контракта.
type Expander struct {
	clock *civiltime.Clock
}

// NewExpander создает движок разворачивания правил
func NewExpander(clock *civiltime.Clock) *Expander {
	return &Expander{clock: clock}
}

// Expand возвращает вхождения правила начиная с reference:
// weekly - 4 вхождения с шагом 7 дней, bi-weekly - 2 с шагом 15 дней,
// monthly - 1 вхождение с переносом на следующий месяц при необходимости
func (e *Expander) Expand(rule domain.RecurrenceRule, reference time.Time) ([]civiltime.Instant, error) {
	if err := validateRule(rule); err != nil {
		return nil, err
	}

	// Час вне рабочих часов не дает ни одного допустимого вхождения
	if !domain.IsWorkingHour(rule.HourOfDay, false) {
		return nil, fmt.Errorf("%w: hour %d is outside working hours", ErrNoOccurrences, rule.HourOfDay)
	}

	switch rule.Type {
	case domain.RecurrenceWeekly, domain.RecurrenceBiWeekly:
		return e.expandPeriodic(rule, reference), nil
	case domain.RecurrenceMonthly:
		return e.expandMonthly(rule, reference), nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidRule, rule.Type)
	}
}

// expandPeriodic разворачивает weekly/bi-weekly правило
func (e *Expander) expandPeriodic(rule domain.RecurrenceRule, reference time.Time) []civiltime.Instant {
	ref := e.clock.Project(reference)

	// Переводим день недели на шкалу 1..7 с понедельником в начале
	refWeekday := ref.Weekday
	if refWeekday == 0 {
		refWeekday = 7
	}

	// delta = 0 означает, что первое вхождение - сама опорная дата:
	// опорная дата - граница начала, а не "сейчас", прошёл ли уже час
	// правила в этот день - не проверяется
	delta := (rule.DayToken - refWeekday + 7) % 7

	first := e.clock.FromCivil(ref.Year, ref.Month, ref.Day+delta, rule.HourOfDay, 0, 0)

	count := rule.Type.OccurrenceCount()
	step := rule.Type.IntervalDays()

	occurrences := make([]civiltime.Instant, 0, count)
	for k := 0; k < count; k++ {
		occurrences = append(occurrences, e.clock.ShiftDays(first, k*step))
	}
	return occurrences
}

// expandMonthly разворачивает monthly правило: дата опорного месяца с днём
// DayToken, либо следующий месяц, если эта дата уже позади опорной
func (e *Expander) expandMonthly(rule domain.RecurrenceRule, reference time.Time) []civiltime.Instant {
	ref := e.clock.Project(reference)

	candidate := e.clock.FromCivil(ref.Year, ref.Month, rule.DayToken, rule.HourOfDay, 0, 0)
	refDate := e.clock.FromCivil(ref.Year, ref.Month, ref.Day, 0, 0, 0)

	// Сравнение на гранулярности даты: вхождение в сам опорный день допустимо
	if candidate.UTC.Before(refDate.UTC) {
		candidate = e.clock.FromCivil(ref.Year, ref.Month+1, rule.DayToken, rule.HourOfDay, 0, 0)
	}

	return []civiltime.Instant{candidate}
}

func validateRule(rule domain.RecurrenceRule) error {
	if !rule.Type.IsValid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidRule, rule.Type)
	}

	switch rule.Type {
	case domain.RecurrenceWeekly, domain.RecurrenceBiWeekly:
		if rule.DayToken < domain.MinWeekDayToken || rule.DayToken > domain.MaxWeekDayToken {
			return fmt.Errorf("%w: weekday token %d out of range [%d..%d]",
				ErrInvalidRule, rule.DayToken, domain.MinWeekDayToken, domain.MaxWeekDayToken)
		}
	case domain.RecurrenceMonthly:
		if rule.DayToken < domain.MinMonthDay || rule.DayToken > domain.MaxMonthDay {
			return fmt.Errorf("%w: month day %d out of range [%d..%d]",
				ErrInvalidRule, rule.DayToken, domain.MinMonthDay, domain.MaxMonthDay)
		}
	}
	return nil
}
