package recurrence

import "errors"

var (
	// ErrInvalidRule возвращается при некорректном правиле повторения
	// (неизвестный тип или день вне допустимого диапазона)
	ErrInvalidRule = errors.New("recurrence: invalid rule")

	// ErrNoOccurrences возвращается, когда правило не дало ни одного допустимого
	// вхождения (час вне опубликованных рабочих часов)
	ErrNoOccurrences = errors.New("recurrence: rule produced no valid occurrences")
)
