package create_subscription

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_subscription: invalid input data")

	// ErrInvalidRecurrence возвращается при некорректном правиле повторения
	ErrInvalidRecurrence = errors.New("create_subscription: invalid recurrence rule")

	// ErrDateInPast возвращается, когда опорная дата начала уже прошла
	ErrDateInPast = errors.New("create_subscription: start date is in the past")

	// ErrOutsideWorkingHours возвращается, когда час правила вне рабочих часов салона
	ErrOutsideWorkingHours = errors.New("create_subscription: hour is outside working hours")

	// ErrSlotNotAvailable возвращается, когда хотя бы одно вхождение попадает
	// на исчерпанный слот - партия отклоняется целиком
	ErrSlotNotAvailable = errors.New("create_subscription: slot is not available")

	// ErrDuplicateBooking возвращается, когда хотя бы одно вхождение дублирует
	// существующую запись пары (питомец, владелец)
	ErrDuplicateBooking = errors.New("create_subscription: pet already booked for this slot")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_subscription: internal error")
)
