package update_subscription

import "errors"

var (
	// ErrSubscriptionNotFound возвращается, когда абонемент не найден
	ErrSubscriptionNotFound = errors.New("update_subscription: subscription not found")

	// ErrSubscriptionInactive возвращается при попытке обновить отмененный абонемент
	ErrSubscriptionInactive = errors.New("update_subscription: subscription is not active")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_subscription: invalid input data")

	// ErrInvalidRecurrence возвращается при некорректном правиле повторения
	ErrInvalidRecurrence = errors.New("update_subscription: invalid recurrence rule")

	// ErrOutsideWorkingHours возвращается, когда час правила вне рабочих часов салона
	ErrOutsideWorkingHours = errors.New("update_subscription: hour is outside working hours")

	// ErrSlotNotAvailable возвращается, когда хотя бы одно регенерируемое вхождение
	// попадает на исчерпанный слот - обновление отклоняется целиком
	ErrSlotNotAvailable = errors.New("update_subscription: slot is not available")

	// ErrDuplicateBooking возвращается, когда регенерируемое вхождение дублирует
	// существующую запись пары (питомец, владелец)
	ErrDuplicateBooking = errors.New("update_subscription: pet already booked for this slot")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_subscription: internal error")
)
