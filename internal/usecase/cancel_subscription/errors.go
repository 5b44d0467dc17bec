package cancel_subscription

import "errors"

var (
	// ErrSubscriptionNotFound возвращается, когда абонемент не найден
	ErrSubscriptionNotFound = errors.New("cancel_subscription: subscription not found")

	// ErrSubscriptionInactive возвращается при повторной отмене абонемента
	ErrSubscriptionInactive = errors.New("cancel_subscription: subscription is not active")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_subscription: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_subscription: internal error")
)
