package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrDateInPast возвращается, когда гражданская дата записи уже прошла
	ErrDateInPast = errors.New("create_booking: date is in the past")

	// ErrOutsideWorkingHours возвращается, когда час вне рабочих часов салона
	ErrOutsideWorkingHours = errors.New("create_booking: hour is outside working hours")

	// ErrSlotNotAvailable возвращается, когда лимит одновременных записей на слот исчерпан
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrDuplicateBooking возвращается, когда у пары (питомец, владелец) уже есть запись на этот слот
	ErrDuplicateBooking = errors.New("create_booking: pet already booked for this slot")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
