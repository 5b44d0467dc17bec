package domain

import "time"

// Subscription абонемент постоянного клиента
// Владеет набором автоматически сгенерированных записей (Appointment.SubscriptionID)
// Удаление абонемента каскадно удаляет только его будущие записи
type Subscription struct {
	ID        int64
	PetName   string
	OwnerName string
	Whatsapp  string

	Bundle Bundle
	Weight WeightClass
	Addons []string
	Rule   RecurrenceRule

	// Цена набора с абонементной скидкой
	Price float64

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
