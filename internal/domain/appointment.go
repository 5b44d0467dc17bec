package domain

import "time"

// Status статус записи
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusCompleted Status = "COMPLETED"
)

// IsValid проверяет, что статус известен системе
func (s Status) IsValid() bool {
	return s == StatusScheduled || s == StatusCompleted
}

// Appointment запись на обслуживание
// StartsAt хранится как UTC-инстант; гражданское представление (UTC-3)
// вычисляется через civiltime.Clock
type Appointment struct {
	ID        int64
	PetName   string
	OwnerName string
	Whatsapp  string

	// Снимок набора услуг и выбора на момент записи
	Bundle Bundle
	Weight WeightClass // пустая строка для наборов, не зависящих от веса
	Addons []string

	StartsAt time.Time // UTC
	Price    float64
	Status   Status

	// Ссылка на абонемент, породивший запись (nil для разовых записей)
	SubscriptionID *int64

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsScheduled возвращает true, если запись ещё не выполнена
func (a *Appointment) IsScheduled() bool {
	return a.Status == StatusScheduled
}

// IsCompleted возвращает true, если запись выполнена
func (a *Appointment) IsCompleted() bool {
	return a.Status == StatusCompleted
}

// CountsAgainstCapacity сообщает, занимает ли запись общий слот
// Выездные услуги выполняются у клиента и лимит слотов не расходуют
func (a *Appointment) CountsAgainstCapacity() bool {
	return !a.Bundle.ContainsMobile()
}
