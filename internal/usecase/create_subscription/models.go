package create_subscription

import (
	"time"
)

// ServiceLine позиция набора услуг во входящем запросе
type ServiceLine struct {
	Service  string // Тип услуги (BATH, BATH_AND_GROOMING, ...)
	Quantity int    // Количество
}

// RecurrenceInput правило повторения во входящем запросе
type RecurrenceInput struct {
	Type string // weekly, bi-weekly, monthly
	Day  int    // День недели (1-5) или день месяца (1-31)
	Hour int    // Гражданский час начала
}

// Request модель запроса на создание абонемента
// Цена клиентом не передается - она всегда рассчитывается на сервере
type Request struct {
	PetName   string          // Имя питомца
	OwnerName string          // Имя владельца
	Whatsapp  string          // Контакт владельца
	Services  []ServiceLine   // Набор услуг
	Weight    string          // Весовая категория
	Addons    []string        // Дополнительные услуги
	Rule      RecurrenceInput // Правило повторения
	StartDate time.Time       // Опорная гражданская дата начала (UTC-3)
	Notes     *string         // Заметки к создаваемым записям (опционально)
}

// OccurrenceInfo созданное вхождение абонемента
type OccurrenceInfo struct {
	AppointmentID int64     // ID созданной записи
	StartsAt      time.Time // Момент начала (UTC)
	Date          time.Time // Гражданская дата
	Hour          int       // Гражданский час
}

// Response модель ответа с созданным абонементом и его записями
type Response struct {
	SubscriptionID int64            // ID созданного абонемента
	PetName        string           // Имя питомца
	OwnerName      string           // Имя владельца
	Whatsapp       string           // Контакт владельца
	Services       []ServiceLine    // Набор услуг
	Weight         string           // Весовая категория
	Addons         []string         // Принятые дополнительные услуги
	Rule           RecurrenceInput  // Правило повторения
	Price          float64          // Цена одного вхождения (с абонементной скидкой)
	Occurrences    []OccurrenceInfo // Созданные записи

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
