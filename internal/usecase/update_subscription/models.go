package update_subscription

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

// Request модель запроса на обновление абонемента
// Набор услуг, вес, аддоны и правило заменяются целиком
type Request struct {
	SubscriptionID int64           // ID абонемента
	Services       []ServiceLine   // Новый набор услуг
	Weight         string          // Новая весовая категория
	Addons         []string        // Новые дополнительные услуги
	Rule           RecurrenceInput // Новое правило повторения
	Notes          *string         // Заметки к регенерируемым записям (опционально)
}

// OccurrenceInfo регенерированное вхождение абонемента
type OccurrenceInfo struct {
	AppointmentID int64     // ID созданной записи
	StartsAt      time.Time // Момент начала (UTC)
	Date          time.Time // Гражданская дата
	Hour          int       // Гражданский час
}

// Response модель ответа с обновленным абонементом
type Response struct {
	SubscriptionID int64            // ID абонемента
	PetName        string           // Имя питомца
	OwnerName      string           // Имя владельца
	Whatsapp       string           // Контакт владельца
	Services       []ServiceLine    // Набор услуг
	Weight         string           // Весовая категория
	Addons         []string         // Принятые дополнительные услуги
	Rule           RecurrenceInput  // Правило повторения
	Price          float64          // Цена одного вхождения (с абонементной скидкой)
	RemovedCount   int64            // Сколько будущих записей удалено перед регенерацией
	Occurrences    []OccurrenceInfo // Регенерированные записи

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
