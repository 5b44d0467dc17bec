package create_booking

import (
	"time"
)

// ServiceLine позиция набора услуг во входящем запросе
type ServiceLine struct {
	Service  string // Тип услуги (BATH, BATH_AND_GROOMING, ...)
	Quantity int    // Количество (например, два питомца на один слот)
}

// Request модель запроса на создание разовой записи
// Цена клиентом не передается - она всегда рассчитывается на сервере
type Request struct {
	PetName   string        // Имя питомца
	OwnerName string        // Имя владельца
	Whatsapp  string        // Контакт владельца
	Services  []ServiceLine // Набор услуг
	Weight    string        // Весовая категория (UP_TO_5, ...)
	Addons    []string      // Дополнительные услуги
	Date      time.Time     // Гражданская дата записи (UTC-3, без времени)
	Hour      int           // Гражданский час начала
	Notes     *string       // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID        int64         // ID созданной записи
	PetName   string        // Имя питомца
	OwnerName string        // Имя владельца
	Whatsapp  string        // Контакт владельца
	Services  []ServiceLine // Набор услуг
	Weight    string        // Весовая категория
	Addons    []string      // Принятые дополнительные услуги
	StartsAt  time.Time     // Момент начала (UTC)
	Date      time.Time     // Гражданская дата
	Hour      int           // Гражданский час
	Price     float64       // Рассчитанная цена
	Status    string        // Статус записи
	Notes     *string       // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
