package get_available_slots

import (
	"time"
)

// ServiceLine позиция набора услуг во входящем запросе
// Набор влияет на расписание: выездные услуги не ограничены лимитом,
// для наборов из одних визитов действует сокращённое расписание
type ServiceLine struct {
	Service  string // Тип услуги (BATH, BATH_AND_GROOMING, ...)
	Quantity int    // Количество
}

// Request модель запроса доступных слотов
type Request struct {
	Date     time.Time     // Гражданская дата (UTC-3)
	Services []ServiceLine // Набор услуг (опционально)
}

// SlotInfo информация об одном часовом слоте
type SlotInfo struct {
	Hour      int       // Гражданский час начала
	StartsAt  time.Time // Момент начала (UTC)
	Available bool      // Можно ли записаться на этот час
	Remaining int       // Сколько мест осталось (для выездных наборов не ограничивает)
}

// Response модель ответа со слотами на дату
type Response struct {
	Date  time.Time  // Гражданская дата
	Slots []SlotInfo // Слоты рабочих часов по порядку
}
