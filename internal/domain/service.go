package domain

// ServiceType тип услуги
type ServiceType string

const (
	ServiceBath            ServiceType = "BATH"
	ServiceBathAndGrooming ServiceType = "BATH_AND_GROOMING"
	ServiceGroomingOnly    ServiceType = "GROOMING_ONLY"
	ServiceVisitDaycare    ServiceType = "VISIT_DAYCARE"
	ServiceVisitHotel      ServiceType = "VISIT_HOTEL"
	ServiceMobileBath      ServiceType = "PET_MOBILE_BATH"
	ServiceMobileCombo     ServiceType = "PET_MOBILE_BATH_AND_GROOMING"
	ServiceMobileGrooming  ServiceType = "PET_MOBILE_GROOMING_ONLY"
)

// ServiceClass класс услуги, определяющий правила ценообразования и учёта слотов
type ServiceClass int

const (
	// ClassWalkIn услуги, выполняемые на территории пет-шопа
	ClassWalkIn ServiceClass = iota
	// ClassMobile выездные услуги (Pet Móvel), не занимают общие слоты
	ClassMobile
	// ClassVisit ознакомительные визиты (creche/hotel), цена всегда 0
	ClassVisit
)

// Class возвращает класс услуги
func (s ServiceType) Class() ServiceClass {
	switch s {
	case ServiceBath, ServiceBathAndGrooming, ServiceGroomingOnly:
		return ClassWalkIn
	case ServiceMobileBath, ServiceMobileCombo, ServiceMobileGrooming:
		return ClassMobile
	case ServiceVisitDaycare, ServiceVisitHotel:
		return ClassVisit
	default:
		return ClassWalkIn
	}
}

// IsValid проверяет, что тип услуги известен системе
func (s ServiceType) IsValid() bool {
	switch s {
	case ServiceBath, ServiceBathAndGrooming, ServiceGroomingOnly,
		ServiceVisitDaycare, ServiceVisitHotel,
		ServiceMobileBath, ServiceMobileCombo, ServiceMobileGrooming:
		return true
	default:
		return false
	}
}

// LineItem позиция в наборе услуг: услуга и количество
type LineItem struct {
	Service  ServiceType
	Quantity int
}

// Bundle набор услуг одной записи
// Позиции с Quantity = 0 не участвуют в расчёте цены и длительности
type Bundle []LineItem

// TotalQuantity возвращает суммарное количество по всем позициям
func (b Bundle) TotalQuantity() int {
	total := 0
	for _, item := range b {
		if item.Quantity > 0 {
			total += item.Quantity
		}
	}
	return total
}

// ContainsMobile сообщает, содержит ли набор хотя бы одну выездную услугу
// Такие наборы освобождены от лимита слотов (обслуживаются у клиента)
func (b Bundle) ContainsMobile() bool {
	for _, item := range b {
		if item.Quantity > 0 && item.Service.Class() == ClassMobile {
			return true
		}
	}
	return false
}

// ContainsVisitOnly сообщает, состоит ли набор только из ознакомительных визитов
func (b Bundle) ContainsVisitOnly() bool {
	hasVisit := false
	for _, item := range b {
		if item.Quantity == 0 {
			continue
		}
		if item.Service.Class() != ClassVisit {
			return false
		}
		hasVisit = true
	}
	return hasVisit
}

// RequiresWeight сообщает, нужна ли весовая категория для расчёта цены набора
// Визиты не зависят от веса, всё остальное тарифицируется по весовой таблице
func (b Bundle) RequiresWeight() bool {
	for _, item := range b {
		if item.Quantity > 0 && item.Service.Class() != ClassVisit {
			return true
		}
	}
	return false
}

// IsValid проверяет, что все позиции набора корректны
func (b Bundle) IsValid() bool {
	for _, item := range b {
		if !item.Service.IsValid() || item.Quantity < 0 {
			return false
		}
	}
	return true
}
