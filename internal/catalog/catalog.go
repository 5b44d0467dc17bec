package catalog

import (
	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
)

// ServiceInfo справочная информация об услуге
type ServiceInfo struct {
	Label         string
	DurationHours float64
}

// PriceRow строка весовой тарифной таблицы
// Комбинированная услуга (banho & tosa) тарифицируется как Bath + Grooming
type PriceRow struct {
	Bath     float64
	Grooming float64
}

// Addon дополнительная услуга с ограничениями совместимости по весу
type Addon struct {
	ID    string
	Label string
	Price float64

	// RequiresWeight - аддон доступен только для перечисленных категорий
	RequiresWeight []domain.WeightClass
	// ExcludesWeight - аддон недоступен для перечисленных категорий
	ExcludesWeight []domain.WeightClass
}

// AllowedFor проверяет совместимость аддона с весовой категорией
func (a Addon) AllowedFor(w domain.WeightClass) bool {
	if len(a.RequiresWeight) > 0 {
		found := false
		for _, rw := range a.RequiresWeight {
			if rw == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, ew := range a.ExcludesWeight {
		if ew == w {
			return false
		}
	}
	return true
}

// Catalog статический справочник услуг, тарифов и аддонов
// Передается движкам явно при конструировании, глобального состояния нет
type Catalog struct {
	services   map[domain.ServiceType]ServiceInfo
	prices     map[domain.WeightClass]PriceRow
	addons     map[string]Addon
	addonOrder []string
	exclusive  map[string]string // взаимоисключающие пары аддонов
}

// New собирает каталог из таблиц
// exclusivePairs - пары идентификаторов взаимоисключающих аддонов
func New(
	services map[domain.ServiceType]ServiceInfo,
	prices map[domain.WeightClass]PriceRow,
	addons []Addon,
	exclusivePairs [][2]string,
) *Catalog {
	c := &Catalog{
		services:   services,
		prices:     prices,
		addons:     make(map[string]Addon, len(addons)),
		addonOrder: make([]string, 0, len(addons)),
		exclusive:  make(map[string]string),
	}
	for _, a := range addons {
		c.addons[a.ID] = a
		c.addonOrder = append(c.addonOrder, a.ID)
	}
	for _, pair := range exclusivePairs {
		c.exclusive[pair[0]] = pair[1]
		c.exclusive[pair[1]] = pair[0]
	}
	return c
}

// Service возвращает справочную информацию об услуге
func (c *Catalog) Service(t domain.ServiceType) (ServiceInfo, bool) {
	info, ok := c.services[t]
	return info, ok
}

// PriceRow возвращает строку тарифной таблицы для весовой категории
func (c *Catalog) PriceRow(w domain.WeightClass) (PriceRow, bool) {
	row, ok := c.prices[w]
	return row, ok
}

// Addon возвращает аддон по идентификатору
func (c *Catalog) Addon(id string) (Addon, bool) {
	a, ok := c.addons[id]
	return a, ok
}

// Addons возвращает все аддоны в порядке объявления
func (c *Catalog) Addons() []Addon {
	result := make([]Addon, 0, len(c.addonOrder))
	for _, id := range c.addonOrder {
		result = append(result, c.addons[id])
	}
	return result
}

// ExclusiveWith возвращает идентификатор взаимоисключающего аддона, если он есть
func (c *Catalog) ExclusiveWith(id string) (string, bool) {
	other, ok := c.exclusive[id]
	return other, ok
}
