package pricing

import (
	"github.com/riquelima/SandyPetShop-BookingService/internal/catalog"
	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
)

// AddonSelection множество включённых аддонов с инвариантами совместимости:
//  1. аддон, чей ExcludesWeight содержит активную категорию, принудительно выключен
//  2. аддон, чей RequiresWeight не содержит активную категорию, принудительно выключен
//  3. из взаимоисключающей пары активен максимум один - включение одного гасит другой
type AddonSelection struct {
	cat    *catalog.Catalog
	active map[string]bool
}

// NewAddonSelection создает пустой выбор аддонов над каталогом
func NewAddonSelection(cat *catalog.Catalog) *AddonSelection {
	return &AddonSelection{
		cat:    cat,
		active: make(map[string]bool),
	}
}

// Toggle переключает аддон с учётом весовой категории
// Включение несовместимого аддона игнорируется (он остаётся выключенным)
func (s *AddonSelection) Toggle(id string, weight domain.WeightClass) error {
	addon, ok := s.cat.Addon(id)
	if !ok {
		return ErrUnknownAddon
	}

	if s.active[id] {
		delete(s.active, id)
		return nil
	}

	if !addon.AllowedFor(weight) {
		return nil
	}

	// Взаимоисключающая пара: включение одного гасит другой
	if other, ok := s.cat.ExclusiveWith(id); ok {
		delete(s.active, other)
	}

	s.active[id] = true
	return nil
}

// SetActive включает перечисленные аддоны, отбрасывая несовместимые
// Используется при сборке выбора из входящего запроса
func (s *AddonSelection) SetActive(ids []string, weight domain.WeightClass) error {
	for _, id := range ids {
		if s.active[id] {
			continue
		}
		if err := s.Toggle(id, weight); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeForWeight выключает аддоны, несовместимые с новой весовой категорией
// Вызывается при смене категории питомца
func (s *AddonSelection) NormalizeForWeight(weight domain.WeightClass) {
	for id := range s.active {
		addon, ok := s.cat.Addon(id)
		if !ok || !addon.AllowedFor(weight) {
			delete(s.active, id)
		}
	}
}

// IsActive сообщает, включён ли аддон
func (s *AddonSelection) IsActive(id string) bool {
	return s.active[id]
}

// Active возвращает включённые аддоны в порядке каталога
func (s *AddonSelection) Active() []string {
	result := make([]string, 0, len(s.active))
	for _, addon := range s.cat.Addons() {
		if s.active[addon.ID] {
			result = append(result, addon.ID)
		}
	}
	return result
}
