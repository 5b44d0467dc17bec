package pricing

import (
	"fmt"

	"github.com/riquelima/SandyPetShop-BookingService/internal/catalog"
	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
)

// Engine движок расчёта цены набора услуг
// Каталог и размер абонементной скидки передаются при конструировании
type Engine struct {
	cat             *catalog.Catalog
	packageDiscount float64
}

// NewEngine создает движок ценообразования
func NewEngine(cat *catalog.Catalog, packageDiscount float64) *Engine {
	return &Engine{
		cat:             cat,
		packageDiscount: packageDiscount,
	}
}

// Catalog возвращает каталог услуг, над которым работает движок
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

// Options опции расчёта цены
type Options struct {
	// PackageDiscount - расчёт для абонемента: из цены каждой единицы услуги
	// вычитается фиксированная скидка (не ниже нуля); аддоны не дисконтируются
	PackageDiscount bool
}

// ComputePrice считает итоговую цену набора услуг с аддонами
// Чистая функция от входов: одинаковые аргументы дают одинаковый результат
func (e *Engine) ComputePrice(
	bundle domain.Bundle,
	weight domain.WeightClass,
	selection *AddonSelection,
	opts Options,
) (float64, error) {
	if bundle.TotalQuantity() == 0 {
		return 0, fmt.Errorf("%w: no service selected", ErrIncompleteSelection)
	}
	if bundle.RequiresWeight() && !weight.IsValid() {
		return 0, fmt.Errorf("%w: weight class is required", ErrIncompleteSelection)
	}

	total := 0.0

	for _, item := range bundle {
		if item.Quantity <= 0 {
			continue
		}

		unit, err := e.unitPrice(item.Service, weight)
		if err != nil {
			return 0, err
		}

		if opts.PackageDiscount {
			unit -= e.packageDiscount
			if unit < 0 {
				unit = 0
			}
		}

		total += unit * float64(item.Quantity)
	}

	// Аддоны суммируются поверх, без скидок
	// Совместимость с весовой категорией уже обеспечена инвариантами AddonSelection
	if selection != nil {
		for _, id := range selection.Active() {
			addon, ok := e.cat.Addon(id)
			if !ok {
				return 0, fmt.Errorf("%w: %s", ErrUnknownAddon, id)
			}
			total += addon.Price
		}
	}

	if total < 0 {
		total = 0
	}
	return total, nil
}

// unitPrice возвращает цену единицы услуги для весовой категории
// Разрешение цены зависит от класса услуги:
//   - walk-in: по весовой таблице (комбинированная = banho + tosa)
//   - mobile: те же тарифы, что и у стационарного эквивалента
//   - visit: всегда 0, от веса не зависит
func (e *Engine) unitPrice(service domain.ServiceType, weight domain.WeightClass) (float64, error) {
	switch service.Class() {
	case domain.ClassVisit:
		return 0, nil

	case domain.ClassWalkIn, domain.ClassMobile:
		row, ok := e.cat.PriceRow(weight)
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownWeight, weight)
		}

		switch service {
		case domain.ServiceBath, domain.ServiceMobileBath:
			return row.Bath, nil
		case domain.ServiceGroomingOnly, domain.ServiceMobileGrooming:
			return row.Grooming, nil
		case domain.ServiceBathAndGrooming, domain.ServiceMobileCombo:
			return row.Bath + row.Grooming, nil
		default:
			return 0, fmt.Errorf("%w: unknown service %s", ErrIncompleteSelection, service)
		}

	default:
		return 0, fmt.Errorf("%w: unknown service class for %s", ErrIncompleteSelection, service)
	}
}
