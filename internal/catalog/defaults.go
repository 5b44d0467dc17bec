package catalog

import (
	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
)

// Идентификаторы аддонов
const (
	AddonTosaTesoura   = "tosa_tesoura"
	AddonAparacao      = "aparacao"
	AddonHidratacao    = "hidratacao"
	AddonTosaHigienica = "tosa_higienica"
	AddonBotinhas      = "botinhas"
	AddonDesembolo     = "desembolo"
	AddonPatacure1     = "patacure1"
	AddonPatacure2     = "patacure2"
	AddonTintura       = "tintura"
)

// Default возвращает рабочий каталог услуг Sandy's Pet Shop
func Default() *Catalog {
	services := map[domain.ServiceType]ServiceInfo{
		domain.ServiceBath:            {Label: "Só Banho", DurationHours: 1},
		domain.ServiceBathAndGrooming: {Label: "Banho & Tosa", DurationHours: 2},
		domain.ServiceGroomingOnly:    {Label: "Só Tosa", DurationHours: 2},
		domain.ServiceVisitDaycare:    {Label: "Creche Pet", DurationHours: 1},
		domain.ServiceVisitHotel:      {Label: "Hotel Pet", DurationHours: 1},
		domain.ServiceMobileBath:      {Label: "Só Banho (Pet Móvel)", DurationHours: 1.5},
		domain.ServiceMobileCombo:     {Label: "Banho & Tosa (Pet Móvel)", DurationHours: 2.5},
		domain.ServiceMobileGrooming:  {Label: "Só Tosa (Pet Móvel)", DurationHours: 2.5},
	}

	prices := map[domain.WeightClass]PriceRow{
		domain.WeightUpTo5:  {Bath: 65, Grooming: 130},
		domain.WeightKg10:   {Bath: 75, Grooming: 150},
		domain.WeightKg15:   {Bath: 85, Grooming: 170},
		domain.WeightKg20:   {Bath: 95, Grooming: 190},
		domain.WeightKg25:   {Bath: 105, Grooming: 210},
		domain.WeightKg30:   {Bath: 115, Grooming: 230},
		domain.WeightOver30: {Bath: 150, Grooming: 300},
	}

	addons := []Addon{
		// Доступна только для питомцев до 5 кг
		{ID: AddonTosaTesoura, Label: "Tosa na Tesoura", Price: 160, RequiresWeight: []domain.WeightClass{domain.WeightUpTo5}},
		{ID: AddonAparacao, Label: "Aparação Contorno", Price: 35},
		// Недоступна для питомцев до 5 кг
		{ID: AddonHidratacao, Label: "Hidratação", Price: 25, ExcludesWeight: []domain.WeightClass{domain.WeightUpTo5}},
		{ID: AddonTosaHigienica, Label: "Tosa Higiênica", Price: 15},
		{ID: AddonBotinhas, Label: "Botinhas", Price: 25},
		{ID: AddonDesembolo, Label: "Desembolo", Price: 25},
		{ID: AddonPatacure1, Label: "Patacure (1 cor)", Price: 10},
		{ID: AddonPatacure2, Label: "Patacure (2 cores)", Price: 20},
		{ID: AddonTintura, Label: "Tintura (1 parte)", Price: 20},
	}

	exclusivePairs := [][2]string{
		{AddonPatacure1, AddonPatacure2},
	}

	return New(services, prices, addons, exclusivePairs)
}
