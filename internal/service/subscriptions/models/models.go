package models

import (
	"time"

	"github.com/riquelima/SandyPetShop-BookingService/internal/catalog"
	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
)

// ServiceLine позиция набора услуг в ответе
type ServiceLine struct {
	Service  string `json:"service"`
	Label    string `json:"label"`
	Quantity int    `json:"quantity"`
}

// RecurrenceResponse правило повторения абонемента
type RecurrenceResponse struct {
	Type string `json:"type"`
	Day  int    `json:"day"`
	Hour int    `json:"hour"`
}

// SubscriptionResponse ответ с данными абонемента
type SubscriptionResponse struct {
	ID        int64  `json:"id"`
	PetName   string `json:"petName"`
	OwnerName string `json:"ownerName"`
	Whatsapp  string `json:"whatsapp"`

	Services []ServiceLine `json:"services"`
	Weight   string        `json:"weight,omitempty"`
	Addons   []string      `json:"addons,omitempty"`

	Rule  RecurrenceResponse `json:"rule"`
	Price float64            `json:"price"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ActiveSubscriptionsResponse список действующих абонементов
type ActiveSubscriptionsResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
}

// FromDomainSubscription конвертирует domain модель в DTO
func FromDomainSubscription(sub *domain.Subscription, cat *catalog.Catalog) *SubscriptionResponse {
	if sub == nil {
		return nil
	}

	services := make([]ServiceLine, 0, len(sub.Bundle))
	for _, item := range sub.Bundle {
		if item.Quantity <= 0 {
			continue
		}
		label := string(item.Service)
		if info, ok := cat.Service(item.Service); ok {
			label = info.Label
		}
		services = append(services, ServiceLine{
			Service:  string(item.Service),
			Label:    label,
			Quantity: item.Quantity,
		})
	}

	return &SubscriptionResponse{
		ID:        sub.ID,
		PetName:   sub.PetName,
		OwnerName: sub.OwnerName,
		Whatsapp:  sub.Whatsapp,
		Services:  services,
		Weight:    string(sub.Weight),
		Addons:    sub.Addons,
		Rule: RecurrenceResponse{
			Type: string(sub.Rule.Type),
			Day:  sub.Rule.DayToken,
			Hour: sub.Rule.HourOfDay,
		},
		Price:     sub.Price,
		CreatedAt: sub.CreatedAt,
		UpdatedAt: sub.UpdatedAt,
	}
}

// FromDomainSubscriptionList конвертирует список domain моделей в DTO
func FromDomainSubscriptionList(subs []*domain.Subscription, cat *catalog.Catalog) []SubscriptionResponse {
	result := make([]SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		result = append(result, *FromDomainSubscription(sub, cat))
	}
	return result
}
