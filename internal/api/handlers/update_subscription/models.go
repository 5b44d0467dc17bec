package update_subscription

import (
	"time"

	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
	updateSubscription "github.com/riquelima/SandyPetShop-BookingService/internal/usecase/update_subscription"
)

// ServiceLineRequest позиция набора услуг в HTTP запросе
type ServiceLineRequest struct {
	Service  string `json:"service"`
	Quantity int    `json:"quantity"`
}

// RecurrenceRequest правило повторения в HTTP запросе
type RecurrenceRequest struct {
	Type string `json:"type"`
	Day  int    `json:"day"`
	Hour int    `json:"hour"`
}

// UpdateSubscriptionRequest HTTP request model
type UpdateSubscriptionRequest struct {
	Services []ServiceLineRequest `json:"services"`
	Weight   string               `json:"weight,omitempty"`
	Addons   []string             `json:"addons,omitempty"`
	Rule     RecurrenceRequest    `json:"rule"`
	Notes    *string              `json:"notes,omitempty"`
}

// OccurrenceResponse регенерированное вхождение в HTTP ответе
type OccurrenceResponse struct {
	AppointmentID int64  `json:"appointmentId"`
	Date          string `json:"date"`
	Hour          int    `json:"hour"`
	StartsAt      string `json:"startsAt"`
}

// SubscriptionResponse HTTP response model
type SubscriptionResponse struct {
	ID           int64                `json:"id"`
	PetName      string               `json:"petName"`
	OwnerName    string               `json:"ownerName"`
	Whatsapp     string               `json:"whatsapp"`
	Services     []ServiceLineRequest `json:"services"`
	Weight       string               `json:"weight,omitempty"`
	Addons       []string             `json:"addons,omitempty"`
	Rule         RecurrenceRequest    `json:"rule"`
	Price        float64              `json:"price"`
	RemovedCount int64                `json:"removedCount"`
	Occurrences  []OccurrenceResponse `json:"occurrences"`
	CreatedAt    string               `json:"createdAt"`
	UpdatedAt    string               `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateSubscriptionRequest) ToUseCaseRequest(subscriptionID int64) *updateSubscription.Request {
	services := make([]updateSubscription.ServiceLine, 0, len(r.Services))
	for _, line := range r.Services {
		services = append(services, updateSubscription.ServiceLine{
			Service:  line.Service,
			Quantity: line.Quantity,
		})
	}

	return &updateSubscription.Request{
		SubscriptionID: subscriptionID,
		Services:       services,
		Weight:         r.Weight,
		Addons:         r.Addons,
		Rule: updateSubscription.RecurrenceInput{
			Type: r.Rule.Type,
			Day:  r.Rule.Day,
			Hour: r.Rule.Hour,
		},
		Notes: r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateSubscription.Response) *SubscriptionResponse {
	services := make([]ServiceLineRequest, 0, len(resp.Services))
	for _, line := range resp.Services {
		services = append(services, ServiceLineRequest{
			Service:  line.Service,
			Quantity: line.Quantity,
		})
	}

	occurrences := make([]OccurrenceResponse, 0, len(resp.Occurrences))
	for _, occ := range resp.Occurrences {
		occurrences = append(occurrences, OccurrenceResponse{
			AppointmentID: occ.AppointmentID,
			Date:          occ.Date.Format(domain.DateFormat),
			Hour:          occ.Hour,
			StartsAt:      occ.StartsAt.UTC().Format(time.RFC3339),
		})
	}

	return &SubscriptionResponse{
		ID:        resp.SubscriptionID,
		PetName:   resp.PetName,
		OwnerName: resp.OwnerName,
		Whatsapp:  resp.Whatsapp,
		Services:  services,
		Weight:    resp.Weight,
		Addons:    resp.Addons,
		Rule: RecurrenceRequest{
			Type: resp.Rule.Type,
			Day:  resp.Rule.Day,
			Hour: resp.Rule.Hour,
		},
		Price:        resp.Price,
		RemovedCount: resp.RemovedCount,
		Occurrences:  occurrences,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
