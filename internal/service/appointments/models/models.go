package models

import (
	"time"

	"github.com/riquelima/SandyPetShop-BookingService/internal/catalog"
	"github.com/riquelima/SandyPetShop-BookingService/internal/civiltime"
	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
)

// ServiceLine позиция набора услуг в ответе
type ServiceLine struct {
	Service  string `json:"service"`
	Label    string `json:"label"`
	Quantity int    `json:"quantity"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID        int64  `json:"id"`
	PetName   string `json:"petName"`
	OwnerName string `json:"ownerName"`
	Whatsapp  string `json:"whatsapp"`

	Services []ServiceLine `json:"services"`
	Weight   string        `json:"weight,omitempty"`
	Addons   []string      `json:"addons,omitempty"`

	Date     string  `json:"date"`     // гражданская дата YYYY-MM-DD (UTC-3)
	Hour     int     `json:"hour"`     // гражданский час
	StartsAt string  `json:"startsAt"` // UTC, ISO 8601
	Price    float64 `json:"price"`
	Status   string  `json:"status"`

	SubscriptionID *int64  `json:"subscriptionId,omitempty"`
	Notes          *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DayScheduleResponse расписание на гражданскую дату
type DayScheduleResponse struct {
	Date         string                `json:"date"`
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment, clock *civiltime.Clock, cat *catalog.Catalog) *AppointmentResponse {
	if a == nil {
		return nil
	}

	civil := clock.Project(a.StartsAt)

	services := make([]ServiceLine, 0, len(a.Bundle))
	for _, item := range a.Bundle {
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

	return &AppointmentResponse{
		ID:             a.ID,
		PetName:        a.PetName,
		OwnerName:      a.OwnerName,
		Whatsapp:       a.Whatsapp,
		Services:       services,
		Weight:         string(a.Weight),
		Addons:         a.Addons,
		Date:           time.Date(civil.Year, civil.Month, civil.Day, 0, 0, 0, 0, time.UTC).Format(domain.DateFormat),
		Hour:           civil.Hour,
		StartsAt:       a.StartsAt.UTC().Format(time.RFC3339),
		Price:          a.Price,
		Status:         string(a.Status),
		SubscriptionID: a.SubscriptionID,
		Notes:          a.Notes,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appts []*domain.Appointment, clock *civiltime.Clock, cat *catalog.Catalog) []AppointmentResponse {
	result := make([]AppointmentResponse, 0, len(appts))
	for _, a := range appts {
		result = append(result, *FromDomainAppointment(a, clock, cat))
	}
	return result
}
