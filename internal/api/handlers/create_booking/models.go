package create_booking

import (
	"time"

	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
	createBooking "github.com/riquelima/SandyPetShop-BookingService/internal/usecase/create_booking"
)

// ServiceLineRequest позиция набора услуг в HTTP запросе
type ServiceLineRequest struct {
	Service  string `json:"service"`
	Quantity int    `json:"quantity"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	PetName   string               `json:"petName"`
	OwnerName string               `json:"ownerName"`
	Whatsapp  string               `json:"whatsapp"`
	Services  []ServiceLineRequest `json:"services"`
	Weight    string               `json:"weight,omitempty"`
	Addons    []string             `json:"addons,omitempty"`
	Date      string               `json:"date"` // "2026-03-15"
	Hour      int                  `json:"hour"` // гражданский час начала
	Notes     *string              `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        int64                `json:"id"`
	PetName   string               `json:"petName"`
	OwnerName string               `json:"ownerName"`
	Whatsapp  string               `json:"whatsapp"`
	Services  []ServiceLineRequest `json:"services"`
	Weight    string               `json:"weight,omitempty"`
	Addons    []string             `json:"addons,omitempty"`
	Date      string               `json:"date"`
	Hour      int                  `json:"hour"`
	StartsAt  string               `json:"startsAt"`
	Price     float64              `json:"price"`
	Status    string               `json:"status"`
	Notes     *string              `json:"notes,omitempty"`
	CreatedAt string               `json:"createdAt"`
	UpdatedAt string               `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	services := make([]createBooking.ServiceLine, 0, len(r.Services))
	for _, line := range r.Services {
		services = append(services, createBooking.ServiceLine{
			Service:  line.Service,
			Quantity: line.Quantity,
		})
	}

	return &createBooking.Request{
		PetName:   r.PetName,
		OwnerName: r.OwnerName,
		Whatsapp:  r.Whatsapp,
		Services:  services,
		Weight:    r.Weight,
		Addons:    r.Addons,
		Date:      date,
		Hour:      r.Hour,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	services := make([]ServiceLineRequest, 0, len(resp.Services))
	for _, line := range resp.Services {
		services = append(services, ServiceLineRequest{
			Service:  line.Service,
			Quantity: line.Quantity,
		})
	}

	return &BookingResponse{
		ID:        resp.ID,
		PetName:   resp.PetName,
		OwnerName: resp.OwnerName,
		Whatsapp:  resp.Whatsapp,
		Services:  services,
		Weight:    resp.Weight,
		Addons:    resp.Addons,
		Date:      resp.Date.Format(domain.DateFormat),
		Hour:      resp.Hour,
		StartsAt:  resp.StartsAt.UTC().Format(time.RFC3339),
		Price:     resp.Price,
		Status:    resp.Status,
		Notes:     resp.Notes,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
