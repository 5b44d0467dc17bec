package get_available_slots

import (
	"strings"
	"time"

	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
	getAvailableSlots "github.com/riquelima/SandyPetShop-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse информация об одном слоте в HTTP ответе
type SlotResponse struct {
	Hour      int    `json:"hour"`
	StartsAt  string `json:"startsAt"`
	Available bool   `json:"available"`
	Remaining int    `json:"remaining"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

// parseServices разбирает query-параметр services вида "BATH:1,GROOMING_ONLY:2"
// Количество по умолчанию равно единице
func parseServices(param string) []getAvailableSlots.ServiceLine {
	if param == "" {
		return nil
	}

	var services []getAvailableSlots.ServiceLine
	for _, token := range strings.Split(param, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		service := token
		quantity := 1
		if idx := strings.IndexByte(token, ':'); idx >= 0 {
			service = token[:idx]
			quantity = parseQuantity(token[idx+1:])
		}

		services = append(services, getAvailableSlots.ServiceLine{
			Service:  service,
			Quantity: quantity,
		})
	}
	return services
}

func parseQuantity(s string) int {
	quantity := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 1
		}
		quantity = quantity*10 + int(r-'0')
	}
	if quantity == 0 {
		return 1
	}
	return quantity
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			Hour:      slot.Hour,
			StartsAt:  slot.StartsAt.UTC().Format(time.RFC3339),
			Available: slot.Available,
			Remaining: slot.Remaining,
		})
	}

	return &AvailableSlotsResponse{
		Date:  resp.Date.Format(domain.DateFormat),
		Slots: slots,
	}
}
