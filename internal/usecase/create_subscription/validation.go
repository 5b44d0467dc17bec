package create_subscription

import (
	"fmt"
	"strings"

	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.PetName) == "" {
		return fmt.Errorf("%w: petName is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.OwnerName) == "" {
		return fmt.Errorf("%w: ownerName is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Whatsapp) == "" {
		return fmt.Errorf("%w: whatsapp is required", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// buildBundle собирает набор услуг из запроса и проверяет его корректность
func buildBundle(lines []ServiceLine) (domain.Bundle, error) {
	bundle := make(domain.Bundle, 0, len(lines))
	for _, line := range lines {
		bundle = append(bundle, domain.LineItem{
			Service:  domain.ServiceType(line.Service),
			Quantity: line.Quantity,
		})
	}

	if !bundle.IsValid() {
		return nil, fmt.Errorf("%w: unknown service or negative quantity", ErrInvalidInput)
	}

	if bundle.TotalQuantity() == 0 {
		return nil, fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	return bundle, nil
}

// validateWeight проверяет весовую категорию, если она нужна набору услуг
func validateWeight(bundle domain.Bundle, weight domain.WeightClass) error {
	if !bundle.RequiresWeight() {
		return nil
	}
	if !weight.IsValid() {
		return fmt.Errorf("%w: unknown weight class %q", ErrInvalidInput, weight)
	}
	return nil
}
