package subscriptions

import (
	"context"
	"fmt"

	"github.com/riquelima/SandyPetShop-BookingService/internal/catalog"
	"github.com/riquelima/SandyPetShop-BookingService/internal/service/subscriptions/models"
)

// Service сервис чтения абонементов для админки
type Service struct {
	subRepo SubscriptionRepository
	catalog *catalog.Catalog
	log     Logger
}

// New создает новый экземпляр сервиса абонементов
func New(subRepo SubscriptionRepository, cat *catalog.Catalog, log Logger) *Service {
	return &Service{
		subRepo: subRepo,
		catalog: cat,
		log:     log,
	}
}

// GetActive возвращает все действующие абонементы
func (s *Service) GetActive(ctx context.Context) (*models.ActiveSubscriptionsResponse, error) {
	subs, err := s.subRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - failed to list subscriptions: %v", ErrInternal, err)
	}

	return &models.ActiveSubscriptionsResponse{
		Subscriptions: models.FromDomainSubscriptionList(subs, s.catalog),
	}, nil
}
