package get_active_subscriptions

import (
	"context"

	"github.com/riquelima/SandyPetShop-BookingService/internal/service/subscriptions/models"
)

type SubscriptionsService interface {
	GetActive(ctx context.Context) (*models.ActiveSubscriptionsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
