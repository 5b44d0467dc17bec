package update_subscription

import (
	"context"

	updateSubscription "github.com/riquelima/SandyPetShop-BookingService/internal/usecase/update_subscription"
)

type UpdateSubscriptionUseCase interface {
	Execute(ctx context.Context, req *updateSubscription.Request) (*updateSubscription.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
