package cancel_subscription

import (
	cancelSubscription "github.com/riquelima/SandyPetShop-BookingService/internal/usecase/cancel_subscription"
)

// CancelSubscriptionResponse HTTP response model
type CancelSubscriptionResponse struct {
	SubscriptionID int64 `json:"subscriptionId"`
	RemovedCount   int64 `json:"removedCount"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelSubscription.Response) *CancelSubscriptionResponse {
	return &CancelSubscriptionResponse{
		SubscriptionID: resp.SubscriptionID,
		RemovedCount:   resp.RemovedCount,
	}
}
