package cancel_subscription

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/riquelima/SandyPetShop-BookingService/internal/api/handlers"
	cancelSubscription "github.com/riquelima/SandyPetShop-BookingService/internal/usecase/cancel_subscription"
)

const (
	msgInvalidSubscription  = "некорректный идентификатор абонемента"
	msgSubscriptionNotFound = "абонемент не найден"
	msgSubscriptionInactive = "абонемент уже отменен"
)

type Handler struct {
	useCase CancelSubscriptionUseCase
	logger  Logger
}

func NewHandler(useCase CancelSubscriptionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/subscriptions/{subscriptionId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	subscriptionID, err := strconv.ParseInt(vars["subscriptionId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /subscriptions/{id}/cancel - Invalid subscription id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSubscription)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelSubscription.Request{SubscriptionID: subscriptionID})
	if err != nil {
		switch {
		case errors.Is(err, cancelSubscription.ErrSubscriptionNotFound):
			h.logger.Warn("PATCH /subscriptions/{id}/cancel - Subscription not found: id=%d", subscriptionID)
			handlers.RespondNotFound(w, msgSubscriptionNotFound)

		case errors.Is(err, cancelSubscription.ErrSubscriptionInactive):
			h.logger.Warn("PATCH /subscriptions/{id}/cancel - Subscription already inactive: id=%d", subscriptionID)
			handlers.RespondConflict(w, msgSubscriptionInactive)

		case errors.Is(err, cancelSubscription.ErrInvalidInput):
			h.logger.Warn("PATCH /subscriptions/{id}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSubscription)

		default:
			h.logger.Error("PATCH /subscriptions/{id}/cancel - Failed to cancel subscription: id=%d, error=%v",
				subscriptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("PATCH /subscriptions/{id}/cancel - Subscription cancelled: id=%d, removed=%d",
		result.SubscriptionID, result.RemovedCount)
	handlers.RespondJSON(w, http.StatusOK, response)
}
