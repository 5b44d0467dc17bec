package update_subscription

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/riquelima/SandyPetShop-BookingService/internal/api/handlers"
	updateSubscription "github.com/riquelima/SandyPetShop-BookingService/internal/usecase/update_subscription"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidSubscription  = "некорректный идентификатор абонемента"
	msgSubscriptionNotFound = "абонемент не найден"
	msgSubscriptionInactive = "абонемент уже отменен"
	msgInvalidRecurrence    = "некорректное правило повторения"
	msgOutsideWorkingHours  = "час вне рабочих часов салона"
	msgSlotNotAvailable     = "часть вхождений попадает на занятые слоты"
	msgDuplicateBooking     = "питомец уже записан на один из слотов"
	msgInvalidInput         = "некорректные данные абонемента"
)

type Handler struct {
	useCase UpdateSubscriptionUseCase
	logger  Logger
}

func NewHandler(useCase UpdateSubscriptionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/subscriptions/{subscriptionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	subscriptionID, err := strconv.ParseInt(vars["subscriptionId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /subscriptions/{id} - Invalid subscription id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSubscription)
		return
	}

	var req UpdateSubscriptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /subscriptions/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(subscriptionID))
	if err != nil {
		switch {
		case errors.Is(err, updateSubscription.ErrSubscriptionNotFound):
			h.logger.Warn("PUT /subscriptions/{id} - Subscription not found: id=%d", subscriptionID)
			handlers.RespondNotFound(w, msgSubscriptionNotFound)

		case errors.Is(err, updateSubscription.ErrSubscriptionInactive):
			h.logger.Warn("PUT /subscriptions/{id} - Subscription inactive: id=%d", subscriptionID)
			handlers.RespondConflict(w, msgSubscriptionInactive)

		case errors.Is(err, updateSubscription.ErrSlotNotAvailable):
			h.logger.Warn("PUT /subscriptions/{id} - Slot not available: id=%d", subscriptionID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, updateSubscription.ErrDuplicateBooking):
			h.logger.Warn("PUT /subscriptions/{id} - Duplicate booking: id=%d", subscriptionID)
			handlers.RespondConflict(w, msgDuplicateBooking)

		case errors.Is(err, updateSubscription.ErrInvalidRecurrence):
			h.logger.Warn("PUT /subscriptions/{id} - Invalid recurrence rule: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRecurrence)

		case errors.Is(err, updateSubscription.ErrOutsideWorkingHours):
			h.logger.Warn("PUT /subscriptions/{id} - Outside working hours: hour=%d", req.Rule.Hour)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, updateSubscription.ErrInvalidInput):
			h.logger.Warn("PUT /subscriptions/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /subscriptions/{id} - Failed to update subscription: id=%d, error=%v",
				subscriptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("PUT /subscriptions/{id} - Subscription updated successfully: id=%d, removed=%d, regenerated=%d",
		result.SubscriptionID, result.RemovedCount, len(result.Occurrences))
	handlers.RespondJSON(w, http.StatusOK, response)
}
