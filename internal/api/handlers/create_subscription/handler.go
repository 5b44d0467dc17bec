package create_subscription

import (
	"errors"
	"net/http"

	"github.com/riquelima/SandyPetShop-BookingService/internal/api/handlers"
	createSubscription "github.com/riquelima/SandyPetShop-BookingService/internal/usecase/create_subscription"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты начала, ожидается YYYY-MM-DD"
	msgDateInPast          = "дата начала абонемента уже прошла"
	msgInvalidRecurrence   = "некорректное правило повторения"
	msgOutsideWorkingHours = "час вне рабочих часов салона"
	msgSlotNotAvailable    = "часть вхождений попадает на занятые слоты"
	msgDuplicateBooking    = "питомец уже записан на один из слотов"
	msgInvalidInput        = "некорректные данные абонемента"
)

type Handler struct {
	useCase CreateSubscriptionUseCase
	logger  Logger
}

func NewHandler(useCase CreateSubscriptionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/subscriptions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSubscriptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /subscriptions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /subscriptions - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createSubscription.ErrSlotNotAvailable):
			h.logger.Warn("POST /subscriptions - Slot not available: pet=%s", req.PetName)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createSubscription.ErrDuplicateBooking):
			h.logger.Warn("POST /subscriptions - Duplicate booking: pet=%s", req.PetName)
			handlers.RespondConflict(w, msgDuplicateBooking)

		case errors.Is(err, createSubscription.ErrDateInPast):
			h.logger.Warn("POST /subscriptions - Start date in past: pet=%s, start=%s", req.PetName, req.StartDate)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createSubscription.ErrInvalidRecurrence):
			h.logger.Warn("POST /subscriptions - Invalid recurrence rule: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRecurrence)

		case errors.Is(err, createSubscription.ErrOutsideWorkingHours):
			h.logger.Warn("POST /subscriptions - Outside working hours: hour=%d", req.Rule.Hour)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createSubscription.ErrInvalidInput):
			h.logger.Warn("POST /subscriptions - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /subscriptions - Failed to create subscription: pet=%s, error=%v", req.PetName, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /subscriptions - Subscription created successfully: id=%d, pet=%s, occurrences=%d",
		result.SubscriptionID, req.PetName, len(result.Occurrences))
	handlers.RespondJSON(w, http.StatusCreated, response)
}
