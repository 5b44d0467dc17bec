package get_active_subscriptions

import (
	"net/http"

	"github.com/riquelima/SandyPetShop-BookingService/internal/api/handlers"
)

type Handler struct {
	service SubscriptionsService
	logger  Logger
}

func NewHandler(service SubscriptionsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/subscriptions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetActive(r.Context())
	if err != nil {
		h.logger.Error("GET /subscriptions - Failed to list active subscriptions: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
