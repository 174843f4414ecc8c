package lookup_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WellnessService/internal/api/handlers"
	"github.com/m04kA/SMC-WellnessService/internal/service/bookings"
	"github.com/m04kA/SMC-WellnessService/internal/service/bookings/models"
)

const (
	msgInvalidBody     = "некорректное тело запроса"
	msgMissingIdentity = "идентификатор обязателен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/lookup
// Идентификатор передается в теле, чтобы не попадал в URL и access-логи.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.LookupRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/lookup - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if req.Identity == "" {
		h.logger.Warn("POST /bookings/lookup - Missing identity")
		handlers.RespondBadRequest(w, msgMissingIdentity)
		return
	}

	result, err := h.service.Lookup(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings/lookup - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgMissingIdentity)

		default:
			h.logger.Error("POST /bookings/lookup - Failed to lookup bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/lookup - Bookings retrieved successfully: count=%d", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
