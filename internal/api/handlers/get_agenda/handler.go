package get_agenda

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WellnessService/internal/api/handlers"
	"github.com/m04kA/SMC-WellnessService/internal/service/bookings"
)

const (
	msgInvalidQuery = "некорректные параметры запроса"
	msgInvalidRange = "некорректный период: to раньше from"
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

// Handle GET /api/v1/admin/agenda
// Query params: from, to (YYYY-MM-DD), includeInactive (bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req, err := ToServiceRequest(query.Get("from"), query.Get("to"), query.Get("includeInactive"))
	if err != nil {
		h.logger.Warn("GET /admin/agenda - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.GetAgenda(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /admin/agenda - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /admin/agenda - Failed to get agenda: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/agenda - Agenda retrieved successfully: count=%d", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
