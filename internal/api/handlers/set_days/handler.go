package set_days

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WellnessService/internal/api/handlers"
	"github.com/m04kA/SMC-WellnessService/internal/service/schedule"
)

const (
	msgInvalidBody       = "некорректное тело запроса"
	msgMissingDays       = "список дней обязателен"
	msgInvalidDateOrTime = "некорректный формат даты или времени"
	msgInvalidInput      = "некорректные данные запроса"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SetDaysRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/days - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if len(req.Days) == 0 {
		h.logger.Warn("PUT /admin/days - Empty days list")
		handlers.RespondBadRequest(w, msgMissingDays)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PUT /admin/days - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	if err := h.service.SetDays(r.Context(), serviceReq); err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /admin/days - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /admin/days - Failed to set days: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/days - Days saved successfully: days_count=%d", len(req.Days))
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
