package apply_preset

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WellnessService/internal/api/handlers"
	"github.com/m04kA/SMC-WellnessService/internal/service/schedule"
)

const (
	msgInvalidBody   = "некорректное тело запроса"
	msgMissingDates  = "список дат обязателен"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput  = "некорректные данные запроса"
	msgInvalidConfig = "некорректные параметры правила расписания"
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

// Handle POST /api/v1/admin/days/apply-preset
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ApplyPresetRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/days/apply-preset - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if len(req.Dates) == 0 {
		h.logger.Warn("POST /admin/days/apply-preset - Empty dates list: preset=%s", req.Preset)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /admin/days/apply-preset - Invalid date format: preset=%s, error=%v", req.Preset, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.ApplyPreset(r.Context(), serviceReq); err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /admin/days/apply-preset - Invalid request: preset=%s, error=%v", req.Preset, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, schedule.ErrInvalidScheduleConfig):
			h.logger.Warn("POST /admin/days/apply-preset - Invalid schedule config: preset=%s, error=%v", req.Preset, err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		default:
			h.logger.Error("POST /admin/days/apply-preset - Failed to apply preset: preset=%s, error=%v", req.Preset, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/days/apply-preset - Preset applied successfully: preset=%s, dates_count=%d",
		req.Preset, len(req.Dates))
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
