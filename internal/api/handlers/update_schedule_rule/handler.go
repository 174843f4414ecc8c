package update_schedule_rule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WellnessService/internal/api/handlers"
	"github.com/m04kA/SMC-WellnessService/internal/service/schedule"
	"github.com/m04kA/SMC-WellnessService/internal/service/schedule/models"
)

const (
	msgInvalidBody   = "некорректное тело запроса"
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

// Handle GET /api/v1/admin/schedule/rule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetRule(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/schedule/rule - Failed to get rule: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/schedule/rule - Rule retrieved successfully")
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT /api/v1/admin/schedule/rule
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/schedule/rule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.UpdateRule(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidScheduleConfig):
			h.logger.Warn("PUT /admin/schedule/rule - Invalid rule config: %v", err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		default:
			h.logger.Error("PUT /admin/schedule/rule - Failed to update rule: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/schedule/rule - Rule updated successfully: window=%s-%s, duration=%d, gap=%d, slots_per_time=%d",
		result.WindowStart, result.WindowEnd, result.SessionDurationMinutes, result.GapMinutes, result.SlotsPerTime)
	handlers.RespondJSON(w, http.StatusOK, result)
}
