package replicate_day

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WellnessService/internal/api/handlers"
	"github.com/m04kA/SMC-WellnessService/internal/domain"
	"github.com/m04kA/SMC-WellnessService/internal/service/schedule"
)

const (
	msgInvalidBody    = "некорректное тело запроса"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingTargets = "список целевых дат обязателен"
	msgInvalidInput   = "некорректные данные запроса"
	msgSourceNotFound = "исходный день не настроен"
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

// Handle POST /api/v1/admin/days/{date}/replicate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := mux.Vars(r)["date"]
	sourceDate, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("POST /admin/days/{date}/replicate - Invalid source date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req ReplicateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/days/{date}/replicate - Invalid request body: date=%s, error=%v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if len(req.TargetDates) == 0 {
		h.logger.Warn("POST /admin/days/{date}/replicate - Empty target dates: date=%s", dateStr)
		handlers.RespondBadRequest(w, msgMissingTargets)
		return
	}

	serviceReq, err := req.ToServiceRequest(sourceDate)
	if err != nil {
		h.logger.Warn("POST /admin/days/{date}/replicate - Invalid target date: date=%s, error=%v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Replicate(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /admin/days/{date}/replicate - Invalid request: date=%s, error=%v", dateStr, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, schedule.ErrDayNotFound):
			h.logger.Warn("POST /admin/days/{date}/replicate - Source day not found: date=%s", dateStr)
			handlers.RespondNotFound(w, msgSourceNotFound)

		default:
			h.logger.Error("POST /admin/days/{date}/replicate - Failed to replicate day: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/days/{date}/replicate - Day replicated successfully: date=%s, applied=%d, skipped=%d",
		dateStr, len(result.Applied), len(result.Skipped))
	handlers.RespondJSON(w, http.StatusOK, result)
}
