package block_slot

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WellnessService/internal/api/handlers"
	"github.com/m04kA/SMC-WellnessService/internal/domain"
	"github.com/m04kA/SMC-WellnessService/internal/service/schedule"
	"github.com/m04kA/SMC-WellnessService/pkg/types"
)

const (
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime  = "некорректный формат времени, ожидается HH:MM"
	msgSlotNotFound = "слот не найден в расписании дня"
	msgSlotOccupied = "на это время уже есть активные записи"
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

// Handle POST /api/v1/admin/days/{date}/slots/{time}/block
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, startTime, ok := h.parseSlotRef(w, r, "POST /admin/days/{date}/slots/{time}/block")
	if !ok {
		return
	}

	err := h.service.BlockSlot(r.Context(), date, startTime)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrSlotNotFound):
			h.logger.Warn("POST /admin/days/{date}/slots/{time}/block - Slot not found: date=%s, start_time=%s",
				date.Format(domain.DateFormat), startTime)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, schedule.ErrSlotOccupied):
			h.logger.Warn("POST /admin/days/{date}/slots/{time}/block - Slot has active bookings: date=%s, start_time=%s",
				date.Format(domain.DateFormat), startTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotOccupied)

		default:
			h.logger.Error("POST /admin/days/{date}/slots/{time}/block - Failed to block slot: date=%s, start_time=%s, error=%v",
				date.Format(domain.DateFormat), startTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/days/{date}/slots/{time}/block - Slot blocked successfully: date=%s, start_time=%s",
		date.Format(domain.DateFormat), startTime)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleUnblock DELETE /api/v1/admin/days/{date}/slots/{time}/block
// Снятие блокировки идемпотентно: отсутствие блокировки не является ошибкой.
func (h *Handler) HandleUnblock(w http.ResponseWriter, r *http.Request) {
	date, startTime, ok := h.parseSlotRef(w, r, "DELETE /admin/days/{date}/slots/{time}/block")
	if !ok {
		return
	}

	if err := h.service.UnblockSlot(r.Context(), date, startTime); err != nil {
		h.logger.Error("DELETE /admin/days/{date}/slots/{time}/block - Failed to unblock slot: date=%s, start_time=%s, error=%v",
			date.Format(domain.DateFormat), startTime, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/days/{date}/slots/{time}/block - Slot unblocked successfully: date=%s, start_time=%s",
		date.Format(domain.DateFormat), startTime)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) parseSlotRef(w http.ResponseWriter, r *http.Request, op string) (time.Time, types.TimeString, bool) {
	vars := mux.Vars(r)

	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("%s - Invalid date: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return time.Time{}, "", false
	}

	startTime, err := types.NewTimeStringFromString(vars["time"])
	if err != nil {
		h.logger.Warn("%s - Invalid time: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return time.Time{}, "", false
	}

	return date, startTime, true
}
