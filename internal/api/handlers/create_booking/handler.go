package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WellnessService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-WellnessService/internal/usecase/create_booking"
)

const (
	msgInvalidBody         = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты или времени"
	msgInvalidInput        = "некорректные данные запроса"
	msgSlotNotFound        = "слот не найден или недоступен для записи"
	msgIdentityNotEligible = "идентификатор не найден в списке участников"
	msgWeeklyQuotaExceeded = "на этой неделе уже есть активная запись"
	msgSlotFull            = "все места на это время заняты"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Декодируем тело запроса
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date or time: date=%s, start_time=%s, error=%v",
			req.Date, req.StartTime, err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid request: date=%s, start_time=%s, error=%v",
				req.Date, req.StartTime, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: date=%s, start_time=%s", req.Date, req.StartTime)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrIdentityNotEligible):
			h.logger.Warn("POST /bookings - Identity not eligible: date=%s, start_time=%s", req.Date, req.StartTime)
			handlers.RespondForbidden(w, msgIdentityNotEligible)

		case errors.Is(err, createBooking.ErrWeeklyQuotaExceeded):
			h.logger.Warn("POST /bookings - Weekly quota exceeded: date=%s, start_time=%s", req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgWeeklyQuotaExceeded)

		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings - Slot is full: date=%s, start_time=%s", req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, start_time=%s, error=%v",
				req.Date, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, date=%s, start_time=%s",
		response.ID, response.Date, response.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
