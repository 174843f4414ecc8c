package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WellnessService/internal/api/handlers"
	"github.com/m04kA/SMC-WellnessService/internal/service/bookings"
	"github.com/m04kA/SMC-WellnessService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgInvalidBody      = "некорректное тело запроса"
	msgMissingIdentity  = "идентификатор обязателен"
	msgBookingNotFound  = "бронирование не найдено"
	msgAlreadyCancelled = "бронирование уже отменено"
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

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
// Отмена владельцем: идентификатор в теле должен совпадать с записью.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.parseBookingID(w, r, "PATCH /bookings/{id}/cancel")
	if !ok {
		return
	}

	var req models.CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request body: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if req.Identity == "" {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Missing identity: booking_id=%s", bookingID)
		handlers.RespondBadRequest(w, msgMissingIdentity)
		return
	}

	err := h.service.CancelByOwner(r.Context(), bookingID, &req)
	if err != nil {
		h.respondServiceError(w, err, "PATCH /bookings/{id}/cancel", bookingID)
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleAdmin PATCH /api/v1/admin/bookings/{bookingId}/cancel
// Административная отмена: проверка владельца не выполняется.
func (h *Handler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.parseBookingID(w, r, "PATCH /admin/bookings/{id}/cancel")
	if !ok {
		return
	}

	err := h.service.CancelByAdmin(r.Context(), bookingID)
	if err != nil {
		h.respondServiceError(w, err, "PATCH /admin/bookings/{id}/cancel", bookingID)
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id}/cancel - Booking cancelled by admin: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) parseBookingID(w http.ResponseWriter, r *http.Request, op string) (uuid.UUID, bool) {
	bookingID, err := uuid.Parse(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("%s - Invalid booking ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return uuid.Nil, false
	}
	return bookingID, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error, op string, bookingID uuid.UUID) {
	switch {
	case errors.Is(err, bookings.ErrInvalidInput):
		h.logger.Warn("%s - Invalid request: booking_id=%s, error=%v", op, bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)

	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("%s - Booking not found: booking_id=%s", op, bookingID)
		handlers.RespondNotFound(w, msgBookingNotFound)

	case errors.Is(err, bookings.ErrAlreadyCancelled):
		h.logger.Warn("%s - Booking already cancelled: booking_id=%s", op, bookingID)
		handlers.RespondError(w, http.StatusConflict, msgAlreadyCancelled)

	default:
		h.logger.Error("%s - Failed to cancel booking: booking_id=%s, error=%v", op, bookingID, err)
		handlers.RespondInternalError(w)
	}
}
