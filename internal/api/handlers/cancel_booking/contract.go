package cancel_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-WellnessService/internal/service/bookings/models"
)

type BookingService interface {
	CancelByOwner(ctx context.Context, bookingID uuid.UUID, req *models.CancelBookingRequest) error
	CancelByAdmin(ctx context.Context, bookingID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
