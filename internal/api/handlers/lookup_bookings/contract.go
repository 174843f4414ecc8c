package lookup_bookings

import (
	"context"

	"github.com/m04kA/SMC-WellnessService/internal/service/bookings/models"
)

type BookingService interface {
	Lookup(ctx context.Context, req *models.LookupRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
