package get_agenda

import (
	"context"

	"github.com/m04kA/SMC-WellnessService/internal/service/bookings/models"
)

type BookingService interface {
	GetAgenda(ctx context.Context, req *models.AgendaRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
