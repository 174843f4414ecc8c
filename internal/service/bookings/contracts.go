package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-WellnessService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetActiveByIdentity(ctx context.Context, identityRef string) ([]*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.AgendaFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id uuid.UUID) error
}

// IdentityHasher интерфейс вычисления digest идентификатора сотрудника
type IdentityHasher interface {
	Digest(raw string) string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
