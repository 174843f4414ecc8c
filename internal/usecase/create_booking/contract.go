package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WellnessService/internal/domain"
	"github.com/m04kA/SMC-WellnessService/internal/integrations/eligibility"
	"github.com/m04kA/SMC-WellnessService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveByDateAndTime(ctx context.Context, date time.Time, startTime types.TimeString) ([]*domain.Booking, error)
	ExistsActiveInRange(ctx context.Context, identityRef string, from, to time.Time) (bool, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetRule(ctx context.Context) (*domain.ScheduleRule, error)
	GetDay(ctx context.Context, day time.Time) (*domain.DayConfig, error)
}

// EligibilityClient интерфейс клиента сервиса проверки участников программы
type EligibilityClient interface {
	GetParticipant(ctx context.Context, identityRef string) (*eligibility.Participant, error)
}

// IdentityHasher интерфейс вычисления digest идентификатора сотрудника
type IdentityHasher interface {
	Digest(raw string) string
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
