package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WellnessService/internal/domain"
	"github.com/m04kA/SMC-WellnessService/pkg/types"
)

// ScheduleRepository интерфейс репозитория правила расписания и настроек дней
type ScheduleRepository interface {
	GetRule(ctx context.Context) (*domain.ScheduleRule, error)
	UpsertRule(ctx context.Context, rule *domain.ScheduleRule) (*domain.ScheduleRule, error)
	GetDay(ctx context.Context, day time.Time) (*domain.DayConfig, error)
	ListDays(ctx context.Context, from, to time.Time) ([]*domain.DayConfig, error)
	UpsertDay(ctx context.Context, dayConfig *domain.DayConfig) (*domain.DayConfig, error)
}

// BookingRepository интерфейс репозитория бронирований
// Нужен для блокировок слотов и подсчёта занятости
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	GetActiveByDateAndTime(ctx context.Context, date time.Time, startTime types.TimeString) ([]*domain.Booking, error)
	CancelBlocks(ctx context.Context, date time.Time, startTime types.TimeString) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
