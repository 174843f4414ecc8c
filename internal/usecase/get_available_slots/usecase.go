package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WellnessService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-WellnessService/internal/infra/storage/schedule"
	scheduleService "github.com/m04kA/SMC-WellnessService/internal/service/schedule"
)

// UseCase use case получения публичного списка доступных слотов
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Текущее время в операционном часовом поясе
	now := uc.timeProvider.Now().In(uc.location)

	// Прошедшие дни не предлагаются
	if isDateInPast(req.Date, now) {
		return &Response{Date: req.Date, IsOpen: false, Slots: []Slot{}}, nil
	}

	// 3. Получаем настройку дня. День без настройки закрыт.
	day, err := uc.scheduleRepo.GetDay(ctx, req.Date)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDayNotFound) {
			uc.logger.Info("GetAvailableSlots: day %s is not configured", req.Date.Format(domain.DateFormat))
			return &Response{Date: req.Date, IsOpen: false, Slots: []Slot{}}, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get day config: %v", err)
		return nil, fmt.Errorf("%w: failed to get day config: %v", ErrInternal, err)
	}

	if !day.IsOpen {
		return &Response{Date: req.Date, IsOpen: false, Slots: []Slot{}}, nil
	}

	// 4. Источник слотов - только явный список дня
	slotTimes := scheduleService.EffectiveSlots(day)
	if len(slotTimes) == 0 {
		return &Response{Date: req.Date, IsOpen: true, Slots: []Slot{}}, nil
	}

	// 5. Вместимость слота берется из правила расписания
	totalSpots, err := uc.slotsPerTime(ctx)
	if err != nil {
		return nil, err
	}

	// 6. Получаем все активные бронирования на эту дату
	bookings, err := uc.bookingRepo.GetActiveByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Вычисляем доступность для каждого слота
	occupancy := buildOccupancy(bookings)
	slots := publicSlots(slotTimes, occupancy, totalSpots, req.Date, now)

	uc.logger.Info("GetAvailableSlots: %d of %d slots available on %s",
		len(slots), len(slotTimes), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:   req.Date,
		IsOpen: true,
		Slots:  slots,
	}, nil
}

// slotsPerTime возвращает вместимость слота из правила расписания
func (uc *UseCase) slotsPerTime(ctx context.Context) (int, error) {
	rule, err := uc.scheduleRepo.GetRule(ctx)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrRuleNotFound) {
			return domain.DefaultSlotsPerTime, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule rule: %v", err)
		return 0, fmt.Errorf("%w: failed to get schedule rule: %v", ErrInternal, err)
	}
	return rule.SlotsPerTime, nil
}
