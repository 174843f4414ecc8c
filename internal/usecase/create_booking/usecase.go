package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-WellnessService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-WellnessService/internal/infra/storage/schedule"
	eligibilityClient "github.com/m04kA/SMC-WellnessService/internal/integrations/eligibility"
	"github.com/m04kA/SMC-WellnessService/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo       BookingRepository
	scheduleRepo      ScheduleRepository
	eligibilityClient EligibilityClient
	hasher            IdentityHasher
	txManager         TransactionManager
	timeProvider      TimeProvider
	location          *time.Location
	logger            Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	eligibilityClient EligibilityClient,
	hasher IdentityHasher,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:       bookingRepo,
		scheduleRepo:      scheduleRepo,
		eligibilityClient: eligibilityClient,
		hasher:            hasher,
		txManager:         txManager,
		timeProvider:      &RealTimeProvider{},
		location:          location,
		logger:            logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка лимита, проверка вместимости и вставка выполняются в одной
// сериализуемой транзакции: два одновременных запроса на последнее место
// (или на одну неделю одного сотрудника) не могут пройти оба.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: date=%s, time=%s",
		req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время в операционном часовом поясе
	now := uc.timeProvider.Now().In(uc.location)

	// 3. Проверяем, что слот существует в расписании дня.
	// Прошедшая дата, закрытый день, отсутствующий слот и уже наступившее
	// время дают один и тот же ответ - слота нет.
	if err := uc.resolveSlot(ctx, req, now); err != nil {
		return nil, err
	}

	// 4. Проверяем сотрудника по списку участников программы
	identityRef := uc.hasher.Digest(req.Identity)

	participant, err := uc.eligibilityClient.GetParticipant(ctx, identityRef)
	if err != nil {
		if errors.Is(err, eligibilityClient.ErrParticipantNotFound) {
			uc.logger.Warn("CreateBooking: identity not eligible")
			return nil, ErrIdentityNotEligible
		}
		uc.logger.Error("CreateBooking: eligibility lookup failed: %v", err)
		return nil, fmt.Errorf("%w: eligibility lookup failed: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Недельный лимит: одно активное бронирование на сотрудника
		// в календарную неделю (понедельник - воскресенье)
		weekStart, weekEnd := weekBounds(req.Date)
		hasBooking, err := uc.bookingRepo.ExistsActiveInRange(txCtx, identityRef, weekStart, weekEnd)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check weekly quota: %v", err)
			return fmt.Errorf("%w: failed to check weekly quota: %w", ErrInternal, err)
		}
		if hasBooking {
			uc.logger.Warn("CreateBooking: weekly quota exceeded for week of %s",
				weekStart.Format(domain.DateFormat))
			return ErrWeeklyQuotaExceeded
		}

		// 5.2. Проверяем вместимость слота. Блокировка доминирует.
		active, err := uc.bookingRepo.GetActiveByDateAndTime(txCtx, req.Date, req.StartTime)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get slot bookings: %v", err)
			return fmt.Errorf("%w: failed to get slot bookings: %w", ErrInternal, err)
		}

		totalSpots, err := uc.slotsPerTime(txCtx)
		if err != nil {
			return err
		}

		occupied, blocked := countSlotOccupancy(active)
		if blocked || occupied >= totalSpots {
			uc.logger.Warn("CreateBooking: slot %s %s unavailable (occupied=%d/%d, blocked=%v)",
				req.Date.Format(domain.DateFormat), req.StartTime, occupied, totalSpots, blocked)
			return ErrSlotFull
		}

		// 5.3. Создаем бронирование. Имя берется из списка участников,
		// а не из запроса.
		booking := &domain.Booking{
			ID:          uuid.New(),
			Date:        req.Date,
			StartTime:   req.StartTime,
			IdentityRef: identityRef,
			DisplayName: participant.DisplayName,
			GroupTag:    participant.GroupTag,
			Status:      domain.StatusConfirmed,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	return &Response{
		ID:          result.ID,
		Date:        result.Date,
		StartTime:   result.StartTime,
		Status:      string(result.Status),
		DisplayName: result.DisplayName,
		GroupTag:    result.GroupTag,
		CreatedAt:   result.CreatedAt,
	}, nil
}

// resolveSlot проверяет, что запрошенный слот предлагается к бронированию
func (uc *UseCase) resolveSlot(ctx context.Context, req *Request, now time.Time) error {
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return ErrSlotNotFound
	}

	day, err := uc.scheduleRepo.GetDay(ctx, req.Date)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDayNotFound) {
			uc.logger.Warn("CreateBooking: day %s is not configured", req.Date.Format(domain.DateFormat))
			return ErrSlotNotFound
		}
		uc.logger.Error("CreateBooking: failed to get day config: %v", err)
		return fmt.Errorf("%w: failed to get day config: %v", ErrInternal, err)
	}

	if !slotListed(day, req.StartTime) {
		uc.logger.Warn("CreateBooking: slot %s not in schedule of %s", req.StartTime, req.Date.Format(domain.DateFormat))
		return ErrSlotNotFound
	}

	// Сегодняшний слот, время которого уже наступило, не предлагается
	if isSameDay(req.Date, now) && !req.StartTime.IsAfter(types.NewTimeString(now)) {
		uc.logger.Warn("CreateBooking: slot %s today has already passed", req.StartTime)
		return ErrSlotNotFound
	}

	return nil
}

// slotsPerTime возвращает вместимость слота из правила расписания
func (uc *UseCase) slotsPerTime(ctx context.Context) (int, error) {
	rule, err := uc.scheduleRepo.GetRule(ctx)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrRuleNotFound) {
			return domain.DefaultSlotsPerTime, nil
		}
		uc.logger.Error("CreateBooking: failed to get schedule rule: %v", err)
		return 0, fmt.Errorf("%w: failed to get schedule rule: %w", ErrInternal, err)
	}
	return rule.SlotsPerTime, nil
}
