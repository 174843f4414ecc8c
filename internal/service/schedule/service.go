package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-WellnessService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-WellnessService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-WellnessService/internal/service/schedule/models"
	"github.com/m04kA/SMC-WellnessService/pkg/types"
)

// Service сервис административного управления расписанием
type Service struct {
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetRule возвращает правило генерации слотов.
// До первого сохранения администратором отдаются значения по умолчанию.
func (s *Service) GetRule(ctx context.Context) (*models.ScheduleRuleResponse, error) {
	rule, err := s.effectiveRule(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainRule(rule), nil
}

// UpdateRule валидирует и сохраняет правило генерации слотов
func (s *Service) UpdateRule(ctx context.Context, req *models.UpdateRuleRequest) (*models.ScheduleRuleResponse, error) {
	s.logger.Info("UpdateRule: updating schedule rule window=%s-%s duration=%d gap=%d capacity=%d",
		req.WindowStart, req.WindowEnd, req.SessionDurationMinutes, req.GapMinutes, req.SlotsPerTime)

	rule := req.ToDomainRule()
	if err := s.validateRule(rule); err != nil {
		s.logger.Warn("UpdateRule: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.scheduleRepo.UpsertRule(ctx, rule)
	if err != nil {
		s.logger.Error("UpdateRule: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateRule: successfully updated schedule rule")
	return models.FromDomainRule(saved), nil
}

// GetSchedule возвращает правило и настройки дней за период,
// включая активные блокировки слотов
func (s *Service) GetSchedule(ctx context.Context, from, to time.Time) (*models.ScheduleResponse, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: period end before start", ErrInvalidInput)
	}

	rule, err := s.effectiveRule(ctx)
	if err != nil {
		return nil, err
	}

	days, err := s.scheduleRepo.ListDays(ctx, from, to)
	if err != nil {
		s.logger.Error("GetSchedule: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	resp := &models.ScheduleResponse{
		Rule: models.FromDomainRule(rule),
		Days: make([]models.DayResponse, 0, len(days)),
	}

	for _, day := range days {
		blocked, err := s.blockedSlots(ctx, day.Day)
		if err != nil {
			return nil, err
		}
		resp.Days = append(resp.Days, models.FromDomainDay(day, blocked))
	}

	s.logger.Info("GetSchedule: fetched %d days for period %s - %s",
		len(days), from.Format(domain.DateFormat), to.Format(domain.DateFormat))
	return resp, nil
}

// SetDays массово сохраняет настройки дней.
// Повторное сохранение дня перезаписывает предыдущее (last-write-wins).
func (s *Service) SetDays(ctx context.Context, req *models.SetDaysRequest) error {
	if len(req.Days) == 0 {
		return fmt.Errorf("%w: days list is empty", ErrInvalidInput)
	}

	for _, d := range req.Days {
		if err := validateSlotList(d.CustomSlots); err != nil {
			return err
		}
	}

	for _, d := range req.Days {
		dayConfig := &domain.DayConfig{
			Day:         truncateToDay(d.Date),
			IsOpen:      d.IsOpen,
			CustomSlots: sortedSlots(d.CustomSlots),
		}

		if _, err := s.scheduleRepo.UpsertDay(ctx, dayConfig); err != nil {
			s.logger.Error("SetDays: repository error for day=%s: %v", d.Date.Format(domain.DateFormat), err)
			return fmt.Errorf("%w: SetDays - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("SetDays: successfully saved %d days", len(req.Days))
	return nil
}

// ApplyPreset раскладывает сменный пресет по датам: генерирует слоты в окне
// пресета с кадансом текущего правила и сохраняет их как явный список дня
func (s *Service) ApplyPreset(ctx context.Context, req *models.ApplyPresetRequest) error {
	if len(req.Dates) == 0 {
		return fmt.Errorf("%w: dates list is empty", ErrInvalidInput)
	}

	windowStart, windowEnd, err := presetWindow(req.Preset)
	if err != nil {
		return err
	}

	rule, err := s.effectiveRule(ctx)
	if err != nil {
		return err
	}

	slots, err := GenerateSlots(windowStart, windowEnd, rule.SessionDurationMinutes, rule.GapMinutes, rule.Lunch)
	if err != nil {
		return err
	}

	s.logger.Info("ApplyPreset: preset=%s produced %d slots for %d dates", req.Preset, len(slots), len(req.Dates))

	for _, date := range req.Dates {
		dayConfig := &domain.DayConfig{
			Day:         truncateToDay(date),
			IsOpen:      true,
			CustomSlots: slots,
		}

		if _, err := s.scheduleRepo.UpsertDay(ctx, dayConfig); err != nil {
			s.logger.Error("ApplyPreset: repository error for day=%s: %v", date.Format(domain.DateFormat), err)
			return fmt.Errorf("%w: ApplyPreset - repository error: %v", ErrInternal, err)
		}
	}

	return nil
}

// Replicate копирует настройку дня-источника на целевые даты.
// Даты обрабатываются независимо: отказ по одной не останавливает остальные.
func (s *Service) Replicate(ctx context.Context, req *models.ReplicateRequest) (*models.ReplicateResponse, error) {
	if len(req.TargetDates) == 0 {
		return nil, fmt.Errorf("%w: target dates list is empty", ErrInvalidInput)
	}
	if len(req.TargetDates) > domain.MaxReplicationDays {
		return nil, fmt.Errorf("%w: too many target dates", ErrInvalidInput)
	}

	sourceDay := truncateToDay(req.SourceDate)
	source, err := s.scheduleRepo.GetDay(ctx, sourceDay)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDayNotFound) {
			s.logger.Warn("Replicate: source day=%s not configured", sourceDay.Format(domain.DateFormat))
			return nil, ErrDayNotFound
		}
		s.logger.Error("Replicate: repository error for source day=%s: %v", sourceDay.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: Replicate - repository error: %v", ErrInternal, err)
	}

	sourceBlocks, err := s.blockedSlots(ctx, sourceDay)
	if err != nil {
		return nil, err
	}

	resp := &models.ReplicateResponse{
		Applied: make([]string, 0, len(req.TargetDates)),
		Skipped: make([]models.SkippedDate, 0),
	}

	for _, target := range req.TargetDates {
		targetDay := truncateToDay(target)
		dateStr := targetDay.Format(domain.DateFormat)

		if targetDay.Equal(sourceDay) {
			resp.Skipped = append(resp.Skipped, models.SkippedDate{Date: dateStr, Reason: "target equals source"})
			continue
		}

		if err := s.replicateToDay(ctx, source, sourceBlocks, targetDay); err != nil {
			s.logger.Warn("Replicate: skipped day=%s: %v", dateStr, err)
			resp.Skipped = append(resp.Skipped, models.SkippedDate{Date: dateStr, Reason: err.Error()})
			continue
		}

		resp.Applied = append(resp.Applied, dateStr)
	}

	s.logger.Info("Replicate: source=%s applied=%d skipped=%d",
		sourceDay.Format(domain.DateFormat), len(resp.Applied), len(resp.Skipped))
	return resp, nil
}

// BlockSlot блокирует слот служебным бронированием.
// Слот с реальными бронированиями заблокировать нельзя.
// Повторная блокировка уже заблокированного слота - no-op.
func (s *Service) BlockSlot(ctx context.Context, date time.Time, startTime types.TimeString) error {
	day := truncateToDay(date)

	if err := s.ensureSlotExists(ctx, day, startTime); err != nil {
		return err
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		active, err := s.bookingRepo.GetActiveByDateAndTime(txCtx, day, startTime)
		if err != nil {
			return fmt.Errorf("%w: BlockSlot - repository error: %v", ErrInternal, err)
		}

		for _, b := range active {
			if b.IsBlock() {
				// Слот уже заблокирован
				return nil
			}
		}
		if len(active) > 0 {
			return ErrSlotOccupied
		}

		block := &domain.Booking{
			ID:          uuid.New(),
			Date:        day,
			StartTime:   startTime,
			IdentityRef: domain.BlockIdentityRef,
			DisplayName: "Blocked",
			Status:      domain.StatusConfirmed,
		}

		if _, err := s.bookingRepo.Create(txCtx, block); err != nil {
			return fmt.Errorf("%w: BlockSlot - repository error: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotOccupied) {
			s.logger.Warn("BlockSlot: slot %s %s has active bookings", day.Format(domain.DateFormat), startTime)
			return ErrSlotOccupied
		}
		s.logger.Error("BlockSlot: transaction error for %s %s: %v", day.Format(domain.DateFormat), startTime, err)
		return err
	}

	s.logger.Info("BlockSlot: slot %s %s blocked", day.Format(domain.DateFormat), startTime)
	return nil
}

// UnblockSlot снимает блокировку слота. Снятие всегда разрешено,
// отсутствие блокировки не считается ошибкой.
func (s *Service) UnblockSlot(ctx context.Context, date time.Time, startTime types.TimeString) error {
	day := truncateToDay(date)

	removed, err := s.bookingRepo.CancelBlocks(ctx, day, startTime)
	if err != nil {
		s.logger.Error("UnblockSlot: repository error for %s %s: %v", day.Format(domain.DateFormat), startTime, err)
		return fmt.Errorf("%w: UnblockSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UnblockSlot: slot %s %s unblocked (%d blocks removed)",
		day.Format(domain.DateFormat), startTime, removed)
	return nil
}

// Вспомогательные методы

// effectiveRule возвращает сохраненное правило или значения по умолчанию
func (s *Service) effectiveRule(ctx context.Context) (*domain.ScheduleRule, error) {
	rule, err := s.scheduleRepo.GetRule(ctx)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrRuleNotFound) {
			return defaultRule(), nil
		}
		s.logger.Error("effectiveRule: repository error: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule rule: %v", ErrInternal, err)
	}
	return rule, nil
}

// blockedSlots возвращает времена активных блокировок на дату
func (s *Service) blockedSlots(ctx context.Context, day time.Time) ([]types.TimeString, error) {
	bookings, err := s.bookingRepo.GetActiveByDate(ctx, day)
	if err != nil {
		s.logger.Error("blockedSlots: repository error for day=%s: %v", day.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	blocked := make([]types.TimeString, 0)
	for _, b := range bookings {
		if b.IsBlock() {
			blocked = append(blocked, b.StartTime)
		}
	}
	return blocked, nil
}

// replicateToDay копирует настройку источника на один целевой день
func (s *Service) replicateToDay(ctx context.Context, source *domain.DayConfig, sourceBlocks []types.TimeString, targetDay time.Time) error {
	targetBookings, err := s.bookingRepo.GetActiveByDate(ctx, targetDay)
	if err != nil {
		return fmt.Errorf("%w: failed to get target bookings: %v", ErrInternal, err)
	}

	hasRealBookings := false
	blockedTimes := make(map[types.TimeString]bool)
	occupiedTimes := make(map[types.TimeString]bool)
	for _, b := range targetBookings {
		if b.IsBlock() {
			blockedTimes[b.StartTime] = true
		} else {
			hasRealBookings = true
			occupiedTimes[b.StartTime] = true
		}
	}

	// Закрытие дня с реальными бронированиями оставило бы людей без слотов
	if !source.IsOpen && hasRealBookings {
		return fmt.Errorf("target day has active bookings")
	}

	dayConfig := &domain.DayConfig{
		Day:         targetDay,
		IsOpen:      source.IsOpen,
		CustomSlots: source.CustomSlots,
	}

	if _, err := s.scheduleRepo.UpsertDay(ctx, dayConfig); err != nil {
		return fmt.Errorf("%w: failed to save target day: %v", ErrInternal, err)
	}

	// Переносим блокировки источника. Слот с реальным бронированием на целевом
	// дне пропускается, остальные блокировки все равно применяются.
	for _, blockTime := range sourceBlocks {
		if occupiedTimes[blockTime] || blockedTimes[blockTime] {
			continue
		}

		block := &domain.Booking{
			ID:          uuid.New(),
			Date:        targetDay,
			StartTime:   blockTime,
			IdentityRef: domain.BlockIdentityRef,
			DisplayName: "Blocked",
			Status:      domain.StatusConfirmed,
		}
		if _, err := s.bookingRepo.Create(ctx, block); err != nil {
			return fmt.Errorf("%w: failed to copy block: %v", ErrInternal, err)
		}
	}

	return nil
}

// ensureSlotExists проверяет, что слот присутствует в расписании дня
func (s *Service) ensureSlotExists(ctx context.Context, day time.Time, startTime types.TimeString) error {
	dayConfig, err := s.scheduleRepo.GetDay(ctx, day)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDayNotFound) {
			return ErrSlotNotFound
		}
		s.logger.Error("ensureSlotExists: repository error for day=%s: %v", day.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: failed to get day config: %v", ErrInternal, err)
	}

	for _, slot := range EffectiveSlots(dayConfig) {
		if slot == startTime {
			return nil
		}
	}
	return ErrSlotNotFound
}

// validateRule валидирует параметры правила расписания
func (s *Service) validateRule(rule *domain.ScheduleRule) error {
	if err := rule.WindowStart.Validate(); err != nil {
		return fmt.Errorf("%w: windowStart: %v", ErrInvalidScheduleConfig, err)
	}
	if err := rule.WindowEnd.Validate(); err != nil {
		return fmt.Errorf("%w: windowEnd: %v", ErrInvalidScheduleConfig, err)
	}
	if !rule.WindowStart.IsBefore(rule.WindowEnd) {
		return fmt.Errorf("%w: windowEnd must be after windowStart", ErrInvalidScheduleConfig)
	}
	if rule.SessionDurationMinutes < domain.MinSessionDurationMinutes || rule.SessionDurationMinutes > domain.MaxSessionDurationMinutes {
		return fmt.Errorf("%w: sessionDurationMinutes must be between %d and %d",
			ErrInvalidScheduleConfig, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
	}
	if rule.GapMinutes < domain.MinGapMinutes || rule.GapMinutes > domain.MaxGapMinutes {
		return fmt.Errorf("%w: gapMinutes must be between %d and %d",
			ErrInvalidScheduleConfig, domain.MinGapMinutes, domain.MaxGapMinutes)
	}
	if rule.SlotsPerTime < domain.MinSlotsPerTime || rule.SlotsPerTime > domain.MaxSlotsPerTime {
		return fmt.Errorf("%w: slotsPerTime must be between %d and %d",
			ErrInvalidScheduleConfig, domain.MinSlotsPerTime, domain.MaxSlotsPerTime)
	}
	if rule.Lunch != nil {
		if err := rule.Lunch.Start.Validate(); err != nil {
			return fmt.Errorf("%w: lunch start: %v", ErrInvalidScheduleConfig, err)
		}
		if err := rule.Lunch.End.Validate(); err != nil {
			return fmt.Errorf("%w: lunch end: %v", ErrInvalidScheduleConfig, err)
		}
		if !rule.Lunch.Start.IsBefore(rule.Lunch.End) {
			return fmt.Errorf("%w: lunch end must be after lunch start", ErrInvalidScheduleConfig)
		}
	}

	slots, err := GenerateRuleSlots(rule)
	if err != nil {
		return err
	}
	if len(slots) == 0 {
		return fmt.Errorf("%w: window does not fit a single session", ErrInvalidScheduleConfig)
	}
	return nil
}

// defaultRule правило расписания до первой настройки администратором
func defaultRule() *domain.ScheduleRule {
	return &domain.ScheduleRule{
		WindowStart:            types.TimeString(domain.DefaultWindowStart),
		WindowEnd:              types.TimeString(domain.DefaultWindowEnd),
		SessionDurationMinutes: domain.DefaultSessionDurationMinutes,
		GapMinutes:             domain.DefaultGapMinutes,
		SlotsPerTime:           domain.DefaultSlotsPerTime,
		Lunch: &domain.LunchBreak{
			Start: types.TimeString(domain.DefaultLunchStart),
			End:   types.TimeString(domain.DefaultLunchEnd),
		},
	}
}

// presetWindow возвращает окно генерации для сменного пресета
func presetWindow(preset string) (types.TimeString, types.TimeString, error) {
	switch preset {
	case models.PresetMorning:
		return "08:00", "12:00", nil
	case models.PresetAfternoon:
		return "13:00", "18:00", nil
	case models.PresetFullDay:
		return "09:00", "17:00", nil
	default:
		return "", "", fmt.Errorf("%w: unknown preset %q", ErrInvalidInput, preset)
	}
}

// validateSlotList проверяет корректность явного списка слотов
func validateSlotList(slots []types.TimeString) error {
	seen := make(map[types.TimeString]bool, len(slots))
	for _, slot := range slots {
		if err := slot.Validate(); err != nil {
			return fmt.Errorf("%w: slot %q: %v", ErrInvalidInput, slot, err)
		}
		if seen[slot] {
			return fmt.Errorf("%w: duplicate slot %q", ErrInvalidInput, slot)
		}
		seen[slot] = true
	}
	return nil
}

// sortedSlots возвращает отсортированную копию списка слотов
func sortedSlots(slots []types.TimeString) []types.TimeString {
	if slots == nil {
		return nil
	}
	sorted := make([]types.TimeString, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].IsBefore(sorted[j])
	})
	return sorted
}

// truncateToDay обнуляет компонент времени даты
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
