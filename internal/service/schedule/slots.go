package schedule

import (
	"fmt"

	"github.com/m04kA/SMC-WellnessService/internal/domain"
	"github.com/m04kA/SMC-WellnessService/pkg/types"
)

// GenerateSlots детерминированно генерирует времена начала сессий в окне
// [windowStart, windowEnd]. Курсор всегда шагает на duration+gap, независимо
// от обеда: обед подавляет только выдачу слота, а не сдвигает сетку. Слот,
// пересекающийся с обедом хотя бы частично, не выдается.
func GenerateSlots(
	windowStart, windowEnd types.TimeString,
	durationMinutes, gapMinutes int,
	lunch *domain.LunchBreak,
) ([]types.TimeString, error) {
	if err := windowStart.Validate(); err != nil {
		return nil, fmt.Errorf("%w: window start: %v", ErrInvalidScheduleConfig, err)
	}
	if err := windowEnd.Validate(); err != nil {
		return nil, fmt.Errorf("%w: window end: %v", ErrInvalidScheduleConfig, err)
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: session duration must be positive", ErrInvalidScheduleConfig)
	}
	if gapMinutes < 0 {
		return nil, fmt.Errorf("%w: gap must not be negative", ErrInvalidScheduleConfig)
	}
	if !windowStart.IsBefore(windowEnd) {
		return nil, fmt.Errorf("%w: window end must be after window start", ErrInvalidScheduleConfig)
	}

	slots := make([]types.TimeString, 0)

	cursor := windowStart.Minutes()
	end := windowEnd.Minutes()

	lunchStart, lunchEnd := -1, -1
	if lunch != nil {
		lunchStart = lunch.Start.Minutes()
		lunchEnd = lunch.End.Minutes()
	}

	for cursor+durationMinutes <= end {
		slotEnd := cursor + durationMinutes

		// Полуоткрытое пересечение с обедом: [cursor, slotEnd) x [lunchStart, lunchEnd)
		overlapsLunch := lunch != nil && cursor < lunchEnd && slotEnd > lunchStart

		if !overlapsLunch {
			slots = append(slots, minutesToTime(cursor))
		}

		cursor = slotEnd + gapMinutes
	}

	return slots, nil
}

// GenerateRuleSlots генерирует слоты по глобальному правилу расписания
func GenerateRuleSlots(rule *domain.ScheduleRule) ([]types.TimeString, error) {
	return GenerateSlots(
		rule.WindowStart,
		rule.WindowEnd,
		rule.SessionDurationMinutes,
		rule.GapMinutes,
		rule.Lunch,
	)
}

// EffectiveSlots возвращает список слотов дня. Источником доступности служит
// только явный список: открытый день без заданных слотов не бронируется.
// Генерация по правилу применяется администратором при раскладке смен и
// материализуется в custom slots, а не вычисляется на лету.
func EffectiveSlots(day *domain.DayConfig) []types.TimeString {
	if day == nil || !day.IsOpen || !day.HasCustomSlots() {
		return []types.TimeString{}
	}
	return day.CustomSlots
}

func minutesToTime(total int) types.TimeString {
	return types.TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60))
}
