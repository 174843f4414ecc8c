package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-WellnessService/internal/domain"
	"github.com/m04kA/SMC-WellnessService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Identity) == "" {
		return fmt.Errorf("%w: identity is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// slotListed проверяет, что слот присутствует в явном списке открытого дня
func slotListed(day *domain.DayConfig, startTime types.TimeString) bool {
	if day == nil || !day.IsOpen {
		return false
	}
	for _, slot := range day.CustomSlots {
		if slot == startTime {
			return true
		}
	}
	return false
}

// weekBounds возвращает границы недели [понедельник, воскресенье] для даты.
// Неделя всегда считается от понедельника, независимо от локали.
func weekBounds(date time.Time) (time.Time, time.Time) {
	dayOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	weekday := (int(dayOnly.Weekday()) + 6) % 7 // Monday = 0
	weekStart := dayOnly.AddDate(0, 0, -weekday)
	weekEnd := weekStart.AddDate(0, 0, 6)
	return weekStart, weekEnd
}

// countSlotOccupancy подсчитывает занятость слота с учетом блокировок
func countSlotOccupancy(bookings []*domain.Booking) (occupied int, blocked bool) {
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		if booking.IsBlock() {
			blocked = true
			continue
		}
		occupied++
	}
	return occupied, blocked
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
