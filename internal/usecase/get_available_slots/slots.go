package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-WellnessService/internal/domain"
	"github.com/m04kA/SMC-WellnessService/pkg/types"
)

// slotOccupancy занятость одного слота
type slotOccupancy struct {
	occupied int
	blocked  bool
}

// buildOccupancy раскладывает активные бронирования дня по временам слотов.
// Блокировка доминирует: слот с блокировкой недоступен независимо от того,
// сколько обычных бронирований на нем числится.
func buildOccupancy(bookings []*domain.Booking) map[types.TimeString]slotOccupancy {
	occupancy := make(map[types.TimeString]slotOccupancy)

	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}

		entry := occupancy[booking.StartTime]
		if booking.IsBlock() {
			entry.blocked = true
		} else {
			entry.occupied++
		}
		occupancy[booking.StartTime] = entry
	}

	return occupancy
}

// publicSlots собирает публичный список слотов: только свободные,
// а для сегодняшнего дня - только еще не начавшиеся
func publicSlots(
	slotTimes []types.TimeString,
	occupancy map[types.TimeString]slotOccupancy,
	totalSpots int,
	requestDate time.Time,
	now time.Time,
) []Slot {
	isToday := isSameDay(requestDate, now)
	nowTime := types.NewTimeString(now)

	result := make([]Slot, 0, len(slotTimes))

	for _, slotTime := range slotTimes {
		// Сегодняшние слоты, время которых уже наступило, не предлагаются
		if isToday && !slotTime.IsAfter(nowTime) {
			continue
		}

		entry := occupancy[slotTime]

		available := totalSpots - entry.occupied
		if entry.blocked || available < 0 {
			available = 0
		}

		// Занятые и заблокированные слоты для посетителей неразличимы:
		// оба просто отсутствуют в выдаче
		if available == 0 {
			continue
		}

		result = append(result, Slot{
			StartTime:      slotTime,
			AvailableSpots: available,
			TotalSpots:     totalSpots,
		})
	}

	return result
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
