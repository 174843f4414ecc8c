package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WellnessService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-WellnessService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-WellnessService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetActiveByDate(_ context.Context, date time.Time) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.Date.Equal(date) && b.IsActive() {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakeScheduleRepo struct {
	rule *domain.ScheduleRule
	days map[string]*domain.DayConfig
}

func (f *fakeScheduleRepo) GetRule(_ context.Context) (*domain.ScheduleRule, error) {
	if f.rule == nil {
		return nil, scheduleRepo.ErrRuleNotFound
	}
	return f.rule, nil
}

func (f *fakeScheduleRepo) GetDay(_ context.Context, day time.Time) (*domain.DayConfig, error) {
	cfg, ok := f.days[day.Format(domain.DateFormat)]
	if !ok {
		return nil, scheduleRepo.ErrDayNotFound
	}
	return cfg, nil
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var saoPaulo = func() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		panic(err)
	}
	return loc
}()

func newTestUseCase(now time.Time) (*UseCase, *fakeBookingRepo, *fakeScheduleRepo) {
	bookRepo := &fakeBookingRepo{}
	schedRepo := &fakeScheduleRepo{days: make(map[string]*domain.DayConfig)}
	uc := NewUseCase(bookRepo, schedRepo, saoPaulo, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc, bookRepo, schedRepo
}

func day(d int) time.Time {
	return time.Date(2025, 10, d, 0, 0, 0, 0, time.UTC)
}

func openDay(repo *fakeScheduleRepo, date time.Time, slots ...types.TimeString) {
	repo.days[date.Format(domain.DateFormat)] = &domain.DayConfig{
		Day:         date,
		IsOpen:      true,
		CustomSlots: slots,
	}
}

func booking(date time.Time, startTime types.TimeString) *domain.Booking {
	return &domain.Booking{
		ID:          uuid.New(),
		Date:        date,
		StartTime:   startTime,
		IdentityRef: "digest-1",
		Status:      domain.StatusConfirmed,
	}
}

func block(date time.Time, startTime types.TimeString) *domain.Booking {
	b := booking(date, startTime)
	b.IdentityRef = domain.BlockIdentityRef
	return b
}

// Полдень 10 октября в операционном часовом поясе
var noon = time.Date(2025, 10, 10, 12, 0, 0, 0, saoPaulo)

func TestUseCase_Execute_FutureDay(t *testing.T) {
	ctx := context.Background()

	t.Run("free slots at full capacity", func(t *testing.T) {
		uc, _, schedRepo := newTestUseCase(noon)
		openDay(schedRepo, day(15), "10:00", "11:00")

		resp, err := uc.Execute(ctx, &Request{Date: day(15)})
		require.NoError(t, err)
		assert.True(t, resp.IsOpen)
		require.Len(t, resp.Slots, 2)
		assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].StartTime)
		assert.Equal(t, domain.DefaultSlotsPerTime, resp.Slots[0].AvailableSpots)
		assert.Equal(t, domain.DefaultSlotsPerTime, resp.Slots[0].TotalSpots)
	})

	t.Run("capacity comes from schedule rule", func(t *testing.T) {
		uc, _, schedRepo := newTestUseCase(noon)
		openDay(schedRepo, day(15), "10:00")
		schedRepo.rule = &domain.ScheduleRule{
			WindowStart:            "09:00",
			WindowEnd:              "16:00",
			SessionDurationMinutes: 20,
			GapMinutes:             5,
			SlotsPerTime:           5,
		}

		resp, err := uc.Execute(ctx, &Request{Date: day(15)})
		require.NoError(t, err)
		require.Len(t, resp.Slots, 1)
		assert.Equal(t, 5, resp.Slots[0].TotalSpots)
	})

	t.Run("bookings reduce availability", func(t *testing.T) {
		uc, bookRepo, schedRepo := newTestUseCase(noon)
		openDay(schedRepo, day(15), "10:00", "11:00")
		bookRepo.bookings = append(bookRepo.bookings, booking(day(15), "10:00"))

		resp, err := uc.Execute(ctx, &Request{Date: day(15)})
		require.NoError(t, err)
		require.Len(t, resp.Slots, 2)
		assert.Equal(t, domain.DefaultSlotsPerTime-1, resp.Slots[0].AvailableSpots)
	})

	t.Run("full slot is absent from the listing", func(t *testing.T) {
		uc, bookRepo, schedRepo := newTestUseCase(noon)
		openDay(schedRepo, day(15), "10:00", "11:00")
		for i := 0; i < domain.DefaultSlotsPerTime; i++ {
			bookRepo.bookings = append(bookRepo.bookings, booking(day(15), "10:00"))
		}

		resp, err := uc.Execute(ctx, &Request{Date: day(15)})
		require.NoError(t, err)
		require.Len(t, resp.Slots, 1)
		assert.Equal(t, types.TimeString("11:00"), resp.Slots[0].StartTime)
	})

	t.Run("blocked slot is absent even without bookings", func(t *testing.T) {
		uc, bookRepo, schedRepo := newTestUseCase(noon)
		openDay(schedRepo, day(15), "10:00", "11:00")
		bookRepo.bookings = append(bookRepo.bookings, block(day(15), "10:00"))

		resp, err := uc.Execute(ctx, &Request{Date: day(15)})
		require.NoError(t, err)
		require.Len(t, resp.Slots, 1)
		assert.Equal(t, types.TimeString("11:00"), resp.Slots[0].StartTime)
	})

	t.Run("open day without custom slots has nothing to offer", func(t *testing.T) {
		uc, _, schedRepo := newTestUseCase(noon)
		openDay(schedRepo, day(15))

		resp, err := uc.Execute(ctx, &Request{Date: day(15)})
		require.NoError(t, err)
		assert.True(t, resp.IsOpen)
		assert.Empty(t, resp.Slots)
	})
}

func TestUseCase_Execute_ClosedDays(t *testing.T) {
	ctx := context.Background()

	t.Run("unconfigured day is closed", func(t *testing.T) {
		uc, _, _ := newTestUseCase(noon)

		resp, err := uc.Execute(ctx, &Request{Date: day(15)})
		require.NoError(t, err)
		assert.False(t, resp.IsOpen)
		assert.Empty(t, resp.Slots)
	})

	t.Run("explicitly closed day", func(t *testing.T) {
		uc, _, schedRepo := newTestUseCase(noon)
		schedRepo.days[day(15).Format(domain.DateFormat)] = &domain.DayConfig{
			Day:         day(15),
			IsOpen:      false,
			CustomSlots: []types.TimeString{"10:00"},
		}

		resp, err := uc.Execute(ctx, &Request{Date: day(15)})
		require.NoError(t, err)
		assert.False(t, resp.IsOpen)
		assert.Empty(t, resp.Slots)
	})

	t.Run("past day is closed even when configured", func(t *testing.T) {
		uc, _, schedRepo := newTestUseCase(noon)
		openDay(schedRepo, day(9), "10:00")

		resp, err := uc.Execute(ctx, &Request{Date: day(9)})
		require.NoError(t, err)
		assert.False(t, resp.IsOpen)
		assert.Empty(t, resp.Slots)
	})
}

func TestUseCase_Execute_Today(t *testing.T) {
	ctx := context.Background()

	// Сегодня 10 октября, 12:00 в операционном часовом поясе
	uc, _, schedRepo := newTestUseCase(noon)
	openDay(schedRepo, day(10), "09:00", "12:00", "14:00", "16:00")

	resp, err := uc.Execute(ctx, &Request{Date: day(10)})
	require.NoError(t, err)
	assert.True(t, resp.IsOpen)

	// Слот ровно в текущее время тоже не предлагается
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, types.TimeString("14:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("16:00"), resp.Slots[1].StartTime)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	uc, _, _ := newTestUseCase(noon)

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
