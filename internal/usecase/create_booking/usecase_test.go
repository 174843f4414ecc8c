package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WellnessService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-WellnessService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-WellnessService/internal/integrations/eligibility"
	"github.com/m04kA/SMC-WellnessService/pkg/identity"
	"github.com/m04kA/SMC-WellnessService/pkg/types"
)

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b.CreatedAt = time.Now()
	f.bookings = append(f.bookings, b)
	return b, nil
}

func (f *fakeBookingRepo) GetActiveByDateAndTime(_ context.Context, date time.Time, startTime types.TimeString) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.Date.Equal(date) && b.StartTime == startTime && b.IsActive() {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) ExistsActiveInRange(_ context.Context, identityRef string, from, to time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.IdentityRef == identityRef && b.IsActive() &&
			!b.Date.Before(from) && !b.Date.After(to) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingRepo) activeCount(date time.Time, startTime types.TimeString) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, b := range f.bookings {
		if b.Date.Equal(date) && b.StartTime == startTime && b.IsActive() {
			count++
		}
	}
	return count
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

type fakeEligibilityClient struct {
	participants map[string]*eligibility.Participant
}

func (f *fakeEligibilityClient) GetParticipant(_ context.Context, identityRef string) (*eligibility.Participant, error) {
	p, ok := f.participants[identityRef]
	if !ok {
		return nil, eligibility.ErrParticipantNotFound
	}
	return p, nil
}

// fakeTxManager сериализует конкурентные транзакции мьютексом
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
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

type fixture struct {
	uc          *UseCase
	bookingRepo *fakeBookingRepo
	schedRepo   *fakeScheduleRepo
	elig        *fakeEligibilityClient
	hasher      *identity.Hasher
}

// Полдень 10 октября 2025 (пятница) в операционном часовом поясе
var noon = time.Date(2025, 10, 10, 12, 0, 0, 0, saoPaulo)

func newFixture(now time.Time) *fixture {
	bookRepo := &fakeBookingRepo{}
	schedRepo := &fakeScheduleRepo{days: make(map[string]*domain.DayConfig)}
	elig := &fakeEligibilityClient{participants: make(map[string]*eligibility.Participant)}
	hasher := identity.NewHasher("test-pepper")

	uc := NewUseCase(bookRepo, schedRepo, elig, hasher, &fakeTxManager{}, saoPaulo, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}

	return &fixture{uc: uc, bookingRepo: bookRepo, schedRepo: schedRepo, elig: elig, hasher: hasher}
}

func (f *fixture) enroll(rawIdentity, displayName, groupTag string) {
	ref := f.hasher.Digest(rawIdentity)
	f.elig.participants[ref] = &eligibility.Participant{
		IdentityRef: ref,
		DisplayName: displayName,
		GroupTag:    groupTag,
		Active:      true,
	}
}

func (f *fixture) openDay(date time.Time, slots ...types.TimeString) {
	f.schedRepo.days[date.Format(domain.DateFormat)] = &domain.DayConfig{
		Day:         date,
		IsOpen:      true,
		CustomSlots: slots,
	}
}

func day(d int) time.Time {
	return time.Date(2025, 10, d, 0, 0, 0, 0, time.UTC)
}

func TestUseCase_Execute_Success(t *testing.T) {
	f := newFixture(noon)
	f.enroll("12345678901", "Maria Silva", "finance")
	f.openDay(day(15), "10:00", "11:00")

	resp, err := f.uc.Execute(context.Background(), &Request{
		Identity:  "123.456.789-01",
		Date:      day(15),
		StartTime: "10:00",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, day(15), resp.Date)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	// Имя и группа берутся из списка участников, а не из запроса
	assert.Equal(t, "Maria Silva", resp.DisplayName)
	assert.Equal(t, "finance", resp.GroupTag)

	require.Len(t, f.bookingRepo.bookings, 1)
	assert.Equal(t, f.hasher.Digest("12345678901"), f.bookingRepo.bookings[0].IdentityRef)
}

func TestUseCase_Execute_SlotNotFound(t *testing.T) {
	ctx := context.Background()

	t.Run("unconfigured day", func(t *testing.T) {
		f := newFixture(noon)
		f.enroll("12345678901", "Maria Silva", "")

		_, err := f.uc.Execute(ctx, &Request{Identity: "12345678901", Date: day(15), StartTime: "10:00"})
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("closed day", func(t *testing.T) {
		f := newFixture(noon)
		f.enroll("12345678901", "Maria Silva", "")
		f.schedRepo.days[day(15).Format(domain.DateFormat)] = &domain.DayConfig{
			Day:         day(15),
			IsOpen:      false,
			CustomSlots: []types.TimeString{"10:00"},
		}

		_, err := f.uc.Execute(ctx, &Request{Identity: "12345678901", Date: day(15), StartTime: "10:00"})
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("time not in day schedule", func(t *testing.T) {
		f := newFixture(noon)
		f.enroll("12345678901", "Maria Silva", "")
		f.openDay(day(15), "10:00")

		_, err := f.uc.Execute(ctx, &Request{Identity: "12345678901", Date: day(15), StartTime: "10:30"})
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("past date", func(t *testing.T) {
		f := newFixture(noon)
		f.enroll("12345678901", "Maria Silva", "")
		f.openDay(day(9), "10:00")

		_, err := f.uc.Execute(ctx, &Request{Identity: "12345678901", Date: day(9), StartTime: "10:00"})
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("today slot already started", func(t *testing.T) {
		f := newFixture(noon)
		f.enroll("12345678901", "Maria Silva", "")
		f.openDay(day(10), "10:00", "12:00", "14:00")

		_, err := f.uc.Execute(ctx, &Request{Identity: "12345678901", Date: day(10), StartTime: "10:00"})
		assert.ErrorIs(t, err, ErrSlotNotFound)

		// Слот ровно в текущее время тоже недоступен
		_, err = f.uc.Execute(ctx, &Request{Identity: "12345678901", Date: day(10), StartTime: "12:00"})
		assert.ErrorIs(t, err, ErrSlotNotFound)

		// А будущий слот того же дня бронируется
		_, err = f.uc.Execute(ctx, &Request{Identity: "12345678901", Date: day(10), StartTime: "14:00"})
		assert.NoError(t, err)
	})
}

func TestUseCase_Execute_IdentityNotEligible(t *testing.T) {
	f := newFixture(noon)
	f.openDay(day(15), "10:00")

	_, err := f.uc.Execute(context.Background(), &Request{
		Identity:  "12345678901",
		Date:      day(15),
		StartTime: "10:00",
	})
	assert.ErrorIs(t, err, ErrIdentityNotEligible)
	assert.Empty(t, f.bookingRepo.bookings)
}

func TestUseCase_Execute_WeeklyQuota(t *testing.T) {
	ctx := context.Background()

	t.Run("second booking in same week rejected", func(t *testing.T) {
		f := newFixture(noon)
		f.enroll("12345678901", "Maria Silva", "")
		// 13 и 17 октября 2025 - понедельник и пятница одной недели
		f.openDay(day(13), "10:00")
		f.openDay(day(17), "10:00")

		_, err := f.uc.Execute(ctx, &Request{Identity: "12345678901", Date: day(13), StartTime: "10:00"})
		require.NoError(t, err)

		_, err = f.uc.Execute(ctx, &Request{Identity: "12345678901", Date: day(17), StartTime: "10:00"})
		assert.ErrorIs(t, err, ErrWeeklyQuotaExceeded)
	})

	t.Run("next week is allowed", func(t *testing.T) {
		f := newFixture(noon)
		f.enroll("12345678901", "Maria Silva", "")
		// Воскресенье 19-го и понедельник 20-го - разные недели
		f.openDay(day(19), "10:00")
		f.openDay(day(20), "10:00")

		_, err := f.uc.Execute(ctx, &Request{Identity: "12345678901", Date: day(19), StartTime: "10:00"})
		require.NoError(t, err)

		_, err = f.uc.Execute(ctx, &Request{Identity: "12345678901", Date: day(20), StartTime: "10:00"})
		assert.NoError(t, err)
	})

	t.Run("cancelled booking frees the quota", func(t *testing.T) {
		f := newFixture(noon)
		f.enroll("12345678901", "Maria Silva", "")
		f.openDay(day(13), "10:00")
		f.openDay(day(17), "10:00")

		resp, err := f.uc.Execute(ctx, &Request{Identity: "12345678901", Date: day(13), StartTime: "10:00"})
		require.NoError(t, err)

		for _, b := range f.bookingRepo.bookings {
			if b.ID == resp.ID {
				b.Status = domain.StatusCancelled
			}
		}

		_, err = f.uc.Execute(ctx, &Request{Identity: "12345678901", Date: day(17), StartTime: "10:00"})
		assert.NoError(t, err)
	})

	t.Run("quota is per identity", func(t *testing.T) {
		f := newFixture(noon)
		f.enroll("12345678901", "Maria Silva", "")
		f.enroll("98765432100", "Joao Souza", "")
		f.openDay(day(13), "10:00")

		_, err := f.uc.Execute(ctx, &Request{Identity: "12345678901", Date: day(13), StartTime: "10:00"})
		require.NoError(t, err)

		_, err = f.uc.Execute(ctx, &Request{Identity: "98765432100", Date: day(13), StartTime: "10:00"})
		assert.NoError(t, err)
	})
}

func TestUseCase_Execute_SlotFull(t *testing.T) {
	ctx := context.Background()

	t.Run("capacity exhausted", func(t *testing.T) {
		f := newFixture(noon)
		f.openDay(day(15), "10:00")
		f.schedRepo.rule = &domain.ScheduleRule{
			WindowStart:            "09:00",
			WindowEnd:              "16:00",
			SessionDurationMinutes: 20,
			GapMinutes:             5,
			SlotsPerTime:           1,
		}
		f.enroll("12345678901", "Maria Silva", "")
		f.enroll("98765432100", "Joao Souza", "")

		_, err := f.uc.Execute(ctx, &Request{Identity: "12345678901", Date: day(15), StartTime: "10:00"})
		require.NoError(t, err)

		_, err = f.uc.Execute(ctx, &Request{Identity: "98765432100", Date: day(15), StartTime: "10:00"})
		assert.ErrorIs(t, err, ErrSlotFull)
	})

	t.Run("blocked slot is full regardless of occupancy", func(t *testing.T) {
		f := newFixture(noon)
		f.openDay(day(15), "10:00")
		f.enroll("12345678901", "Maria Silva", "")
		f.bookingRepo.bookings = append(f.bookingRepo.bookings, &domain.Booking{
			ID:          uuid.New(),
			Date:        day(15),
			StartTime:   "10:00",
			IdentityRef: domain.BlockIdentityRef,
			Status:      domain.StatusConfirmed,
		})

		_, err := f.uc.Execute(ctx, &Request{Identity: "12345678901", Date: day(15), StartTime: "10:00"})
		assert.ErrorIs(t, err, ErrSlotFull)
	})
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	ctx := context.Background()
	f := newFixture(noon)

	_, err := f.uc.Execute(ctx, &Request{Date: day(15), StartTime: "10:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(ctx, &Request{Identity: "12345678901", StartTime: "10:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(ctx, &Request{Identity: "12345678901", Date: day(15)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(ctx, &Request{Identity: "12345678901", Date: day(15), StartTime: "25:99"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// Конкурентные запросы на последнее место: пройти должен ровно один
func TestUseCase_Execute_ConcurrentLastSpot(t *testing.T) {
	const workers = 7

	f := newFixture(noon)
	f.openDay(day(15), "10:00")
	f.schedRepo.rule = &domain.ScheduleRule{
		WindowStart:            "09:00",
		WindowEnd:              "16:00",
		SessionDurationMinutes: 20,
		GapMinutes:             5,
		SlotsPerTime:           1,
	}

	identities := make([]string, workers)
	for i := range identities {
		identities[i] = "1000000000" + string(rune('0'+i))
		f.enroll(identities[i], "Worker", "")
	}

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Execute(context.Background(), &Request{
				Identity:  identities[i],
				Date:      day(15),
				StartTime: "10:00",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, ErrSlotFull)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, f.bookingRepo.activeCount(day(15), "10:00"))
}
