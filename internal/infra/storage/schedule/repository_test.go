package schedule

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WellnessService/internal/domain"
	"github.com/m04kA/SMC-WellnessService/pkg/types"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

var ruleQuery = regexp.QuoteMeta(
	"SELECT id, window_start, window_end, session_duration_minutes, gap_minutes, " +
		"slots_per_time, lunch_active, lunch_start, lunch_end, updated_at " +
		"FROM schedule_rule ORDER BY id ASC LIMIT 1")

var ruleColumns = []string{
	"id", "window_start", "window_end", "session_duration_minutes", "gap_minutes",
	"slots_per_time", "lunch_active", "lunch_start", "lunch_end", "updated_at",
}

func TestRepository_GetRule(t *testing.T) {
	t.Run("rule with lunch", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(ruleQuery).WillReturnRows(
			sqlmock.NewRows(ruleColumns).
				AddRow(1, "09:00:00", "16:00:00", 20, 5, 2, true, "12:00:00", "13:00:00", time.Now()))

		rule, err := repo.GetRule(context.Background())
		require.NoError(t, err)
		assert.Equal(t, types.TimeString("09:00"), rule.WindowStart)
		assert.Equal(t, types.TimeString("16:00"), rule.WindowEnd)
		assert.Equal(t, 2, rule.SlotsPerTime)
		require.NotNil(t, rule.Lunch)
		assert.Equal(t, types.TimeString("12:00"), rule.Lunch.Start)
		assert.Equal(t, types.TimeString("13:00"), rule.Lunch.End)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rule without lunch", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(ruleQuery).WillReturnRows(
			sqlmock.NewRows(ruleColumns).
				AddRow(1, "09:00:00", "16:00:00", 20, 5, 2, false, nil, nil, time.Now()))

		rule, err := repo.GetRule(context.Background())
		require.NoError(t, err)
		assert.Nil(t, rule.Lunch)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rule row yet", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(ruleQuery).WillReturnRows(sqlmock.NewRows(ruleColumns))

		_, err := repo.GetRule(context.Background())
		assert.ErrorIs(t, err, ErrRuleNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetDay(t *testing.T) {
	query := regexp.QuoteMeta(
		"SELECT id, day, is_open, custom_slots, created_at, updated_at " +
			"FROM day_configs WHERE day = $1")

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	t.Run("day with custom slots", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(query).WithArgs(date).WillReturnRows(
			sqlmock.NewRows([]string{"id", "day", "is_open", "custom_slots", "created_at", "updated_at"}).
				AddRow(7, date, true, `{"10:00:00","11:00:00"}`, time.Now(), time.Now()))

		day, err := repo.GetDay(context.Background(), date)
		require.NoError(t, err)
		assert.True(t, day.IsOpen)
		assert.Equal(t, []types.TimeString{"10:00", "11:00"}, day.CustomSlots)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("day without explicit slot list", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(query).WithArgs(date).WillReturnRows(
			sqlmock.NewRows([]string{"id", "day", "is_open", "custom_slots", "created_at", "updated_at"}).
				AddRow(7, date, true, nil, time.Now(), time.Now()))

		day, err := repo.GetDay(context.Background(), date)
		require.NoError(t, err)
		assert.Nil(t, day.CustomSlots)
		assert.False(t, day.HasCustomSlots())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("day not configured", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(query).WithArgs(date).WillReturnRows(
			sqlmock.NewRows([]string{"id", "day", "is_open", "custom_slots", "created_at", "updated_at"}))

		_, err := repo.GetDay(context.Background(), date)
		assert.ErrorIs(t, err, ErrDayNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_ListDays(t *testing.T) {
	repo, mock := newMockRepo(t)

	from := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, day, is_open, custom_slots, created_at, updated_at "+
			"FROM day_configs WHERE day >= $1 AND day <= $2 ORDER BY day ASC")).
		WithArgs(from, to).
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "day", "is_open", "custom_slots", "created_at", "updated_at"}).
				AddRow(1, from, true, `{"10:00:00"}`, time.Now(), time.Now()).
				AddRow(2, from.AddDate(0, 0, 1), false, nil, time.Now(), time.Now()))

	days, err := repo.ListDays(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, []types.TimeString{"10:00"}, days[0].CustomSlots)
	assert.False(t, days[1].IsOpen)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpsertDay(t *testing.T) {
	query := regexp.QuoteMeta("INSERT INTO day_configs (day,is_open,custom_slots) VALUES ($1,$2,$3)")

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	t.Run("day with slots", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(query).
			WithArgs(date, true, `{"10:00","11:00"}`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(7, time.Now(), time.Now()))

		day, err := repo.UpsertDay(context.Background(), &domain.DayConfig{
			Day:         date,
			IsOpen:      true,
			CustomSlots: []types.TimeString{"10:00", "11:00"},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(7), day.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("closed day keeps NULL slot list", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(query).
			WithArgs(date, false, nil).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(7, time.Now(), time.Now()))

		_, err := repo.UpsertDay(context.Background(), &domain.DayConfig{Day: date, IsOpen: false})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
