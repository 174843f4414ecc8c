package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-WellnessService/internal/domain"
	"github.com/m04kA/SMC-WellnessService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WellnessService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-WellnessService/pkg/types"
)

// DBExecutor интерфейс исполнителя запросов (пул или транзакция)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с правилом расписания и настройками дней
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetRule получает глобальное правило генерации слотов.
// В таблице schedule_rule всегда не больше одной строки.
func (r *Repository) GetRule(ctx context.Context) (*domain.ScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"window_start",
		"window_end",
		"session_duration_minutes",
		"gap_minutes",
		"slots_per_time",
		"lunch_active",
		"lunch_start",
		"lunch_end",
		"updated_at",
	).
		From("schedule_rule").
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRule - build select query: %v", ErrBuildQuery, err)
	}

	var (
		rule        domain.ScheduleRule
		lunchActive bool
		lunchStart  sql.NullString
		lunchEnd    sql.NullString
		updatedAt   sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&rule.WindowStart,
		&rule.WindowEnd,
		&rule.SessionDurationMinutes,
		&rule.GapMinutes,
		&rule.SlotsPerTime,
		&lunchActive,
		&lunchStart,
		&lunchEnd,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRule - scan rule: %w", ErrScanRow, err)
	}

	if lunchActive && lunchStart.Valid && lunchEnd.Valid {
		start, err := types.NewTimeStringFromString(lunchStart.String)
		if err != nil {
			return nil, fmt.Errorf("%w: GetRule - parse lunch_start: %w", ErrScanRow, err)
		}
		end, err := types.NewTimeStringFromString(lunchEnd.String)
		if err != nil {
			return nil, fmt.Errorf("%w: GetRule - parse lunch_end: %w", ErrScanRow, err)
		}
		rule.Lunch = &domain.LunchBreak{Start: start, End: end}
	}

	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}

// UpsertRule сохраняет правило расписания, создавая строку при первом вызове
func (r *Repository) UpsertRule(ctx context.Context, rule *domain.ScheduleRule) (*domain.ScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	lunchActive := rule.Lunch != nil
	var lunchStart, lunchEnd interface{}
	if rule.Lunch != nil {
		lunchStart = rule.Lunch.Start
		lunchEnd = rule.Lunch.End
	}

	query, args, err := psqlbuilder.Insert("schedule_rule").
		Columns(
			"id",
			"window_start",
			"window_end",
			"session_duration_minutes",
			"gap_minutes",
			"slots_per_time",
			"lunch_active",
			"lunch_start",
			"lunch_end",
		).
		Values(
			1,
			rule.WindowStart,
			rule.WindowEnd,
			rule.SessionDurationMinutes,
			rule.GapMinutes,
			rule.SlotsPerTime,
			lunchActive,
			lunchStart,
			lunchEnd,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			window_start = EXCLUDED.window_start,
			window_end = EXCLUDED.window_end,
			session_duration_minutes = EXCLUDED.session_duration_minutes,
			gap_minutes = EXCLUDED.gap_minutes,
			slots_per_time = EXCLUDED.slots_per_time,
			lunch_active = EXCLUDED.lunch_active,
			lunch_start = EXCLUDED.lunch_start,
			lunch_end = EXCLUDED.lunch_end,
			updated_at = NOW()
		RETURNING id, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertRule - build upsert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertRule - execute upsert: %w", ErrExecQuery, err)
	}

	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// GetDay получает настройку конкретного дня
func (r *Repository) GetDay(ctx context.Context, day time.Time) (*domain.DayConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"day",
		"is_open",
		"custom_slots",
		"created_at",
		"updated_at",
	).
		From("day_configs").
		Where(squirrel.Eq{"day": day}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDay - build select query: %v", ErrBuildQuery, err)
	}

	dayConfig, err := r.scanDay(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDay - scan day config: %w", ErrScanRow, err)
	}

	return dayConfig, nil
}

// ListDays получает настройки дней в диапазоне [from, to]
func (r *Repository) ListDays(ctx context.Context, from, to time.Time) ([]*domain.DayConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"day",
		"is_open",
		"custom_slots",
		"created_at",
		"updated_at",
	).
		From("day_configs").
		Where(squirrel.GtOrEq{"day": from}).
		Where(squirrel.LtOrEq{"day": to}).
		OrderBy("day ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDays - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]*domain.DayConfig, 0)
	for rows.Next() {
		var (
			dayConfig            domain.DayConfig
			slots                pq.StringArray
			createdAt, updatedAt sql.NullTime
		)

		err := rows.Scan(
			&dayConfig.ID,
			&dayConfig.Day,
			&dayConfig.IsOpen,
			&slots,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListDays - scan row: %w", ErrScanRow, err)
		}

		dayConfig.CustomSlots, err = toTimeStrings(slots)
		if err != nil {
			return nil, fmt.Errorf("%w: ListDays - parse custom_slots: %w", ErrScanRow, err)
		}

		dayConfig.CreatedAt = createdAt.Time
		dayConfig.UpdatedAt = updatedAt.Time

		days = append(days, &dayConfig)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDays - rows error: %w", ErrScanRow, err)
	}

	return days, nil
}

// UpsertDay сохраняет настройку дня, перезаписывая существующую
func (r *Repository) UpsertDay(ctx context.Context, dayConfig *domain.DayConfig) (*domain.DayConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var slots interface{}
	if dayConfig.CustomSlots != nil {
		raw := make([]string, len(dayConfig.CustomSlots))
		for i, s := range dayConfig.CustomSlots {
			raw[i] = s.String()
		}
		slots = pq.Array(raw)
	}

	query, args, err := psqlbuilder.Insert("day_configs").
		Columns(
			"day",
			"is_open",
			"custom_slots",
		).
		Values(
			dayConfig.Day,
			dayConfig.IsOpen,
			slots,
		).
		Suffix(`ON CONFLICT (day) DO UPDATE SET
			is_open = EXCLUDED.is_open,
			custom_slots = EXCLUDED.custom_slots,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertDay - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&dayConfig.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertDay - execute upsert: %w", ErrExecQuery, err)
	}

	dayConfig.CreatedAt = createdAt.Time
	dayConfig.UpdatedAt = updatedAt.Time

	return dayConfig, nil
}

// scanDay сканирует одну строку настройки дня
func (r *Repository) scanDay(row *sql.Row) (*domain.DayConfig, error) {
	var (
		dayConfig            domain.DayConfig
		slots                pq.StringArray
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&dayConfig.ID,
		&dayConfig.Day,
		&dayConfig.IsOpen,
		&slots,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	dayConfig.CustomSlots, err = toTimeStrings(slots)
	if err != nil {
		return nil, err
	}

	dayConfig.CreatedAt = createdAt.Time
	dayConfig.UpdatedAt = updatedAt.Time

	return &dayConfig, nil
}

// toTimeStrings преобразует text[] из БД в слайс TimeString.
// NULL массив остается nil - день без явного списка слотов.
func toTimeStrings(raw pq.StringArray) ([]types.TimeString, error) {
	if raw == nil {
		return nil, nil
	}

	slots := make([]types.TimeString, 0, len(raw))
	for _, s := range raw {
		ts, err := types.NewTimeStringFromString(s)
		if err != nil {
			return nil, err
		}
		slots = append(slots, ts)
	}

	return slots, nil
}
