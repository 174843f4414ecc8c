package domain

import (
	"time"

	"github.com/m04kA/SMC-WellnessService/pkg/types"
)

// LunchBreak describes the daily window during which no slots are offered
type LunchBreak struct {
	Start types.TimeString
	End   types.TimeString
}

// ScheduleRule represents the single global slot generation rule.
// Generated slots are a fallback: a day with explicit custom slots ignores
// the rule entirely.
type ScheduleRule struct {
	ID                     int64
	WindowStart            types.TimeString
	WindowEnd              types.TimeString
	SessionDurationMinutes int
	GapMinutes             int
	SlotsPerTime           int // capacity per slot start time
	Lunch                  *LunchBreak

	UpdatedAt time.Time
}

// HasLunch returns true if the rule carries an active lunch break
func (r *ScheduleRule) HasLunch() bool {
	return r.Lunch != nil
}

// DayConfig represents a per-day override of availability.
// Without a row the day does not exist for booking purposes.
type DayConfig struct {
	ID          int64
	Day         time.Time // calendar day, time component zeroed
	IsOpen      bool
	CustomSlots []types.TimeString // nil = generate from the schedule rule

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCustomSlots returns true if the day carries an explicit slot list
func (d *DayConfig) HasCustomSlots() bool {
	return d.CustomSlots != nil
}
