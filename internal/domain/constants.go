package domain

// Default schedule rule values seeded when no rule row exists yet
const (
	DefaultWindowStart            = "09:00"
	DefaultWindowEnd              = "16:00"
	DefaultSessionDurationMinutes = 20
	DefaultGapMinutes             = 5
	DefaultSlotsPerTime           = 2
	DefaultLunchStart             = "12:00"
	DefaultLunchEnd               = "13:00"
)

// Business validation constants
const (
	MinSessionDurationMinutes = 5
	MaxSessionDurationMinutes = 240 // 4 hours
	MinGapMinutes             = 0
	MaxGapMinutes             = 120
	MinSlotsPerTime           = 1
	MaxSlotsPerTime           = 50
	MaxDisplayNameLength      = 120
	MaxReplicationDays        = 92 // ~3 months ahead
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultTimezone часовой пояс расписания, если не задан в конфиге
const DefaultTimezone = "America/Sao_Paulo"
