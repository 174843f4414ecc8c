package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeString represents a wall-clock time of day in "HH:MM" form.
// It is the canonical time type of the service: slot starts, window bounds
// and lunch break bounds are all TimeString values.
type TimeString string

const minutesInDay = 24 * 60

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("types: invalid time string format, expected HH:MM")

	// ErrTimeOutOfRange возвращается, когда результат арифметики выходит за пределы суток
	ErrTimeOutOfRange = errors.New("types: time out of range")
)

// NewTimeString создает TimeString из time.Time (часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString парсит строку "HH:MM" (также принимает "HH:MM:SS")
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(normalize(s))
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// normalize обрезает секунды из форматов вида "HH:MM:SS"
func normalize(s string) string {
	if len(s) > 5 && s[5] == ':' {
		return s[:5]
	}
	return s
}

// Validate проверяет формат "HH:MM" и диапазон значений
func (t TimeString) Validate() error {
	if len(t) != 5 || t[2] != ':' {
		return ErrInvalidTimeString
	}
	h, m, ok := t.parts()
	if !ok || h < 0 || h > 23 || m < 0 || m > 59 {
		return ErrInvalidTimeString
	}
	return nil
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes возвращает количество минут с начала суток.
// Для некорректного значения возвращает -1.
func (t TimeString) Minutes() int {
	h, m, ok := t.parts()
	if !ok {
		return -1
	}
	return h*60 + m
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// AddMinutes возвращает время через minutes минут.
// Выход за пределы суток считается ошибкой - расписание не переходит через полночь.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	base := t.Minutes()
	if base < 0 {
		return "", ErrInvalidTimeString
	}
	total := base + minutes
	if total < 0 || total >= minutesInDay {
		return "", fmt.Errorf("%w: %s + %d minutes", ErrTimeOutOfRange, t, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// String возвращает значение в формате "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// Scan реализует sql.Scanner.
// Postgres-колонки типа time возвращаются как "HH:MM:SS" - секунды отбрасываются.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*t = TimeString(normalize(v))
	case []byte:
		*t = TimeString(normalize(string(v)))
	case time.Time:
		*t = NewTimeString(v)
	case nil:
		*t = ""
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeString, src)
	}
	return nil
}

// Value реализует driver.Valuer.
// В БД значение хранится в форме "HH:MM:00" (тип time).
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t) + ":00", nil
}

func (t TimeString) parts() (h, m int, ok bool) {
	if len(t) != 5 || t[2] != ':' {
		return 0, 0, false
	}
	if _, err := fmt.Sscanf(string(t), "%02d:%02d", &h, &m); err != nil {
		return 0, 0, false
	}
	return h, m, true
}
