package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeStringFormat формат времени HH:MM
const TimeStringFormat = "15:04"

// TimeString время суток в формате "HH:MM" (например, "10:00").
// Используется для временных слотов и времени начала записи.
// Хранится в БД как TIME, в JSON как строка.
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeStringFormat))
}

// NewTimeStringFromString парсит строку "HH:MM" и возвращает TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(TimeStringFormat, s)
	if err != nil {
		return "", fmt.Errorf("invalid time string format: %v", err)
	}
	return TimeString(t.Format(TimeStringFormat)), nil
}

// String возвращает строковое представление "HH:MM"
func (ts TimeString) String() string {
	return string(ts)
}

// IsZero возвращает true, если значение не задано
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate проверяет, что значение соответствует формату "HH:MM"
func (ts TimeString) Validate() error {
	if _, err := time.Parse(TimeStringFormat, string(ts)); err != nil {
		return fmt.Errorf("invalid time string format: %v", err)
	}
	return nil
}

// minutes возвращает количество минут с начала суток
func (ts TimeString) minutes() (int, error) {
	t, err := time.Parse(TimeStringFormat, string(ts))
	if err != nil {
		return 0, fmt.Errorf("invalid time string format: %v", err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// IsBefore возвращает true, если ts строго раньше other
func (ts TimeString) IsBefore(other TimeString) bool {
	a, errA := ts.minutes()
	b, errB := other.minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter возвращает true, если ts строго позже other
func (ts TimeString) IsAfter(other TimeString) bool {
	a, errA := ts.minutes()
	b, errB := other.minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a > b
}

// AddMinutes возвращает новый TimeString, сдвинутый на minutes минут вперёд.
// Переход через полночь заворачивается (23:30 + 60 = 00:30).
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	m, err := ts.minutes()
	if err != nil {
		return "", err
	}
	const day = 24 * 60
	m = ((m+minutes)%day + day) % day
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// At совмещает дату date и время ts в один момент в локации loc
func (ts TimeString) At(date time.Time, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(TimeStringFormat, string(ts))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time string format: %v", err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// Scan реализует sql.Scanner (колонки TIME сканируются как time.Time или []byte)
func (ts *TimeString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*ts = ""
		return nil
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(trimSeconds(string(v)))
		if err != nil {
			return err
		}
		*ts = parsed
		return nil
	case string:
		parsed, err := NewTimeStringFromString(trimSeconds(v))
		if err != nil {
			return err
		}
		*ts = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeString", value)
	}
}

// Value реализует driver.Valuer
func (ts TimeString) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts), nil
}

// trimSeconds обрезает "HH:MM:SS" до "HH:MM"
func trimSeconds(s string) string {
	if len(s) > len(TimeStringFormat) {
		return s[:len(TimeStringFormat)]
	}
	return s
}
