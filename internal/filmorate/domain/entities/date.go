package entities

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout - формат дат на проводе (releaseDate, birthday).
const DateLayout = "2006-01-02"

// Date представляет календарную дату без времени суток.
type Date struct {
	time.Time
}

// NewDate создает дату из года, месяца и дня (UTC).
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf усекает время до календарной даты.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// MarshalJSON сериализует дату в формате yyyy-mm-dd, нулевую дату - в null.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON разбирает дату из формата yyyy-mm-dd; null и "" дают нулевую дату.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Before сообщает, предшествует ли дата другой дате.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After сообщает, следует ли дата после другой даты.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}
