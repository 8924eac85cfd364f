package entry

import (
	"fmt"
	"time"
)

// Date is a calendar date where Month and Day may be zero when only the year is known.
// The zero Date is the "unset" sentinel and never equals a real date.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Unset is the universal "no date" sentinel.
var Unset = Date{}

// IsSet reports whether d holds a real date.
func (d Date) IsSet() bool {
	return d.Year > 0
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// ParseDate parses value with layout. Empty values and all-zero provider sentinels such as
// "0000-00-00" or "00000000" yield Unset without an error.
func ParseDate(layout, value string) (Date, error) {
	if isZeroSentinel(value) {
		return Unset, nil
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return Unset, err
	}
	return DateOf(t), nil
}

func isZeroSentinel(value string) bool {
	for _, r := range value {
		if r != '0' && r != '-' && r != '/' {
			return false
		}
	}
	return true
}

// Time returns d at midnight UTC, with unknown month and day treated as 1.
func (d Date) Time() time.Time {
	month, day := d.Month, d.Day
	if month == 0 {
		month = 1
	}
	if day == 0 {
		day = 1
	}
	return time.Date(d.Year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// Format renders d with layout, or fallback when d is unset.
func (d Date) Format(layout, fallback string) string {
	if !d.IsSet() {
		return fallback
	}
	return d.Time().Format(layout)
}

func (d Date) String() string {
	if !d.IsSet() {
		return "unset"
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
