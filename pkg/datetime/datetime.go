// Package datetime holds the date handling shared by profiles, analytics and exports.
// Dates are UTC; date-only values travel as "YYYY-MM-DD".
package datetime

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	// DateFormat is the wire format of date-only values.
	DateFormat = "2006-01-02"

	// ReportDateFormat and ReportDateTimeFormat are used in generated documents.
	ReportDateFormat     = "January 2, 2006"
	ReportDateTimeFormat = "January 2, 2006 15:04"
)

// Date is a calendar day with no time component, such as a goal deadline.
// The onboarding form sends plain dates; RFC3339 timestamps are accepted and truncated.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateFormat))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), "\"")
	if s == "" || s == "null" {
		return nil
	}

	if t, err := time.Parse(DateFormat, s); err == nil {
		d.Time = t
		return nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateFormat)
}

// MonthsBefore returns t moved back n calendar months, in UTC.
func MonthsBefore(t time.Time, n int) time.Time {
	return t.UTC().AddDate(0, -n, 0)
}

// FileStamp is the date suffix used in download filenames.
func FileStamp(t time.Time) string {
	return t.UTC().Format(DateFormat)
}
