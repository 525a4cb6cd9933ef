package utils

import (
	"os"
	"time"
)

// DateLocation is the application's timezone
var DateLocation *time.Location

// InitializeDateLocation sets up the application's timezone from APP_TIMEZONE.
func InitializeDateLocation() error {
	timezone := os.Getenv("APP_TIMEZONE")
	if timezone == "" {
		timezone = "Africa/Harare" // fallback default
	}

	var err error
	DateLocation, err = time.LoadLocation(timezone)
	return err
}

// NormalizeDate converts a time.Time to a normalized date at midnight in the application timezone
func NormalizeDate(t time.Time) time.Time {
	loc := DateLocation
	if loc == nil {
		loc = time.UTC
	}
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// Today returns today's date normalized at midnight in the application timezone
func Today() time.Time {
	return NormalizeDate(time.Now())
}
