package util

import (
	"fmt"
	"time"
)

// ClockTimeToDate places a schedule clock time written as HHMM (eg. 1530) on the given date.
// 2400 is accepted and means midnight at the end of the date.
func ClockTimeToDate(date time.Time, hhmm int) (time.Time, error) {
	hour := hhmm / 100
	minute := hhmm % 100

	if hhmm < 0 || hour > 24 || minute > 59 || (hour == 24 && minute != 0) {
		return time.Time{}, fmt.Errorf("invalid clock time %04d", hhmm)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}
