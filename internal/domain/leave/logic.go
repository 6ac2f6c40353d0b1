package leave

import (
	"errors"
	"time"

	"emsconsole/internal/validation"
)

var ErrInvalidRange = errors.New("end date before start date")

// CalculateDays returns inclusive day count between start and end.
func CalculateDays(start, end time.Time) (float64, error) {
	if end.Before(start) {
		return 0, ErrInvalidRange
	}
	return end.Sub(start).Hours()/24 + 1, nil
}

// Days counts the calendar days a leave spans, both ends included. Leaves
// with unreadable dates count as zero.
func Days(l Leave) float64 {
	from, okFrom := validation.ParseDate(l.FromDate)
	to, okTo := validation.ParseDate(l.ToDate)
	if !okFrom || !okTo {
		return 0
	}
	days, err := CalculateDays(from, to)
	if err != nil {
		return 0
	}
	return days
}
