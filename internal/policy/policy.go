package policy

import (
	"fmt"
	"time"

	"officespace/internal/models"
)

// Policy maps a duration selection to a concrete booking window. It is a pure
// value: same inputs always produce the same window, no hidden state.
type Policy struct {
	EndOfDayHour   int
	EndOfDayMinute int
}

// Default uses the 18:00 end-of-day boundary.
func Default() Policy {
	return Policy{EndOfDayHour: models.EndOfDayHour, EndOfDayMinute: models.EndOfDayMinute}
}

// ComputeWindow derives the booking window from now and the chosen duration.
//
// For "until end of day" the end is the boundary on now's calendar date,
// returned verbatim even when now is already past it; callers decide whether a
// degenerate window (End <= Start) is acceptable.
func (p Policy) ComputeWindow(now time.Time, d models.Duration) (models.BookingWindow, error) {
	switch d {
	case models.DurationOneHour:
		return models.BookingWindow{Start: now, End: now.Add(time.Hour)}, nil
	case models.DurationTwoHours:
		return models.BookingWindow{Start: now, End: now.Add(2 * time.Hour)}, nil
	case models.DurationEndOfDay:
		end := time.Date(now.Year(), now.Month(), now.Day(), p.EndOfDayHour, p.EndOfDayMinute, 0, 0, now.Location())
		return models.BookingWindow{Start: now, End: end}, nil
	default:
		return models.BookingWindow{}, fmt.Errorf("unknown duration: %q", d)
	}
}
