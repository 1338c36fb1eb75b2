package models

import "fmt"

// Duration is the closed set of booking lengths a user can pick.
// The values match what the web client sends.
type Duration string

const (
	DurationOneHour  Duration = "1hour"
	DurationTwoHours Duration = "2hours"
	DurationEndOfDay Duration = "endOfDay"
)

// ParseDuration validates a raw duration value from the outside world.
func ParseDuration(raw string) (Duration, error) {
	switch Duration(raw) {
	case DurationOneHour, DurationTwoHours, DurationEndOfDay:
		return Duration(raw), nil
	default:
		return "", fmt.Errorf("unknown duration: %q", raw)
	}
}

// Valid reports whether d is a member of the enumeration.
func (d Duration) Valid() bool {
	switch d {
	case DurationOneHour, DurationTwoHours, DurationEndOfDay:
		return true
	}
	return false
}

// Label returns the human-readable form used in notifications.
func (d Duration) Label() string {
	switch d {
	case DurationOneHour:
		return "1 час"
	case DurationTwoHours:
		return "2 часа"
	case DurationEndOfDay:
		return "до конца дня"
	default:
		return string(d)
	}
}
