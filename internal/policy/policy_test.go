package policy

import (
	"testing"
	"time"

	"officespace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeWindowFixedDurations(t *testing.T) {
	p := Default()

	instants := []time.Time{
		time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local),
		time.Date(2024, 3, 15, 23, 30, 0, 0, time.Local), // crosses midnight
		time.Date(2024, 12, 31, 23, 0, 0, 0, time.Local), // crosses the year
		time.Date(2024, 3, 15, 0, 0, 0, 1, time.Local),
	}

	for _, now := range instants {
		oneHour, err := p.ComputeWindow(now, models.DurationOneHour)
		require.NoError(t, err)
		assert.Equal(t, now, oneHour.Start)
		assert.Equal(t, time.Hour, oneHour.End.Sub(oneHour.Start), "now=%s", now)

		twoHours, err := p.ComputeWindow(now, models.DurationTwoHours)
		require.NoError(t, err)
		assert.Equal(t, 2*time.Hour, twoHours.End.Sub(twoHours.Start), "now=%s", now)
	}
}

func TestComputeWindowEndOfDay(t *testing.T) {
	p := Default()
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)

	window, err := p.ComputeWindow(now, models.DurationEndOfDay)
	require.NoError(t, err)
	assert.Equal(t, now, window.Start)
	assert.Equal(t, time.Date(2024, 3, 15, 18, 0, 0, 0, time.Local), window.End)
}

func TestComputeWindowEndOfDayPastBoundary(t *testing.T) {
	// Past the boundary the policy returns it verbatim; rejecting the
	// degenerate window is the session's job.
	p := Default()
	now := time.Date(2024, 3, 15, 19, 45, 0, 0, time.Local)

	window, err := p.ComputeWindow(now, models.DurationEndOfDay)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 18, 0, 0, 0, time.Local), window.End)
	assert.False(t, window.End.After(window.Start))
}

func TestComputeWindowCustomBoundary(t *testing.T) {
	p := Policy{EndOfDayHour: 20, EndOfDayMinute: 30}
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)

	window, err := p.ComputeWindow(now, models.DurationEndOfDay)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 20, 30, 0, 0, time.Local), window.End)
}

func TestComputeWindowPreservesLocation(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	p := Default()
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, loc)

	window, err := p.ComputeWindow(now, models.DurationEndOfDay)
	require.NoError(t, err)
	assert.Equal(t, loc, window.End.Location())
}

func TestComputeWindowIsPure(t *testing.T) {
	p := Default()
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)

	for _, d := range []models.Duration{models.DurationOneHour, models.DurationTwoHours, models.DurationEndOfDay} {
		first, err := p.ComputeWindow(now, d)
		require.NoError(t, err)
		second, err := p.ComputeWindow(now, d)
		require.NoError(t, err)
		assert.Equal(t, first, second, "duration=%s", d)
	}
}

func TestComputeWindowUnknownDuration(t *testing.T) {
	p := Default()
	_, err := p.ComputeWindow(time.Now(), models.Duration("week"))
	assert.Error(t, err)
}
