package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	t.Run("AcceptsKnownValues", func(t *testing.T) {
		for _, raw := range []string{"1hour", "2hours", "endOfDay"} {
			d, err := ParseDuration(raw)
			require.NoError(t, err)
			assert.True(t, d.Valid())
		}
	})

	t.Run("RejectsUnknownValues", func(t *testing.T) {
		for _, raw := range []string{"", "3hours", "1 hour", "endofday", "week"} {
			_, err := ParseDuration(raw)
			assert.Error(t, err, "raw=%q", raw)
		}
	})
}

func TestDurationValid(t *testing.T) {
	assert.True(t, DurationOneHour.Valid())
	assert.True(t, DurationTwoHours.Valid())
	assert.True(t, DurationEndOfDay.Valid())
	assert.False(t, Duration("custom").Valid())
	assert.False(t, Duration("").Valid())
}

func TestDurationLabel(t *testing.T) {
	assert.Equal(t, "1 час", DurationOneHour.Label())
	assert.Equal(t, "2 часа", DurationTwoHours.Label())
	assert.Equal(t, "до конца дня", DurationEndOfDay.Label())
	assert.Equal(t, "weird", Duration("weird").Label())
}
