package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock(t *testing.T) {
	minutes, err := ParseClock("08:00")
	require.NoError(t, err)
	assert.Equal(t, 480, minutes)

	minutes, err = ParseClock("17:05")
	require.NoError(t, err)
	assert.Equal(t, 1025, minutes)

	for _, invalid := range []string{"", "noon", "24:00", "12:60", "-1:30"} {
		_, err := ParseClock(invalid)
		assert.Error(t, err, invalid)
	}

	assert.Equal(t, "08:00", FormatClock(480))
	assert.Equal(t, "16:56", FormatClock(1016))
}

func TestSettingsValidate(t *testing.T) {
	assert.NoError(t, DefaultSettings().Validate())

	settings := DefaultSettings()
	settings.Lanes, settings.Timeout = 0, -time.Second
	err := settings.Validate()
	assert.ErrorIs(t, err, ErrMalformedInput)
	assert.ErrorContains(t, err, "lanes must be positive")
	assert.ErrorContains(t, err, "timeout must not be negative")

	settings = DefaultSettings()
	settings.Ordering = Ordering(9)
	assert.ErrorIs(t, settings.Validate(), ErrMalformedInput)
}

func TestPriorities(t *testing.T) {
	settings := DefaultSettings()

	assert.Equal(t, PriorityHard, settings.Priority("1x"))
	assert.Equal(t, PriorityIndicator, settings.Priority("2-"))
	assert.Equal(t, PriorityNone, settings.Priority("8+"))

	rule, err := ParsePriorityRule("HARD")
	require.NoError(t, err)
	assert.Equal(t, PriorityHard, rule)
	assert.Equal(t, "indicator", PriorityIndicator.String())

	_, err = ParsePriorityRule("soft")
	assert.Error(t, err)
}
