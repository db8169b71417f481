package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/genquote")
	t.Setenv("JWT_ACCESS_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 7093, cfg.HTTP.Port)
	assert.Equal(t, 8.0, cfg.Scheduler.HoursPerTech)
	assert.Equal(t, 6.0, cfg.Scheduler.HeavyHoursThreshold)
	assert.Equal(t, 500.0, cfg.Scheduler.CouplingCeilingKW)
	assert.Equal(t, "temperate", cfg.Scheduler.DefaultProfile)
	assert.ElementsMatch(t,
		[]time.Month{time.December, time.January, time.February},
		cfg.Scheduler.WeatherProfiles["temperate"])
}

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_ACCESS_SECRET", "secret")

	_, err := Load()
	require.Error(t, err)
}

func TestParseWeatherProfiles(t *testing.T) {
	profiles := parseWeatherProfiles("alpine:NOV|DEC|JAN|FEB|MAR, desert:")
	require.Len(t, profiles, 2)
	assert.Len(t, profiles["alpine"], 5)
	assert.Empty(t, profiles["desert"])
}

func TestParseMonth(t *testing.T) {
	m, ok := parseMonth("dec")
	require.True(t, ok)
	assert.Equal(t, time.December, m)

	_, ok = parseMonth("XXX")
	assert.False(t, ok)
}
