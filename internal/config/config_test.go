package config

import (
	"os"
	"path/filepath"
	"testing"

	"officespace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
app:
  name: officespace
  environment: test
database:
  path: data/officespace.db
workspaces:
  - id: "1"
    name: "Рабочее место A1"
    floor: 1
    capacity: 1
    available: true
  - id: "2"
    name: "Рабочее место A2"
    floor: 1
    capacity: 1
    available: false
    next_available: "14:30"
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "officespace", cfg.App.Name)
	assert.Equal(t, "data/officespace.db", cfg.Database.Path)
	require.Len(t, cfg.Workspaces, 2)
	assert.Equal(t, "14:30", cfg.Workspaces[1].NextAvailable)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, models.EndOfDayHour, cfg.Booking.EndOfDayHour)
	assert.Equal(t, 0, cfg.Booking.EndOfDayMinute)
	assert.Equal(t, models.DefaultGatewayTimeout, cfg.Booking.GatewayTimeout)
	assert.Equal(t, models.DefaultSessionTTL, cfg.Booking.SessionTTL)
	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, "x-api-key", cfg.API.Auth.HeaderAPIKey)
	assert.Equal(t, "exports", cfg.Exports.Path)
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("OFFICESPACE_DB_PATH", "/tmp/envtest.db")

	cfg, err := Load(writeConfig(t, `
database:
  path: ${OFFICESPACE_DB_PATH}
`))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/envtest.db", cfg.Database.Path)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "database: [broken"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "MissingDatabasePath",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: "database path",
		},
		{
			name:    "EndOfDayHourOutOfRange",
			mutate:  func(c *Config) { c.Booking.EndOfDayHour = 24 },
			wantErr: "end_of_day_hour",
		},
		{
			name:    "EndOfDayMinuteOutOfRange",
			mutate:  func(c *Config) { c.Booking.EndOfDayMinute = 60 },
			wantErr: "end_of_day_minute",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Database: DatabaseConfig{Path: "data/test.db"},
				Booking:  BookingConfig{EndOfDayHour: 18},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateWorkspaces(t *testing.T) {
	valid := func() []models.Workspace {
		return []models.Workspace{
			{ID: "1", Name: "A1", Floor: 1, Capacity: 1, Available: true},
			{ID: "2", Name: "A2", Floor: 2, Capacity: 1, Available: false, NextAvailable: "14:30"},
		}
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, ValidateWorkspaces(valid()))
	})

	t.Run("EmptyID", func(t *testing.T) {
		ws := valid()
		ws[0].ID = ""
		assert.Error(t, ValidateWorkspaces(ws))
	})

	t.Run("DuplicateID", func(t *testing.T) {
		ws := valid()
		ws[1].ID = "1"
		assert.ErrorContains(t, ValidateWorkspaces(ws), "duplicate")
	})

	t.Run("NonPositiveFloor", func(t *testing.T) {
		ws := valid()
		ws[0].Floor = 0
		assert.Error(t, ValidateWorkspaces(ws))
	})

	t.Run("NonPositiveCapacity", func(t *testing.T) {
		ws := valid()
		ws[0].Capacity = -1
		assert.Error(t, ValidateWorkspaces(ws))
	})

	t.Run("AvailableWithNextAvailable", func(t *testing.T) {
		ws := valid()
		ws[0].NextAvailable = "12:00"
		assert.ErrorContains(t, ValidateWorkspaces(ws), "next_available")
	})
}
