package config

import (
	"errors"
	"fmt"
	"os"

	"officespace/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig          `yaml:"app"`
	Booking    BookingConfig      `yaml:"booking"`
	Database   DatabaseConfig     `yaml:"database"`
	Redis      RedisConfig        `yaml:"redis"`
	Monitoring MonitoringConfig   `yaml:"monitoring"`
	Logging    LoggingConfig      `yaml:"logging"`
	API        APIConfig          `yaml:"api"`
	Telegram   TelegramConfig     `yaml:"telegram"`
	Workspaces []models.Workspace `yaml:"workspaces"`
	Exports    ExportConfig       `yaml:"exports"`
	Google     GoogleConfig       `yaml:"google"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type BookingConfig struct {
	// EndOfDayHour/Minute define the boundary used for "until end of day".
	EndOfDayHour   int `yaml:"end_of_day_hour"`
	EndOfDayMinute int `yaml:"end_of_day_minute"`
	// GatewayTimeout bounds a single reservation write, seconds.
	GatewayTimeout int `yaml:"gateway_timeout"`
	// SessionTTL bounds how long a session snapshot lives in Redis, seconds.
	SessionTTL int `yaml:"session_ttl"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type APIConfig struct {
	Enabled   bool               `yaml:"enabled"`
	Port      int                `yaml:"port"`
	Auth      APIAuthConfig      `yaml:"auth"`
	RateLimit APIRateLimitConfig `yaml:"rate_limit"`
}

type APIAuthConfig struct {
	Enabled      bool           `yaml:"enabled"`
	HeaderAPIKey string         `yaml:"header_api_key"`
	HeaderExtra  string         `yaml:"header_extra"`
	APIKeys      []APIClientKey `yaml:"api_keys"`
}

type APIClientKey struct {
	Key         string   `yaml:"key"`
	Extra       string   `yaml:"extra"`
	Name        string   `yaml:"name"`
	Permissions []string `yaml:"permissions"`
}

type APIRateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
	Debug    bool   `yaml:"debug"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

type GoogleConfig struct {
	CredentialsFile          string `yaml:"credentials_file"`
	ReservationSpreadSheetID string `yaml:"reservations_spreadsheet_id"`
	ReservationSheetRange    string `yaml:"reservations_sheet_range"`
}

func Load(configPath string) (*Config, error) {
	// .env не обязателен, но если есть — подхватываем
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Предварительная замена переменных окружения в YAML
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("database path is required")
	}

	if c.Booking.EndOfDayHour < 0 || c.Booking.EndOfDayHour > 23 {
		return fmt.Errorf("booking.end_of_day_hour out of range: %d", c.Booking.EndOfDayHour)
	}
	if c.Booking.EndOfDayMinute < 0 || c.Booking.EndOfDayMinute > 59 {
		return fmt.Errorf("booking.end_of_day_minute out of range: %d", c.Booking.EndOfDayMinute)
	}

	return ValidateWorkspaces(c.Workspaces)
}

// ValidateWorkspaces checks the static workspace list for internal
// consistency before the catalog is built from it.
func ValidateWorkspaces(workspaces []models.Workspace) error {
	seen := make(map[string]bool, len(workspaces))
	for _, ws := range workspaces {
		if ws.ID == "" {
			return fmt.Errorf("workspace %q has empty id", ws.Name)
		}
		if seen[ws.ID] {
			return fmt.Errorf("duplicate workspace id found: %s", ws.ID)
		}
		seen[ws.ID] = true

		if ws.Floor <= 0 {
			return fmt.Errorf("workspace %s has non-positive floor %d", ws.ID, ws.Floor)
		}
		if ws.Capacity <= 0 {
			return fmt.Errorf("workspace %s has non-positive capacity %d", ws.ID, ws.Capacity)
		}
		if ws.Available && ws.NextAvailable != "" {
			return fmt.Errorf("workspace %s is available but carries next_available", ws.ID)
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Booking.EndOfDayHour == 0 {
		c.Booking.EndOfDayHour = models.EndOfDayHour
	}
	if c.Booking.GatewayTimeout == 0 {
		c.Booking.GatewayTimeout = models.DefaultGatewayTimeout
	}
	if c.Booking.SessionTTL == 0 {
		c.Booking.SessionTTL = models.DefaultSessionTTL
	}

	if c.API.Port == 0 {
		c.API.Port = 8080
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	// auth enabled by default when API is enabled
	if c.API.Enabled && !c.API.Auth.Enabled {
		c.API.Auth.Enabled = true
	}
	if c.API.Auth.HeaderAPIKey == "" {
		c.API.Auth.HeaderAPIKey = "x-api-key"
	}
	if c.API.Auth.HeaderExtra == "" {
		c.API.Auth.HeaderExtra = "x-api-extra"
	}

	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}
}
