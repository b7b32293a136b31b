package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Search    SearchConfig    `yaml:"search"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Logging   LoggingConfig   `yaml:"logging"`
	Timezone  string          `yaml:"timezone"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port             string   `yaml:"port"`
	CORSAllowOrigins []string `yaml:"cors_allow_origins"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Type     string         `yaml:"type"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// MySQLConfig contains MySQL connection settings
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// PostgresConfig contains PostgreSQL connection settings
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// SearchConfig contains search engine settings
type SearchConfig struct {
	Meilisearch MeilisearchConfig `yaml:"meilisearch"`
}

// MeilisearchConfig contains Meilisearch connection settings
type MeilisearchConfig struct {
	Host   string `yaml:"host"`
	APIKey string `yaml:"api_key"`
}

// RedisConfig contains Redis settings (optional cache / token blacklist)
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// AuthConfig contains admin authentication settings
type AuthConfig struct {
	JWTSecret            string `yaml:"jwt_secret"`
	TokenTTLHours        int    `yaml:"token_ttl_hours"`
	DefaultAdminEmail    string `yaml:"default_admin_email"`
	DefaultAdminPassword string `yaml:"default_admin_password"`
}

// SchedulerConfig contains scheduled job settings
type SchedulerConfig struct {
	KeepAliveEnabled bool   `yaml:"keep_alive_enabled"`
	KeepAliveTime    string `yaml:"keep_alive_time"`
	ReindexEnabled   bool   `yaml:"reindex_enabled"`
	ReindexTime      string `yaml:"reindex_time"`
	CronSecret       string `yaml:"cron_secret"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:             "8084",
			CORSAllowOrigins: []string{"http://localhost:5176"},
		},
		Database: DatabaseConfig{
			Type: "mysql",
		},
		Auth: AuthConfig{
			TokenTTLHours:     24,
			DefaultAdminEmail: "admin@example.com",
		},
		Scheduler: SchedulerConfig{
			KeepAliveEnabled: true,
			KeepAliveTime:    "06:00",
			ReindexEnabled:   true,
			ReindexTime:      "03:00",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Timezone: "Asia/Tokyo",
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filepath string) (*Config, error) {
	// Start with default config
	config := DefaultConfig()

	// If file doesn't exist, return default config
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return config, nil
	}

	// Read file
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// TokenTTL returns the JWT lifetime as a duration
func (c *AuthConfig) TokenTTL() time.Duration {
	hours := c.TokenTTLHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}
