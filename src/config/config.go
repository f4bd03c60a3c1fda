package config

import (
	"fmt"
	"os"

	"campaign-pulse/src/models"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Defaults applied when the YAML file leaves a field empty
const (
	DefaultMetricsIntervalSeconds  = 3
	DefaultCampaignIntervalSeconds = 120
	DefaultAlertIntervalSeconds    = 120
	DefaultTokenTTLMinutes         = 24 * 60
	DefaultBcryptCost              = 10
	DefaultLoginRPS                = 1
	DefaultLoginBurst              = 5
	DefaultConnectRetries          = 3
	DefaultGrpcPort                = 50051
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from YAML file, then applies DASHBOARD_* env overrides
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	return Parse(data)
}

// -----------------------------------------------------------------------------

// Parse builds a Config from raw YAML bytes
func Parse(data []byte) (*Config, error) {
	// 1. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	// 2. Environment wins over the file
	if err := env.Parse(&modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}

	config := &Config{MConfig: &modelConfig}
	config.applyDefaults()

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
	if c.GrpcPort == 0 {
		c.GrpcPort = DefaultGrpcPort
	}
	if c.Storage.DBType == "" {
		c.Storage.DBType = "sqlite"
	}
	if c.Storage.ConnectRetries == 0 {
		c.Storage.ConnectRetries = DefaultConnectRetries
	}
	if c.Auth.TokenTTLMinutes == 0 {
		c.Auth.TokenTTLMinutes = DefaultTokenTTLMinutes
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = DefaultBcryptCost
	}
	if c.Auth.Issuer == "" {
		c.Auth.Issuer = c.Name
	}
	if c.RealTime.MetricsIntervalSeconds == 0 {
		c.RealTime.MetricsIntervalSeconds = DefaultMetricsIntervalSeconds
	}
	if c.RealTime.CampaignIntervalSeconds == 0 {
		c.RealTime.CampaignIntervalSeconds = DefaultCampaignIntervalSeconds
	}
	if c.RealTime.AlertIntervalSeconds == 0 {
		c.RealTime.AlertIntervalSeconds = DefaultAlertIntervalSeconds
	}
	if c.RateLimit.LoginRPS == 0 {
		c.RateLimit.LoginRPS = DefaultLoginRPS
	}
	if c.RateLimit.LoginBurst == 0 {
		c.RateLimit.LoginBurst = DefaultLoginBurst
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	// Validate App configuration (Flattened)
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Validate Server configuration (Flattened)
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}
	if c.GrpcPort <= 1024 || c.GrpcPort > 65535 {
		return fmt.Errorf("invalid grpc port number: %d (must be between 1025 and 65535)", c.GrpcPort)
	}
	if c.GrpcPort == c.Port {
		return fmt.Errorf("grpc port %d collides with server port", c.GrpcPort)
	}

	// Validate Storage configuration
	switch c.Storage.DBType {
	case "sqlite":
		if c.Storage.DBPath == "" {
			return fmt.Errorf("database path cannot be empty for sqlite")
		}
	case "postgres":
		if c.Storage.DBConnectionString == "" {
			return fmt.Errorf("database connection string cannot be empty for postgres")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.Storage.DBType)
	}
	if c.Storage.ConnectRetries < 0 {
		return fmt.Errorf("connect retries cannot be negative")
	}

	// Validate Auth configuration
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("jwt secret must be at least 16 characters")
	}
	if c.Auth.TokenTTLMinutes < 0 {
		return fmt.Errorf("token ttl cannot be negative")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("bcrypt cost %d out of range [4, 31]", c.Auth.BcryptCost)
	}

	// Validate real-time timers
	if c.RealTime.MetricsIntervalSeconds < 0 || c.RealTime.CampaignIntervalSeconds < 0 || c.RealTime.AlertIntervalSeconds < 0 {
		return fmt.Errorf("real-time intervals must be greater than 0")
	}

	// Validate rate limiting
	if c.RateLimit.LoginRPS < 0 || c.RateLimit.LoginBurst < 0 {
		return fmt.Errorf("login rate limit cannot be negative")
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
