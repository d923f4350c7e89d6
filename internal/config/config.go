package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Pricing   PricingConfig   `yaml:"pricing"`
	Payment   PaymentConfig   `yaml:"payment"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	User           string `yaml:"user"`
	Password       string `yaml:"password"`
	Database       string `yaml:"database"`
	SSLMode        string `yaml:"ssl_mode"`
	MigrationsPath string `yaml:"migrations_path"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// PricingConfig contains the pricing policy values. These are business
// decisions, not domain constants, so they live in configuration and
// are passed explicitly into the pricing engine.
type PricingConfig struct {
	TaxRateBps         int64 `yaml:"tax_rate_bps"`
	WeekBillableDays   int64 `yaml:"week_billable_days"`
	ReturnGraceHours   int64 `yaml:"return_grace_hours"`
	LateFeePerDayCents int64 `yaml:"late_fee_per_day_cents"`
}

// PaymentConfig contains the partial-payment policy.
type PaymentConfig struct {
	MinPartialBps      int64 `yaml:"min_partial_bps"`
	MaxPartialPayments int   `yaml:"max_partial_payments"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	SendReturnReminders string `yaml:"send_return_reminders"`
	PurgeStaleCartLines string `yaml:"purge_stale_cart_lines"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}
	if val := os.Getenv("MIGRATIONS_PATH"); val != "" {
		c.Database.MigrationsPath = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Pricing policy
	if val := os.Getenv("TAX_RATE_BPS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Pricing.TaxRateBps)
	}
	if val := os.Getenv("LATE_FEE_PER_DAY_CENTS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Pricing.LateFeePerDayCents)
	}
}

// Validate checks the configuration and fills policy defaults
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.MigrationsPath == "" {
		c.Database.MigrationsPath = "migrations"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	// Pricing defaults: 18% tax, a started week billed as 5 daily-rate
	// units, 6 hours of return grace, late fees disabled until a rate
	// is configured.
	if c.Pricing.TaxRateBps == 0 {
		c.Pricing.TaxRateBps = 1800
	}
	if c.Pricing.WeekBillableDays == 0 {
		c.Pricing.WeekBillableDays = 5
	}
	if c.Pricing.ReturnGraceHours == 0 {
		c.Pricing.ReturnGraceHours = 6
	}

	// Payment defaults: a single partial payment of at least half the
	// outstanding balance.
	if c.Payment.MinPartialBps == 0 {
		c.Payment.MinPartialBps = 5000
	}
	if c.Payment.MaxPartialPayments == 0 {
		c.Payment.MaxPartialPayments = 1
	}

	// Scheduler defaults
	if c.Scheduler.SendReturnReminders == "" {
		c.Scheduler.SendReturnReminders = "0 0 8 * * *" // 8 AM UTC
	}
	if c.Scheduler.PurgeStaleCartLines == "" {
		c.Scheduler.PurgeStaleCartLines = "0 30 2 * * *" // 2:30 AM UTC
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
