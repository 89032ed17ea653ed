package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database     DatabaseConfig
	App          AppConfig
	JWT          JWTConfig
	Compensation CompensationConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	Timezone string
}

// JWTConfig holds the secret used to verify operator tokens
type JWTConfig struct {
	Secret string
}

// CompensationConfig holds the batch pipeline configuration.
// DefaultPayoutRate is the fraction of session revenue paid to teachers
// without an active contract rate. Run hours/day are in App.Timezone.
type CompensationConfig struct {
	DefaultPayoutRate  decimal.Decimal
	PayoutRunHour      int
	AggregationRunDay  int
	AggregationRunHour int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "brightpath"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: getEnv("APP_TIMEZONE", "UTC"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Compensation pipeline configuration
	defaultRate, err := decimal.NewFromString(getEnv("PAYOUT_DEFAULT_RATE", "0.4"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYOUT_DEFAULT_RATE: %w", err)
	}

	payoutRunHour, err := strconv.Atoi(getEnv("PAYOUT_RUN_HOUR", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYOUT_RUN_HOUR: %w", err)
	}

	aggregationRunDay, err := strconv.Atoi(getEnv("AGGREGATION_RUN_DAY", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid AGGREGATION_RUN_DAY: %w", err)
	}

	aggregationRunHour, err := strconv.Atoi(getEnv("AGGREGATION_RUN_HOUR", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid AGGREGATION_RUN_HOUR: %w", err)
	}

	config.Compensation = CompensationConfig{
		DefaultPayoutRate:  defaultRate,
		PayoutRunHour:      payoutRunHour,
		AggregationRunDay:  aggregationRunDay,
		AggregationRunHour: aggregationRunHour,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.App.Timezone, err)
	}
	if c.Compensation.DefaultPayoutRate.IsNegative() || c.Compensation.DefaultPayoutRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("PAYOUT_DEFAULT_RATE must be between 0 and 1")
	}
	if c.Compensation.PayoutRunHour < 0 || c.Compensation.PayoutRunHour > 23 {
		return fmt.Errorf("PAYOUT_RUN_HOUR must be between 0 and 23")
	}
	if c.Compensation.AggregationRunDay < 1 || c.Compensation.AggregationRunDay > 28 {
		return fmt.Errorf("AGGREGATION_RUN_DAY must be between 1 and 28")
	}
	if c.Compensation.AggregationRunHour < 0 || c.Compensation.AggregationRunHour > 23 {
		return fmt.Errorf("AGGREGATION_RUN_HOUR must be between 0 and 23")
	}
	return nil
}

// Location returns the operational timezone. Validate has already checked
// that it loads.
func (c *Config) Location() *time.Location {
	loc, _ := time.LoadLocation(c.App.Timezone)
	return loc
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
