package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/vladimiradmaev/health-tracker/internal/logger"
	"github.com/vladimiradmaev/health-tracker/internal/utils"
)

type Config struct {
	TelegramToken string
	DB            DBConfig
	Redis         RedisConfig
	Logger        LoggerConfig
	Reminder      ReminderConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the connection string for the postgres driver.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig is optional. When Addr is empty reminder and dialog state are
// kept in memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	AlsoStdout bool
}

// ToLogger converts to the logger package configuration.
func (c LoggerConfig) ToLogger() logger.Config {
	return logger.Config{
		Level:      c.Level,
		OutputPath: c.OutputPath,
		Format:     c.Format,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		AlsoStdout: c.AlsoStdout,
	}
}

type ReminderConfig struct {
	PollInterval    time.Duration
	Lookahead       time.Duration
	QuietHoursStart string // notifications are suppressed from this time...
	QuietHoursEnd   string // ...until this time, in the user's timezone
	DefaultTimezone string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func Load() (*Config, error) {
	redisDB, err := getIntOrDefault("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	maxSize, err := getIntOrDefault("LOG_MAX_SIZE_MB", 10)
	if err != nil {
		return nil, err
	}
	maxBackups, err := getIntOrDefault("LOG_MAX_BACKUPS", 5)
	if err != nil {
		return nil, err
	}
	maxAge, err := getIntOrDefault("LOG_MAX_AGE_DAYS", 30)
	if err != nil {
		return nil, err
	}
	poll, err := getDurationOrDefault("REMINDER_POLL_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}
	lookahead, err := getDurationOrDefault("REMINDER_LOOKAHEAD", 15*time.Minute)
	if err != nil {
		return nil, err
	}

	return &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DB: DBConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrDefault("DB_NAME", "health_tracker"),
			SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:      logger.ParseLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "logs/app.log"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
			MaxSizeMB:  maxSize,
			MaxBackups: maxBackups,
			MaxAgeDays: maxAge,
			AlsoStdout: getEnvOrDefault("LOG_STDOUT", "false") == "true",
		},
		Reminder: ReminderConfig{
			PollInterval:    poll,
			Lookahead:       lookahead,
			QuietHoursStart: getEnvOrDefault("QUIET_HOURS_START", "22:00"),
			QuietHoursEnd:   getEnvOrDefault("QUIET_HOURS_END", "06:00"),
			DefaultTimezone: getEnvOrDefault("DEFAULT_TIMEZONE", "UTC"),
		},
	}, nil
}

// Validate checks the values Load cannot reject on its own. The bot token is
// checked separately because the CLI can run without it.
func (c *Config) Validate() error {
	if c.DB.Host == "" || c.DB.DBName == "" {
		return fmt.Errorf("database host and name are required")
	}
	if c.Reminder.PollInterval < time.Second {
		return fmt.Errorf("reminder poll interval %s is too short", c.Reminder.PollInterval)
	}
	if c.Reminder.Lookahead <= 0 {
		return fmt.Errorf("reminder lookahead must be positive")
	}
	if !utils.ValidClock(c.Reminder.QuietHoursStart) {
		return fmt.Errorf("invalid QUIET_HOURS_START %q", c.Reminder.QuietHoursStart)
	}
	if !utils.ValidClock(c.Reminder.QuietHoursEnd) {
		return fmt.Errorf("invalid QUIET_HOURS_END %q", c.Reminder.QuietHoursEnd)
	}
	if _, err := utils.LoadLocation(c.Reminder.DefaultTimezone); err != nil {
		return err
	}
	if c.Logger.Format != "json" && c.Logger.Format != "text" {
		return fmt.Errorf("unknown log format %q", c.Logger.Format)
	}
	return nil
}
