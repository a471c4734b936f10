package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/vladimiradmaev/health-tracker/internal/config"
)

func main() {
	fmt.Println("🔍 Checking configuration...")

	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  .env file not found: %v\n", err)
	}

	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Printf("❌ Invalid configuration:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Configuration is valid!")
	fmt.Printf("📋 Details:\n")
	fmt.Printf("  - Telegram Token: %s\n", maskToken(cfg.TelegramToken))
	fmt.Printf("  - DB: %s@%s:%s/%s (sslmode=%s)\n", cfg.DB.User, cfg.DB.Host, cfg.DB.Port, cfg.DB.DBName, cfg.DB.SSLMode)
	if cfg.Redis.Enabled() {
		fmt.Printf("  - Redis: %s db %d, password %s\n", cfg.Redis.Addr, cfg.Redis.DB, maskToken(cfg.Redis.Password))
	} else {
		fmt.Printf("  - Redis: disabled, state kept in memory\n")
	}
	fmt.Printf("  - Log Level: %v\n", cfg.Logger.Level)
	fmt.Printf("  - Log Output: %s (%s)\n", cfg.Logger.OutputPath, cfg.Logger.Format)
	fmt.Printf("  - Reminder poll: %s, lookahead %s\n", cfg.Reminder.PollInterval, cfg.Reminder.Lookahead)
	fmt.Printf("  - Quiet hours: %s-%s\n", cfg.Reminder.QuietHoursStart, cfg.Reminder.QuietHoursEnd)
	fmt.Printf("  - Default timezone: %s\n", cfg.Reminder.DefaultTimezone)
}

func maskToken(token string) string {
	if token == "" {
		return "<not set>"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
