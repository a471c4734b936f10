package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vladimiradmaev/health-tracker/internal/app"
	"github.com/vladimiradmaev/health-tracker/internal/bot"
	"github.com/vladimiradmaev/health-tracker/internal/config"
	"github.com/vladimiradmaev/health-tracker/internal/logger"
	"github.com/vladimiradmaev/health-tracker/internal/notifier"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.InitWithConfig(cfg.Logger.ToLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	err = run(cfg)
	if err != nil {
		logger.Error("Health Tracker Bot stopped", "error", err)
	}
	logger.Close()
	if err != nil {
		os.Exit(1)
	}
}

// run wires the application and blocks until shutdown. Deferred cleanup runs
// before main exits.
func run(cfg *config.Config) error {
	logger.Info("Starting Health Tracker Bot")
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.TelegramToken == "" {
		return errors.New("TELEGRAM_BOT_TOKEN is required")
	}

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer a.Close()

	api, err := bot.NewAPI(cfg.TelegramToken)
	if err != nil {
		return err
	}
	reminders := a.NewReminderService(notifier.NewTelegramNotifier(api))
	telegramBot := bot.NewBot(api, a.Dependencies(reminders), a.Store)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Bot stopped with error", "error", err)
			stop()
		}
	}()
	go func() {
		defer wg.Done()
		if err := reminders.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Reminder loop stopped with error", "error", err)
			stop()
		}
	}()

	logger.Info("Bot is running. Press Ctrl+C to stop.")
	wg.Wait()
	logger.Info("Shutdown complete")
	return nil
}
