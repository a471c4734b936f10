// Package app wires configuration, storage and services together for the
// bot and the command line tools.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/vladimiradmaev/health-tracker/internal/bot/handlers"
	"github.com/vladimiradmaev/health-tracker/internal/bot/state"
	"github.com/vladimiradmaev/health-tracker/internal/config"
	"github.com/vladimiradmaev/health-tracker/internal/database"
	"github.com/vladimiradmaev/health-tracker/internal/logger"
	"github.com/vladimiradmaev/health-tracker/internal/repository"
	"github.com/vladimiradmaev/health-tracker/internal/services"
	"github.com/vladimiradmaev/health-tracker/internal/utils"
)

type App struct {
	Config *config.Config
	Repos  *repository.Repositories
	Store  state.Store

	Users         *services.UserService
	BloodPressure *services.BloodPressureService
	Glucose       *services.GlucoseService
	Medications   *services.MedicationService
	Settings      *services.SettingsService

	DefaultLocation *time.Location
	redis           *state.RedisManager
}

// New connects to postgres (running migrations) and, when configured, redis.
func New(cfg *config.Config) (*App, error) {
	loc, err := utils.LoadLocation(cfg.Reminder.DefaultTimezone)
	if err != nil {
		return nil, err
	}

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		return nil, err
	}
	repos := repository.New(db)

	a := &App{
		Config:          cfg,
		Repos:           repos,
		Users:           services.NewUserService(repos.Users),
		BloodPressure:   services.NewBloodPressureService(repos.Readings),
		Glucose:         services.NewGlucoseService(repos.Readings),
		Medications:     services.NewMedicationService(repos.Medications, repos.MedicationLogs),
		Settings:        services.NewSettingsService(repos.Settings, cfg.Reminder.DefaultTimezone),
		DefaultLocation: loc,
	}

	if cfg.Redis.Enabled() {
		rm, err := state.NewRedisManager(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			_ = repos.Close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		a.redis = rm
		a.Store = rm
		logger.Info("Using Redis for dialog and reminder state", "addr", cfg.Redis.Addr)
	} else {
		a.Store = state.NewManager()
		logger.Warn("REDIS_ADDR not set, dialog and reminder state are kept in memory")
	}

	return a, nil
}

// NewReminderService builds the reminder loop around notifier
func (a *App) NewReminderService(notifier services.Notifier) *services.ReminderService {
	r := a.Config.Reminder
	return services.NewReminderService(a.Repos.Settings, a.Medications, a.Store, notifier, services.ReminderOptions{
		PollInterval:    r.PollInterval,
		Lookahead:       r.Lookahead,
		QuietHoursStart: r.QuietHoursStart,
		QuietHoursEnd:   r.QuietHoursEnd,
	}, a.DefaultLocation)
}

// Dependencies returns the services the chat handlers use
func (a *App) Dependencies(reminders *services.ReminderService) handlers.Dependencies {
	return handlers.Dependencies{
		UserService:   a.Users,
		BloodPressure: a.BloodPressure,
		Glucose:       a.Glucose,
		Medications:   a.Medications,
		Settings:      a.Settings,
		Reminders:     reminders,
	}
}

// Close releases redis and the database pool
func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	errs = append(errs, a.Repos.Close())
	return errors.Join(errs...)
}
