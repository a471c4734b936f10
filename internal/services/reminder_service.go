package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
	"github.com/vladimiradmaev/health-tracker/internal/logger"
	"github.com/vladimiradmaev/health-tracker/internal/schedule"
	"github.com/vladimiradmaev/health-tracker/internal/utils"
)

// Notifier delivers due reminders to a user
type Notifier interface {
	NotifyDose(ctx context.Context, user domain.User, dose schedule.ResolvedDose, overdue bool) error
	NotifyReading(ctx context.Context, user domain.User, reminder schedule.ReadingReminder) error
}

// ReminderStore remembers which reminders were delivered or dismissed.
// Keys are scoped per telegram user.
type ReminderStore interface {
	// MarkSent records key and reports whether this is its first delivery
	// within ttl.
	MarkSent(ctx context.Context, userID int64, key string, ttl time.Duration) (bool, error)
	Dismiss(ctx context.Context, userID int64, key string, ttl time.Duration) error
	IsDismissed(ctx context.Context, userID int64, key string) (bool, error)
}

type ReminderOptions struct {
	PollInterval    time.Duration
	Lookahead       time.Duration
	QuietHoursStart string
	QuietHoursEnd   string
}

// TickStats counts what one evaluation pass did
type TickStats struct {
	Users      int
	Doses      int
	Readings   int
	Suppressed int
	Failed     int
}

type ReminderService struct {
	settings    domain.SettingsRepository
	medications *MedicationService
	store       ReminderStore
	notifier    Notifier
	opts        ReminderOptions
	defaultLoc  *time.Location
	now         func() time.Time
}

func NewReminderService(
	settings domain.SettingsRepository,
	medications *MedicationService,
	store ReminderStore,
	notifier Notifier,
	opts ReminderOptions,
	defaultLoc *time.Location,
) *ReminderService {
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Minute
	}
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &ReminderService{
		settings:    settings,
		medications: medications,
		store:       store,
		notifier:    notifier,
		opts:        opts,
		defaultLoc:  defaultLoc,
		now:         time.Now,
	}
}

// Run evaluates reminders every poll interval until ctx is cancelled
func (s *ReminderService) Run(ctx context.Context) error {
	logger.Info("Reminder loop started", "interval", s.opts.PollInterval)

	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	for {
		if _, err := s.Tick(ctx, s.now()); err != nil {
			logger.Error("Reminder tick failed", "error", err)
		}

		select {
		case <-ctx.Done():
			logger.Info("Reminder loop stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Tick evaluates every user with notifications enabled at now. Failures for
// one user are logged and do not stop the others.
func (s *ReminderService) Tick(ctx context.Context, now time.Time) (TickStats, error) {
	var stats TickStats

	all, err := s.settings.ListNotifiable(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to list notifiable users: %w", err)
	}

	for i := range all {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
		stats.Users++
		s.tickUser(ctx, &all[i], now, &stats)
	}

	if stats.Doses+stats.Readings+stats.Failed > 0 {
		logger.Info("Reminder tick completed",
			"users", stats.Users,
			"doses", stats.Doses,
			"readings", stats.Readings,
			"suppressed", stats.Suppressed,
			"failed", stats.Failed)
	}
	return stats, nil
}

func (s *ReminderService) tickUser(ctx context.Context, settings *domain.UserSettings, now time.Time, stats *TickStats) {
	user := settings.User
	if user.ID == 0 {
		user.ID = settings.UserID
	}
	log := logger.WithFields("user_id", user.ID)

	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		log.Warn("Invalid timezone, using default", "timezone", settings.Timezone)
		loc = s.defaultLoc
	}
	local := now.In(loc)

	if schedule.InQuietHours(local, s.opts.QuietHoursStart, s.opts.QuietHoursEnd) {
		return
	}

	lookahead := s.opts.Lookahead
	if settings.ReminderLeadMinutes > 0 {
		lookahead = time.Duration(settings.ReminderLeadMinutes) * time.Minute
	}

	if settings.MedicationRemindersEnabled {
		resolved, err := s.medications.DaySchedule(ctx, user.ID, local)
		if err != nil {
			// resolved still holds the schedule with every dose pending
			log.Warn("Evaluating doses without logs", "error", err)
		}
		due := schedule.Evaluate(resolved, local, lookahead)
		for _, dose := range due.Overdue {
			s.deliverDose(ctx, user, dose, true, local, stats)
		}
		for _, dose := range due.Upcoming {
			s.deliverDose(ctx, user, dose, false, local, stats)
		}
	}

	for _, kind := range []domain.ReadingKind{domain.ReadingBloodPressure, domain.ReadingGlucose} {
		for _, target := range schedule.DueReadingTargets(settings.ReadingTimes(kind), local, lookahead) {
			s.deliverReading(ctx, user, kind, target, local, stats)
		}
	}
}

// deliverDose sends at most one upcoming and one overdue reminder per dose
func (s *ReminderService) deliverDose(ctx context.Context, user domain.User, dose schedule.ResolvedDose, overdue bool, local time.Time, stats *TickStats) {
	key := dose.Key()
	if s.suppressed(ctx, user, key) {
		stats.Suppressed++
		return
	}

	sentKey := "upcoming:" + key
	if overdue {
		sentKey = "overdue:" + key
	}
	first, err := s.store.MarkSent(ctx, user.TelegramID, sentKey, untilEndOfDay(local))
	if err != nil {
		logger.Warn("Reminder store unavailable", "error", err)
	}
	if !first && err == nil {
		return
	}

	if err := s.notifier.NotifyDose(ctx, user, dose, overdue); err != nil {
		stats.Failed++
		logger.Error("Failed to send dose reminder", "user_id", user.ID, "dose", key, "error", err)
		return
	}
	stats.Doses++
}

func (s *ReminderService) deliverReading(ctx context.Context, user domain.User, kind domain.ReadingKind, target string, local time.Time, stats *TickStats) {
	reminder := schedule.NewReadingReminder(kind, target, local)
	key := reminder.Key
	if s.suppressed(ctx, user, key) {
		stats.Suppressed++
		return
	}

	first, err := s.store.MarkSent(ctx, user.TelegramID, key, untilEndOfDay(local))
	if err != nil {
		logger.Warn("Reminder store unavailable", "error", err)
	}
	if !first && err == nil {
		return
	}

	if err := s.notifier.NotifyReading(ctx, user, reminder); err != nil {
		stats.Failed++
		logger.Error("Failed to send reading reminder", "user_id", user.ID, "kind", kind, "error", err)
		return
	}
	stats.Readings++
}

func (s *ReminderService) suppressed(ctx context.Context, user domain.User, key string) bool {
	dismissed, err := s.store.IsDismissed(ctx, user.TelegramID, key)
	if err != nil {
		logger.Warn("Reminder store unavailable", "error", err)
		return false
	}
	return dismissed
}

// Dismiss hides a reminder until the end of the user's day. Logs are not
// touched: a dismissed dose stays pending.
func (s *ReminderService) Dismiss(ctx context.Context, telegramID int64, key string, loc *time.Location) error {
	if loc == nil {
		loc = s.defaultLoc
	}
	return s.store.Dismiss(ctx, telegramID, key, untilEndOfDay(s.now().In(loc)))
}

func untilEndOfDay(local time.Time) time.Duration {
	_, end := utils.DayBounds(local)
	if d := end.Sub(local); d > time.Minute {
		return d
	}
	return time.Minute
}
