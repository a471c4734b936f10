package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
	"github.com/vladimiradmaev/health-tracker/internal/schedule"
)

type reminderFixture struct {
	svc      *ReminderService
	logs     *mockLogRepository
	store    *mockReminderStore
	notifier *mockNotifier
	settings *mockSettingsRepository
}

func newReminderFixture(t *testing.T, settings domain.UserSettings, meds ...domain.Medication) *reminderFixture {
	t.Helper()
	medSvc, logs := newMedicationFixture(meds...)
	settingsRepo := newMockSettingsRepository(settings)
	store := newMockReminderStore()
	notifier := &mockNotifier{}

	svc := NewReminderService(settingsRepo, medSvc, store, notifier, ReminderOptions{
		Lookahead:       15 * time.Minute,
		QuietHoursStart: "22:00",
		QuietHoursEnd:   "06:00",
	}, time.UTC)

	return &reminderFixture{svc: svc, logs: logs, store: store, notifier: notifier, settings: settingsRepo}
}

func userSettings() domain.UserSettings {
	s := domain.DefaultSettings(1, "America/New_York")
	s.User = domain.User{ID: 1, TelegramID: 1001, ChatID: 1001}
	s.BPReminderTimes = pq.StringArray{"09:00"}
	return s
}

// ny returns a wall-clock time in New York, which is UTC-4 in May
func ny(hh, mm int) time.Time {
	loc, _ := time.LoadLocation("America/New_York")
	return time.Date(2026, 5, 4, hh, mm, 0, 0, loc)
}

func TestTickSendsUpcomingThenOverdueOnce(t *testing.T) {
	med := storedMedication(domain.FrequencyOnceDaily, "08:00")
	f := newReminderFixture(t, userSettings(), med)
	ctx := context.Background()

	stats, err := f.svc.Tick(ctx, ny(7, 50).UTC())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Doses)
	require.Len(t, f.notifier.doses, 1)
	assert.False(t, f.notifier.doses[0].overdue)
	assert.Equal(t, int64(1001), f.notifier.doses[0].user.TelegramID)

	_, err = f.svc.Tick(ctx, ny(7, 55).UTC())
	require.NoError(t, err)
	assert.Len(t, f.notifier.doses, 1, "upcoming reminder is sent once")

	_, err = f.svc.Tick(ctx, ny(8, 1).UTC())
	require.NoError(t, err)
	require.Len(t, f.notifier.doses, 2)
	assert.True(t, f.notifier.doses[1].overdue)

	_, err = f.svc.Tick(ctx, ny(8, 30).UTC())
	require.NoError(t, err)
	assert.Len(t, f.notifier.doses, 2, "overdue reminder is sent once")
}

func TestTickSkipsTakenDoses(t *testing.T) {
	med := storedMedication(domain.FrequencyOnceDaily, "08:00")
	f := newReminderFixture(t, userSettings(), med)
	f.logs.logs = []domain.MedicationLog{{MedicationID: med.ID, ScheduledTime: ny(8, 0), Status: domain.DoseStatusTaken}}

	_, err := f.svc.Tick(context.Background(), ny(8, 5).UTC())
	require.NoError(t, err)
	assert.Empty(t, f.notifier.doses)
}

func TestTickRemindsWhenLogsUnavailable(t *testing.T) {
	med := storedMedication(domain.FrequencyOnceDaily, "08:00")
	f := newReminderFixture(t, userSettings(), med)
	f.logs.listErr = errors.New("db down")

	_, err := f.svc.Tick(context.Background(), ny(8, 5).UTC())
	require.NoError(t, err)
	require.Len(t, f.notifier.doses, 1)
	assert.True(t, f.notifier.doses[0].overdue)
}

func TestTickRespectsDismissal(t *testing.T) {
	med := storedMedication(domain.FrequencyOnceDaily, "08:00")
	f := newReminderFixture(t, userSettings(), med)
	ctx := context.Background()

	key := schedule.DoseKey(med.ID, ny(8, 0))
	loc, _ := time.LoadLocation("America/New_York")
	require.NoError(t, f.svc.Dismiss(ctx, 1001, key, loc))

	stats, err := f.svc.Tick(ctx, ny(8, 5).UTC())
	require.NoError(t, err)
	assert.Empty(t, f.notifier.doses)
	assert.Equal(t, 1, stats.Suppressed)
	assert.Empty(t, f.logs.logs, "dismissal does not write a dose log")
}

func TestTickReadingReminders(t *testing.T) {
	s := userSettings()
	s.MedicationRemindersEnabled = false
	f := newReminderFixture(t, s)
	ctx := context.Background()

	_, err := f.svc.Tick(ctx, ny(8, 50).UTC())
	require.NoError(t, err)
	require.Len(t, f.notifier.readings, 1)
	assert.Equal(t, domain.ReadingBloodPressure, f.notifier.readings[0].Kind)
	assert.Equal(t, "09:00", f.notifier.readings[0].Target)

	_, err = f.svc.Tick(ctx, ny(9, 10).UTC())
	require.NoError(t, err)
	assert.Len(t, f.notifier.readings, 1, "one reading reminder per target and day")
}

func TestTickGlucoseNeedsMonitoring(t *testing.T) {
	s := userSettings()
	s.BPReminderEnabled = false
	s.GlucoseReminderTimes = pq.StringArray{"12:00"}
	f := newReminderFixture(t, s)

	_, err := f.svc.Tick(context.Background(), ny(12, 0).UTC())
	require.NoError(t, err)
	assert.Empty(t, f.notifier.readings)

	s.GlucoseMonitoringEnabled = true
	f = newReminderFixture(t, s)
	_, err = f.svc.Tick(context.Background(), ny(12, 0).UTC())
	require.NoError(t, err)
	require.Len(t, f.notifier.readings, 1)
	assert.Equal(t, domain.ReadingGlucose, f.notifier.readings[0].Kind)
}

func TestTickQuietHours(t *testing.T) {
	med := storedMedication(domain.FrequencyCustom, "23:00")
	f := newReminderFixture(t, userSettings(), med)

	_, err := f.svc.Tick(context.Background(), ny(22, 55).UTC())
	require.NoError(t, err)
	assert.Empty(t, f.notifier.doses)
}

func TestTickUsesUserTimezone(t *testing.T) {
	med := storedMedication(domain.FrequencyOnceDaily, "08:00")
	f := newReminderFixture(t, userSettings(), med)

	// 08:05 UTC is 04:05 in New York: quiet hours, nothing due.
	_, err := f.svc.Tick(context.Background(), time.Date(2026, 5, 4, 8, 5, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, f.notifier.doses)
}

func TestTickStoreFailureStillNotifies(t *testing.T) {
	med := storedMedication(domain.FrequencyOnceDaily, "08:00")
	f := newReminderFixture(t, userSettings(), med)
	f.store.err = errors.New("redis unavailable")

	_, err := f.svc.Tick(context.Background(), ny(8, 5).UTC())
	require.NoError(t, err)
	assert.Len(t, f.notifier.doses, 1)
}

func TestTickNotificationsDisabled(t *testing.T) {
	s := userSettings()
	s.NotificationsEnabled = false
	med := storedMedication(domain.FrequencyOnceDaily, "08:00")
	f := newReminderFixture(t, s, med)

	stats, err := f.svc.Tick(context.Background(), ny(8, 5).UTC())
	require.NoError(t, err)
	assert.Zero(t, stats.Users)
	assert.Empty(t, f.notifier.doses)
}

func TestRunStopsOnCancel(t *testing.T) {
	f := newReminderFixture(t, userSettings())
	f.svc.opts.PollInterval = 10 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := f.svc.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
