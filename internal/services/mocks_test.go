package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
	"github.com/vladimiradmaev/health-tracker/internal/schedule"
)

var (
	_ domain.UserRepository          = (*mockUserRepository)(nil)
	_ domain.ReadingRepository       = (*mockReadingRepository)(nil)
	_ domain.MedicationRepository    = (*mockMedicationRepository)(nil)
	_ domain.MedicationLogRepository = (*mockLogRepository)(nil)
	_ domain.SettingsRepository      = (*mockSettingsRepository)(nil)
	_ Notifier                       = (*mockNotifier)(nil)
	_ ReminderStore                  = (*mockReminderStore)(nil)
)

type mockUserRepository struct {
	GetOrCreateUserFunc     func(ctx context.Context, telegramID, chatID int64, username, firstName, lastName string) (*domain.User, error)
	GetUserByTelegramIDFunc func(ctx context.Context, telegramID int64) (*domain.User, error)
}

func (m *mockUserRepository) GetOrCreateUser(ctx context.Context, telegramID, chatID int64, username, firstName, lastName string) (*domain.User, error) {
	if m.GetOrCreateUserFunc != nil {
		return m.GetOrCreateUserFunc(ctx, telegramID, chatID, username, firstName, lastName)
	}
	return nil, errors.New("GetOrCreateUserFunc not implemented in mock")
}

func (m *mockUserRepository) GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	if m.GetUserByTelegramIDFunc != nil {
		return m.GetUserByTelegramIDFunc(ctx, telegramID)
	}
	return nil, errors.New("GetUserByTelegramIDFunc not implemented in mock")
}

// mockReadingRepository keeps readings in slices
type mockReadingRepository struct {
	bp      []domain.BloodPressureReading
	glucose []domain.GlucoseReading
	since   time.Time
	err     error
}

func (m *mockReadingRepository) CreateBloodPressure(ctx context.Context, r *domain.BloodPressureReading) error {
	if m.err != nil {
		return m.err
	}
	r.ID = uuid.New()
	m.bp = append(m.bp, *r)
	return nil
}

func (m *mockReadingRepository) ListBloodPressure(ctx context.Context, userID uint, since time.Time) ([]domain.BloodPressureReading, error) {
	m.since = since
	return m.bp, m.err
}

func (m *mockReadingRepository) DeleteBloodPressure(ctx context.Context, userID uint, id uuid.UUID) error {
	return m.err
}

func (m *mockReadingRepository) CreateGlucose(ctx context.Context, r *domain.GlucoseReading) error {
	if m.err != nil {
		return m.err
	}
	r.ID = uuid.New()
	m.glucose = append(m.glucose, *r)
	return nil
}

func (m *mockReadingRepository) ListGlucose(ctx context.Context, userID uint, since time.Time) ([]domain.GlucoseReading, error) {
	m.since = since
	return m.glucose, m.err
}

func (m *mockReadingRepository) DeleteGlucose(ctx context.Context, userID uint, id uuid.UUID) error {
	return m.err
}

type mockMedicationRepository struct {
	CreateFunc     func(ctx context.Context, med *domain.Medication) error
	UpdateFunc     func(ctx context.Context, med *domain.Medication) error
	GetByIDFunc    func(ctx context.Context, userID uint, id uuid.UUID) (*domain.Medication, error)
	ListActiveFunc func(ctx context.Context, userID uint) ([]domain.Medication, error)
	ListAllFunc    func(ctx context.Context, userID uint) ([]domain.Medication, error)
	DeactivateFunc func(ctx context.Context, userID uint, id uuid.UUID) error
}

func (m *mockMedicationRepository) Create(ctx context.Context, med *domain.Medication) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, med)
	}
	med.ID = uuid.New()
	return nil
}

func (m *mockMedicationRepository) Update(ctx context.Context, med *domain.Medication) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, med)
	}
	return nil
}

func (m *mockMedicationRepository) GetByID(ctx context.Context, userID uint, id uuid.UUID) (*domain.Medication, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	return nil, errors.New("GetByIDFunc not implemented in mock")
}

func (m *mockMedicationRepository) ListActive(ctx context.Context, userID uint) ([]domain.Medication, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockMedicationRepository) ListAll(ctx context.Context, userID uint) ([]domain.Medication, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockMedicationRepository) Deactivate(ctx context.Context, userID uint, id uuid.UUID) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, userID, id)
	}
	return nil
}

// mockLogRepository behaves like the unique (medication_id, scheduled_time) index
type mockLogRepository struct {
	mu          sync.Mutex
	logs        []domain.MedicationLog
	listErr     error
	listCalls   int
	upsertCalls int
}

func (m *mockLogRepository) ListBetween(ctx context.Context, userID uint, from, to time.Time) ([]domain.MedicationLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.MedicationLog
	for _, l := range m.logs {
		if !l.ScheduledTime.Before(from) && l.ScheduledTime.Before(to) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockLogRepository) Upsert(ctx context.Context, log *domain.MedicationLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsertCalls++
	for i, l := range m.logs {
		if l.MedicationID == log.MedicationID && l.ScheduledTime.Equal(log.ScheduledTime) {
			log.ID = l.ID
			m.logs[i] = *log
			return nil
		}
	}
	log.ID = uuid.New()
	m.logs = append(m.logs, *log)
	return nil
}

type mockSettingsRepository struct {
	byUser  map[uint]domain.UserSettings
	saves   int
	listErr error
}

func newMockSettingsRepository(settings ...domain.UserSettings) *mockSettingsRepository {
	m := &mockSettingsRepository{byUser: make(map[uint]domain.UserSettings)}
	for _, s := range settings {
		m.byUser[s.UserID] = s
	}
	return m
}

func (m *mockSettingsRepository) Get(ctx context.Context, userID uint) (*domain.UserSettings, error) {
	s, ok := m.byUser[userID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *mockSettingsRepository) Save(ctx context.Context, settings *domain.UserSettings) error {
	m.saves++
	m.byUser[settings.UserID] = *settings
	return nil
}

func (m *mockSettingsRepository) ListNotifiable(ctx context.Context) ([]domain.UserSettings, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.UserSettings
	for _, s := range m.byUser {
		if s.NotificationsEnabled {
			out = append(out, s)
		}
	}
	return out, nil
}

type sentDose struct {
	user    domain.User
	dose    schedule.ResolvedDose
	overdue bool
}

type mockNotifier struct {
	doses    []sentDose
	readings []schedule.ReadingReminder
	err      error
}

func (m *mockNotifier) NotifyDose(ctx context.Context, user domain.User, dose schedule.ResolvedDose, overdue bool) error {
	if m.err != nil {
		return m.err
	}
	m.doses = append(m.doses, sentDose{user: user, dose: dose, overdue: overdue})
	return nil
}

func (m *mockNotifier) NotifyReading(ctx context.Context, user domain.User, reminder schedule.ReadingReminder) error {
	if m.err != nil {
		return m.err
	}
	m.readings = append(m.readings, reminder)
	return nil
}

// mockReminderStore ignores TTLs
type mockReminderStore struct {
	sent      map[string]bool
	dismissed map[string]bool
	err       error
}

func newMockReminderStore() *mockReminderStore {
	return &mockReminderStore{sent: make(map[string]bool), dismissed: make(map[string]bool)}
}

func (m *mockReminderStore) MarkSent(ctx context.Context, userID int64, key string, ttl time.Duration) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if m.sent[key] {
		return false, nil
	}
	m.sent[key] = true
	return true, nil
}

func (m *mockReminderStore) Dismiss(ctx context.Context, userID int64, key string, ttl time.Duration) error {
	m.dismissed[key] = true
	return m.err
}

func (m *mockReminderStore) IsDismissed(ctx context.Context, userID int64, key string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.dismissed[key], nil
}
