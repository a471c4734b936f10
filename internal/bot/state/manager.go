package state

import (
	"context"
	"sync"
	"time"
)

// User states constants
const (
	None                       = "none"
	WaitingForBloodPressure    = "waiting_for_blood_pressure"
	WaitingForGlucoseValue     = "waiting_for_glucose_value"
	WaitingForGlucoseType      = "waiting_for_glucose_type"
	WaitingForMedicationName   = "waiting_for_medication_name"
	WaitingForMedicationDosage = "waiting_for_medication_dosage"
	WaitingForMedicationFreq   = "waiting_for_medication_frequency"
	WaitingForMedicationTimes  = "waiting_for_medication_times"
	WaitingForBPReminderTimes  = "waiting_for_bp_reminder_times"
	WaitingForGlucoseReminder  = "waiting_for_glucose_reminder_times"
	WaitingForTimezone         = "waiting_for_timezone"
)

// StateManager keeps the dialog state of each telegram user
type StateManager interface {
	SetUserState(userID int64, state string)
	GetUserState(userID int64) string
	ClearUserState(userID int64)
	SetTempData(userID int64, key, value string)
	GetTempData(userID int64, key string) (string, bool)
	ClearTempData(userID int64)
}

// ReminderStore remembers delivered and dismissed reminders per user
type ReminderStore interface {
	MarkSent(ctx context.Context, userID int64, key string, ttl time.Duration) (bool, error)
	Dismiss(ctx context.Context, userID int64, key string, ttl time.Duration) error
	IsDismissed(ctx context.Context, userID int64, key string) (bool, error)
}

// Store is everything the bot and the reminder loop keep outside the database
type Store interface {
	StateManager
	ReminderStore
}

var (
	_ Store = (*Manager)(nil)
	_ Store = (*RedisManager)(nil)
)

// Manager manages user states and temporary data in memory
type Manager struct {
	userStates map[int64]string
	tempData   map[int64]map[string]string
	sent       map[string]time.Time
	dismissed  map[string]time.Time
	now        func() time.Time
	mu         sync.RWMutex
}

// NewManager creates a new state manager
func NewManager() *Manager {
	return &Manager{
		userStates: make(map[int64]string),
		tempData:   make(map[int64]map[string]string),
		sent:       make(map[string]time.Time),
		dismissed:  make(map[string]time.Time),
		now:        time.Now,
	}
}

// SetUserState sets the state for a user
func (m *Manager) SetUserState(userID int64, state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userStates[userID] = state
}

// GetUserState gets the state for a user
func (m *Manager) GetUserState(userID int64) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, exists := m.userStates[userID]
	if !exists {
		return None
	}
	return state
}

// ClearUserState clears the state for a user
func (m *Manager) ClearUserState(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.userStates, userID)
}

// SetTempData sets temporary data for a user
func (m *Manager) SetTempData(userID int64, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tempData[userID] == nil {
		m.tempData[userID] = make(map[string]string)
	}
	m.tempData[userID][key] = value
}

// GetTempData gets temporary data for a user
func (m *Manager) GetTempData(userID int64, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	userData, exists := m.tempData[userID]
	if !exists {
		return "", false
	}
	value, exists := userData[key]
	return value, exists
}

// ClearTempData clears all temporary data for a user
func (m *Manager) ClearTempData(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tempData, userID)
}

// MarkSent reports true the first time key is seen for userID until ttl elapses
func (m *Manager) MarkSent(ctx context.Context, userID int64, key string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.expire(now)

	k := reminderKey(userID, "sent", key)
	if _, exists := m.sent[k]; exists {
		return false, nil
	}
	m.sent[k] = now.Add(ttl)
	return true, nil
}

// Dismiss hides the reminder key for ttl
func (m *Manager) Dismiss(ctx context.Context, userID int64, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dismissed[reminderKey(userID, "dismissed", key)] = m.now().Add(ttl)
	return nil
}

func (m *Manager) IsDismissed(ctx context.Context, userID int64, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expire(m.now())
	_, exists := m.dismissed[reminderKey(userID, "dismissed", key)]
	return exists, nil
}

// expire drops entries past their deadline. Callers hold the lock.
func (m *Manager) expire(now time.Time) {
	for k, deadline := range m.sent {
		if !now.Before(deadline) {
			delete(m.sent, k)
		}
	}
	for k, deadline := range m.dismissed {
		if !now.Before(deadline) {
			delete(m.dismissed, k)
		}
	}
}
