package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// User represents a telegram user in the system
type User struct {
	ID         uint `gorm:"primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	TelegramID int64 `gorm:"uniqueIndex"`
	ChatID     int64
	Username   string
	FirstName  string
	LastName   string
}

type Arm string

const (
	ArmLeft  Arm = "left"
	ArmRight Arm = "right"
)

type Position string

const (
	PositionSitting  Position = "sitting"
	PositionStanding Position = "standing"
	PositionLying    Position = "lying"
)

// BloodPressureReading represents a single blood pressure measurement
type BloodPressureReading struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt  time.Time
	UserID     uint `gorm:"index:idx_bp_user_measured,priority:1;not null"`
	Systolic   int  `gorm:"not null"`
	Diastolic  int  `gorm:"not null"`
	Pulse      *int
	Arm        Arm       `gorm:"default:left"`
	Position   Position  `gorm:"default:sitting"`
	MeasuredAt time.Time `gorm:"index:idx_bp_user_measured,priority:2;not null"`
	Notes      *string
}

func (r *BloodPressureReading) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type MeasurementType string

const (
	MeasurementFasting  MeasurementType = "fasting"
	MeasurementPreMeal  MeasurementType = "pre_meal"
	MeasurementPostMeal MeasurementType = "post_meal"
	MeasurementBedtime  MeasurementType = "bedtime"
	MeasurementRandom   MeasurementType = "random"
)

// MeasurementTypes lists glucose measurement contexts in display order.
var MeasurementTypes = []MeasurementType{
	MeasurementFasting,
	MeasurementPreMeal,
	MeasurementPostMeal,
	MeasurementBedtime,
	MeasurementRandom,
}

// Valid reports whether t is a known measurement type.
func (t MeasurementType) Valid() bool {
	for _, mt := range MeasurementTypes {
		if mt == t {
			return true
		}
	}
	return false
}

// Label returns the display name of a measurement type.
func (t MeasurementType) Label() string {
	switch t {
	case MeasurementFasting:
		return "Fasting"
	case MeasurementPreMeal:
		return "Pre-Meal"
	case MeasurementPostMeal:
		return "Post-Meal"
	case MeasurementBedtime:
		return "Bedtime"
	case MeasurementRandom:
		return "Random"
	default:
		return string(t)
	}
}

// GlucoseReading represents a blood glucose measurement in mg/dL
type GlucoseReading struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt       time.Time
	UserID          uint            `gorm:"index:idx_glucose_user_measured,priority:1;not null"`
	Value           float64         `gorm:"not null"`
	MeasurementType MeasurementType `gorm:"not null"`
	MeasuredAt      time.Time       `gorm:"index:idx_glucose_user_measured,priority:2;not null"`
	Notes           *string
}

func (r *GlucoseReading) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type Frequency string

const (
	FrequencyOnceDaily       Frequency = "once_daily"
	FrequencyTwiceDaily      Frequency = "twice_daily"
	FrequencyThreeTimesDaily Frequency = "three_times_daily"
	FrequencyFourTimesDaily  Frequency = "four_times_daily"
	FrequencyAsNeeded        Frequency = "as_needed"
	FrequencyCustom          Frequency = "custom"
)

// Frequencies lists the supported medication frequencies.
var Frequencies = []Frequency{
	FrequencyOnceDaily,
	FrequencyTwiceDaily,
	FrequencyThreeTimesDaily,
	FrequencyFourTimesDaily,
	FrequencyAsNeeded,
	FrequencyCustom,
}

func (f Frequency) Valid() bool {
	for _, fr := range Frequencies {
		if fr == f {
			return true
		}
	}
	return false
}

// Medication is a recurring treatment definition.
// Times are wall-clock HH:MM values interpreted in the user's timezone.
// StartDate and EndDate are calendar dates, EndDate is inclusive.
type Medication struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint           `gorm:"index;not null"`
	Name      string         `gorm:"not null"`
	Dosage    string         `gorm:"not null"`
	Frequency Frequency      `gorm:"not null"`
	Times     pq.StringArray `gorm:"type:text[]"`
	StartDate time.Time      `gorm:"type:date;not null"`
	EndDate   *time.Time     `gorm:"type:date"`
	Notes     *string
	Color     string `gorm:"default:'#6366f1'"`
	IsActive  bool   `gorm:"default:true;index"`
}

func (m *Medication) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type DoseStatus string

const (
	DoseStatusPending DoseStatus = "pending"
	DoseStatusTaken   DoseStatus = "taken"
	DoseStatusMissed  DoseStatus = "missed"
	DoseStatusSkipped DoseStatus = "skipped"
)

func (s DoseStatus) Valid() bool {
	switch s {
	case DoseStatusPending, DoseStatusTaken, DoseStatusMissed, DoseStatusSkipped:
		return true
	}
	return false
}

// MedicationLog records what happened to one scheduled dose.
// There is at most one log per (MedicationID, ScheduledTime).
type MedicationLog struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	UserID        uint      `gorm:"index;not null"`
	MedicationID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_medication_log_slot,priority:1"`
	ScheduledTime time.Time `gorm:"not null;uniqueIndex:idx_medication_log_slot,priority:2"`
	TakenAt       *time.Time
	Status        DoseStatus `gorm:"not null;default:pending"`
	Notes         *string
}

func (l *MedicationLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// ReadingKind distinguishes the two measurement reminder streams.
type ReadingKind string

const (
	ReadingBloodPressure ReadingKind = "bp"
	ReadingGlucose       ReadingKind = "glucose"
)

// UserSettings holds reminder preferences for a user
type UserSettings struct {
	ID                         uint `gorm:"primaryKey"`
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
	UserID                     uint `gorm:"uniqueIndex;not null"`
	User                       User
	Timezone                   string `gorm:"default:'Local'"`
	GlucoseMonitoringEnabled   bool
	MedicationRemindersEnabled bool
	BPReminderEnabled          bool
	BPReminderTimes            pq.StringArray `gorm:"type:text[]"`
	GlucoseReminderEnabled     bool
	GlucoseReminderTimes       pq.StringArray `gorm:"type:text[]"`
	NotificationsEnabled       bool
	ReminderLeadMinutes        int `gorm:"default:15"`
}

// DefaultSettings returns the settings a new user starts with.
func DefaultSettings(userID uint, timezone string) UserSettings {
	return UserSettings{
		UserID:                     userID,
		Timezone:                   timezone,
		GlucoseMonitoringEnabled:   false,
		MedicationRemindersEnabled: true,
		BPReminderEnabled:          true,
		BPReminderTimes:            pq.StringArray{"09:00", "21:00"},
		GlucoseReminderEnabled:     true,
		GlucoseReminderTimes:       pq.StringArray{"08:00", "12:00", "18:00"},
		NotificationsEnabled:       true,
		ReminderLeadMinutes:        15,
	}
}

// ReadingTimes returns the reminder targets for kind, or nil if that
// reminder stream is switched off.
func (s *UserSettings) ReadingTimes(kind ReadingKind) []string {
	switch kind {
	case ReadingBloodPressure:
		if s.BPReminderEnabled {
			return s.BPReminderTimes
		}
	case ReadingGlucose:
		if s.GlucoseMonitoringEnabled && s.GlucoseReminderEnabled {
			return s.GlucoseReminderTimes
		}
	}
	return nil
}
