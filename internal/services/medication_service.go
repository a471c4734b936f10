package services

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
	"github.com/vladimiradmaev/health-tracker/internal/logger"
	"github.com/vladimiradmaev/health-tracker/internal/schedule"
	"github.com/vladimiradmaev/health-tracker/internal/utils"
)

const (
	DefaultAdherenceDays = 7
	MaxAdherenceDays     = 90
)

type MedicationInput struct {
	Name      string
	Dosage    string
	Frequency domain.Frequency
	Times     []string // empty means the frequency defaults
	StartDate time.Time
	EndDate   *time.Time
	Notes     *string
	Color     string // empty means the next free palette color
}

type MedicationService struct {
	meds domain.MedicationRepository
	logs domain.MedicationLogRepository
	now  func() time.Time
}

func NewMedicationService(meds domain.MedicationRepository, logs domain.MedicationLogRepository) *MedicationService {
	return &MedicationService{
		meds: meds,
		logs: logs,
		now:  time.Now,
	}
}

func (s *MedicationService) Create(ctx context.Context, userID uint, in MedicationInput) (*domain.Medication, error) {
	med := &domain.Medication{
		UserID:   userID,
		IsActive: true,
	}
	applyInput(med, in)

	if med.Color == "" {
		existing, err := s.meds.ListAll(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list medications: %w", err)
		}
		used := make([]string, 0, len(existing))
		for _, m := range existing {
			if m.IsActive {
				used = append(used, m.Color)
			}
		}
		med.Color = schedule.NextColor(used)
	}

	if err := med.Validate(); err != nil {
		return nil, err
	}
	if err := s.meds.Create(ctx, med); err != nil {
		return nil, fmt.Errorf("failed to create medication: %w", err)
	}

	logger.Info("Medication created", "user_id", userID, "medication_id", med.ID, "frequency", med.Frequency)
	return med, nil
}

// Update replaces the definition of an existing medication. An empty color
// keeps the current one.
func (s *MedicationService) Update(ctx context.Context, userID uint, id uuid.UUID, in MedicationInput) (*domain.Medication, error) {
	med, err := s.meds.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	color := med.Color
	applyInput(med, in)
	if med.Color == "" {
		med.Color = color
	}

	if err := med.Validate(); err != nil {
		return nil, err
	}
	if err := s.meds.Update(ctx, med); err != nil {
		return nil, fmt.Errorf("failed to update medication: %w", err)
	}
	return med, nil
}

func applyInput(med *domain.Medication, in MedicationInput) {
	med.Name = in.Name
	med.Dosage = in.Dosage
	med.Frequency = in.Frequency
	times := in.Times
	if len(times) == 0 {
		times = schedule.DefaultTimes(in.Frequency)
	}
	med.Times = pq.StringArray(times)
	med.StartDate = in.StartDate
	med.EndDate = in.EndDate
	med.Notes = in.Notes
	med.Color = in.Color
}

// Deactivate soft-deletes a medication so its logs stay valid
func (s *MedicationService) Deactivate(ctx context.Context, userID uint, id uuid.UUID) error {
	if err := s.meds.Deactivate(ctx, userID, id); err != nil {
		return err
	}
	logger.Info("Medication deactivated", "user_id", userID, "medication_id", id)
	return nil
}

func (s *MedicationService) ListActive(ctx context.Context, userID uint) ([]domain.Medication, error) {
	meds, err := s.meds.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	return meds, nil
}

// DaySchedule resolves the doses of every active medication on date's
// calendar day in date's location. When the logs cannot be fetched the
// schedule is still returned, with every dose pending, alongside the error.
func (s *MedicationService) DaySchedule(ctx context.Context, userID uint, date time.Time) ([]schedule.ResolvedDose, error) {
	meds, err := s.meds.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	instants := schedule.ExpandDay(meds, date)
	if len(instants) == 0 {
		return nil, nil
	}

	start, end := utils.DayBounds(date)
	logs, err := s.logs.ListBetween(ctx, userID, start, end)
	if err != nil {
		logger.Warn("Dose logs unavailable, showing schedule as pending", "user_id", userID, "error", err)
		return schedule.Resolve(instants, nil), fmt.Errorf("failed to get dose logs: %w", err)
	}
	return schedule.Resolve(instants, logs), nil
}

// MarkDose records a dose as taken or skipped. scheduled must be one of the
// instants the medication's schedule produces on that day, in the user's
// location. Marking again replaces the previous status.
func (s *MedicationService) MarkDose(ctx context.Context, userID uint, medicationID uuid.UUID, scheduled time.Time, status domain.DoseStatus, notes *string) (*domain.MedicationLog, error) {
	if status != domain.DoseStatusTaken && status != domain.DoseStatusSkipped {
		return nil, apperrors.ErrInvalidDoseStatus
	}
	if notes != nil && utf8.RuneCountInString(*notes) > domain.MaxMedicationLogNotesSize {
		return nil, apperrors.NewValidationError(fmt.Sprintf("notes must be %d characters or less", domain.MaxMedicationLogNotesSize))
	}

	med, err := s.meds.GetByID(ctx, userID, medicationID)
	if err != nil {
		return nil, err
	}
	if !schedule.IsScheduled(*med, scheduled) {
		return nil, apperrors.ErrDoseNotScheduled
	}

	log := &domain.MedicationLog{
		UserID:        userID,
		MedicationID:  medicationID,
		ScheduledTime: scheduled,
		Status:        status,
		Notes:         notes,
	}
	if status == domain.DoseStatusTaken {
		takenAt := s.now()
		log.TakenAt = &takenAt
	}

	if err := s.logs.Upsert(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to save dose log: %w", err)
	}

	logger.Info("Dose marked",
		"user_id", userID,
		"medication_id", medicationID,
		"scheduled_time", scheduled,
		"status", status)
	return log, nil
}

// Adherence summarizes each active medication over the trailing days
// calendar days ending at now.
func (s *MedicationService) Adherence(ctx context.Context, userID uint, days int, now time.Time) ([]schedule.AdherenceSummary, error) {
	if days <= 0 {
		days = DefaultAdherenceDays
	}
	if days > MaxAdherenceDays {
		days = MaxAdherenceDays
	}

	meds, err := s.meds.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	if len(meds) == 0 {
		return nil, nil
	}

	from := utils.StartOfDay(now).AddDate(0, 0, -(days - 1))
	_, end := utils.DayBounds(now)
	logs, err := s.logs.ListBetween(ctx, userID, from, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get dose logs: %w", err)
	}

	summaries := make([]schedule.AdherenceSummary, 0, len(meds))
	for _, med := range meds {
		summaries = append(summaries, schedule.Adherence(med, logs, from, now))
	}
	return summaries, nil
}
