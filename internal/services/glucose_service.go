package services

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/vladimiradmaev/health-tracker/internal/classify"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
)

type GlucoseInput struct {
	Value           float64
	MeasurementType domain.MeasurementType
	MeasuredAt      time.Time // zero means now
	Notes           *string
}

// GlucoseRecord is a stored reading with its classification
type GlucoseRecord struct {
	domain.GlucoseReading
	Classification classify.Classification
}

type GlucoseService struct {
	repo domain.ReadingRepository
	now  func() time.Time
}

func NewGlucoseService(repo domain.ReadingRepository) *GlucoseService {
	return &GlucoseService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *GlucoseService) AddRecord(ctx context.Context, userID uint, in GlucoseInput) (*GlucoseRecord, error) {
	glucose, err := classify.NewGlucose(in.Value, in.MeasurementType)
	if err != nil {
		return nil, err
	}
	if err := validateNotes(in.Notes); err != nil {
		return nil, err
	}

	measuredAt := in.MeasuredAt
	if measuredAt.IsZero() {
		measuredAt = s.now()
	}

	reading := &domain.GlucoseReading{
		UserID:          userID,
		Value:           glucose.Value(),
		MeasurementType: glucose.MeasurementType(),
		MeasuredAt:      measuredAt,
		Notes:           in.Notes,
	}
	if err := s.repo.CreateGlucose(ctx, reading); err != nil {
		return nil, fmt.Errorf("failed to create glucose record: %w", err)
	}

	return &GlucoseRecord{GlucoseReading: *reading, Classification: glucose.Classify()}, nil
}

// GetUserRecords returns the readings of the last days days, newest first
func (s *GlucoseService) GetUserRecords(ctx context.Context, userID uint, days int) ([]GlucoseRecord, error) {
	readings, err := s.repo.ListGlucose(ctx, userID, s.now().AddDate(0, 0, -historyDays(days)))
	if err != nil {
		return nil, fmt.Errorf("failed to get user glucose records: %w", err)
	}

	records := make([]GlucoseRecord, 0, len(readings))
	for _, r := range readings {
		records = append(records, GlucoseRecord{
			GlucoseReading: r,
			Classification: classify.ClassifyGlucose(r.Value, r.MeasurementType),
		})
	}
	return records, nil
}

func (s *GlucoseService) DeleteRecord(ctx context.Context, userID uint, id uuid.UUID) error {
	return s.repo.DeleteGlucose(ctx, userID, id)
}

// historyDays clamps a history window to 1..365 days, defaulting to 30
func historyDays(days int) int {
	switch {
	case days <= 0:
		return 30
	case days > 365:
		return 365
	default:
		return days
	}
}

func validateNotes(notes *string) error {
	if notes != nil && utf8.RuneCountInString(*notes) > domain.MaxNotesLength {
		return apperrors.NewValidationError(fmt.Sprintf("notes must be %d characters or less", domain.MaxNotesLength))
	}
	return nil
}
