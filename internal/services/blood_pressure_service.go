package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vladimiradmaev/health-tracker/internal/classify"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
)

type BloodPressureInput struct {
	Systolic   int
	Diastolic  int
	Pulse      *int
	Arm        domain.Arm      // defaults to left
	Position   domain.Position // defaults to sitting
	MeasuredAt time.Time       // zero means now
	Notes      *string
}

// BloodPressureRecord is a stored reading with its classification
type BloodPressureRecord struct {
	domain.BloodPressureReading
	Classification classify.Classification
}

type BloodPressureService struct {
	repo domain.ReadingRepository
	now  func() time.Time
}

func NewBloodPressureService(repo domain.ReadingRepository) *BloodPressureService {
	return &BloodPressureService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *BloodPressureService) AddRecord(ctx context.Context, userID uint, in BloodPressureInput) (*BloodPressureRecord, error) {
	bp, err := classify.NewBloodPressure(in.Systolic, in.Diastolic, in.Pulse)
	if err != nil {
		return nil, err
	}

	arm := in.Arm
	if arm == "" {
		arm = domain.ArmLeft
	}
	if arm != domain.ArmLeft && arm != domain.ArmRight {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown arm %q", arm))
	}
	position := in.Position
	if position == "" {
		position = domain.PositionSitting
	}
	switch position {
	case domain.PositionSitting, domain.PositionStanding, domain.PositionLying:
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown position %q", position))
	}
	if err := validateNotes(in.Notes); err != nil {
		return nil, err
	}

	measuredAt := in.MeasuredAt
	if measuredAt.IsZero() {
		measuredAt = s.now()
	}

	reading := &domain.BloodPressureReading{
		UserID:     userID,
		Systolic:   bp.Systolic(),
		Diastolic:  bp.Diastolic(),
		Pulse:      bp.Pulse(),
		Arm:        arm,
		Position:   position,
		MeasuredAt: measuredAt,
		Notes:      in.Notes,
	}
	if err := s.repo.CreateBloodPressure(ctx, reading); err != nil {
		return nil, fmt.Errorf("failed to create blood pressure record: %w", err)
	}

	return &BloodPressureRecord{BloodPressureReading: *reading, Classification: bp.Classify()}, nil
}

// GetUserRecords returns the readings of the last days days, newest first
func (s *BloodPressureService) GetUserRecords(ctx context.Context, userID uint, days int) ([]BloodPressureRecord, error) {
	readings, err := s.repo.ListBloodPressure(ctx, userID, s.now().AddDate(0, 0, -historyDays(days)))
	if err != nil {
		return nil, fmt.Errorf("failed to get user blood pressure records: %w", err)
	}

	records := make([]BloodPressureRecord, 0, len(readings))
	for _, r := range readings {
		records = append(records, BloodPressureRecord{
			BloodPressureReading: r,
			Classification:       classify.ClassifyBloodPressure(r.Systolic, r.Diastolic),
		})
	}
	return records, nil
}

func (s *BloodPressureService) DeleteRecord(ctx context.Context, userID uint, id uuid.UUID) error {
	return s.repo.DeleteBloodPressure(ctx, userID, id)
}
