package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
)

var testLoc = time.FixedZone("EST", -5*3600)

func local(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, testLoc)
}

func storedMedication(freq domain.Frequency, times ...string) domain.Medication {
	return domain.Medication{
		ID:        uuid.New(),
		UserID:    1,
		Name:      "Metformin",
		Dosage:    "500 mg",
		Frequency: freq,
		Times:     pq.StringArray(times),
		StartDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		Color:     "#10b981",
		IsActive:  true,
	}
}

func newMedicationFixture(meds ...domain.Medication) (*MedicationService, *mockLogRepository) {
	repo := &mockMedicationRepository{
		ListActiveFunc: func(ctx context.Context, userID uint) ([]domain.Medication, error) {
			return meds, nil
		},
		ListAllFunc: func(ctx context.Context, userID uint) ([]domain.Medication, error) {
			return meds, nil
		},
		GetByIDFunc: func(ctx context.Context, userID uint, id uuid.UUID) (*domain.Medication, error) {
			for _, m := range meds {
				if m.ID == id {
					m := m
					return &m, nil
				}
			}
			return nil, apperrors.ErrMedicationNotFound
		},
	}
	logs := &mockLogRepository{}
	svc := NewMedicationService(repo, logs)
	svc.now = func() time.Time { return local(2026, 5, 4, 8, 3) }
	return svc, logs
}

func TestCreateFillsDefaults(t *testing.T) {
	existing := storedMedication(domain.FrequencyOnceDaily, "08:00")
	existing.Color = "#6366f1"
	svc, _ := newMedicationFixture(existing)

	med, err := svc.Create(context.Background(), 1, MedicationInput{
		Name:      "Lisinopril",
		Dosage:    "10 mg",
		Frequency: domain.FrequencyTwiceDaily,
		StartDate: local(2026, 5, 4, 0, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, pq.StringArray{"08:00", "20:00"}, med.Times)
	assert.Equal(t, "#10b981", med.Color)
	assert.True(t, med.IsActive)
	assert.NotEqual(t, uuid.Nil, med.ID)
}

func TestCreateRejectsInvalidDefinition(t *testing.T) {
	svc, _ := newMedicationFixture()

	_, err := svc.Create(context.Background(), 1, MedicationInput{
		Name:      "Insulin",
		Dosage:    "4 units",
		Frequency: domain.FrequencyCustom,
		StartDate: local(2026, 5, 4, 0, 0),
	})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestUpdateKeepsColor(t *testing.T) {
	med := storedMedication(domain.FrequencyOnceDaily, "08:00")
	svc, _ := newMedicationFixture(med)

	updated, err := svc.Update(context.Background(), 1, med.ID, MedicationInput{
		Name:      med.Name,
		Dosage:    "1000 mg",
		Frequency: domain.FrequencyCustom,
		Times:     []string{"07:30", "19:30"},
		StartDate: med.StartDate,
	})
	require.NoError(t, err)
	assert.Equal(t, "#10b981", updated.Color)
	assert.Equal(t, "1000 mg", updated.Dosage)
	assert.Equal(t, pq.StringArray{"07:30", "19:30"}, updated.Times)
}

func TestDayScheduleResolvesAgainstLogs(t *testing.T) {
	med := storedMedication(domain.FrequencyTwiceDaily, "08:00", "20:00")
	svc, logs := newMedicationFixture(med)
	logs.logs = []domain.MedicationLog{{
		ID:            uuid.New(),
		MedicationID:  med.ID,
		ScheduledTime: local(2026, 5, 4, 8, 0).UTC(),
		Status:        domain.DoseStatusTaken,
	}}

	got, err := svc.DaySchedule(context.Background(), 1, local(2026, 5, 4, 12, 0))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.DoseStatusTaken, got[0].Status)
	assert.Equal(t, domain.DoseStatusPending, got[1].Status)
	assert.Equal(t, 1, logs.listCalls)
}

func TestDayScheduleFailsTowardPending(t *testing.T) {
	med := storedMedication(domain.FrequencyTwiceDaily, "08:00", "20:00")
	svc, logs := newMedicationFixture(med)
	logs.listErr = apperrors.NewDatabaseError(errors.New("connection reset"))

	got, err := svc.DaySchedule(context.Background(), 1, local(2026, 5, 4, 12, 0))
	assert.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDatabase))
	require.Len(t, got, 2)
	for _, d := range got {
		assert.Equal(t, domain.DoseStatusPending, d.Status)
	}
}

func TestMarkDoseTakenThenSkippedUpserts(t *testing.T) {
	med := storedMedication(domain.FrequencyOnceDaily, "08:00")
	svc, logs := newMedicationFixture(med)
	ctx := context.Background()
	dose := local(2026, 5, 4, 8, 0)

	first, err := svc.MarkDose(ctx, 1, med.ID, dose, domain.DoseStatusTaken, nil)
	require.NoError(t, err)
	require.NotNil(t, first.TakenAt)
	assert.Equal(t, local(2026, 5, 4, 8, 3), *first.TakenAt)

	second, err := svc.MarkDose(ctx, 1, med.ID, dose, domain.DoseStatusSkipped, nil)
	require.NoError(t, err)
	assert.Nil(t, second.TakenAt)
	assert.Equal(t, first.ID, second.ID)

	require.Len(t, logs.logs, 1)
	assert.Equal(t, domain.DoseStatusSkipped, logs.logs[0].Status)
}

func TestMarkDoseRejections(t *testing.T) {
	med := storedMedication(domain.FrequencyOnceDaily, "08:00")
	svc, logs := newMedicationFixture(med)
	ctx := context.Background()
	dose := local(2026, 5, 4, 8, 0)

	_, err := svc.MarkDose(ctx, 1, med.ID, dose, domain.DoseStatusPending, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDoseStatus)

	_, err = svc.MarkDose(ctx, 1, med.ID, dose, domain.DoseStatusMissed, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDoseStatus)

	_, err = svc.MarkDose(ctx, 1, med.ID, dose.Add(time.Minute), domain.DoseStatusTaken, nil)
	assert.ErrorIs(t, err, apperrors.ErrDoseNotScheduled)

	_, err = svc.MarkDose(ctx, 1, med.ID, local(2026, 4, 30, 8, 0), domain.DoseStatusTaken, nil)
	assert.ErrorIs(t, err, apperrors.ErrDoseNotScheduled)

	_, err = svc.MarkDose(ctx, 1, uuid.New(), dose, domain.DoseStatusTaken, nil)
	assert.ErrorIs(t, err, apperrors.ErrMedicationNotFound)

	assert.Zero(t, logs.upsertCalls)
}

func TestAdherenceOverTrailingWindow(t *testing.T) {
	med := storedMedication(domain.FrequencyOnceDaily, "08:00")
	svc, logs := newMedicationFixture(med)
	for day := 1; day <= 3; day++ {
		logs.logs = append(logs.logs, domain.MedicationLog{
			ID:            uuid.New(),
			MedicationID:  med.ID,
			ScheduledTime: local(2026, 5, day, 8, 0),
			Status:        domain.DoseStatusTaken,
		})
	}

	got, err := svc.Adherence(context.Background(), 1, 7, local(2026, 5, 4, 9, 0))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].TotalScheduled)
	assert.Equal(t, 3, got[0].Taken)
	assert.Equal(t, 1, got[0].Missed)
	assert.Equal(t, 75, got[0].Percentage)
}
