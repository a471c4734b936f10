package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
)

func validMedication() Medication {
	return Medication{
		Name:      "Lisinopril",
		Dosage:    "10 mg",
		Frequency: FrequencyOnceDaily,
		Times:     []string{"08:00"},
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Color:     "#6366f1",
		IsActive:  true,
	}
}

func TestMedicationValidate(t *testing.T) {
	before := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	longNotes := strings.Repeat("n", MaxNotesLength+1)

	tests := []struct {
		name    string
		mutate  func(m *Medication)
		wantErr bool
	}{
		{"valid", func(m *Medication) {}, false},
		{"empty name", func(m *Medication) { m.Name = "" }, true},
		{"long name", func(m *Medication) { m.Name = strings.Repeat("x", 101) }, true},
		{"empty dosage", func(m *Medication) { m.Dosage = "" }, true},
		{"unknown frequency", func(m *Medication) { m.Frequency = "hourly" }, true},
		{"bad time", func(m *Medication) { m.Times = []string{"8am"} }, true},
		{"too many times", func(m *Medication) {
			m.Frequency = FrequencyCustom
			m.Times = []string{"00:00", "01:00", "02:00", "03:00", "04:00", "05:00", "06:00", "07:00", "08:00", "09:00", "10:00"}
		}, true},
		{"custom without times", func(m *Medication) { m.Frequency = FrequencyCustom; m.Times = nil }, true},
		{"custom with times", func(m *Medication) { m.Frequency = FrequencyCustom; m.Times = []string{"07:15"} }, false},
		{"as needed with times", func(m *Medication) { m.Frequency = FrequencyAsNeeded }, true},
		{"as needed without times", func(m *Medication) { m.Frequency = FrequencyAsNeeded; m.Times = nil }, false},
		{"bad color", func(m *Medication) { m.Color = "red" }, true},
		{"missing start", func(m *Medication) { m.StartDate = time.Time{} }, true},
		{"end before start", func(m *Medication) { m.EndDate = &before }, true},
		{"end equals start", func(m *Medication) { end := m.StartDate; m.EndDate = &end }, false},
		{"long notes", func(m *Medication) { m.Notes = &longNotes }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMedication()
			tt.mutate(&m)
			err := m.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var appErr *apperrors.AppError
			if assert.True(t, errors.As(err, &appErr)) {
				assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
			}
		})
	}
}

func TestMeasurementTypeValid(t *testing.T) {
	for _, mt := range MeasurementTypes {
		assert.True(t, mt.Valid(), mt)
	}
	assert.False(t, MeasurementType("after_gym").Valid())
}

func TestReadingTimesRespectsToggles(t *testing.T) {
	s := DefaultSettings(1, "UTC")

	assert.Equal(t, []string{"09:00", "21:00"}, []string(s.ReadingTimes(ReadingBloodPressure)))
	assert.Nil(t, s.ReadingTimes(ReadingGlucose), "glucose monitoring is off by default")

	s.GlucoseMonitoringEnabled = true
	assert.Len(t, s.ReadingTimes(ReadingGlucose), 3)

	s.BPReminderEnabled = false
	assert.Nil(t, s.ReadingTimes(ReadingBloodPressure))
}
