package menus

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/vladimiradmaev/health-tracker/internal/classify"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
	"github.com/vladimiradmaev/health-tracker/internal/schedule"
	"github.com/vladimiradmaev/health-tracker/internal/services"
)

func resolved(hh int, name string, status domain.DoseStatus) schedule.ResolvedDose {
	return schedule.ResolvedDose{
		DoseInstant: schedule.DoseInstant{
			MedicationID:  uuid.New(),
			Name:          name,
			Dosage:        "10mg",
			ScheduledTime: time.Date(2026, 5, 4, hh, 0, 0, 0, time.UTC),
		},
		Status: status,
	}
}

func TestTodayText(t *testing.T) {
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	doses := []schedule.ResolvedDose{
		resolved(8, "Lisinopril", domain.DoseStatusTaken),
		resolved(9, "Aspirin", domain.DoseStatusPending),
		resolved(20, "Lisinopril", domain.DoseStatusPending),
	}

	text := TodayText(doses, now)
	assert.Contains(t, text, "✅ 08:00 Lisinopril 10mg")
	assert.Contains(t, text, "⚠️ 09:00 Aspirin 10mg")
	assert.Contains(t, text, "⏳ 20:00 Lisinopril 10mg")
	assert.Contains(t, text, "Taken 1 of 3, overdue 1")

	assert.Equal(t, "📅 No doses scheduled today.", TodayText(nil, now))
}

func TestAdherenceText(t *testing.T) {
	text := AdherenceText([]schedule.AdherenceSummary{
		{Name: "Metformin", TotalScheduled: 14, Taken: 13, Missed: 1, Percentage: 93},
	}, 7)
	assert.Contains(t, text, "last 7 days")
	assert.Contains(t, text, "Metformin: 93% (Excellent)")
	assert.Contains(t, text, "taken 13, skipped 0, missed 1 of 14")
}

func TestHistoryText(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	at := time.Date(2026, 5, 4, 7, 15, 0, 0, time.UTC)

	text := HistoryText(
		[]services.BloodPressureRecord{{
			BloodPressureReading: domain.BloodPressureReading{Systolic: 118, Diastolic: 76, MeasuredAt: at},
			Classification:       classify.ClassifyBloodPressure(118, 76),
		}},
		[]services.GlucoseRecord{{
			GlucoseReading: domain.GlucoseReading{Value: 92, MeasurementType: domain.MeasurementFasting, MeasuredAt: at},
			Classification: classify.ClassifyGlucose(92, domain.MeasurementFasting),
		}},
		loc,
	)
	assert.Contains(t, text, "04.05 09:15  118/76  Normal")
	assert.Contains(t, text, "92 mg/dL")

	assert.Equal(t, "📋 No readings yet.", HistoryText(nil, nil, loc))
}
