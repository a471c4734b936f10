package schedule

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
)

// AdherenceSummary aggregates one medication's doses over a window.
// Missed covers every scheduled dose that is neither taken nor skipped,
// whether or not it was explicitly marked missed.
type AdherenceSummary struct {
	MedicationID   uuid.UUID
	Name           string
	Color          string
	TotalScheduled int
	Taken          int
	Skipped        int
	Missed         int
	Percentage     int
}

// Adherence counts the doses of med scheduled from the day of from up to and
// including now, resolved against logs.
func Adherence(med domain.Medication, logs []domain.MedicationLog, from, now time.Time) AdherenceSummary {
	summary := AdherenceSummary{
		MedicationID: med.ID,
		Name:         med.Name,
		Color:        med.Color,
	}

	var instants []DoseInstant
	for _, inst := range ExpandRange(med, from, now) {
		if inst.ScheduledTime.After(now) {
			continue
		}
		instants = append(instants, inst)
	}

	for _, d := range Resolve(instants, logs) {
		summary.TotalScheduled++
		switch d.Status {
		case domain.DoseStatusTaken:
			summary.Taken++
		case domain.DoseStatusSkipped:
			summary.Skipped++
		}
	}
	summary.Missed = summary.TotalScheduled - summary.Taken - summary.Skipped
	summary.Percentage = Percentage(summary.Taken, summary.TotalScheduled)
	return summary
}

// Percentage returns round(100*taken/total), or 0 when total is 0.
func Percentage(taken, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(taken) * 100 / float64(total)))
}

func AdherenceLabel(pct int) string {
	switch {
	case pct >= 90:
		return "Excellent"
	case pct >= 70:
		return "Good"
	case pct >= 50:
		return "Fair"
	default:
		return "Poor"
	}
}

func AdherenceColor(pct int) string {
	switch {
	case pct >= 90:
		return "#10b981"
	case pct >= 70:
		return "#f59e0b"
	default:
		return "#ef4444"
	}
}
