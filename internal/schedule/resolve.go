package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
)

// ResolvedDose is a scheduled instant with the status recorded for it.
// LogID is nil while nothing has been recorded.
type ResolvedDose struct {
	DoseInstant
	Status  domain.DoseStatus
	LogID   *uuid.UUID
	TakenAt *time.Time
	Notes   *string
}

type slot struct {
	medicationID uuid.UUID
	unixNano     int64
}

// Resolve joins instants with logs on exact (medication, scheduled time)
// equality. Instants without a log are pending. The result is ordered by
// scheduled time, then medication id.
func Resolve(instants []DoseInstant, logs []domain.MedicationLog) []ResolvedDose {
	bySlot := make(map[slot]*domain.MedicationLog, len(logs))
	for i := range logs {
		l := &logs[i]
		bySlot[slot{l.MedicationID, l.ScheduledTime.UnixNano()}] = l
	}

	sorted := make([]DoseInstant, len(instants))
	copy(sorted, instants)
	sortInstants(sorted)

	out := make([]ResolvedDose, 0, len(sorted))
	for _, inst := range sorted {
		rd := ResolvedDose{DoseInstant: inst, Status: domain.DoseStatusPending}
		if l, ok := bySlot[slot{inst.MedicationID, inst.ScheduledTime.UnixNano()}]; ok {
			id := l.ID
			rd.Status = l.Status
			rd.LogID = &id
			rd.TakenAt = l.TakenAt
			rd.Notes = l.Notes
		}
		out = append(out, rd)
	}
	return out
}
