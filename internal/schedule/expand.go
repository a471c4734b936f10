package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
	"github.com/vladimiradmaev/health-tracker/internal/utils"
)

// DoseInstant is one expected dose of a medication. It is identified by
// (MedicationID, ScheduledTime) and is never stored.
type DoseInstant struct {
	MedicationID  uuid.UUID
	Name          string
	Dosage        string
	Color         string
	ScheduledTime time.Time
}

// Key identifies the instant in callbacks and reminder bookkeeping.
func (d DoseInstant) Key() string {
	return DoseKey(d.MedicationID, d.ScheduledTime)
}

// DoseKey formats a dose identity as "<medication id>:<unix seconds>".
func DoseKey(medicationID uuid.UUID, scheduled time.Time) string {
	return fmt.Sprintf("%s:%d", medicationID, scheduled.Unix())
}

// ParseDoseKey reverses DoseKey. The instant is returned in UTC.
func ParseDoseKey(key string) (uuid.UUID, time.Time, error) {
	i := strings.LastIndexByte(key, ':')
	if i < 0 {
		return uuid.Nil, time.Time{}, fmt.Errorf("invalid dose key %q", key)
	}
	id, err := uuid.Parse(key[:i])
	if err != nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("invalid dose key %q: %w", key, err)
	}
	secs, err := strconv.ParseInt(key[i+1:], 10, 64)
	if err != nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("invalid dose key %q: %w", key, err)
	}
	return id, time.Unix(secs, 0).UTC(), nil
}

// Expand returns the scheduled instants of med on the calendar day of date,
// composed in date's location and sorted ascending. The result is empty when
// the day is outside [StartDate, EndDate], the medication is inactive or
// taken as needed, or its definition is broken (end before start, a
// malformed time).
func Expand(med domain.Medication, date time.Time) []time.Time {
	if !med.IsActive || med.Frequency == domain.FrequencyAsNeeded {
		return nil
	}
	if !activeOn(med, date) {
		return nil
	}

	seen := make(map[int]bool, len(med.Times))
	minutes := make([]int, 0, len(med.Times))
	for _, t := range med.Times {
		m, err := utils.ParseClock(t)
		if err != nil {
			return nil
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		minutes = append(minutes, m)
	}
	sort.Ints(minutes)

	instants := make([]time.Time, 0, len(minutes))
	for _, m := range minutes {
		instants = append(instants, utils.AtClock(date, m))
	}
	return instants
}

// activeOn compares calendar dates: StartDate and EndDate are read in their
// own location, date in the viewer's.
func activeOn(med domain.Medication, date time.Time) bool {
	day := utils.DayKey(date)
	start := utils.DayKey(med.StartDate)
	if day < start {
		return false
	}
	if med.EndDate != nil {
		end := utils.DayKey(*med.EndDate)
		if end < start || day > end {
			return false
		}
	}
	return true
}

func instantsOf(med domain.Medication, date time.Time) []DoseInstant {
	times := Expand(med, date)
	out := make([]DoseInstant, 0, len(times))
	for _, t := range times {
		out = append(out, DoseInstant{
			MedicationID:  med.ID,
			Name:          med.Name,
			Dosage:        med.Dosage,
			Color:         med.Color,
			ScheduledTime: t,
		})
	}
	return out
}

// ExpandDay expands every medication for the day of date.
func ExpandDay(meds []domain.Medication, date time.Time) []DoseInstant {
	var out []DoseInstant
	for _, med := range meds {
		out = append(out, instantsOf(med, date)...)
	}
	sortInstants(out)
	return out
}

// ExpandRange expands med for each calendar day from the day of from through
// the day of to, both inclusive.
func ExpandRange(med domain.Medication, from, to time.Time) []DoseInstant {
	var out []DoseInstant
	last := utils.DayKey(to)
	for day := utils.StartOfDay(from); utils.DayKey(day) <= last; day = day.AddDate(0, 0, 1) {
		out = append(out, instantsOf(med, day)...)
	}
	return out
}

// IsScheduled reports whether Expand produces scheduled for med on that day.
func IsScheduled(med domain.Medication, scheduled time.Time) bool {
	for _, t := range Expand(med, scheduled) {
		if t.Equal(scheduled) {
			return true
		}
	}
	return false
}

func sortInstants(instants []DoseInstant) {
	sort.SliceStable(instants, func(i, j int) bool {
		a, b := instants[i], instants[j]
		if !a.ScheduledTime.Equal(b.ScheduledTime) {
			return a.ScheduledTime.Before(b.ScheduledTime)
		}
		return a.MedicationID.String() < b.MedicationID.String()
	})
}
