package schedule

import (
	"fmt"
	"time"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
	"github.com/vladimiradmaev/health-tracker/internal/utils"
)

// DefaultLookahead is how far ahead a pending dose counts as upcoming.
const DefaultLookahead = 15 * time.Minute

// Reminders splits the pending doses of a day relative to a point in time.
type Reminders struct {
	Overdue  []ResolvedDose
	Upcoming []ResolvedDose
}

func (r Reminders) Empty() bool {
	return len(r.Overdue) == 0 && len(r.Upcoming) == 0
}

// Evaluate returns the pending doses scheduled before now (overdue) and
// those in [now, now+lookahead) (upcoming). Doses with any other status are
// never returned. A non-positive lookahead means DefaultLookahead.
func Evaluate(resolved []ResolvedDose, now time.Time, lookahead time.Duration) Reminders {
	if lookahead <= 0 {
		lookahead = DefaultLookahead
	}
	horizon := now.Add(lookahead)

	var r Reminders
	for _, d := range resolved {
		if d.Status != domain.DoseStatusPending {
			continue
		}
		switch {
		case d.ScheduledTime.Before(now):
			r.Overdue = append(r.Overdue, d)
		case d.ScheduledTime.Before(horizon):
			r.Upcoming = append(r.Upcoming, d)
		}
	}
	return r
}

// DueReadingTargets returns the HH:MM targets that, placed on now's calendar
// day, lie within lookahead of now in either direction. Malformed targets
// are ignored.
func DueReadingTargets(targets []string, now time.Time, lookahead time.Duration) []string {
	if lookahead <= 0 {
		lookahead = DefaultLookahead
	}

	var due []string
	for _, target := range targets {
		minutes, err := utils.ParseClock(target)
		if err != nil {
			continue
		}
		diff := now.Sub(utils.AtClock(now, minutes))
		if diff < 0 {
			diff = -diff
		}
		if diff <= lookahead {
			due = append(due, target)
		}
	}
	return due
}

// DaySummary counts a day's doses by state at a point in time.
type DaySummary struct {
	Total   int
	Taken   int
	Skipped int
	Missed  int
	Pending int
	Overdue int
}

// Summarize counts resolved doses. Overdue is the subset of Pending
// scheduled before now.
func Summarize(resolved []ResolvedDose, now time.Time) DaySummary {
	s := DaySummary{Total: len(resolved)}
	for _, d := range resolved {
		switch d.Status {
		case domain.DoseStatusTaken:
			s.Taken++
		case domain.DoseStatusSkipped:
			s.Skipped++
		case domain.DoseStatusMissed:
			s.Missed++
		default:
			s.Pending++
			if d.ScheduledTime.Before(now) {
				s.Overdue++
			}
		}
	}
	return s
}

// InQuietHours reports whether now's wall-clock time falls in [start, end).
// The range wraps midnight when end is before start. Malformed bounds or
// start == end disable quiet hours.
func InQuietHours(now time.Time, start, end string) bool {
	s, err := utils.ParseClock(start)
	if err != nil {
		return false
	}
	e, err := utils.ParseClock(end)
	if err != nil || s == e {
		return false
	}
	m := now.Hour()*60 + now.Minute()
	if s < e {
		return m >= s && m < e
	}
	return m >= s || m < e
}

// ReadingReminder is a due measurement check-in.
type ReadingReminder struct {
	Kind   domain.ReadingKind
	Target string
	// Key identifies the reminder for one calendar day.
	Key string
}

func NewReadingReminder(kind domain.ReadingKind, target string, now time.Time) ReadingReminder {
	return ReadingReminder{
		Kind:   kind,
		Target: target,
		Key:    fmt.Sprintf("reading:%s:%s:%d", kind, target, utils.DayKey(now)),
	}
}
