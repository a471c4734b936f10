// Package schedule expands medication definitions into scheduled dose
// instants, joins them with dose logs and decides which doses and readings
// are due for a reminder. Everything here is pure: callers fetch the data
// and deliver the reminders.
package schedule

import (
	"strings"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
)

// DefaultTimes returns the clock times a fixed-frequency medication starts with.
// As-needed and custom medications have no defaults.
func DefaultTimes(freq domain.Frequency) []string {
	switch freq {
	case domain.FrequencyOnceDaily:
		return []string{"08:00"}
	case domain.FrequencyTwiceDaily:
		return []string{"08:00", "20:00"}
	case domain.FrequencyThreeTimesDaily:
		return []string{"08:00", "14:00", "20:00"}
	case domain.FrequencyFourTimesDaily:
		return []string{"08:00", "12:00", "16:00", "20:00"}
	default:
		return nil
	}
}

func FrequencyLabel(freq domain.Frequency) string {
	switch freq {
	case domain.FrequencyOnceDaily:
		return "Once daily"
	case domain.FrequencyTwiceDaily:
		return "Twice daily"
	case domain.FrequencyThreeTimesDaily:
		return "Three times daily"
	case domain.FrequencyFourTimesDaily:
		return "Four times daily"
	case domain.FrequencyAsNeeded:
		return "As needed"
	case domain.FrequencyCustom:
		return "Custom schedule"
	default:
		return string(freq)
	}
}

// Palette holds the display colors assigned to new medications in order.
var Palette = []string{
	"#6366f1",
	"#10b981",
	"#f59e0b",
	"#ef4444",
	"#8b5cf6",
	"#06b6d4",
	"#84cc16",
	"#f97316",
	"#ec4899",
	"#6b7280",
}

// NextColor returns the first palette color not in used, or the first
// palette color when all are taken.
func NextColor(used []string) string {
	taken := make(map[string]bool, len(used))
	for _, c := range used {
		taken[strings.ToLower(c)] = true
	}
	for _, c := range Palette {
		if !taken[c] {
			return c
		}
	}
	return Palette[0]
}
