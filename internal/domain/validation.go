package domain

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
	"github.com/vladimiradmaev/health-tracker/internal/utils"
)

const (
	MaxMedicationNameLength   = 100
	MaxDosageLength           = 50
	MaxMedicationTimes        = 10
	MaxNotesLength            = 500
	MaxMedicationLogNotesSize = 200
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validate checks a medication definition before it is stored.
func (m *Medication) Validate() error {
	nameLen := utf8.RuneCountInString(m.Name)
	if nameLen == 0 || nameLen > MaxMedicationNameLength {
		return apperrors.NewValidationError(fmt.Sprintf("medication name must be 1-%d characters", MaxMedicationNameLength))
	}
	dosageLen := utf8.RuneCountInString(m.Dosage)
	if dosageLen == 0 || dosageLen > MaxDosageLength {
		return apperrors.NewValidationError(fmt.Sprintf("dosage must be 1-%d characters", MaxDosageLength))
	}
	if !m.Frequency.Valid() {
		return apperrors.NewValidationError(fmt.Sprintf("unknown frequency %q", m.Frequency))
	}
	if len(m.Times) > MaxMedicationTimes {
		return apperrors.NewValidationError(fmt.Sprintf("at most %d times per day", MaxMedicationTimes))
	}
	for _, t := range m.Times {
		if !utils.ValidClock(t) {
			return apperrors.NewValidationError(fmt.Sprintf("invalid time %q, use HH:MM", t))
		}
	}
	switch m.Frequency {
	case FrequencyCustom:
		if len(m.Times) == 0 {
			return apperrors.NewValidationError("custom schedule needs at least one time")
		}
	case FrequencyAsNeeded:
		if len(m.Times) != 0 {
			return apperrors.NewValidationError("as-needed medication cannot have scheduled times")
		}
	}
	if m.Color != "" && !colorPattern.MatchString(m.Color) {
		return apperrors.NewValidationError(fmt.Sprintf("invalid color %q, use #RRGGBB", m.Color))
	}
	if m.StartDate.IsZero() {
		return apperrors.NewValidationError("start date is required")
	}
	if m.EndDate != nil && utils.DayKey(*m.EndDate) < utils.DayKey(m.StartDate) {
		return apperrors.NewValidationError("end date is before start date")
	}
	if m.Notes != nil && utf8.RuneCountInString(*m.Notes) > MaxNotesLength {
		return apperrors.NewValidationError(fmt.Sprintf("notes must be %d characters or less", MaxNotesLength))
	}
	return nil
}

// ValidateTimes checks a list of reminder target times.
func ValidateTimes(times []string) error {
	if len(times) > MaxMedicationTimes {
		return apperrors.NewValidationError(fmt.Sprintf("at most %d times per day", MaxMedicationTimes))
	}
	for _, t := range times {
		if !utils.ValidClock(t) {
			return apperrors.NewValidationError(fmt.Sprintf("invalid time %q, use HH:MM", t))
		}
	}
	return nil
}
