package handlers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
	"github.com/vladimiradmaev/health-tracker/internal/utils"
)

// ParseBloodPressure accepts "120/80" with an optional pulse: "120/80 72".
// Range checks are left to the service.
func ParseBloodPressure(text string) (systolic, diastolic int, pulse *int, err error) {
	invalid := apperrors.NewValidationError("Enter pressure as systolic/diastolic, e.g. 120/80 or 120/80 72")

	fields := strings.Fields(text)
	if len(fields) == 0 || len(fields) > 2 {
		return 0, 0, nil, invalid
	}
	parts := strings.Split(fields[0], "/")
	if len(parts) != 2 {
		return 0, 0, nil, invalid
	}
	if systolic, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, nil, invalid
	}
	if diastolic, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, nil, invalid
	}
	if len(fields) == 2 {
		p, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0, 0, nil, invalid
		}
		pulse = &p
	}
	return systolic, diastolic, pulse, nil
}

// ParseGlucoseValue accepts a decimal comma as well as a point
func ParseGlucoseValue(text string) (float64, error) {
	value, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(text), ",", "."), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, apperrors.NewValidationError("Enter glucose in mg/dL, e.g. 105")
	}
	return value, nil
}

// ParseTimes splits a list of HH:MM times separated by commas or spaces.
// "none" clears the list.
func ParseTimes(text string) ([]string, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	})
	if len(fields) == 1 && strings.EqualFold(fields[0], "none") {
		return []string{}, nil
	}
	if len(fields) == 0 {
		return nil, apperrors.NewValidationError("Enter at least one time, e.g. 08:00, 20:00")
	}
	for _, f := range fields {
		if !utils.ValidClock(f) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("%q is not a valid time, use HH:MM", f))
		}
	}
	return fields, nil
}

// ParseDays reads an optional day count argument. Empty means def.
func ParseDays(arg string, def int) (int, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return def, nil
	}
	days, err := strconv.Atoi(arg)
	if err != nil || days <= 0 {
		return 0, apperrors.NewValidationError("The number of days must be a positive number")
	}
	return days, nil
}
