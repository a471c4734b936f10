package classify

import (
	"fmt"
	"math"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
)

// Accepted input ranges. Values outside them are rejected when a reading is
// constructed, so Classify never sees them.
const (
	MinSystolic  = 60
	MaxSystolic  = 250
	MinDiastolic = 40
	MaxDiastolic = 150
	MinPulse     = 30
	MaxPulse     = 220
	MinGlucose   = 20
	MaxGlucose   = 600
)

// BloodPressure is a validated systolic/diastolic pair.
type BloodPressure struct {
	systolic  int
	diastolic int
	pulse     *int
}

// NewBloodPressure validates the values and returns a reading that can be classified.
func NewBloodPressure(systolic, diastolic int, pulse *int) (BloodPressure, error) {
	if systolic < MinSystolic || systolic > MaxSystolic {
		return BloodPressure{}, apperrors.NewValidationError(fmt.Sprintf("systolic must be between %d and %d", MinSystolic, MaxSystolic)).
			WithContext("systolic", systolic)
	}
	if diastolic < MinDiastolic || diastolic > MaxDiastolic {
		return BloodPressure{}, apperrors.NewValidationError(fmt.Sprintf("diastolic must be between %d and %d", MinDiastolic, MaxDiastolic)).
			WithContext("diastolic", diastolic)
	}
	if pulse != nil && (*pulse < MinPulse || *pulse > MaxPulse) {
		return BloodPressure{}, apperrors.NewValidationError(fmt.Sprintf("pulse must be between %d and %d", MinPulse, MaxPulse)).
			WithContext("pulse", *pulse)
	}
	return BloodPressure{systolic: systolic, diastolic: diastolic, pulse: pulse}, nil
}

func (bp BloodPressure) Systolic() int  { return bp.systolic }
func (bp BloodPressure) Diastolic() int { return bp.diastolic }
func (bp BloodPressure) Pulse() *int    { return bp.pulse }

func (bp BloodPressure) Classify() Classification {
	return ClassifyBloodPressure(bp.systolic, bp.diastolic)
}

func (bp BloodPressure) String() string {
	return fmt.Sprintf("%d/%d", bp.systolic, bp.diastolic)
}

// Glucose is a validated glucose value with its measurement context.
type Glucose struct {
	value           float64
	measurementType domain.MeasurementType
}

// NewGlucose validates the value and context and returns a reading that can be classified.
func NewGlucose(value float64, measurementType domain.MeasurementType) (Glucose, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < MinGlucose || value > MaxGlucose {
		return Glucose{}, apperrors.NewValidationError(fmt.Sprintf("glucose must be between %d and %d mg/dL", MinGlucose, MaxGlucose)).
			WithContext("glucose", value)
	}
	if !measurementType.Valid() {
		return Glucose{}, apperrors.NewValidationError(fmt.Sprintf("unknown measurement type %q", measurementType))
	}
	return Glucose{value: value, measurementType: measurementType}, nil
}

func (g Glucose) Value() float64                          { return g.value }
func (g Glucose) MeasurementType() domain.MeasurementType { return g.measurementType }

func (g Glucose) Classify() Classification {
	return ClassifyGlucose(g.value, g.measurementType)
}

func (g Glucose) String() string {
	return FormatGlucose(g.value)
}

// FormatGlucose renders a glucose value with its unit.
func FormatGlucose(value float64) string {
	return fmt.Sprintf("%g mg/dL", value)
}
