// Package classify maps blood pressure and glucose measurements to clinical
// categories. Blood pressure follows the American Heart Association table,
// glucose the American Diabetes Association ranges (mg/dL).
package classify

import (
	"github.com/vladimiradmaev/health-tracker/internal/domain"
)

type Category string

const (
	CategoryNormal        Category = "normal"
	CategoryElevated      Category = "elevated"
	CategoryHypertension1 Category = "hypertension-1"
	CategoryHypertension2 Category = "hypertension-2"
	CategoryCrisis        Category = "crisis"
	CategoryLow           Category = "low"
	CategoryPrediabetic   Category = "prediabetic"
	CategoryDiabetic      Category = "diabetic"
)

const (
	colorGreen   = "#16a34a"
	colorYellow  = "#ca8a04"
	colorOrange  = "#ea580c"
	colorRed     = "#dc2626"
	colorDarkRed = "#7f1d1d"
)

// Classification is derived on every read and never stored.
type Classification struct {
	Category    Category `json:"category"`
	Label       string   `json:"label"`
	Color       string   `json:"color"`
	Description string   `json:"description"`
}

// ClassifyBloodPressure evaluates the guards most severe first; the first
// matching guard wins, so the order below is significant.
func ClassifyBloodPressure(systolic, diastolic int) Classification {
	switch {
	case systolic > 180 || diastolic > 120:
		return Classification{CategoryCrisis, "Hypertensive Crisis", colorDarkRed, "Seek emergency care immediately"}
	case systolic >= 140 || diastolic >= 90:
		return Classification{CategoryHypertension2, "High BP Stage 2", colorRed, "Consult your doctor"}
	case systolic >= 130 || diastolic >= 80:
		return Classification{CategoryHypertension1, "High BP Stage 1", colorOrange, "Lifestyle changes recommended"}
	case systolic >= 120 && diastolic < 80:
		return Classification{CategoryElevated, "Elevated", colorYellow, "Monitor and maintain healthy habits"}
	default:
		return Classification{CategoryNormal, "Normal", colorGreen, "Keep up the good work!"}
	}
}

// ClassifyGlucose classifies a glucose value in mg/dL for its measurement
// context. Random and bedtime readings share the post-meal ranges but use
// their own labels.
func ClassifyGlucose(value float64, measurementType domain.MeasurementType) Classification {
	if value < 70 {
		return Classification{CategoryLow, "Low", colorRed, "Hypoglycemia - treat immediately"}
	}

	switch measurementType {
	case domain.MeasurementFasting, domain.MeasurementPreMeal:
		switch {
		case value <= 99:
			return Classification{CategoryNormal, "Normal", colorGreen, "Healthy fasting glucose"}
		case value <= 125:
			return Classification{CategoryPrediabetic, "Prediabetic", colorYellow, "Impaired fasting glucose"}
		default:
			return Classification{CategoryDiabetic, "Diabetic Range", colorRed, "Consult your healthcare provider"}
		}

	case domain.MeasurementPostMeal:
		switch {
		case value < 140:
			return Classification{CategoryNormal, "Normal", colorGreen, "Healthy post-meal glucose"}
		case value <= 199:
			return Classification{CategoryPrediabetic, "Prediabetic", colorYellow, "Impaired glucose tolerance"}
		default:
			return Classification{CategoryDiabetic, "Diabetic Range", colorRed, "Consult your healthcare provider"}
		}

	case domain.MeasurementRandom, domain.MeasurementBedtime:
		switch {
		case value < 140:
			return Classification{CategoryNormal, "Normal", colorGreen, "Healthy glucose level"}
		case value <= 199:
			return Classification{CategoryPrediabetic, "Elevated", colorYellow, "Monitor closely"}
		default:
			return Classification{CategoryDiabetic, "High", colorRed, "Consult your healthcare provider"}
		}
	}

	return Classification{CategoryNormal, "Normal", colorGreen, "Healthy glucose level"}
}
