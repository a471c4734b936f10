package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/health-tracker/internal/interfaces"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	UserService   interfaces.UserServiceInterface
	BloodPressure interfaces.BloodPressureServiceInterface
	Glucose       interfaces.GlucoseServiceInterface
	Medications   interfaces.MedicationServiceInterface
	Settings      interfaces.SettingsServiceInterface
	Reminders     interfaces.ReminderServiceInterface
}

// API is the part of *tgbotapi.BotAPI the handlers use
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

var _ API = (*tgbotapi.BotAPI)(nil)

// Temp data keys of multi-step dialogs
const (
	tempGlucoseValue = "glucose_value"
	tempMedName      = "med_name"
	tempMedDosage    = "med_dosage"
	tempMedFrequency = "med_frequency"
	tempMedEditID    = "med_edit_id"
)
