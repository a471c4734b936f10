package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/health-tracker/internal/bot/keyboards"
	"github.com/vladimiradmaev/health-tracker/internal/bot/state"
	"github.com/vladimiradmaev/health-tracker/internal/classify"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
	"github.com/vladimiradmaev/health-tracker/internal/services"
)

// TextHandler handles text messages
type TextHandler struct {
	*base
}

// NewTextHandler creates a new text handler
func NewTextHandler(b *base) *TextHandler {
	return &TextHandler{base: b}
}

// Handle processes a text message according to the user's dialog state
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *domain.User) error {
	text := strings.TrimSpace(message.Text)
	chatID := message.Chat.ID

	switch h.stateManager.GetUserState(user.TelegramID) {
	case state.WaitingForBloodPressure:
		return h.handleBloodPressure(ctx, chatID, text, user)
	case state.WaitingForGlucoseValue:
		return h.handleGlucoseValue(ctx, chatID, text, user)
	case state.WaitingForGlucoseType:
		return h.replyWithMarkup(chatID, "Please pick when the glucose was measured.", keyboards.GlucoseTypes())
	case state.WaitingForMedicationName:
		return h.handleMedicationName(chatID, text, user)
	case state.WaitingForMedicationDosage:
		return h.handleMedicationDosage(chatID, text, user)
	case state.WaitingForMedicationFreq:
		return h.replyWithMarkup(chatID, "Please pick how often you take it.", keyboards.Frequencies())
	case state.WaitingForMedicationTimes:
		return h.handleMedicationTimes(ctx, chatID, text, user)
	case state.WaitingForBPReminderTimes:
		return h.handleReadingTimes(ctx, chatID, text, user, domain.ReadingBloodPressure)
	case state.WaitingForGlucoseReminder:
		return h.handleReadingTimes(ctx, chatID, text, user, domain.ReadingGlucose)
	case state.WaitingForTimezone:
		return h.setTimezone(ctx, chatID, user, text)
	default:
		return h.handleDefaultText(chatID)
	}
}

func (h *TextHandler) handleBloodPressure(ctx context.Context, chatID int64, text string, user *domain.User) error {
	systolic, diastolic, pulse, err := ParseBloodPressure(text)
	if err != nil {
		return h.replyError(ctx, chatID, err)
	}

	rec, err := h.deps.BloodPressure.AddRecord(ctx, user.ID, services.BloodPressureInput{
		Systolic:  systolic,
		Diastolic: diastolic,
		Pulse:     pulse,
	})
	if err != nil {
		return h.replyError(ctx, chatID, err)
	}

	h.stateManager.SetUserState(user.TelegramID, state.None)
	return h.replyWithMarkup(chatID, ReadingSaved(fmt.Sprintf("%d/%d mmHg", rec.Systolic, rec.Diastolic), rec.Classification),
		keyboards.ReadingSaved(keyboards.UndoBPPrefix, rec.ID))
}

func (h *TextHandler) handleGlucoseValue(ctx context.Context, chatID int64, text string, user *domain.User) error {
	value, err := ParseGlucoseValue(text)
	if err != nil {
		return h.replyError(ctx, chatID, err)
	}
	// the range is checked before asking for the measurement type
	if _, err := classify.NewGlucose(value, domain.MeasurementRandom); err != nil {
		return h.replyError(ctx, chatID, err)
	}

	h.stateManager.SetTempData(user.TelegramID, tempGlucoseValue, strconv.FormatFloat(value, 'f', -1, 64))
	h.stateManager.SetUserState(user.TelegramID, state.WaitingForGlucoseType)
	return h.replyWithMarkup(chatID, "When was it measured?", keyboards.GlucoseTypes())
}

func (h *TextHandler) handleMedicationName(chatID int64, text string, user *domain.User) error {
	if text == "" {
		return h.reply(chatID, "The name cannot be empty.")
	}
	h.stateManager.SetTempData(user.TelegramID, tempMedName, text)
	h.stateManager.SetUserState(user.TelegramID, state.WaitingForMedicationDosage)
	return h.replyWithMarkup(chatID, "What is the dosage? Example: 500mg", keyboards.BackToMenu())
}

func (h *TextHandler) handleMedicationDosage(chatID int64, text string, user *domain.User) error {
	if text == "" {
		return h.reply(chatID, "The dosage cannot be empty.")
	}
	h.stateManager.SetTempData(user.TelegramID, tempMedDosage, text)
	h.stateManager.SetUserState(user.TelegramID, state.WaitingForMedicationFreq)
	return h.replyWithMarkup(chatID, "How often do you take it?", keyboards.Frequencies())
}

func (h *TextHandler) handleMedicationTimes(ctx context.Context, chatID int64, text string, user *domain.User) error {
	times, err := ParseTimes(text)
	if err != nil {
		return h.replyError(ctx, chatID, err)
	}
	freq, _ := h.stateManager.GetTempData(user.TelegramID, tempMedFrequency)
	return h.saveMedication(ctx, chatID, user, domain.Frequency(freq), times)
}

func (h *TextHandler) handleReadingTimes(ctx context.Context, chatID int64, text string, user *domain.User, kind domain.ReadingKind) error {
	times, err := ParseTimes(text)
	if err != nil {
		return h.replyError(ctx, chatID, err)
	}
	settings, err := h.deps.Settings.SetReadingTimes(ctx, user.ID, kind, times)
	if err != nil {
		return h.replyError(ctx, chatID, err)
	}
	h.stateManager.SetUserState(user.TelegramID, state.None)
	return h.showSettingsFor(chatID, settings)
}

func (h *TextHandler) handleDefaultText(chatID int64) error {
	return h.replyWithMarkup(chatID, "Please use the menu to choose an action.", keyboards.MainMenu())
}

// ReadingSaved confirms a stored reading with its classification
func ReadingSaved(value string, c classify.Classification) string {
	return fmt.Sprintf("✅ Saved %s\n%s %s\n%s", value, categoryIcon(c.Category), c.Label, c.Description)
}

func categoryIcon(c classify.Category) string {
	switch c {
	case classify.CategoryNormal:
		return "🟢"
	case classify.CategoryElevated, classify.CategoryPrediabetic:
		return "🟡"
	case classify.CategoryHypertension1, classify.CategoryDiabetic:
		return "🟠"
	default:
		return "🔴"
	}
}
