package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/vladimiradmaev/health-tracker/internal/bot/keyboards"
	"github.com/vladimiradmaev/health-tracker/internal/bot/state"
	"github.com/vladimiradmaev/health-tracker/internal/classify"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
	"github.com/vladimiradmaev/health-tracker/internal/logger"
	"github.com/vladimiradmaev/health-tracker/internal/schedule"
	"github.com/vladimiradmaev/health-tracker/internal/services"
)

// CallbackHandler handles callback query messages
type CallbackHandler struct {
	*base
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(b *base) *CallbackHandler {
	return &CallbackHandler{base: b}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery, user *domain.User) error {
	// Answer the callback query first
	callback := tgbotapi.NewCallback(query.ID, "")
	if _, err := h.api.Request(callback); err != nil {
		logger.Warn("Failed to answer callback query", "error", err)
	}

	if query.Message == nil {
		return nil
	}
	chatID := query.Message.Chat.ID

	prefix, arg := keyboards.SplitData(query.Data)
	switch prefix {
	case keyboards.MainMenuData:
		return h.showMainMenu(chatID, user)
	case keyboards.BloodPressure:
		return h.startBloodPressure(chatID, user)
	case keyboards.Glucose:
		return h.startGlucose(chatID, user)
	case keyboards.Medications:
		return h.showMedications(ctx, chatID, user)
	case keyboards.AddMedication:
		return h.startAddMedication(chatID, user)
	case keyboards.Today:
		return h.showToday(ctx, chatID, user)
	case keyboards.AdherenceData:
		return h.showAdherence(ctx, chatID, user, 0)
	case keyboards.History:
		return h.showHistory(ctx, chatID, user, 0)
	case keyboards.Settings:
		return h.showSettings(ctx, chatID, user)
	case keyboards.TimezoneData:
		return h.startTimezone(chatID, user)
	case keyboards.BPTimesData:
		return h.startReadingTimes(chatID, user, domain.ReadingBloodPressure)
	case keyboards.GlucoseTimes:
		return h.startReadingTimes(chatID, user, domain.ReadingGlucose)
	case keyboards.TakePrefix:
		return h.handleMarkDose(ctx, chatID, user, arg, domain.DoseStatusTaken)
	case keyboards.SkipPrefix:
		return h.handleMarkDose(ctx, chatID, user, arg, domain.DoseStatusSkipped)
	case keyboards.DismissPrefix:
		return h.handleDismiss(ctx, chatID, user, arg)
	case keyboards.GlucoseTypeData:
		return h.handleGlucoseType(ctx, chatID, user, domain.MeasurementType(arg))
	case keyboards.FrequencyPrefix:
		return h.handleFrequency(ctx, chatID, user, domain.Frequency(arg))
	case keyboards.DeletePrefix:
		return h.handleDeactivate(ctx, chatID, user, arg)
	case keyboards.EditPrefix:
		return h.handleEditMedication(ctx, chatID, user, arg)
	case keyboards.DefaultTimes:
		return h.handleDefaultTimes(ctx, chatID, user)
	case keyboards.UndoBPPrefix, keyboards.UndoGlucose:
		return h.handleUndoReading(ctx, chatID, user, prefix, arg)
	case keyboards.TogglePrefix:
		return h.handleToggle(ctx, chatID, user, arg)
	default:
		return h.handleUnknownCallback(chatID)
	}
}

// handleMarkDose records a dose from its key. The key carries a UTC instant
// which is moved into the user's timezone so it matches the expanded schedule.
func (h *CallbackHandler) handleMarkDose(ctx context.Context, chatID int64, user *domain.User, key string, status domain.DoseStatus) error {
	medID, scheduled, err := schedule.ParseDoseKey(key)
	if err != nil {
		return h.replyError(ctx, chatID, apperrors.ErrDoseNotScheduled)
	}
	_, loc, err := h.localNow(ctx, user)
	if err != nil {
		return h.replyError(ctx, chatID, err)
	}

	log, err := h.deps.Medications.MarkDose(ctx, user.ID, medID, scheduled.In(loc), status, nil)
	if err != nil {
		return h.replyError(ctx, chatID, err)
	}

	text := fmt.Sprintf("✅ Marked the %s dose as taken", log.ScheduledTime.In(loc).Format("15:04"))
	if status == domain.DoseStatusSkipped {
		text = fmt.Sprintf("⏭️ Skipped the %s dose", log.ScheduledTime.In(loc).Format("15:04"))
	}
	return h.reply(chatID, text)
}

func (h *CallbackHandler) handleDismiss(ctx context.Context, chatID int64, user *domain.User, key string) error {
	_, loc, err := h.localNow(ctx, user)
	if err != nil {
		return h.replyError(ctx, chatID, err)
	}
	if err := h.deps.Reminders.Dismiss(ctx, user.TelegramID, key, loc); err != nil {
		return h.replyError(ctx, chatID, err)
	}
	return h.reply(chatID, "🔕 Reminder dismissed for today")
}

func (h *CallbackHandler) handleGlucoseType(ctx context.Context, chatID int64, user *domain.User, measurementType domain.MeasurementType) error {
	raw, ok := h.stateManager.GetTempData(user.TelegramID, tempGlucoseValue)
	if !ok || h.stateManager.GetUserState(user.TelegramID) != state.WaitingForGlucoseType {
		return h.startGlucose(chatID, user)
	}
	value, err := ParseGlucoseValue(raw)
	if err != nil {
		return h.startGlucose(chatID, user)
	}

	rec, err := h.deps.Glucose.AddRecord(ctx, user.ID, services.GlucoseInput{
		Value:           value,
		MeasurementType: measurementType,
	})
	if err != nil {
		return h.replyError(ctx, chatID, err)
	}

	h.stateManager.SetUserState(user.TelegramID, state.None)
	h.stateManager.ClearTempData(user.TelegramID)
	saved := fmt.Sprintf("%s, %s", classify.FormatGlucose(rec.Value), rec.MeasurementType.Label())
	return h.replyWithMarkup(chatID, ReadingSaved(saved, rec.Classification),
		keyboards.ReadingSaved(keyboards.UndoGlucose, rec.ID))
}

// handleFrequency saves as-needed medications right away. Custom schedules
// must be given times; fixed frequencies offer their defaults.
func (h *CallbackHandler) handleFrequency(ctx context.Context, chatID int64, user *domain.User, freq domain.Frequency) error {
	if !freq.Valid() {
		return h.handleUnknownCallback(chatID)
	}
	if _, ok := h.stateManager.GetTempData(user.TelegramID, tempMedDosage); !ok {
		return h.startAddMedication(chatID, user)
	}

	switch freq {
	case domain.FrequencyAsNeeded:
		return h.saveMedication(ctx, chatID, user, freq, nil)
	case domain.FrequencyCustom:
		h.stateManager.SetTempData(user.TelegramID, tempMedFrequency, string(freq))
		h.stateManager.SetUserState(user.TelegramID, state.WaitingForMedicationTimes)
		return h.replyWithMarkup(chatID, "At what times? Example: 08:00, 14:00, 22:00", keyboards.BackToMenu())
	default:
		h.stateManager.SetTempData(user.TelegramID, tempMedFrequency, string(freq))
		h.stateManager.SetUserState(user.TelegramID, state.WaitingForMedicationTimes)
		text := fmt.Sprintf("Default times: %s.\nSend other times (e.g. 07:30, 19:30) or keep the defaults.",
			strings.Join(schedule.DefaultTimes(freq), ", "))
		return h.replyWithMarkup(chatID, text, keyboards.KeepDefaultTimes())
	}
}

func (h *CallbackHandler) handleDefaultTimes(ctx context.Context, chatID int64, user *domain.User) error {
	freq, ok := h.stateManager.GetTempData(user.TelegramID, tempMedFrequency)
	if !ok || h.stateManager.GetUserState(user.TelegramID) != state.WaitingForMedicationTimes {
		return h.startAddMedication(chatID, user)
	}
	return h.saveMedication(ctx, chatID, user, domain.Frequency(freq), nil)
}

// handleEditMedication runs the dosage, frequency and times dialog again for
// an existing medication.
func (h *CallbackHandler) handleEditMedication(ctx context.Context, chatID int64, user *domain.User, arg string) error {
	id, err := uuid.Parse(arg)
	if err != nil {
		return h.replyError(ctx, chatID, apperrors.ErrMedicationNotFound)
	}
	med, err := h.activeMedication(ctx, user, id)
	if err != nil {
		return h.replyError(ctx, chatID, err)
	}

	h.stateManager.ClearTempData(user.TelegramID)
	h.stateManager.SetTempData(user.TelegramID, tempMedEditID, med.ID.String())
	h.stateManager.SetTempData(user.TelegramID, tempMedName, med.Name)
	h.stateManager.SetUserState(user.TelegramID, state.WaitingForMedicationDosage)
	text := fmt.Sprintf("✏️ Editing %s (%s, %s).\nWhat is the dosage now?", med.Name, med.Dosage, schedule.FrequencyLabel(med.Frequency))
	return h.replyWithMarkup(chatID, text, keyboards.BackToMenu())
}

func (h *CallbackHandler) handleDeactivate(ctx context.Context, chatID int64, user *domain.User, arg string) error {
	id, err := uuid.Parse(arg)
	if err != nil {
		return h.replyError(ctx, chatID, apperrors.ErrMedicationNotFound)
	}
	if err := h.deps.Medications.Deactivate(ctx, user.ID, id); err != nil {
		return h.replyError(ctx, chatID, err)
	}
	if err := h.reply(chatID, "🗑️ Medication stopped. Past doses stay in your history."); err != nil {
		return err
	}
	return h.showMedications(ctx, chatID, user)
}

func (h *CallbackHandler) handleUndoReading(ctx context.Context, chatID int64, user *domain.User, prefix, arg string) error {
	id, err := uuid.Parse(arg)
	if err != nil {
		return h.replyError(ctx, chatID, apperrors.ErrReadingNotFound)
	}
	if prefix == keyboards.UndoBPPrefix {
		err = h.deps.BloodPressure.DeleteRecord(ctx, user.ID, id)
	} else {
		err = h.deps.Glucose.DeleteRecord(ctx, user.ID, id)
	}
	if err != nil {
		return h.replyError(ctx, chatID, err)
	}
	return h.replyWithMarkup(chatID, "↩️ Reading deleted", keyboards.MainMenu())
}

func (h *CallbackHandler) handleToggle(ctx context.Context, chatID int64, user *domain.User, name string) error {
	settings, err := h.deps.Settings.Toggle(ctx, user.ID, name)
	if err != nil {
		return h.replyError(ctx, chatID, err)
	}
	return h.showSettingsFor(chatID, settings)
}

// handleUnknownCallback handles unknown callback data
func (h *CallbackHandler) handleUnknownCallback(chatID int64) error {
	return h.reply(chatID, "This button is no longer available. Use /start to open the menu.")
}
