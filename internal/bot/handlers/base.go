package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/vladimiradmaev/health-tracker/internal/bot/keyboards"
	"github.com/vladimiradmaev/health-tracker/internal/bot/menus"
	"github.com/vladimiradmaev/health-tracker/internal/bot/state"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
	"github.com/vladimiradmaev/health-tracker/internal/logger"
	"github.com/vladimiradmaev/health-tracker/internal/schedule"
	"github.com/vladimiradmaev/health-tracker/internal/services"
	"github.com/vladimiradmaev/health-tracker/internal/utils"
)

// base holds the actions reachable both from commands and from buttons
type base struct {
	api          API
	deps         Dependencies
	stateManager state.StateManager
	now          func() time.Time
}

func newBase(api API, deps Dependencies, stateManager state.StateManager) *base {
	return &base{api: api, deps: deps, stateManager: stateManager, now: time.Now}
}

func (b *base) reply(chatID int64, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (b *base) replyWithMarkup(chatID int64, text string, markup tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

// replyError shows the user a safe message. Only unexpected errors are logged.
func (b *base) replyError(ctx context.Context, chatID int64, err error) error {
	msg := apperrors.NewHandler(logger.WithContext(ctx).With("chat_id", chatID)).Handle(ctx, err)
	return b.reply(chatID, "❌ "+msg)
}

// localNow returns the current time in the user's timezone
func (b *base) localNow(ctx context.Context, user *domain.User) (time.Time, *time.Location, error) {
	settings, err := b.deps.Settings.Get(ctx, user.ID)
	if err != nil {
		return time.Time{}, nil, err
	}
	loc := b.deps.Settings.Location(settings)
	return b.now().In(loc), loc, nil
}

func (b *base) showMainMenu(chatID int64, user *domain.User) error {
	b.stateManager.SetUserState(user.TelegramID, state.None)
	b.stateManager.ClearTempData(user.TelegramID)
	return menus.SendMainMenu(b.api, chatID)
}

func (b *base) startBloodPressure(chatID int64, user *domain.User) error {
	b.stateManager.SetUserState(user.TelegramID, state.WaitingForBloodPressure)
	return b.replyWithMarkup(chatID, "🩺 Enter your blood pressure as systolic/diastolic, optionally followed by pulse.\nExample: 120/80 72", keyboards.BackToMenu())
}

func (b *base) startGlucose(chatID int64, user *domain.User) error {
	b.stateManager.SetUserState(user.TelegramID, state.WaitingForGlucoseValue)
	return b.replyWithMarkup(chatID, "🩸 Enter your glucose level in mg/dL.\nExample: 105", keyboards.BackToMenu())
}

func (b *base) startAddMedication(chatID int64, user *domain.User) error {
	b.stateManager.ClearTempData(user.TelegramID)
	b.stateManager.SetUserState(user.TelegramID, state.WaitingForMedicationName)
	return b.replyWithMarkup(chatID, "💊 What is the medication called?", keyboards.BackToMenu())
}

func (b *base) startTimezone(chatID int64, user *domain.User) error {
	b.stateManager.SetUserState(user.TelegramID, state.WaitingForTimezone)
	return b.replyWithMarkup(chatID, "🌍 Enter your timezone as an IANA name.\nExample: Europe/Berlin", keyboards.BackToMenu())
}

func (b *base) startReadingTimes(chatID int64, user *domain.User, kind domain.ReadingKind) error {
	next := state.WaitingForBPReminderTimes
	what := "blood pressure"
	if kind == domain.ReadingGlucose {
		next = state.WaitingForGlucoseReminder
		what = "glucose"
	}
	b.stateManager.SetUserState(user.TelegramID, next)
	return b.replyWithMarkup(chatID, "🕒 When should I remind you to measure "+what+"?\nExample: 08:00, 20:00 or \"none\"", keyboards.BackToMenu())
}

func (b *base) showMedications(ctx context.Context, chatID int64, user *domain.User) error {
	meds, err := b.deps.Medications.ListActive(ctx, user.ID)
	if err != nil {
		return b.replyError(ctx, chatID, err)
	}
	return menus.SendMedications(b.api, chatID, meds)
}

func (b *base) showToday(ctx context.Context, chatID int64, user *domain.User) error {
	now, _, err := b.localNow(ctx, user)
	if err != nil {
		return b.replyError(ctx, chatID, err)
	}
	doses, err := b.deps.Medications.DaySchedule(ctx, user.ID, now)
	if err != nil && doses == nil {
		return b.replyError(ctx, chatID, err)
	}
	if err != nil {
		// statuses unknown, the schedule itself is still useful
		logger.Warn("Showing schedule without dose logs", "user_id", user.ID, "error", err)
	}
	return menus.SendToday(b.api, chatID, doses, now)
}

func (b *base) showAdherence(ctx context.Context, chatID int64, user *domain.User, days int) error {
	now, _, err := b.localNow(ctx, user)
	if err != nil {
		return b.replyError(ctx, chatID, err)
	}
	summaries, err := b.deps.Medications.Adherence(ctx, user.ID, days, now)
	if err != nil {
		return b.replyError(ctx, chatID, err)
	}
	if days <= 0 {
		days = services.DefaultAdherenceDays
	}
	if days > services.MaxAdherenceDays {
		days = services.MaxAdherenceDays
	}
	return menus.SendAdherence(b.api, chatID, summaries, days)
}

func (b *base) showHistory(ctx context.Context, chatID int64, user *domain.User, days int) error {
	_, loc, err := b.localNow(ctx, user)
	if err != nil {
		return b.replyError(ctx, chatID, err)
	}
	bp, err := b.deps.BloodPressure.GetUserRecords(ctx, user.ID, days)
	if err != nil {
		return b.replyError(ctx, chatID, err)
	}
	glucose, err := b.deps.Glucose.GetUserRecords(ctx, user.ID, days)
	if err != nil {
		return b.replyError(ctx, chatID, err)
	}
	return menus.SendHistory(b.api, chatID, bp, glucose, loc)
}

func (b *base) showSettings(ctx context.Context, chatID int64, user *domain.User) error {
	settings, err := b.deps.Settings.Get(ctx, user.ID)
	if err != nil {
		return b.replyError(ctx, chatID, err)
	}
	return menus.SendSettingsMenu(b.api, chatID, settings)
}

func (b *base) setTimezone(ctx context.Context, chatID int64, user *domain.User, timezone string) error {
	settings, err := b.deps.Settings.SetTimezone(ctx, user.ID, timezone)
	if err != nil {
		return b.replyError(ctx, chatID, err)
	}
	b.stateManager.SetUserState(user.TelegramID, state.None)
	return menus.SendSettingsMenu(b.api, chatID, settings)
}

func (b *base) showSettingsFor(chatID int64, settings *domain.UserSettings) error {
	return menus.SendSettingsMenu(b.api, chatID, settings)
}

// saveMedication finishes the add or edit medication dialog. Empty times fall
// back to the frequency defaults.
func (b *base) saveMedication(ctx context.Context, chatID int64, user *domain.User, freq domain.Frequency, times []string) error {
	name, _ := b.stateManager.GetTempData(user.TelegramID, tempMedName)
	dosage, _ := b.stateManager.GetTempData(user.TelegramID, tempMedDosage)

	var (
		med  *domain.Medication
		verb string
		err  error
	)
	if editID, ok := b.stateManager.GetTempData(user.TelegramID, tempMedEditID); ok {
		med, err = b.updateMedication(ctx, user, editID, dosage, freq, times)
		verb = "Updated"
	} else {
		med, err = b.createMedication(ctx, user, name, dosage, freq, times)
		verb = "Added"
	}
	if err != nil {
		return b.replyError(ctx, chatID, err)
	}

	b.stateManager.SetUserState(user.TelegramID, state.None)
	b.stateManager.ClearTempData(user.TelegramID)

	text := fmt.Sprintf("✅ %s %s %s, %s", verb, med.Name, med.Dosage, schedule.FrequencyLabel(med.Frequency))
	if len(med.Times) > 0 {
		text += " at " + strings.Join(med.Times, ", ")
	}
	return b.replyWithMarkup(chatID, text, keyboards.MainMenu())
}

func (b *base) createMedication(ctx context.Context, user *domain.User, name, dosage string, freq domain.Frequency, times []string) (*domain.Medication, error) {
	now, _, err := b.localNow(ctx, user)
	if err != nil {
		return nil, err
	}
	return b.deps.Medications.Create(ctx, user.ID, services.MedicationInput{
		Name:      name,
		Dosage:    dosage,
		Frequency: freq,
		Times:     times,
		StartDate: utils.StartOfDay(now),
	})
}

// updateMedication keeps everything but dosage, frequency and times
func (b *base) updateMedication(ctx context.Context, user *domain.User, editID, dosage string, freq domain.Frequency, times []string) (*domain.Medication, error) {
	id, err := uuid.Parse(editID)
	if err != nil {
		return nil, apperrors.ErrMedicationNotFound
	}
	current, err := b.activeMedication(ctx, user, id)
	if err != nil {
		return nil, err
	}
	return b.deps.Medications.Update(ctx, user.ID, id, services.MedicationInput{
		Name:      current.Name,
		Dosage:    dosage,
		Frequency: freq,
		Times:     times,
		StartDate: current.StartDate,
		EndDate:   current.EndDate,
		Notes:     current.Notes,
		Color:     current.Color,
	})
}

func (b *base) activeMedication(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.Medication, error) {
	meds, err := b.deps.Medications.ListActive(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for i := range meds {
		if meds[i].ID == id {
			return &meds[i], nil
		}
	}
	return nil, apperrors.ErrMedicationNotFound
}
