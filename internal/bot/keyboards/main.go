package keyboards

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
	"github.com/vladimiradmaev/health-tracker/internal/schedule"
)

// Callback data. Prefixed callbacks carry their argument after the colon.
const (
	MainMenuData    = "main_menu"
	BloodPressure   = "bp"
	Glucose         = "glucose"
	Medications     = "meds"
	AddMedication   = "addmed"
	Today           = "today"
	AdherenceData   = "adherence"
	History         = "history"
	Settings        = "settings"
	TimezoneData    = "timezone"
	BPTimesData     = "bp_times"
	GlucoseTimes    = "glucose_times"
	TakePrefix      = "take:"
	SkipPrefix      = "skip:"
	DismissPrefix   = "dismiss:"
	GlucoseTypeData = "glucose_type:"
	FrequencyPrefix = "freq:"
	DeletePrefix    = "delmed:"
	EditPrefix      = "editmed:"
	DefaultTimes    = "deftimes"
	TogglePrefix    = "toggle:"
	UndoBPPrefix    = "undobp:"
	UndoGlucose     = "undoglucose:"
)

// SplitData separates a prefixed callback into its prefix and argument.
// Plain callbacks return an empty argument.
func SplitData(data string) (prefix, arg string) {
	i := strings.IndexByte(data, ':')
	if i < 0 {
		return data, ""
	}
	return data[:i+1], data[i+1:]
}

func backRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", MainMenuData),
	)
}

// MainMenu creates the main menu keyboard
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🩺 Blood pressure", BloodPressure),
			tgbotapi.NewInlineKeyboardButtonData("🩸 Glucose", Glucose),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Today", Today),
			tgbotapi.NewInlineKeyboardButtonData("💊 Medications", Medications),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📈 Adherence", AdherenceData),
			tgbotapi.NewInlineKeyboardButtonData("📋 History", History),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Settings", Settings),
		),
	)
}

// BackToMenu is a single "main menu" button
func BackToMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(backRow())
}

// ReadingSaved offers to undo a reading that was just stored
func ReadingSaved(prefix string, id uuid.UUID) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("↩️ Undo", prefix+id.String()),
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", MainMenuData),
		),
	)
}

// GlucoseTypes lets the user pick the measurement context
func GlucoseTypes() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, t := range domain.MeasurementTypes {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(t.Label(), GlucoseTypeData+string(t)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// Frequencies lists the medication frequencies
func Frequencies() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, f := range domain.Frequencies {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(schedule.FrequencyLabel(f), FrequencyPrefix+string(f)),
		))
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// KeepDefaultTimes accepts the frequency's default times
func KeepDefaultTimes() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Use default times", DefaultTimes),
		),
		backRow(),
	)
}

// MedicationList offers edit and stop buttons per active medication
func MedicationList(meds []domain.Medication) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Add medication", AddMedication),
		),
	}
	for _, m := range meds {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Edit "+m.Name, EditPrefix+m.ID.String()),
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Stop", DeletePrefix+m.ID.String()),
		))
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// DoseActions holds take/skip buttons for every pending dose
func DoseActions(doses []schedule.ResolvedDose) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, d := range doses {
		if d.Status != domain.DoseStatusPending {
			continue
		}
		label := fmt.Sprintf("%s %s", d.ScheduledTime.Format("15:04"), d.Name)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ "+label, TakePrefix+d.Key()),
			tgbotapi.NewInlineKeyboardButtonData("⏭️ Skip", SkipPrefix+d.Key()),
		))
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// DoseReminder is attached to a single dose reminder
func DoseReminder(key string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Taken", TakePrefix+key),
			tgbotapi.NewInlineKeyboardButtonData("⏭️ Skip", SkipPrefix+key),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔕 Dismiss", DismissPrefix+key),
		),
	)
}

// ReadingReminder is attached to a measurement reminder
func ReadingReminder(kind domain.ReadingKind, key string) tgbotapi.InlineKeyboardMarkup {
	record := BloodPressure
	if kind == domain.ReadingGlucose {
		record = Glucose
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Record now", record),
			tgbotapi.NewInlineKeyboardButtonData("🔕 Dismiss", DismissPrefix+key),
		),
	)
}

func onOff(v bool) string {
	if v {
		return "✅"
	}
	return "❌"
}

// SettingsMenu creates the settings menu keyboard
func SettingsMenu(s *domain.UserSettings) tgbotapi.InlineKeyboardMarkup {
	toggle := func(label string, v bool, name string) []tgbotapi.InlineKeyboardButton {
		return tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(onOff(v)+" "+label, TogglePrefix+name),
		)
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		toggle("Notifications", s.NotificationsEnabled, "notifications"),
		toggle("Medication reminders", s.MedicationRemindersEnabled, "medications"),
		toggle("Blood pressure reminders", s.BPReminderEnabled, "bp"),
		toggle("Glucose monitoring", s.GlucoseMonitoringEnabled, "glucose_monitoring"),
		toggle("Glucose reminders", s.GlucoseReminderEnabled, "glucose"),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🕒 BP times", BPTimesData),
			tgbotapi.NewInlineKeyboardButtonData("🕒 Glucose times", GlucoseTimes),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🌍 Timezone", TimezoneData),
		),
		backRow(),
	)
}
