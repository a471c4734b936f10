package menus

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/health-tracker/internal/bot/keyboards"
	"github.com/vladimiradmaev/health-tracker/internal/classify"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
	"github.com/vladimiradmaev/health-tracker/internal/schedule"
	"github.com/vladimiradmaev/health-tracker/internal/services"
)

// Sender is satisfied by *tgbotapi.BotAPI
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

func send(api Sender, chatID int64, text string, markup tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	_, err := api.Send(msg)
	return err
}

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api Sender, chatID int64) error {
	text := `🩺 Health tracker

• Log blood pressure and glucose readings
• Keep a medication schedule and mark doses
• Get reminders for doses and measurements

⚠️ Readings are classified for information only. Always consult your doctor.

Choose an action:`

	return send(api, chatID, text, keyboards.MainMenu())
}

// SendSettingsMenu sends the settings menu to a chat
func SendSettingsMenu(api Sender, chatID int64, s *domain.UserSettings) error {
	text := fmt.Sprintf(`⚙️ Settings

🌍 Timezone: %s
🩺 BP times: %s
🩸 Glucose times: %s
⏱️ Remind %d min ahead`,
		s.Timezone,
		joinTimes(s.BPReminderTimes),
		joinTimes(s.GlucoseReminderTimes),
		s.ReminderLeadMinutes)

	return send(api, chatID, text, keyboards.SettingsMenu(s))
}

func joinTimes(times []string) string {
	if len(times) == 0 {
		return "none"
	}
	return strings.Join(times, ", ")
}

// TodayText renders the day's doses with their status
func TodayText(doses []schedule.ResolvedDose, now time.Time) string {
	if len(doses) == 0 {
		return "📅 No doses scheduled today."
	}

	var b strings.Builder
	b.WriteString("📅 Today\n\n")
	for _, d := range doses {
		fmt.Fprintf(&b, "%s %s %s %s\n", statusIcon(d, now), d.ScheduledTime.Format("15:04"), d.Name, d.Dosage)
	}

	sum := schedule.Summarize(doses, now)
	fmt.Fprintf(&b, "\nTaken %d of %d", sum.Taken, sum.Total)
	if sum.Skipped > 0 {
		fmt.Fprintf(&b, ", skipped %d", sum.Skipped)
	}
	if sum.Overdue > 0 {
		fmt.Fprintf(&b, ", overdue %d", sum.Overdue)
	}
	return b.String()
}

func statusIcon(d schedule.ResolvedDose, now time.Time) string {
	switch d.Status {
	case domain.DoseStatusTaken:
		return "✅"
	case domain.DoseStatusSkipped:
		return "⏭️"
	case domain.DoseStatusMissed:
		return "❌"
	}
	if d.ScheduledTime.Before(now) {
		return "⚠️"
	}
	return "⏳"
}

// SendToday sends the day's schedule with take and skip buttons
func SendToday(api Sender, chatID int64, doses []schedule.ResolvedDose, now time.Time) error {
	return send(api, chatID, TodayText(doses, now), keyboards.DoseActions(doses))
}

// SendMedications lists the active medications
func SendMedications(api Sender, chatID int64, meds []domain.Medication) error {
	var b strings.Builder
	if len(meds) == 0 {
		b.WriteString("💊 You have no active medications.")
	} else {
		b.WriteString("💊 Active medications\n\n")
		for _, m := range meds {
			fmt.Fprintf(&b, "• %s %s, %s", m.Name, m.Dosage, schedule.FrequencyLabel(m.Frequency))
			if len(m.Times) > 0 {
				fmt.Fprintf(&b, " (%s)", strings.Join(m.Times, ", "))
			}
			b.WriteString("\n")
		}
	}
	return send(api, chatID, b.String(), keyboards.MedicationList(meds))
}

// AdherenceText renders one line per medication
func AdherenceText(summaries []schedule.AdherenceSummary, days int) string {
	if len(summaries) == 0 {
		return "📈 No active medications to report on."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📈 Adherence, last %d days\n\n", days)
	for _, s := range summaries {
		fmt.Fprintf(&b, "%s: %d%% (%s)\n  taken %d, skipped %d, missed %d of %d\n",
			s.Name, s.Percentage, schedule.AdherenceLabel(s.Percentage),
			s.Taken, s.Skipped, s.Missed, s.TotalScheduled)
	}
	return b.String()
}

func SendAdherence(api Sender, chatID int64, summaries []schedule.AdherenceSummary, days int) error {
	return send(api, chatID, AdherenceText(summaries, days), keyboards.BackToMenu())
}

// HistoryText lists readings newest first as returned by the services
func HistoryText(bp []services.BloodPressureRecord, glucose []services.GlucoseRecord, loc *time.Location) string {
	if len(bp) == 0 && len(glucose) == 0 {
		return "📋 No readings yet."
	}

	var b strings.Builder
	if len(bp) > 0 {
		b.WriteString("🩺 Blood pressure\n")
		for _, r := range bp {
			fmt.Fprintf(&b, "%s  %d/%d  %s\n", r.MeasuredAt.In(loc).Format("02.01 15:04"),
				r.Systolic, r.Diastolic, r.Classification.Label)
		}
	}
	if len(glucose) > 0 {
		if len(bp) > 0 {
			b.WriteString("\n")
		}
		b.WriteString("🩸 Glucose\n")
		for _, r := range glucose {
			fmt.Fprintf(&b, "%s  %s  %s, %s\n", r.MeasuredAt.In(loc).Format("02.01 15:04"),
				classify.FormatGlucose(r.Value), r.MeasurementType.Label(), r.Classification.Label)
		}
	}
	return b.String()
}

func SendHistory(api Sender, chatID int64, bp []services.BloodPressureRecord, glucose []services.GlucoseRecord, loc *time.Location) error {
	return send(api, chatID, HistoryText(bp, glucose, loc), keyboards.BackToMenu())
}
