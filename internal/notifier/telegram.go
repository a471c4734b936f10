// Package notifier delivers reminders produced by the reminder loop.
package notifier

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/health-tracker/internal/bot/keyboards"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
	"github.com/vladimiradmaev/health-tracker/internal/logger"
	"github.com/vladimiradmaev/health-tracker/internal/schedule"
	"github.com/vladimiradmaev/health-tracker/internal/services"
)

// Sender is the part of *tgbotapi.BotAPI the notifier needs
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

var (
	_ services.Notifier = (*TelegramNotifier)(nil)
	_ Sender            = (*tgbotapi.BotAPI)(nil)
)

// TelegramNotifier sends reminders as chat messages with action buttons
type TelegramNotifier struct {
	api Sender
}

func NewTelegramNotifier(api Sender) *TelegramNotifier {
	return &TelegramNotifier{api: api}
}

func (n *TelegramNotifier) NotifyDose(ctx context.Context, user domain.User, dose schedule.ResolvedDose, overdue bool) error {
	msg := tgbotapi.NewMessage(chatOf(user), DoseText(dose, overdue))
	msg.ReplyMarkup = keyboards.DoseReminder(dose.Key())
	if _, err := n.api.Send(msg); err != nil {
		return apperrors.NewExternalAPIError(err, "telegram")
	}
	logger.Debug("Dose reminder sent", "user_id", user.ID, "dose", dose.Key(), "overdue", overdue)
	return nil
}

func (n *TelegramNotifier) NotifyReading(ctx context.Context, user domain.User, reminder schedule.ReadingReminder) error {
	msg := tgbotapi.NewMessage(chatOf(user), ReadingText(reminder))
	msg.ReplyMarkup = keyboards.ReadingReminder(reminder.Kind, reminder.Key)
	if _, err := n.api.Send(msg); err != nil {
		return apperrors.NewExternalAPIError(err, "telegram")
	}
	logger.Debug("Reading reminder sent", "user_id", user.ID, "key", reminder.Key)
	return nil
}

// chatOf falls back to the telegram id, which equals the chat id of a
// private chat.
func chatOf(user domain.User) int64 {
	if user.ChatID != 0 {
		return user.ChatID
	}
	return user.TelegramID
}

// DoseText renders a dose reminder in the dose's own timezone
func DoseText(dose schedule.ResolvedDose, overdue bool) string {
	at := dose.ScheduledTime.Format("15:04")
	if overdue {
		return fmt.Sprintf("⚠️ Overdue: %s %s was due at %s", dose.Name, dose.Dosage, at)
	}
	return fmt.Sprintf("⏰ Time for %s %s at %s", dose.Name, dose.Dosage, at)
}

func ReadingText(reminder schedule.ReadingReminder) string {
	switch reminder.Kind {
	case domain.ReadingGlucose:
		return fmt.Sprintf("🩸 Time to check your glucose (%s)", reminder.Target)
	default:
		return fmt.Sprintf("🩺 Time to measure your blood pressure (%s)", reminder.Target)
	}
}
