package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/health-tracker/internal/bot/state"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
	"github.com/vladimiradmaev/health-tracker/internal/logger"
)

const helpText = `Available commands:
/start - Show the main menu
/help - Show this message
/bp - Log blood pressure
/glucose - Log glucose
/meds - List medications
/addmed - Add a medication
/today - Today's doses
/adherence [days] - Adherence report, 7 days by default
/history [days] - Recent readings, 30 days by default
/settings - Reminder settings
/timezone [name] - Show or set your timezone
/cancel - Abort the current input`

// CommandHandler handles bot commands
type CommandHandler struct {
	*base
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(b *base) *CommandHandler {
	return &CommandHandler{base: b}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *domain.User) error {
	logger.Info("Handling command", "command", message.Command(), "user_id", user.ID)
	chatID := message.Chat.ID

	switch message.Command() {
	case "start", "cancel":
		return h.showMainMenu(chatID, user)
	case "help":
		return h.reply(chatID, helpText)
	case "bp":
		return h.startBloodPressure(chatID, user)
	case "glucose":
		return h.startGlucose(chatID, user)
	case "meds":
		return h.showMedications(ctx, chatID, user)
	case "addmed":
		return h.startAddMedication(chatID, user)
	case "today":
		return h.showToday(ctx, chatID, user)
	case "adherence":
		days, err := ParseDays(message.CommandArguments(), 0)
		if err != nil {
			return h.replyError(ctx, chatID, err)
		}
		return h.showAdherence(ctx, chatID, user, days)
	case "history":
		days, err := ParseDays(message.CommandArguments(), 0)
		if err != nil {
			return h.replyError(ctx, chatID, err)
		}
		return h.showHistory(ctx, chatID, user, days)
	case "settings":
		return h.showSettings(ctx, chatID, user)
	case "timezone":
		if tz := message.CommandArguments(); tz != "" {
			return h.setTimezone(ctx, chatID, user, tz)
		}
		return h.startTimezone(chatID, user)
	default:
		h.stateManager.SetUserState(user.TelegramID, state.None)
		return h.reply(chatID, "Unknown command. Use /help to see what I can do.")
	}
}
