package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/health-tracker/internal/bot/state"
	"github.com/vladimiradmaev/health-tracker/internal/logger"
)

// UpdateHandler handles telegram updates and coordinates other handlers
type UpdateHandler struct {
	deps            Dependencies
	callbackHandler *CallbackHandler
	commandHandler  *CommandHandler
	textHandler     *TextHandler
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(api API, deps Dependencies, stateManager state.StateManager) *UpdateHandler {
	b := newBase(api, deps, stateManager)
	return &UpdateHandler{
		deps:            deps,
		callbackHandler: NewCallbackHandler(b),
		commandHandler:  NewCommandHandler(b),
		textHandler:     NewTextHandler(b),
	}
}

// Handle processes a telegram update
func (h *UpdateHandler) Handle(ctx context.Context, update tgbotapi.Update) error {
	from := update.SentFrom()
	chat := update.FromChat()
	if from == nil || chat == nil {
		return nil
	}

	// Get or create user, refreshing the chat used for reminders
	user, err := h.deps.UserService.RegisterUser(ctx, from.ID, chat.ID, from.UserName, from.FirstName, from.LastName)
	if err != nil {
		logger.Error("Error getting/creating user", "telegram_id", from.ID, "error", err)
		return fmt.Errorf("failed to get/create user: %w", err)
	}
	ctx = logger.IntoContext(ctx, logger.WithFields("user_id", user.ID))

	if update.CallbackQuery != nil {
		return h.callbackHandler.Handle(ctx, update.CallbackQuery, user)
	}

	if update.Message != nil {
		if update.Message.IsCommand() {
			return h.commandHandler.Handle(ctx, update.Message, user)
		}
		if update.Message.Text != "" {
			return h.textHandler.Handle(ctx, update.Message, user)
		}
	}

	return nil
}
