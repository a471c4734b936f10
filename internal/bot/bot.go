package bot

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/health-tracker/internal/bot/handlers"
	"github.com/vladimiradmaev/health-tracker/internal/bot/state"
	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
	"github.com/vladimiradmaev/health-tracker/internal/logger"
)

const maxConcurrentUpdates = 16

type Bot struct {
	api     *tgbotapi.BotAPI
	handler *handlers.UpdateHandler
}

// NewAPI authorizes the bot token
func NewAPI(token string) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	logger.Info("Bot authorized", "account", api.Self.UserName)
	return api, nil
}

func NewBot(api *tgbotapi.BotAPI, deps handlers.Dependencies, stateManager state.StateManager) *Bot {
	return &Bot{
		api:     api,
		handler: handlers.NewUpdateHandler(api, deps, stateManager),
	}
}

// Start long-polls telegram until ctx is cancelled. Updates are handled
// concurrently, waiting for in-flight ones before returning.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	stop := context.AfterFunc(ctx, func() {
		logger.Info("Bot is shutting down")
		b.api.StopReceivingUpdates()
	})
	defer stop()

	logger.Info("Bot is now listening for updates")
	return dispatch(ctx, updates, maxConcurrentUpdates, b.handle)
}

// dispatch runs handle for each update with at most limit in flight. Once ctx
// is done no further update is started; running ones are waited for.
func dispatch(ctx context.Context, updates <-chan tgbotapi.Update, limit int, handle func(context.Context, tgbotapi.Update) error) error {
	var wg sync.WaitGroup
	sem := make(chan struct{}, limit)
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			if ctx.Err() != nil {
				<-sem
				return ctx.Err()
			}
			wg.Add(1)
			go func(update tgbotapi.Update) {
				defer func() {
					<-sem
					wg.Done()
				}()
				if err := handle(ctx, update); err != nil {
					logger.Error("Error handling update", "update_id", update.UpdateID, "error", err)
				}
			}(update)
		}
	}
}

// handle runs one update, turning a handler panic into an internal error
func (b *Bot) handle(ctx context.Context, update tgbotapi.Update) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.NewInternalError(fmt.Errorf("panic: %v", r))
		}
	}()
	if update.Message != nil && update.Message.From != nil {
		logger.Debug("Received message", "telegram_id", update.Message.From.ID, "text", update.Message.Text)
	}
	return b.handler.Handle(ctx, update)
}
