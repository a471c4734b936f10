package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/vladimiradmaev/health-tracker/internal/bot"
	"github.com/vladimiradmaev/health-tracker/internal/bot/state"
	"github.com/vladimiradmaev/health-tracker/internal/notifier"
	"github.com/vladimiradmaev/health-tracker/internal/services"
)

type RemindCmd struct {
	DryRun bool   `help:"Log reminders instead of sending them. Delivery markers are not persisted."`
	At     string `help:"Evaluate at this RFC3339 instant instead of now."`
}

func (c *RemindCmd) Run(ctx *Context) error {
	at := time.Now()
	if c.At != "" {
		var err error
		if at, err = time.Parse(time.RFC3339, c.At); err != nil {
			return fmt.Errorf("invalid --at, use RFC3339: %w", err)
		}
	}

	a, err := ctx.Open()
	if err != nil {
		return err
	}
	defer a.Close()

	var n services.Notifier
	if c.DryRun {
		n = notifier.NewLogNotifier(nil)
		a.Store = newDryRunStore(a.Store)
	} else {
		if a.Config.TelegramToken == "" {
			return fmt.Errorf("TELEGRAM_BOT_TOKEN is required unless --dry-run is set")
		}
		api, err := bot.NewAPI(a.Config.TelegramToken)
		if err != nil {
			return err
		}
		n = notifier.NewTelegramNotifier(api)
	}

	stats, err := a.NewReminderService(n).Tick(ctx, at)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "users %d, doses %d, readings %d, suppressed %d, failed %d\n",
		stats.Users, stats.Doses, stats.Readings, stats.Suppressed, stats.Failed)
	return nil
}

// dryRunStore reads dismissals from the real store but keeps delivery markers
// in memory, so a dry run neither reports dismissed reminders nor swallows
// the next real delivery.
type dryRunStore struct {
	*state.Manager
	real state.ReminderStore
}

var _ state.Store = (*dryRunStore)(nil)

func newDryRunStore(real state.ReminderStore) *dryRunStore {
	return &dryRunStore{Manager: state.NewManager(), real: real}
}

func (s *dryRunStore) IsDismissed(ctx context.Context, userID int64, key string) (bool, error) {
	if ok, err := s.Manager.IsDismissed(ctx, userID, key); err != nil || ok {
		return ok, err
	}
	return s.real.IsDismissed(ctx, userID, key)
}
