// Package cli implements the healthctl operator commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alecthomas/kong"

	"github.com/vladimiradmaev/health-tracker/internal/app"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
)

// CLI is the healthctl command tree
type CLI struct {
	Version kong.VersionFlag `help:"Print version and exit."`

	Classify  ClassifyCmd  `cmd:"" help:"Classify a reading without storing it."`
	Schedule  ScheduleCmd  `cmd:"" help:"Show a user's doses for a day."`
	Remind    RemindCmd    `cmd:"" help:"Run one reminder evaluation pass."`
	Adherence AdherenceCmd `cmd:"" help:"Show a user's adherence report."`
}

// Context is passed to every command's Run method
type Context struct {
	context.Context
	Out io.Writer
	// Open connects to the database on first use, so pure commands run
	// without one.
	Open func() (*app.App, error)
}

// userLocation resolves a telegram user, their settings and timezone
func userLocation(ctx *Context, a *app.App, telegramID int64) (*domain.User, *time.Location, error) {
	user, err := a.Users.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, nil, fmt.Errorf("user %d: %w", telegramID, err)
	}
	settings, err := a.Settings.Get(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, a.Settings.Location(settings), nil
}
