package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/vladimiradmaev/health-tracker/internal/schedule"
)

type AdherenceCmd struct {
	TelegramID int64 `required:"" name:"telegram-id" help:"Telegram user id."`
	Days       int   `help:"Trailing window in days, at most 90." default:"7"`
}

func (c *AdherenceCmd) Run(ctx *Context) error {
	a, err := ctx.Open()
	if err != nil {
		return err
	}
	defer a.Close()

	user, loc, err := userLocation(ctx, a, c.TelegramID)
	if err != nil {
		return err
	}

	summaries, err := a.Medications.Adherence(ctx, user.ID, c.Days, time.Now().In(loc))
	if err != nil {
		return err
	}
	printAdherence(ctx, summaries)
	return nil
}

func printAdherence(ctx *Context, summaries []schedule.AdherenceSummary) {
	if len(summaries) == 0 {
		fmt.Fprintln(ctx.Out, "No active medications")
		return
	}
	w := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MEDICATION\tSCHEDULED\tTAKEN\tSKIPPED\tMISSED\tADHERENCE")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d%% %s\n",
			s.Name, s.TotalScheduled, s.Taken, s.Skipped, s.Missed, s.Percentage, schedule.AdherenceLabel(s.Percentage))
	}
	w.Flush()
}
