package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/vladimiradmaev/health-tracker/internal/schedule"
	"github.com/vladimiradmaev/health-tracker/internal/utils"
)

type ScheduleCmd struct {
	TelegramID int64  `required:"" name:"telegram-id" help:"Telegram user id."`
	Date       string `help:"Day to show (YYYY-MM-DD or 'today') in the user's timezone." default:"today"`
}

func (c *ScheduleCmd) Run(ctx *Context) error {
	a, err := ctx.Open()
	if err != nil {
		return err
	}
	defer a.Close()

	user, loc, err := userLocation(ctx, a, c.TelegramID)
	if err != nil {
		return err
	}

	date, err := parseDay(c.Date, loc)
	if err != nil {
		return err
	}

	doses, err := a.Medications.DaySchedule(ctx, user.ID, date)
	if err != nil && doses == nil {
		return err
	}
	if err != nil {
		fmt.Fprintf(ctx.Out, "warning: %v, statuses shown as pending\n", err)
	}
	printDoses(ctx, date, doses, time.Now().In(loc))
	return nil
}

func parseDay(s string, loc *time.Location) (time.Time, error) {
	if s == "" || s == "today" {
		return time.Now().In(loc), nil
	}
	date, err := utils.ParseDateInLocation(s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}
	return date, nil
}

func printDoses(ctx *Context, date time.Time, doses []schedule.ResolvedDose, now time.Time) {
	fmt.Fprintf(ctx.Out, "Doses for %s (%s):\n\n", date.Format(utils.DateFormat), date.Location())
	if len(doses) == 0 {
		fmt.Fprintln(ctx.Out, "  No doses scheduled")
		return
	}

	w := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	for _, d := range doses {
		status := string(d.Status)
		if d.TakenAt != nil {
			status = fmt.Sprintf("%s at %s", status, d.TakenAt.In(date.Location()).Format("15:04"))
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", d.ScheduledTime.Format("15:04"), d.Name, d.Dosage, status)
	}
	w.Flush()

	sum := schedule.Summarize(doses, now)
	fmt.Fprintf(ctx.Out, "\nTotal %d, taken %d, skipped %d, pending %d, overdue %d\n",
		sum.Total, sum.Taken, sum.Skipped, sum.Pending, sum.Overdue)
}
