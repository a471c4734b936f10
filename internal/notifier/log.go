package notifier

import (
	"context"
	"log/slog"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
	"github.com/vladimiradmaev/health-tracker/internal/logger"
	"github.com/vladimiradmaev/health-tracker/internal/schedule"
	"github.com/vladimiradmaev/health-tracker/internal/services"
)

var _ services.Notifier = (*LogNotifier)(nil)

// LogNotifier writes reminders to the log instead of sending them.
// Used for dry runs.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier uses the global logger when l is nil
func NewLogNotifier(l *slog.Logger) *LogNotifier {
	if l == nil {
		l = logger.GetLogger()
	}
	return &LogNotifier{log: l}
}

func (n *LogNotifier) NotifyDose(ctx context.Context, user domain.User, dose schedule.ResolvedDose, overdue bool) error {
	n.log.Info(DoseText(dose, overdue),
		"telegram_id", user.TelegramID,
		"medication_id", dose.MedicationID,
		"scheduled", dose.ScheduledTime,
		"overdue", overdue)
	return nil
}

func (n *LogNotifier) NotifyReading(ctx context.Context, user domain.User, reminder schedule.ReadingReminder) error {
	n.log.Info(ReadingText(reminder),
		"telegram_id", user.TelegramID,
		"kind", reminder.Kind,
		"key", reminder.Key)
	return nil
}
