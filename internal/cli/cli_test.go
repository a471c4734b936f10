package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladimiradmaev/health-tracker/internal/app"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
	"github.com/vladimiradmaev/health-tracker/internal/schedule"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var c CLI
	parser, err := kong.New(&c, kong.Name("healthctl"), kong.Exit(func(int) {}), kong.Vars{"version": "test"})
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	err = kctx.Run(&Context{
		Context: context.Background(),
		Out:     &out,
		Open: func() (*app.App, error) {
			return nil, errors.New("no database in tests")
		},
	})
	return out.String(), err
}

func TestClassifyBloodPressureCommand(t *testing.T) {
	out, err := run(t, "classify", "bp", "145", "95")
	require.NoError(t, err)
	assert.Equal(t, "145/95: High BP Stage 2 [hypertension-2] Consult your doctor\n", out)
}

func TestClassifyGlucoseCommand(t *testing.T) {
	out, err := run(t, "classify", "glucose", "105", "--type", "fasting")
	require.NoError(t, err)
	assert.Equal(t, "105 mg/dL: Prediabetic [prediabetic] Impaired fasting glucose\n", out)

	out, err = run(t, "classify", "glucose", "150")
	require.NoError(t, err)
	assert.Contains(t, out, "Elevated")
}

func TestClassifyRejectsInvalidInput(t *testing.T) {
	_, err := run(t, "classify", "bp", "20", "80")
	assert.Error(t, err)

	_, err = run(t, "classify", "glucose", "105", "--type", "after_lunch")
	assert.Error(t, err)
}

func TestScheduleNeedsDatabase(t *testing.T) {
	_, err := run(t, "schedule", "--telegram-id", "7")
	assert.EqualError(t, err, "no database in tests")

	_, err = run(t, "schedule")
	assert.Error(t, err, "telegram id is required")
}

func TestParseDay(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)

	d, err := parseDay("2026-05-04", loc)
	require.NoError(t, err)
	assert.True(t, d.Equal(time.Date(2026, 5, 4, 0, 0, 0, 0, loc)))

	d, err = parseDay("today", loc)
	require.NoError(t, err)
	assert.Equal(t, loc.String(), d.Location().String())

	_, err = parseDay("04.05.2026", loc)
	assert.Error(t, err)
}

func TestPrintDoses(t *testing.T) {
	var out bytes.Buffer
	date := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	taken := time.Date(2026, 5, 4, 8, 10, 0, 0, time.UTC)
	doses := []schedule.ResolvedDose{
		{
			DoseInstant: schedule.DoseInstant{MedicationID: uuid.New(), Name: "Metformin", Dosage: "500mg", ScheduledTime: date.Add(8 * time.Hour)},
			Status:      domain.DoseStatusTaken,
			TakenAt:     &taken,
		},
		{
			DoseInstant: schedule.DoseInstant{MedicationID: uuid.New(), Name: "Metformin", Dosage: "500mg", ScheduledTime: date.Add(20 * time.Hour)},
			Status:      domain.DoseStatusPending,
		},
	}

	printDoses(&Context{Out: &out}, date, doses, date.Add(21*time.Hour))
	s := out.String()
	assert.Contains(t, s, "Doses for 2026-05-04 (UTC)")
	assert.Contains(t, s, "taken at 08:10")
	assert.Contains(t, s, "Total 2, taken 1, skipped 0, pending 1, overdue 1")
}

func TestPrintAdherence(t *testing.T) {
	var out bytes.Buffer
	printAdherence(&Context{Out: &out}, []schedule.AdherenceSummary{
		{Name: "Lisinopril", TotalScheduled: 7, Taken: 5, Skipped: 1, Missed: 1, Percentage: 71},
	})
	assert.Contains(t, out.String(), "Lisinopril")
	assert.Contains(t, out.String(), "71% Good")

	out.Reset()
	printAdherence(&Context{Out: &out}, nil)
	assert.Equal(t, "No active medications\n", out.String())
}
