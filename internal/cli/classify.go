package cli

import (
	"fmt"

	"github.com/vladimiradmaev/health-tracker/internal/classify"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
)

type ClassifyCmd struct {
	BP      ClassifyBPCmd      `cmd:"" name:"bp" help:"Classify a blood pressure reading."`
	Glucose ClassifyGlucoseCmd `cmd:"" help:"Classify a glucose reading in mg/dL."`
}

type ClassifyBPCmd struct {
	Systolic  int `arg:"" help:"Systolic pressure, mmHg."`
	Diastolic int `arg:"" help:"Diastolic pressure, mmHg."`
}

func (c *ClassifyBPCmd) Run(ctx *Context) error {
	bp, err := classify.NewBloodPressure(c.Systolic, c.Diastolic, nil)
	if err != nil {
		return err
	}
	printClassification(ctx, bp.String(), bp.Classify())
	return nil
}

type ClassifyGlucoseCmd struct {
	Value float64 `arg:"" help:"Glucose value, mg/dL."`
	Type  string  `help:"Measurement context." default:"random" enum:"fasting,pre_meal,post_meal,bedtime,random"`
}

func (c *ClassifyGlucoseCmd) Run(ctx *Context) error {
	g, err := classify.NewGlucose(c.Value, domain.MeasurementType(c.Type))
	if err != nil {
		return err
	}
	printClassification(ctx, g.String(), g.Classify())
	return nil
}

func printClassification(ctx *Context, reading string, c classify.Classification) {
	fmt.Fprintf(ctx.Out, "%s: %s [%s] %s\n", reading, c.Label, c.Category, c.Description)
}
