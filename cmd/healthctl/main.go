package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/vladimiradmaev/health-tracker/internal/app"
	"github.com/vladimiradmaev/health-tracker/internal/cli"
	"github.com/vladimiradmaev/health-tracker/internal/config"
	"github.com/vladimiradmaev/health-tracker/internal/logger"
)

func main() {
	_ = godotenv.Load()

	var root cli.CLI
	kctx := kong.Parse(&root,
		kong.Name("healthctl"),
		kong.Description("Operator tools for the health tracker bot"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	open := func() (*app.App, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		// commands print their own output, the log goes to stderr
		logCfg := cfg.Logger.ToLogger()
		logCfg.OutputPath = "stdout"
		logCfg.Format = "text"
		if err := logger.InitWithWriter(logCfg, os.Stderr); err != nil {
			return nil, err
		}
		return app.New(cfg)
	}

	err := kctx.Run(&cli.Context{
		Context: context.Background(),
		Out:     os.Stdout,
		Open:    open,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
