package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/woodshed/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	if err := shared.LoadEnv(); err != nil {
		logger.Warn("ignoring env file", "error", err)
	}

	config, err := loadConfig(defaultConfigPath, nil)
	if err != nil {
		logger.Warn("failed to load config, using defaults", "error", err)
		config = shared.DefaultConfig()
		config.ApplyEnv()
	}
	shared.SetLogLevel(logger, shared.ParseLevel(config.Log.Level))

	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "woodshed",
		Usage:    "Track the songs you are learning, section by section",
		Version:  "0.1.0",
		Flags:    []cli.Flag{configFlag()},
		Action:   runner.TUI,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
