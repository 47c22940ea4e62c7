package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/kailas-cloud/scholarsearch/internal/app"
	"github.com/kailas-cloud/scholarsearch/internal/config"
	logpkg "github.com/kailas-cloud/scholarsearch/internal/logger"
)

func loadConfig(c *cli.Command) (config.Config, error) {
	if path := c.String("config"); path != "" {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}
	cfg, err := config.Load(c.String("env"))
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func newLogger(c *cli.Command) (*zap.Logger, error) {
	level := ""
	if c.Bool("debug") {
		level = "debug"
	}
	logger, err := logpkg.NewLogger("cli", level)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return logger, nil
}

// withApp builds the application for one command and closes it afterwards.
func withApp(ctx context.Context, c *cli.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(logpkg.ContextWithLogger(ctx, logger), a)
}
