package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/kailas-cloud/scholarsearch/internal/app"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create or update the relational schema",
		Action: func(ctx context.Context, c *cli.Command) error {
			return withApp(ctx, c, func(ctx context.Context, a *app.App) error {
				if err := a.Store.Migrate(ctx); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
				fmt.Println(successStyle.Render("schema is up to date"))
				return nil
			})
		},
	}
}
