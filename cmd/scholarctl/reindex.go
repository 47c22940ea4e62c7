package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/kailas-cloud/scholarsearch/internal/app"
)

func reindexCommand() *cli.Command {
	return &cli.Command{
		Name:  "reindex",
		Usage: "Embed every active scholarship into the vector index",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "rebuild",
				Usage: "drop the index first (after changing the embedding model or dimensions)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			run := (*app.App).Reindex
			if c.Bool("rebuild") {
				run = (*app.App).Rebuild
			}
			return withApp(ctx, c, func(ctx context.Context, a *app.App) error {
				report, err := run(a, ctx)
				if err != nil {
					return err
				}
				fmt.Println(renderReport(report))
				if report.Failed > 0 {
					return fmt.Errorf("%d of %d scholarships failed to index", report.Failed, report.Total)
				}
				return nil
			})
		},
	}
}
