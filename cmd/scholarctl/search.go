package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/kailas-cloud/scholarsearch/internal/app"
)

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search scholarships with a free-text query",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the raw result as JSON",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			query := strings.Join(c.Args().Slice(), " ")
			return withApp(ctx, c, func(ctx context.Context, a *app.App) error {
				res, err := a.Search.Search(ctx, query)
				if err != nil {
					return fmt.Errorf("search: %w", err)
				}
				if c.Bool("json") {
					enc := json.NewEncoder(os.Stdout)
					enc.SetIndent("", "  ")
					return enc.Encode(struct {
						Items      any `json:"items"`
						Resolution any `json:"interpretation,omitempty"`
					}{res.Items(), res.Resolution()})
				}
				fmt.Print(renderResult(query, &res))
				return nil
			})
		},
	}
}

func extractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "Show how a query is interpreted, without searching",
		ArgsUsage: "<query>",
		Action: func(ctx context.Context, c *cli.Command) error {
			query := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(query) == "" {
				return fmt.Errorf("query is required")
			}
			return withApp(ctx, c, func(ctx context.Context, a *app.App) error {
				res := a.Extraction.Resolve(ctx, query)
				fmt.Print(renderResolution(&res))
				return nil
			})
		},
	}
}
