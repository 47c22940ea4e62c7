package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/scholarsearch/internal/app"
	"github.com/kailas-cloud/scholarsearch/internal/domain/scholarship"
)

// seedFile is the on-disk format accepted by the seed command.
type seedFile struct {
	Scholarships []scholarship.Scholarship `yaml:"scholarships"`
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load scholarships from a YAML file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "YAML file with a top-level scholarships list",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "reindex",
				Usage: "Rebuild the vector index after loading",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			records, err := readSeed(c.String("file"))
			if err != nil {
				return err
			}
			return withApp(ctx, c, func(ctx context.Context, a *app.App) error {
				if err := a.Store.Migrate(ctx); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
				ids, err := a.Store.Upsert(ctx, records)
				if err != nil {
					return fmt.Errorf("seed: %w", err)
				}
				fmt.Println(successStyle.Render(fmt.Sprintf("loaded %d scholarships", len(ids))))

				if !c.Bool("reindex") {
					return nil
				}
				report, err := a.Reindex(ctx)
				if err != nil {
					return err
				}
				fmt.Println(renderReport(report))
				return nil
			})
		},
	}
}

func readSeed(path string) ([]scholarship.Scholarship, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", path, err)
	}
	if len(f.Scholarships) == 0 {
		return nil, errors.New("seed file has no scholarships")
	}
	return f.Scholarships, nil
}
