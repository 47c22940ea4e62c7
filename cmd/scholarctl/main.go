// Command scholarctl administers a scholarsearch deployment from the shell.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "scholarctl",
		Usage: "Manage and query the scholarship index",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Configuration file path (default: config/<env>.yaml)",
				Sources: cli.EnvVars("SCHOLARSEARCH_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "env",
				Usage:   "Environment name used to locate the config file",
				Value:   "local",
				Sources: cli.EnvVars("ENV"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			migrateCommand(),
			seedCommand(),
			reindexCommand(),
			searchCommand(),
			extractCommand(),
			versionCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}
