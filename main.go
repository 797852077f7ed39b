package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/okra-platform/kubetypes/internal/commands"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	ctrl := &commands.Controller{
		Flags: &commands.Flags{},
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	schemaFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "out",
			Aliases:     []string{"o"},
			Usage:       "output directory or URL; files are written under OUT/VERSION",
			Destination: &ctrl.Flags.Output,
		},
		&cli.StringFlag{
			Name:        "schema-file",
			Usage:       "read the OpenAPI document from a local JSON or YAML file",
			Destination: &ctrl.Flags.SchemaFile,
		},
		&cli.StringFlag{
			Name:        "schema-url",
			Usage:       "URL template of the OpenAPI document, {version} is replaced with the release tag",
			Destination: &ctrl.Flags.SchemaURL,
		},
		&cli.StringFlag{
			Name:        "language",
			Usage:       "target language",
			Destination: &ctrl.Flags.Language,
		},
		&cli.IntFlag{
			Name:  "retries",
			Usage: "maximum number of download retries",
		},
	}

	// captures the positional version and the int flag, which has no int destination
	before := func(ctx context.Context, c *cli.Command) (context.Context, error) {
		ctrl.Flags.Version = c.Args().First()
		ctrl.Flags.Retries = int(c.Int("retries"))
		return ctx, nil
	}

	app := &cli.Command{
		Name:    "kubetypes",
		Usage:   "Generate TypeScript type definitions from the Kubernetes OpenAPI schema",
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("KUBETYPES_LOG_LEVEL"),
				Value:       "info",
				Destination: &ctrl.Flags.LogLevel,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			log.Logger = log.Level(level)

			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Usage:     "Generate type definitions for a Kubernetes version",
				ArgsUsage: "[VERSION]",
				Flags:     schemaFlags,
				Before:    before,
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Generate(ctx)
				},
			},
			{
				Name:      "watch",
				Usage:     "Regenerate whenever the local schema file changes",
				ArgsUsage: "[VERSION]",
				Flags:     schemaFlags,
				Before:    before,
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Watch(ctx)
				},
			},
			{
				Name:  "init",
				Usage: "Create a kubetypes.json in the current directory",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Init(ctx)
				},
			},
		},
	}

	ctx := context.Background()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run kubetypes")
	}
}
