// Package commands contains the CLI commands for the application
package commands

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Flags holds command-line values. Zero values leave the kubetypes.json setting in place.
type Flags struct {
	LogLevel   string
	Version    string
	Output     string
	SchemaFile string
	SchemaURL  string
	Language   string
	Retries    int
}

type Controller struct {
	Flags *Flags
}

// Generate writes the type definitions for one Kubernetes version
func (c *Controller) Generate(ctx context.Context) error {
	_, err := NewGenerateCommand(c.Flags, log.Logger).Execute(ctx)
	return err
}

// Watch regenerates whenever the local schema file changes
func (c *Controller) Watch(ctx context.Context) error {
	return NewWatchCommand(c.Flags, log.Logger).Execute(ctx)
}

// Init creates kubetypes.json in the current directory
func (c *Controller) Init(ctx context.Context) error {
	return NewInitCommand().Run(ctx)
}
