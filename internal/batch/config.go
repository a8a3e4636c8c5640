package batch

import (
	"fmt"

	"github.com/finapp-br/reciboscan/internal/pipeline"
)

// Config holds all configuration for batch processing.
type Config struct {
	// Pipeline settings shared by every worker.
	Pipeline pipeline.Config

	// Workers bounds how many files are processed concurrently.
	Workers int

	// File discovery settings.
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// Quiet suppresses the statistics footer.
	Quiet bool
}

// DefaultConfig returns the default batch configuration.
func DefaultConfig() Config {
	return Config{
		Pipeline: pipeline.DefaultConfig(),
		Workers:  2,
	}
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return c.Pipeline.Validate()
}
