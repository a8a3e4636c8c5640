package config

import (
	"fmt"
	"time"

	"github.com/finapp-br/reciboscan/internal/ocr"
	"github.com/finapp-br/reciboscan/internal/pdf"
	"github.com/finapp-br/reciboscan/internal/pipeline"
	"github.com/finapp-br/reciboscan/internal/preprocess"
)

// Config represents the complete configuration for the reciboscan CLI. It
// supports loading from configuration files, environment variables, and
// command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Pipeline configuration
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline" json:"pipeline"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Batch processing configuration
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`
}

// PipelineConfig contains extraction pipeline settings.
type PipelineConfig struct {
	Preprocess PreprocessConfig `mapstructure:"preprocess" yaml:"preprocess" json:"preprocess"`
	Raster     RasterConfig     `mapstructure:"raster" yaml:"raster" json:"raster"`
	OCR        OCRConfig        `mapstructure:"ocr" yaml:"ocr" json:"ocr"`

	// PageWorkers bounds concurrent per-page OCR within one PDF.
	PageWorkers int `mapstructure:"page_workers" yaml:"page_workers" json:"page_workers"`
}

// PreprocessConfig contains image normalization settings.
type PreprocessConfig struct {
	MinWidth  int `mapstructure:"min_width" yaml:"min_width" json:"min_width"`
	MaxWidth  int `mapstructure:"max_width" yaml:"max_width" json:"max_width"`
	Threshold int `mapstructure:"threshold" yaml:"threshold" json:"threshold"`
}

// RasterConfig contains PDF rasterization settings.
type RasterConfig struct {
	DPI          int    `mapstructure:"dpi" yaml:"dpi" json:"dpi"`
	Grayscale    bool   `mapstructure:"grayscale" yaml:"grayscale" json:"grayscale"`
	PdftoppmPath string `mapstructure:"pdftoppm_path" yaml:"pdftoppm_path" json:"pdftoppm_path"`
}

// OCRConfig contains OCR worker settings.
type OCRConfig struct {
	TessdataDir    string   `mapstructure:"tessdata_dir" yaml:"tessdata_dir" json:"tessdata_dir"`
	Language       string   `mapstructure:"language" yaml:"language" json:"language"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds" yaml:"timeout_seconds" json:"timeout_seconds"`
	WorkerCommand  []string `mapstructure:"worker_command" yaml:"worker_command" json:"worker_command"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	File   string `mapstructure:"file" yaml:"file" json:"file"`
}

// BatchConfig contains batch processing settings.
type BatchConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	pre := preprocess.DefaultConfig()
	raster := pdf.DefaultRasterConfig()
	ocrCfg := ocr.DefaultConfig()

	return &Config{
		LogLevel: "info",
		Verbose:  false,
		Pipeline: PipelineConfig{
			Preprocess: PreprocessConfig{
				MinWidth:  pre.MinWidth,
				MaxWidth:  pre.MaxWidth,
				Threshold: int(pre.Threshold),
			},
			Raster: RasterConfig{
				DPI:       raster.DPI,
				Grayscale: raster.Grayscale,
			},
			OCR: OCRConfig{
				TessdataDir:    ocrCfg.TessdataDir,
				Language:       ocrCfg.Language,
				TimeoutSeconds: int(ocrCfg.Timeout / time.Second),
			},
			PageWorkers: 4,
		},
		Output: OutputConfig{Format: "text"},
		Batch:  BatchConfig{Workers: 2},
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q (expected debug, info, warn, or error)", c.LogLevel)
	}

	switch c.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid output format %q (expected text or json)", c.Output.Format)
	}

	if c.Pipeline.Preprocess.Threshold < 0 || c.Pipeline.Preprocess.Threshold > 255 {
		return fmt.Errorf("preprocess threshold must be in [0, 255], got %d", c.Pipeline.Preprocess.Threshold)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch workers must be at least 1, got %d", c.Batch.Workers)
	}

	return c.PipelineConfig().Validate()
}

// PipelineConfig translates the flat CLI configuration into the pipeline's
// component configs.
func (c *Config) PipelineConfig() pipeline.Config {
	return pipeline.Config{
		Preprocess: preprocess.Config{
			MinWidth:  c.Pipeline.Preprocess.MinWidth,
			MaxWidth:  c.Pipeline.Preprocess.MaxWidth,
			Threshold: uint8(c.Pipeline.Preprocess.Threshold),
		},
		Raster: pdf.RasterConfig{
			DPI:          c.Pipeline.Raster.DPI,
			Grayscale:    c.Pipeline.Raster.Grayscale,
			PdftoppmPath: c.Pipeline.Raster.PdftoppmPath,
		},
		OCR: ocr.Config{
			WorkerCommand: c.Pipeline.OCR.WorkerCommand,
			TessdataDir:   c.Pipeline.OCR.TessdataDir,
			Language:      c.Pipeline.OCR.Language,
			Timeout:       time.Duration(c.Pipeline.OCR.TimeoutSeconds) * time.Second,
		},
		PageWorkers: c.Pipeline.PageWorkers,
	}
}
