// Package batch processes many receipt files through the extraction pipeline
// concurrently. Per-file failures are collected, not fatal.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/finapp-br/reciboscan/internal/pipeline"
)

// Run discovers the receipt files named by args and processes them with the
// given configuration.
func Run(ctx context.Context, args []string, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	files, err := discoverFiles(args, cfg.Recursive, cfg.IncludePatterns, cfg.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to discover receipt files: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no processable files found")
	}

	pl, err := pipeline.New(cfg.Pipeline)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	results := processFilesParallel(ctx, pl, files, cfg.Workers)

	return &Result{
		Results:     results,
		Duration:    time.Since(startTime),
		WorkerCount: cfg.Workers,
	}, nil
}

// Result holds the outcome of one batch run.
type Result struct {
	Results     []FileResult
	Duration    time.Duration
	WorkerCount int
}

// Failed counts the files that could not be processed.
func (r *Result) Failed() int {
	var n int
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// FormatResults formats the batch results in the specified format.
func (r *Result) FormatResults(format string) (string, error) {
	return formatResults(r.Results, format)
}

// SaveResults writes the formatted results to a file or to out.
func (r *Result) SaveResults(out io.Writer, format, outputFile string) error {
	output, err := r.FormatResults(format)
	if err != nil {
		return err
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(out, "Results written to %s\n", outputFile)
		return nil
	}
	fmt.Fprintln(out, output)
	return nil
}

// PrintStats prints processing statistics.
func (r *Result) PrintStats(out io.Writer) {
	processed := len(r.Results) - r.Failed()
	fmt.Fprintf(out, "\nProcessing Statistics:\n")
	fmt.Fprintf(out, "  Total files: %d\n", len(r.Results))
	fmt.Fprintf(out, "  Processed: %d\n", processed)
	fmt.Fprintf(out, "  Failed: %d\n", r.Failed())
	fmt.Fprintf(out, "  Workers: %d\n", r.WorkerCount)
	fmt.Fprintf(out, "  Duration: %v\n", r.Duration.Round(time.Millisecond))
	if len(r.Results) > 0 {
		avg := r.Duration / time.Duration(len(r.Results))
		fmt.Fprintf(out, "  Avg per file: %v\n", avg.Round(time.Millisecond))
	}
}
