package batch

import (
	"context"
	"os"

	"github.com/finapp-br/reciboscan/internal/document"
	"golang.org/x/sync/errgroup"
)

// Processor converts one raw document into structured fields. Satisfied by
// *pipeline.Pipeline.
type Processor interface {
	Process(ctx context.Context, doc document.RawDocument) (document.ExtractedFields, error)
}

// FileResult is the outcome of processing one file. Err is set when the file
// could not be read or yielded no fields; the other files are unaffected.
type FileResult struct {
	File   string
	Fields document.ExtractedFields
	Err    error
}

// processFilesParallel runs the processor over the files with at most workers
// concurrent invocations. Results come back in input order.
func processFilesParallel(ctx context.Context, proc Processor, files []string, workers int) []FileResult {
	results := make([]FileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, file := range files {
		g.Go(func() error {
			results[i] = processSingleFile(ctx, proc, file)
			return nil
		})
	}
	// Workers never return errors; failures live in the per-file results.
	_ = g.Wait()

	return results
}

// processSingleFile reads and processes one receipt file.
func processSingleFile(ctx context.Context, proc Processor, file string) FileResult {
	data, err := os.ReadFile(file) //nolint:gosec // G304: user-supplied input path
	if err != nil {
		return FileResult{File: file, Err: err}
	}

	fields, err := proc.Process(ctx, document.RawDocument{
		Data:      data,
		MediaType: document.MediaTypeFor(file),
		Filename:  file,
	})
	return FileResult{File: file, Fields: fields, Err: err}
}
