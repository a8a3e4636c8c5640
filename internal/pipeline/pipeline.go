// Package pipeline wires text extraction and field extraction into one
// synchronous call chain per document. Invocations share no mutable state, so
// any number of them may run concurrently.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finapp-br/reciboscan/internal/document"
	"github.com/finapp-br/reciboscan/internal/fields"
	"github.com/finapp-br/reciboscan/internal/ocr"
	"github.com/finapp-br/reciboscan/internal/pdf"
	"github.com/finapp-br/reciboscan/internal/preprocess"
)

// Config holds configuration for the pipeline and its components.
type Config struct {
	Preprocess preprocess.Config
	Raster     pdf.RasterConfig
	OCR        ocr.Config
	// PageWorkers bounds concurrent per-page OCR within one PDF. Page order
	// in the aggregated text is preserved regardless.
	PageWorkers int
}

// DefaultConfig returns a default pipeline config with component defaults.
func DefaultConfig() Config {
	return Config{
		Preprocess:  preprocess.DefaultConfig(),
		Raster:      pdf.DefaultRasterConfig(),
		OCR:         ocr.DefaultConfig(),
		PageWorkers: 4,
	}
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if err := c.Preprocess.Validate(); err != nil {
		return err
	}
	if err := c.OCR.Validate(); err != nil {
		return err
	}
	if c.Raster.DPI <= 0 {
		return fmt.Errorf("raster dpi must be positive, got %d", c.Raster.DPI)
	}
	return nil
}

// recognizer runs OCR on one image file.
type recognizer interface {
	Recognize(ctx context.Context, imagePath string) (ocr.PageResult, error)
}

// rasterizer renders a PDF into per-page images inside outDir.
type rasterizer interface {
	Rasterize(ctx context.Context, pdfPath, outDir string) ([]pdf.PageImage, error)
}

// Pipeline converts a raw receipt/invoice document into structured fields.
type Pipeline struct {
	cfg     Config
	recog   recognizer
	raster  rasterizer
	native  func(filename string) (string, error)
	analyze func(filename string) (*pdf.Info, error)
	now     func() time.Time
}

// New creates a pipeline from the given configuration.
func New(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline config: %w", err)
	}
	adapter, err := ocr.NewAdapter(cfg.OCR)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:     cfg,
		recog:   adapter,
		raster:  pdf.NewRasterizer(cfg.Raster),
		native:  pdf.ExtractNativeText,
		analyze: pdf.Analyze,
		now:     time.Now,
	}, nil
}

// Process runs the full pipeline on one document: extract text, then derive
// the amount, timestamp, and title. Fails with document.ErrNoTextExtracted
// when no strategy recovered any text; field extraction itself never fails.
// All transient artifacts are removed before Process returns, on every path.
func (p *Pipeline) Process(ctx context.Context, doc document.RawDocument) (document.ExtractedFields, error) {
	start := time.Now()

	ws, err := NewWorkspace()
	if err != nil {
		return document.ExtractedFields{}, err
	}
	defer func() {
		if err := ws.Close(); err != nil {
			slog.Warn("removing workspace", "file", doc.Filename, "error", err)
		}
	}()

	text, err := p.extractText(ctx, ws, doc)
	if err != nil {
		status := "error"
		if errors.Is(err, document.ErrNoTextExtracted) {
			status = "no_text"
		}
		documentsTotal.WithLabelValues("none", status).Inc()
		return document.ExtractedFields{}, err
	}

	occurredAt, found := fields.ExtractDateTime(text.Text)
	if !found {
		occurredAt = p.now().UTC()
	}

	result := document.ExtractedFields{
		AmountCents: fields.ExtractAmountCents(text.Text),
		OccurredAt:  occurredAt,
		Title:       fields.ExtractTitle(text.Text, doc.Filename),
		RawText:     text.Text,
		Engine:      text.Engine,
		Confidence:  text.Confidence,
	}

	engine := string(text.Engine)
	documentsTotal.WithLabelValues(engine, "ok").Inc()
	processingDuration.WithLabelValues(engine).Observe(time.Since(start).Seconds())
	extractedTextLength.Observe(float64(len(text.Text)))

	slog.Info("document processed",
		"file", doc.Filename,
		"engine", text.Engine,
		"amount_cents", result.AmountCents,
		"title", result.Title,
		"duration", time.Since(start))

	return result, nil
}
