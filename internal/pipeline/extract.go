package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/finapp-br/reciboscan/internal/document"
	"github.com/finapp-br/reciboscan/internal/ocr"
	"github.com/finapp-br/reciboscan/internal/pdf"
	"github.com/finapp-br/reciboscan/internal/preprocess"
)

// textStrategy is one way of recovering text from a document. Strategies are
// evaluated in order; the first one returning non-empty text wins.
type textStrategy interface {
	Name() string
	Extract(ctx context.Context, ws *Workspace, docPath string, doc document.RawDocument) (document.ExtractedText, error)
}

// extractText is the text-extraction coordinator: it picks the strategy chain
// for the document type and walks it until one succeeds. All strategies
// exhausted means document.ErrNoTextExtracted.
func (p *Pipeline) extractText(ctx context.Context, ws *Workspace, doc document.RawDocument) (document.ExtractedText, error) {
	docPath, err := ws.SaveOriginal(doc)
	if err != nil {
		return document.ExtractedText{}, err
	}

	var chain []textStrategy
	if doc.IsPDF() {
		chain = []textStrategy{nativeTextStrategy{extract: p.native}, p.ocrStrategy()}
	} else {
		chain = []textStrategy{p.ocrStrategy()}
	}

	var lastErr error
	for _, strategy := range chain {
		text, err := strategy.Extract(ctx, ws, docPath, doc)
		if err != nil {
			slog.Debug("text extraction strategy failed",
				"strategy", strategy.Name(), "file", doc.Filename, "error", err)
			lastErr = err
			continue
		}
		if strings.TrimSpace(text.Text) == "" {
			slog.Debug("text extraction strategy returned empty text",
				"strategy", strategy.Name(), "file", doc.Filename)
			continue
		}
		return text, nil
	}

	if lastErr != nil {
		return document.ExtractedText{}, fmt.Errorf("%w: %v", document.ErrNoTextExtracted, lastErr)
	}
	return document.ExtractedText{}, document.ErrNoTextExtracted
}

// nativeTextStrategy pulls embedded text from the PDF content stream,
// bypassing OCR entirely.
type nativeTextStrategy struct {
	extract func(filename string) (string, error)
}

func (nativeTextStrategy) Name() string { return "native-text" }

func (s nativeTextStrategy) Extract(_ context.Context, _ *Workspace, docPath string, _ document.RawDocument) (document.ExtractedText, error) {
	text, err := s.extract(docPath)
	if err != nil {
		return document.ExtractedText{}, err
	}
	return document.ExtractedText{
		Text:   strings.TrimSpace(text),
		Engine: document.EngineNativeText,
	}, nil
}

// ocrRunner rasterizes (for PDFs), preprocesses, and recognizes.
type ocrRunner struct {
	pre         preprocess.Config
	raster      rasterizer
	recognize   recognizer
	analyze     func(string) (*pdf.Info, error)
	pageWorkers int
}

func (p *Pipeline) ocrStrategy() *ocrRunner {
	return &ocrRunner{
		pre:         p.cfg.Preprocess,
		raster:      p.raster,
		recognize:   p.recog,
		analyze:     p.analyze,
		pageWorkers: p.cfg.PageWorkers,
	}
}

func (*ocrRunner) Name() string { return "ocr" }

func (r *ocrRunner) Extract(ctx context.Context, ws *Workspace, docPath string, doc document.RawDocument) (document.ExtractedText, error) {
	if doc.IsPDF() {
		return r.extractPDF(ctx, ws, docPath)
	}
	return r.extractImage(ctx, ws, doc)
}

// extractImage preprocesses the uploaded image once and recognizes it whole.
func (r *ocrRunner) extractImage(ctx context.Context, ws *Workspace, doc document.RawDocument) (document.ExtractedText, error) {
	prepped, err := preprocess.Run(doc.Data, r.pre)
	if err != nil {
		return document.ExtractedText{}, fmt.Errorf("preprocessing image: %w", err)
	}
	prepPath, err := ws.WriteArtifact("prep-image.png", prepped)
	if err != nil {
		return document.ExtractedText{}, err
	}

	result, err := r.recognize.Recognize(ctx, prepPath)
	if err != nil {
		ocrPageFailures.Inc()
		return document.ExtractedText{}, err
	}

	return document.ExtractedText{
		Text:       result.Text,
		Engine:     document.EngineOCR,
		Confidence: result.Confidence,
	}, nil
}

// extractPDF rasterizes every page, then OCRs pages concurrently. Results are
// written into a page-indexed slice so the aggregated text is always in page
// order, whatever order the workers finish in.
func (r *ocrRunner) extractPDF(ctx context.Context, ws *Workspace, docPath string) (document.ExtractedText, error) {
	info, err := r.analyze(docPath)
	if err != nil {
		return document.ExtractedText{}, fmt.Errorf("%w: %v", document.ErrRasterizationFailed, err)
	}
	slog.Debug("rasterizing pdf for ocr", "file", docPath, "pages", info.PageCount)

	pages, err := r.raster.Rasterize(ctx, docPath, ws.Root())
	if err != nil {
		return document.ExtractedText{}, err
	}

	results := make([]ocr.PageResult, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.pageWorkers, 1))
	for i, page := range pages {
		g.Go(func() error {
			res, err := r.recognizePage(gctx, ws, page)
			if err != nil {
				ocrPageFailures.Inc()
				return fmt.Errorf("ocr on page %d: %w", page.Page, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return document.ExtractedText{}, err
	}

	return aggregatePages(results), nil
}

func (r *ocrRunner) recognizePage(ctx context.Context, ws *Workspace, page pdf.PageImage) (ocr.PageResult, error) {
	raw, err := os.ReadFile(page.Path)
	if err != nil {
		return ocr.PageResult{}, fmt.Errorf("reading page image: %w", err)
	}
	prepped, err := preprocess.Run(raw, r.pre)
	if err != nil {
		return ocr.PageResult{}, fmt.Errorf("preprocessing page: %w", err)
	}
	prepPath, err := ws.WriteArtifact(fmt.Sprintf("prep-%d.png", page.Page), prepped)
	if err != nil {
		return ocr.PageResult{}, err
	}
	return r.recognize.Recognize(ctx, prepPath)
}

// aggregatePages concatenates per-page text in page order and averages the
// confidences that were reported. Pages without a confidence are excluded
// from the mean; if none report one, the overall confidence is absent.
func aggregatePages(results []ocr.PageResult) document.ExtractedText {
	var parts []string
	var confSum float64
	var confCount int
	for _, res := range results {
		if res.Text != "" {
			parts = append(parts, res.Text)
		}
		if res.Confidence != nil {
			confSum += *res.Confidence
			confCount++
		}
	}

	text := document.ExtractedText{
		Text:   strings.TrimSpace(strings.Join(parts, "\n")),
		Engine: document.EngineOCR,
	}
	if confCount > 0 {
		avg := confSum / float64(confCount)
		text.Confidence = &avg
	}
	return text
}
