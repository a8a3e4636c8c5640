package pdf

import (
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"

	"github.com/finapp-br/reciboscan/internal/document"
)

// PageImage is one rasterized PDF page on disk. Page numbers are 1-based and
// recovered from the output filename, never from directory enumeration order.
type PageImage struct {
	Page int
	Path string
}

// RasterConfig holds rasterization parameters.
type RasterConfig struct {
	// PdftoppmPath overrides the pdftoppm binary location. Empty means the
	// POPPLER_PATH/POPPLER_BIN environment directories, then $PATH.
	PdftoppmPath string
	// DPI is the render resolution per page.
	DPI int
	// Grayscale renders pages in grayscale, which improves OCR accuracy.
	Grayscale bool
}

// DefaultRasterConfig returns the reference rasterization parameters.
func DefaultRasterConfig() RasterConfig {
	return RasterConfig{
		DPI:       300,
		Grayscale: true,
	}
}

// Rasterizer converts PDF documents into one PNG per page. The poppler
// pdftoppm utility is the primary backend; when it is unavailable or fails,
// pages are rendered in-process with MuPDF instead.
type Rasterizer struct {
	cfg RasterConfig
}

// NewRasterizer creates a rasterizer with the given configuration.
func NewRasterizer(cfg RasterConfig) *Rasterizer {
	if cfg.DPI <= 0 {
		cfg.DPI = DefaultRasterConfig().DPI
	}
	return &Rasterizer{cfg: cfg}
}

var pageFilePattern = regexp.MustCompile(`^page-(\d+)\.png$`)

// Rasterize renders every page of the PDF into outDir as page-N.png files and
// returns them in document page order. Fails with
// document.ErrRasterizationFailed when no backend produces any page.
func (r *Rasterizer) Rasterize(ctx context.Context, pdfPath, outDir string) ([]PageImage, error) {
	pages, err := r.rasterizePdftoppm(ctx, pdfPath, outDir)
	if err == nil && len(pages) > 0 {
		return pages, nil
	}
	if err != nil {
		slog.Debug("pdftoppm rasterization failed, falling back to mupdf",
			"pdf", pdfPath, "error", err)
	}

	pages, fitzErr := r.rasterizeFitz(pdfPath, outDir)
	if fitzErr == nil && len(pages) > 0 {
		return pages, nil
	}

	if err == nil {
		err = fitzErr
	}
	return nil, fmt.Errorf("%w: %v", document.ErrRasterizationFailed, err)
}

// rasterizePdftoppm shells out to poppler's pdftoppm.
func (r *Rasterizer) rasterizePdftoppm(ctx context.Context, pdfPath, outDir string) ([]PageImage, error) {
	bin := r.resolvePdftoppm()

	args := []string{"-png", "-r", strconv.Itoa(r.cfg.DPI)}
	if r.cfg.Grayscale {
		args = append(args, "-gray")
	}
	args = append(args, pdfPath, filepath.Join(outDir, "page"))

	cmd := exec.CommandContext(ctx, bin, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm: %w (output: %s)", err, out)
	}

	return collectPages(outDir)
}

// rasterizeFitz renders pages in-process with MuPDF, writing the same
// page-N.png naming scheme as the pdftoppm path.
func (r *Rasterizer) rasterizeFitz(pdfPath, outDir string) ([]PageImage, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("mupdf: opening pdf: %w", err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	if numPages < 1 {
		return nil, fmt.Errorf("mupdf: pdf has no pages")
	}

	pages := make([]PageImage, 0, numPages)
	for i := range numPages {
		img, err := doc.ImageDPI(i, float64(r.cfg.DPI))
		if err != nil {
			return nil, fmt.Errorf("mupdf: rendering page %d: %w", i+1, err)
		}

		out := filepath.Join(outDir, fmt.Sprintf("page-%d.png", i+1))
		f, err := os.Create(out)
		if err != nil {
			return nil, fmt.Errorf("mupdf: writing page %d: %w", i+1, err)
		}
		if r.cfg.Grayscale {
			err = png.Encode(f, imaging.Grayscale(img))
		} else {
			err = png.Encode(f, img)
		}
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return nil, fmt.Errorf("mupdf: encoding page %d: %w", i+1, err)
		}
		pages = append(pages, PageImage{Page: i + 1, Path: out})
	}
	return pages, nil
}

// collectPages gathers page-N.png files from outDir and orders them by the
// page number embedded in the filename. Directory enumeration order is not
// guaranteed and must not be relied on.
func collectPages(outDir string) ([]PageImage, error) {
	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("reading raster output dir: %w", err)
	}

	var pages []PageImage
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := pageFilePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		pages = append(pages, PageImage{Page: num, Path: filepath.Join(outDir, entry.Name())})
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Page < pages[j].Page })
	return pages, nil
}

// resolvePdftoppm finds the pdftoppm binary: explicit config first, then the
// POPPLER_PATH/POPPLER_BIN environment directories, then $PATH.
func (r *Rasterizer) resolvePdftoppm() string {
	if r.cfg.PdftoppmPath != "" {
		return r.cfg.PdftoppmPath
	}

	name := "pdftoppm"
	if runtime.GOOS == "windows" {
		name = "pdftoppm.exe"
	}
	for _, env := range []string{"POPPLER_PATH", "POPPLER_BIN"} {
		if dir := os.Getenv(env); dir != "" {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return name
}
