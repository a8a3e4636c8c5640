package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/finapp-br/reciboscan/internal/document"
)

// Config holds OCR adapter settings.
type Config struct {
	// WorkerCommand is the argv prefix used to spawn the worker. Empty means
	// re-exec the current binary with the ocr-worker subcommand.
	WorkerCommand []string
	// TessdataDir is the directory holding the trained language model data,
	// passed to the worker as its second positional argument.
	TessdataDir string
	// Language is the tesseract language code.
	Language string
	// Timeout bounds one worker invocation. Exceeding it kills the process
	// and surfaces document.ErrOCRTimeout; there is no retry.
	Timeout time.Duration
}

// DefaultConfig returns the reference adapter settings for Brazilian
// Portuguese receipts.
func DefaultConfig() Config {
	tessdata := os.Getenv("TESSDATA_PREFIX")
	if tessdata == "" {
		tessdata = "tessdata"
	}
	return Config{
		TessdataDir: tessdata,
		Language:    "por",
		Timeout:     120 * time.Second,
	}
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("ocr timeout must be positive, got %s", c.Timeout)
	}
	if c.Language == "" {
		return errors.New("ocr language must not be empty")
	}
	return nil
}

// Adapter invokes the OCR worker subprocess and interprets its result.
type Adapter struct {
	cfg Config
}

// NewAdapter creates an adapter with the given configuration.
func NewAdapter(cfg Config) (*Adapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ocr config: %w", err)
	}
	return &Adapter{cfg: cfg}, nil
}

// Recognize runs OCR on the image at imagePath. Any non-success payload,
// non-zero exit, or malformed payload is reported uniformly as *document.OCRError;
// timeouts become document.ErrOCRTimeout after the worker is killed.
func (a *Adapter) Recognize(ctx context.Context, imagePath string) (PageResult, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	argv, err := a.workerArgv()
	if err != nil {
		return PageResult{}, fmt.Errorf("resolving ocr worker command: %w", err)
	}
	args := append(argv[1:], "--language", a.cfg.Language, imagePath, a.cfg.TessdataDir)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Bound the grace period between SIGKILL on timeout and giving up on Wait.
	cmd.WaitDelay = 5 * time.Second

	runErr := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return PageResult{}, fmt.Errorf("%w after %s", document.ErrOCRTimeout, a.cfg.Timeout)
	}

	var payload Payload
	parseErr := json.Unmarshal(stdout.Bytes(), &payload)

	switch {
	case parseErr != nil && runErr != nil:
		return PageResult{}, &document.OCRError{
			Code:    CodeOCRFail,
			Message: strings.TrimSpace(stderr.String()),
			Err:     runErr,
		}
	case parseErr != nil:
		return PageResult{}, &document.OCRError{
			Message: "malformed worker payload",
			Err:     parseErr,
		}
	case !payload.OK:
		return PageResult{}, &document.OCRError{
			Code:    payload.Error,
			Message: payload.Message,
			Err:     runErr,
		}
	case runErr != nil:
		// ok:true with a non-zero exit is a protocol violation; distrust it.
		return PageResult{}, &document.OCRError{
			Code:    CodeOCRFail,
			Message: "worker exited non-zero with ok payload",
			Err:     runErr,
		}
	}

	return PageResult{
		Text:       strings.TrimSpace(payload.Text),
		Confidence: payload.AvgConfidence,
	}, nil
}

func (a *Adapter) workerArgv() ([]string, error) {
	if len(a.cfg.WorkerCommand) > 0 {
		return a.cfg.WorkerCommand, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}
	return []string{exe, "ocr-worker"}, nil
}
