// Package preprocess normalizes raster images for OCR: resize into a target
// width band, grayscale, contrast stretch, and global-threshold binarization.
// The pipeline is deterministic for a given input and threshold.
package preprocess

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
)

// Config holds preprocessing parameters.
type Config struct {
	// MinWidth and MaxWidth bound the working width in pixels. Images outside
	// the band are scaled (up or down) so the width lands inside it.
	MinWidth int
	MaxWidth int
	// Threshold is the global binarization cutoff (0-255). Pixels at or above
	// it become white, below it black.
	Threshold uint8
}

// DefaultConfig returns the reference preprocessing parameters tuned for
// receipt OCR.
func DefaultConfig() Config {
	return Config{
		MinWidth:  900,
		MaxWidth:  1800,
		Threshold: 170,
	}
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.MinWidth <= 0 || c.MaxWidth <= 0 {
		return fmt.Errorf("width bounds must be positive, got [%d, %d]", c.MinWidth, c.MaxWidth)
	}
	if c.MinWidth > c.MaxWidth {
		return fmt.Errorf("min width %d exceeds max width %d", c.MinWidth, c.MaxWidth)
	}
	return nil
}

// Run decodes raw image bytes and applies the full normalization pipeline,
// returning PNG-encoded output ready for OCR.
func Run(data []byte, cfg Config) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid preprocess config: %w", err)
	}

	img, err := Decode(data)
	if err != nil {
		return nil, err
	}

	processed := Apply(img, cfg)

	var buf bytes.Buffer
	if err := png.Encode(&buf, processed); err != nil {
		return nil, fmt.Errorf("encoding preprocessed image: %w", err)
	}
	return buf.Bytes(), nil
}

// Apply runs the normalization steps on a decoded image: resize into the
// width band, grayscale, histogram stretch, binarize.
func Apply(img image.Image, cfg Config) *image.Gray {
	resized := resizeToBand(img, cfg.MinWidth, cfg.MaxWidth)
	gray := toGray(resized)
	stretchContrast(gray)
	binarize(gray, cfg.Threshold)
	return gray
}

// resizeToBand scales the image so its width lies in [minWidth, maxWidth],
// preserving aspect ratio. Width already inside the band is left untouched.
func resizeToBand(img image.Image, minWidth, maxWidth int) image.Image {
	width := img.Bounds().Dx()
	target := width
	if target < minWidth {
		target = minWidth
	}
	if target > maxWidth {
		target = maxWidth
	}
	if target == width {
		return img
	}
	return imaging.Resize(img, target, 0, imaging.Lanczos)
}

// toGray converts any image to 8-bit grayscale. imaging.Grayscale keeps the
// NRGBA representation, so the luminance channel is copied out into a compact
// image.Gray buffer for the pixel passes below.
func toGray(img image.Image) *image.Gray {
	flat := imaging.Grayscale(img)
	bounds := flat.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.SetGray(x, y, color.GrayModel.Convert(flat.At(x, y)).(color.Gray))
		}
	}
	return gray
}

// stretchContrast linearly remaps pixel intensities so the darkest pixel maps
// to 0 and the brightest to 255. Uniform images are left unchanged.
func stretchContrast(gray *image.Gray) {
	lo, hi := uint8(255), uint8(0)
	for _, p := range gray.Pix {
		if p < lo {
			lo = p
		}
		if p > hi {
			hi = p
		}
	}
	if lo >= hi {
		return
	}
	span := int(hi) - int(lo)
	for i, p := range gray.Pix {
		gray.Pix[i] = uint8((int(p) - int(lo)) * 255 / span)
	}
}

// binarize applies a fixed global threshold in place.
func binarize(gray *image.Gray, threshold uint8) {
	for i, p := range gray.Pix {
		if p >= threshold {
			gray.Pix[i] = 255
		} else {
			gray.Pix[i] = 0
		}
	}
}
