// Package testutil provides synthetic receipt fixtures for tests: rendered
// receipt images and representative pt-BR receipt texts.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ReceiptImageConfig holds configuration for generating synthetic receipt images.
type ReceiptImageConfig struct {
	Lines      []string
	Width      int
	Background color.Color
	Foreground color.Color
	FontFace   font.Face
}

// DefaultReceiptImageConfig returns a configuration rendering a typical
// point-of-sale receipt.
func DefaultReceiptImageConfig() ReceiptImageConfig {
	return ReceiptImageConfig{
		Lines: []string{
			"SUPERMERCADO COMETA LTDA",
			"CNPJ 12.345.678/0001-90",
			"CUPOM FISCAL",
			"Total: R$ 123,45",
			"03/08/2025 as 11:32",
		},
		Width:      400,
		Background: color.White,
		Foreground: color.Black,
		FontFace:   basicfont.Face7x13,
	}
}

// GenerateReceiptImage renders the configured lines top to bottom, one per
// row, like a thermal printer would.
func GenerateReceiptImage(config ReceiptImageConfig) *image.RGBA {
	lineHeight := config.FontFace.Metrics().Height.Ceil() + 4
	height := lineHeight*(len(config.Lines)+2) + 8

	img := image.NewRGBA(image.Rect(0, 0, config.Width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{config.Background}, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{config.Foreground},
		Face: config.FontFace,
	}
	for i, line := range config.Lines {
		drawer.Dot = fixed.P(8, lineHeight*(i+1)+8)
		drawer.DrawString(line)
	}

	return img
}

// EncodePNG encodes an image as PNG bytes.
func EncodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// SavePNG writes an image as a PNG file, creating parent directories.
func SavePNG(t *testing.T, img image.Image, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	f, err := os.Create(path) //nolint:gosec // G304: test-controlled path
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()
	require.NoError(t, png.Encode(f, img))
}
