package preprocess

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testImagePNG builds a small gradient image and returns it PNG-encoded.
func testImagePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			val := uint8((x*7 + y*13) % 256)
			img.Set(x, y, color.RGBA{val, val, val, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 900, cfg.MinWidth)
	assert.Equal(t, 1800, cfg.MaxWidth)
	assert.Equal(t, uint8(170), cfg.Threshold)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default ok", DefaultConfig(), false},
		{"zero min width", Config{MinWidth: 0, MaxWidth: 100, Threshold: 170}, true},
		{"inverted band", Config{MinWidth: 200, MaxWidth: 100, Threshold: 170}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRun_UpscalesNarrowImages(t *testing.T) {
	data := testImagePNG(t, 300, 200)
	out, err := Run(data, DefaultConfig())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 900, img.Bounds().Dx())
	// Aspect ratio preserved.
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestRun_DownscalesWideImages(t *testing.T) {
	data := testImagePNG(t, 3600, 400)
	out, err := Run(data, DefaultConfig())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 1800, img.Bounds().Dx())
}

func TestRun_KeepsWidthInsideBand(t *testing.T) {
	data := testImagePNG(t, 1200, 800)
	out, err := Run(data, DefaultConfig())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 800, img.Bounds().Dy())
}

func TestRun_OutputIsBinary(t *testing.T) {
	data := testImagePNG(t, 1000, 100)
	out, err := Run(data, DefaultConfig())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			if g.Y != 0 && g.Y != 255 {
				t.Fatalf("pixel at (%d,%d) is %d, expected 0 or 255", x, y, g.Y)
			}
		}
	}
}

func TestRun_RejectsGarbage(t *testing.T) {
	_, err := Run([]byte("not an image at all"), DefaultConfig())
	assert.Error(t, err)
}

func TestRun_RejectsInvalidConfig(t *testing.T) {
	data := testImagePNG(t, 100, 100)
	_, err := Run(data, Config{MinWidth: 500, MaxWidth: 100, Threshold: 170})
	assert.Error(t, err)
}

func TestStretchContrast(t *testing.T) {
	t.Run("remaps to full range", func(t *testing.T) {
		gray := image.NewGray(image.Rect(0, 0, 3, 1))
		gray.Pix = []uint8{100, 150, 200}
		stretchContrast(gray)
		assert.Equal(t, []uint8{0, 127, 255}, gray.Pix)
	})

	t.Run("uniform image untouched", func(t *testing.T) {
		gray := image.NewGray(image.Rect(0, 0, 3, 1))
		gray.Pix = []uint8{42, 42, 42}
		stretchContrast(gray)
		assert.Equal(t, []uint8{42, 42, 42}, gray.Pix)
	})
}

func TestBinarize(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 4, 1))
	gray.Pix = []uint8{0, 169, 170, 255}
	binarize(gray, 170)
	assert.Equal(t, []uint8{0, 0, 255, 255}, gray.Pix)
}

func TestIsHEIC(t *testing.T) {
	heicHeader := append([]byte{0, 0, 0, 24}, []byte("ftypheic")...)
	heicHeader = append(heicHeader, make([]byte, 8)...)
	assert.True(t, isHEIC(heicHeader))
	assert.False(t, isHEIC([]byte("\x89PNG\r\n\x1a\n12345678")))
	assert.False(t, isHEIC([]byte("short")))
}
