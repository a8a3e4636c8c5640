package preprocess

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"strings"

	"github.com/gen2brain/heic"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Decode decodes raw image bytes into an image. HEIC/HEIF (common for phone
// camera uploads) is sniffed by its ftyp box because Go's image registry has
// no decoder for it; everything else goes through image.Decode.
func Decode(data []byte) (image.Image, error) {
	if isHEIC(data) {
		img, err := heic.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decoding heic image: %w", err)
		}
		return img, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if strings.Contains(err.Error(), "unknown format") {
			return nil, fmt.Errorf("unsupported image format (supported: jpeg, png, gif, webp, heic): %w", err)
		}
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	_ = format
	return img, nil
}

// isHEIC checks for an ISO-BMFF ftyp box carrying a HEIC/HEIF brand.
func isHEIC(data []byte) bool {
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heif", "mif1", "msf1":
		return true
	}
	return false
}
