package extractor

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG format support
	_ "image/png"  // PNG format support

	"github.com/disintegration/imaging"
)

const defaultIconSize = 128

// IconConfig holds configuration for icon rendering
type IconConfig struct {
	// Size is the bounding box edge in pixels
	Size int
}

// renderIcon decodes an icon resource and fits it into a square PNG
func renderIcon(data []byte, cfg IconConfig) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode icon: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dy() == 0 || bounds.Dx() == 0 {
		return nil, fmt.Errorf("invalid icon dimensions: %dx%d", bounds.Dx(), bounds.Dy())
	}

	size := cfg.Size
	if size <= 0 {
		size = defaultIconSize
	}

	// Fit keeps the aspect ratio and only scales down
	fitted := imaging.Fit(img, size, size, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, fitted, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode icon: %w", err)
	}
	return buf.Bytes(), nil
}
