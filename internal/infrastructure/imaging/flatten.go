package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	_ "image/png"
)

const jpegQuality = 90

// FlattenToJPEG composites a possibly transparent image onto a white
// background and encodes it as a JPEG. JPEG has no alpha channel, so the
// cutout returned by background removal must be flattened before storage.
func FlattenToJPEG(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	flattened := image.NewRGBA(bounds)
	draw.Draw(flattened, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flattened, bounds, src, bounds.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flattened, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
