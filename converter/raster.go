package converter

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// convertImage decodes a bitmap, draws it unscaled onto a fresh surface and
// re-encodes the surface. Identity conversions take the same path.
func convertImage(file InputFile, targetFormat string) (*ConversionResult, error) {
	if _, err := rasterMediaType(targetFormat); err != nil {
		return nil, err
	}

	data, err := readInput(file)
	if err != nil {
		return nil, err
	}

	img, err := decodeBitmap(data)
	if err != nil {
		return nil, err
	}

	return encodeSurface(drawOnSurface(img), targetFormat)
}

func decodeBitmap(data []byte) (image.Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Format: "image", Err: err}
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, &DecodeError{Format: format}
	}
	return img, nil
}

// drawOnSurface copies img at (0,0) onto an RGBA surface of the same size.
// draw.Src keeps the alpha channel as decoded.
func drawOnSurface(img image.Image) *image.RGBA {
	b := img.Bounds()
	surface := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(surface, surface.Bounds(), img, b.Min, draw.Src)
	return surface
}
