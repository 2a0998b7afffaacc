package converter

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"strings"
)

// Quality used for lossy encodings, 0.92 on a 1-100 scale.
const lossyQuality = 92

// rasterMediaType maps a raster target to its media type.
// Only jpg, jpeg, png and webp are accepted.
func rasterMediaType(target string) (string, error) {
	switch strings.ToLower(target) {
	case "jpg", "jpeg":
		return mimeJPEG, nil
	case "png":
		return mimePNG, nil
	case "webp":
		return mimeWEBP, nil
	default:
		return "", &UnsupportedTargetFormatError{Target: target}
	}
}

func isLossyTarget(target string) bool {
	switch strings.ToLower(target) {
	case "jpg", "jpeg":
		return true
	}
	return false
}

// encodeSurface re-encodes surface into target.
func encodeSurface(surface image.Image, target string) (*ConversionResult, error) {
	mediaType, err := rasterMediaType(target)
	if err != nil {
		return nil, err
	}

	format := strings.ToLower(target)
	if b := surface.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, &EncodeError{Format: format}
	}

	var data []byte
	switch mediaType {
	case mimeJPEG:
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, surface, &jpeg.Options{Quality: lossyQuality}); err != nil {
			return nil, &EncodeError{Format: format, Err: err}
		}
		data = buf.Bytes()
	case mimePNG:
		var buf bytes.Buffer
		if err := png.Encode(&buf, surface); err != nil {
			return nil, &EncodeError{Format: format, Err: err}
		}
		data = buf.Bytes()
	case mimeWEBP:
		data, err = encodeWebP(surface, lossyQuality)
		if err != nil {
			return nil, &EncodeError{Format: format, Err: err}
		}
	}

	if len(data) == 0 {
		return nil, &EncodeError{Format: format}
	}
	return &ConversionResult{Data: data, MediaType: mediaType}, nil
}
