package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const redSquareSVG = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="200" height="100" viewBox="0 0 20 10">
  <rect x="0" y="0" width="10" height="10" fill="#ff0000"/>
</svg>`

func convertSVG(t *testing.T, svg, target string) (*ConversionResult, error) {
	t.Helper()
	return NewEngine(nil).Convert(&memFile{name: "drawing.svg", data: []byte(svg)}, target)
}

func TestSVGExplicitDimensions(t *testing.T) {
	result, err := convertSVG(t, redSquareSVG, "png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", result.MediaType)

	img, format := decodeOutput(t, result.Data)
	assert.Equal(t, "png", format)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())

	r, _, _, a := img.At(50, 50).RGBA()
	assert.Equal(t, uint32(0xffff), a, "rect is scaled to the surface")
	assert.Greater(t, r>>8, uint32(200))

	_, _, _, a = img.At(150, 50).RGBA()
	assert.Equal(t, uint32(0), a, "png keeps transparency")
}

func TestSVGDefaultDimensions(t *testing.T) {
	result, err := convertSVG(t, `<svg xmlns="http://www.w3.org/2000/svg"><circle cx="5" cy="5" r="4"/></svg>`, "png")
	require.NoError(t, err)

	img, _ := decodeOutput(t, result.Data)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())
}

func TestSVGViewBoxDimensions(t *testing.T) {
	result, err := convertSVG(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 32"></svg>`, "png")
	require.NoError(t, err)

	img, _ := decodeOutput(t, result.Data)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestSVGDimensionsAreClamped(t *testing.T) {
	result, err := convertSVG(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10000 10000"></svg>`, "png")
	require.NoError(t, err)

	img, _ := decodeOutput(t, result.Data)
	assert.Equal(t, 4096, img.Bounds().Dx())
	assert.Equal(t, 4096, img.Bounds().Dy())
}

func TestSVGToJPEGHasWhiteBackground(t *testing.T) {
	result, err := convertSVG(t, redSquareSVG, "jpg")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", result.MediaType)

	img, format := decodeOutput(t, result.Data)
	assert.Equal(t, "jpeg", format)

	r, g, b, _ := img.At(180, 50).RGBA()
	assert.Greater(t, r>>8, uint32(240))
	assert.Greater(t, g>>8, uint32(240))
	assert.Greater(t, b>>8, uint32(240))
}

func TestResolveDimension(t *testing.T) {
	assert.Equal(t, 120, resolveDimension(120.9, 50, 40, 300))
	assert.Equal(t, 50, resolveDimension(0, 50, 40, 300))
	assert.Equal(t, 40, resolveDimension(0, 0, 40, 300))
	assert.Equal(t, 150, resolveDimension(0, 0, 0, 150))
	assert.Equal(t, 4096, resolveDimension(5000, 0, 0, 300))
}

func TestParseLength(t *testing.T) {
	assert.Equal(t, 200.0, parseLength("200"))
	assert.Equal(t, 12.5, parseLength(" 12.5px "))
	assert.Equal(t, 0.0, parseLength("100%"))
	assert.Equal(t, 0.0, parseLength("-4"))
	assert.Equal(t, 0.0, parseLength("auto"))
	assert.Equal(t, 0.0, parseLength("3em"))
	assert.Equal(t, 96.0, parseLength("1in"))
	assert.Equal(t, 48.0, parseLength("36pt"))
	assert.InDelta(t, 75.59, parseLength("2cm"), 0.01)
	assert.InDelta(t, 37.80, parseLength("10MM"), 0.01)
}

func TestSVGAbsoluteUnits(t *testing.T) {
	result, err := convertSVG(t, `<svg xmlns="http://www.w3.org/2000/svg" width="2cm" height="1cm" viewBox="0 0 20 10">
  <rect width="20" height="10" fill="#00ff00"/>
</svg>`, "png")
	require.NoError(t, err)

	img, _ := decodeOutput(t, result.Data)
	assert.Equal(t, 75, img.Bounds().Dx())
	assert.Equal(t, 37, img.Bounds().Dy())
}

func TestSVGPercentSizeUsesViewBox(t *testing.T) {
	result, err := convertSVG(t, `<svg xmlns="http://www.w3.org/2000/svg" width="100%" height="100%" viewBox="0 0 64 32"/>`, "png")
	require.NoError(t, err)

	img, _ := decodeOutput(t, result.Data)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestParseViewBox(t *testing.T) {
	w, h := parseViewBox("0,0,64,32")
	assert.Equal(t, 64.0, w)
	assert.Equal(t, 32.0, h)

	w, h = parseViewBox("0 0 -1 5")
	assert.Zero(t, w)
	assert.Zero(t, h)

	w, _ = parseViewBox("0 0 10")
	assert.Zero(t, w)
}

func TestSVGErrors(t *testing.T) {
	var decodeErr *DecodeError

	_, err := convertSVG(t, `<html><body/></html>`, "png")
	assert.ErrorAs(t, err, &decodeErr)

	_, err = convertSVG(t, `not xml at all`, "png")
	assert.ErrorAs(t, err, &decodeErr)

	var unsupported *UnsupportedTargetFormatError
	_, err = svgToRaster(&memFile{name: "drawing.svg", data: []byte(redSquareSVG)}, "gif")
	assert.ErrorAs(t, err, &unsupported)

	var encodeErr *EncodeError
	_, err = convertSVG(t, `<svg xmlns="http://www.w3.org/2000/svg" width="0.5" height="10"></svg>`, "png")
	assert.ErrorAs(t, err, &encodeErr)
}

func TestSVGToUnmappedTargetUsesFallback(t *testing.T) {
	engine := NewEngine(nil)
	result, err := engine.Convert(&memFile{name: "drawing.svg", data: []byte(redSquareSVG)}, "gif")
	require.NoError(t, err)
	assert.Equal(t, "image/gif", result.MediaType)
	assert.Equal(t, []byte(redSquareSVG), result.Data)
	assert.Equal(t, int64(1), engine.Stats().Fallbacks)
}

func TestSVGSourceIsReleased(t *testing.T) {
	_, err := convertSVG(t, redSquareSVG, "png")
	require.NoError(t, err)
	assert.Equal(t, int64(0), outstandingSources.Load())

	_, err = convertSVG(t, `<svg xmlns="http://www.w3.org/2000/svg" width="0.5" height="1"></svg>`, "png")
	require.Error(t, err)
	assert.Equal(t, int64(0), outstandingSources.Load())
}
