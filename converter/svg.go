package converter

import (
	"bytes"
	"encoding/xml"
	"errors"
	"image"
	"io"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/net/html/charset"
)

const (
	defaultSVGWidth  = 300
	defaultSVGHeight = 150

	// maxSVGDimension bounds the surface allocated for a single axis.
	maxSVGDimension = 4096
)

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// svgRoot holds the sizing attributes of the root <svg> element.
// Zero means absent or unusable.
type svgRoot struct {
	Width, Height      float64
	ViewBoxW, ViewBoxH float64
}

var (
	svgSources         = sync.Pool{New: func() any { return new(bytes.Reader) }}
	outstandingSources atomic.Int64
)

// acquireSVGSource wraps data in a pooled reader for the SVG decoder.
// The returned release func must run on every exit path.
func acquireSVGSource(data []byte) (io.Reader, func()) {
	r := svgSources.Get().(*bytes.Reader)
	r.Reset(data)
	outstandingSources.Add(1)
	return r, func() {
		r.Reset(nil)
		svgSources.Put(r)
		outstandingSources.Add(-1)
	}
}

func svgToRaster(file InputFile, targetFormat string) (*ConversionResult, error) {
	if _, err := rasterMediaType(targetFormat); err != nil {
		return nil, err
	}

	data, err := readInput(file)
	if err != nil {
		return nil, err
	}

	root, err := parseSVGRoot(data)
	if err != nil {
		return nil, err
	}

	source, release := acquireSVGSource(data)
	defer release()

	icon, err := oksvg.ReadIconStream(source, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, &DecodeError{Format: "svg", Err: err}
	}

	width := resolveDimension(root.Width, root.ViewBoxW, icon.ViewBox.W, defaultSVGWidth)
	height := resolveDimension(root.Height, root.ViewBoxH, icon.ViewBox.H, defaultSVGHeight)

	surface := image.NewRGBA(image.Rect(0, 0, width, height))
	if width > 0 && height > 0 {
		if isLossyTarget(targetFormat) {
			draw.Draw(surface, surface.Bounds(), image.White, image.Point{}, draw.Src)
		}
		renderIcon(icon, surface)
	}

	return encodeSurface(surface, targetFormat)
}

// renderIcon scales icon to the surface bounds and rasterizes it.
func renderIcon(icon *oksvg.SvgIcon, surface *image.RGBA) {
	w, h := surface.Bounds().Dx(), surface.Bounds().Dy()
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		icon.ViewBox.X, icon.ViewBox.Y = 0, 0
		icon.ViewBox.W, icon.ViewBox.H = float64(w), float64(h)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	scanner := rasterx.NewScannerGV(w, h, surface, surface.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)
}

// resolveDimension picks the first positive of explicit, viewBox and natural,
// falls back to def, and clamps to maxSVGDimension.
func resolveDimension(explicit, viewBox, natural float64, def int) int {
	size := float64(def)
	for _, candidate := range []float64{explicit, viewBox, natural} {
		if candidate > 0 {
			size = candidate
			break
		}
	}
	if size > maxSVGDimension {
		size = maxSVGDimension
	}
	return int(size)
}

// parseSVGRoot reads the root element's width, height and viewBox.
func parseSVGRoot(data []byte) (svgRoot, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charset.NewReaderLabel

	for {
		tok, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return svgRoot{}, &DecodeError{Format: "svg", Err: errors.New("no root element")}
			}
			return svgRoot{}, &DecodeError{Format: "svg", Err: err}
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "svg" {
			return svgRoot{}, &DecodeError{Format: "svg", Err: errors.New("root element is <" + se.Name.Local + ">, not <svg>")}
		}

		var root svgRoot
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "width":
				root.Width = parseLength(attr.Value)
			case "height":
				root.Height = parseLength(attr.Value)
			case "viewBox":
				root.ViewBoxW, root.ViewBoxH = parseViewBox(attr.Value)
			}
		}
		return root, nil
	}
}

// cssPixelsPerUnit converts absolute SVG length units to pixels at 96 dpi.
var cssPixelsPerUnit = map[string]float64{
	"":   1,
	"px": 1,
	"in": 96,
	"cm": 96 / 2.54,
	"mm": 96 / 25.4,
	"pt": 96.0 / 72,
	"pc": 16,
}

// parseLength reads an SVG length in pixels. Percentages, relative units
// and non-positive values are treated as absent.
func parseLength(value string) float64 {
	value = strings.TrimSpace(value)
	num := leadingNumber.FindString(value)
	if num == "" {
		return 0
	}
	scale, ok := cssPixelsPerUnit[strings.ToLower(strings.TrimSpace(value[len(num):]))]
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || f <= 0 {
		return 0
	}
	return f * scale
}

func parseViewBox(value string) (float64, float64) {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != 4 {
		return 0, 0
	}
	w, errW := strconv.ParseFloat(fields[2], 64)
	h, errH := strconv.ParseFloat(fields[3], 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0
	}
	return w, h
}
