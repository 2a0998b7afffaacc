package utils

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"

	"github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	"github.com/google/tiff"
)

const DefaultDPI = 72.0

var sizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatFileSize renders n bytes with a base-1024 unit, e.g. "1.5 KB".
func FormatFileSize(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}
	value := float64(n)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	return strconv.FormatFloat(roundTo2(value), 'f', -1, 64) + " " + sizeUnits[unit]
}

func roundTo2(v float64) float64 {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	r, _ := strconv.ParseFloat(s, 64)
	return r
}

// GetImageDPI reports the horizontal and vertical resolution of an encoded
// image. EXIF resolution tags win, then a PNG pHYs chunk, then DefaultDPI.
func GetImageDPI(data []byte) (float64, float64) {
	if x, y, err := GetEXIFDPI(data); err == nil {
		return x, y
	}
	if x, y, ok := GetDPIfromPNG(data); ok {
		return x, y
	}
	return DefaultDPI, DefaultDPI
}

func GetEXIFDPI(data []byte) (float64, float64, error) {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		return 0, 0, fmt.Errorf("EXIF not found: %w", err)
	}

	im := exifcommon.NewIfdMapping()
	ti := exif.NewTagIndex()
	if err := exifcommon.LoadStandardIfds(im); err != nil {
		return 0, 0, err
	}

	_, index, err := exif.Collect(im, ti, rawExif)
	if err != nil {
		return 0, 0, err
	}

	dpiX, okX := rationalTag(index.RootIfd, "XResolution")
	dpiY, okY := rationalTag(index.RootIfd, "YResolution")
	if !okX && !okY {
		return 0, 0, fmt.Errorf("no resolution tags")
	}
	if !okX {
		dpiX = dpiY
	}
	if !okY {
		dpiY = dpiX
	}

	if tag, err := index.RootIfd.FindTagWithName("ResolutionUnit"); err == nil {
		if val, err := tag[0].Value(); err == nil {
			if u, ok := val.([]uint16); ok && len(u) > 0 && u[0] == 3 {
				dpiX *= 2.54
				dpiY *= 2.54
			}
		}
	}

	return dpiX, dpiY, nil
}

func rationalTag(ifd *exif.Ifd, name string) (float64, bool) {
	tag, err := ifd.FindTagWithName(name)
	if err != nil || len(tag) == 0 {
		return 0, false
	}
	val, err := tag[0].Value()
	if err != nil {
		return 0, false
	}
	rats, ok := val.([]exifcommon.Rational)
	if !ok || len(rats) == 0 || rats[0].Denominator == 0 {
		return 0, false
	}
	return float64(rats[0].Numerator) / float64(rats[0].Denominator), true
}

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// GetDPIfromPNG reads the pHYs chunk of a PNG. ok is false when data is not a
// PNG, has no pHYs chunk, or the chunk does not use meters.
func GetDPIfromPNG(data []byte) (float64, float64, bool) {
	const physChunk = "pHYs"
	if !bytes.HasPrefix(data, pngSignature) {
		return 0, 0, false
	}
	buf := bytes.NewReader(data[len(pngSignature):])

	for {
		var length uint32
		if err := binary.Read(buf, binary.BigEndian, &length); err != nil {
			return 0, 0, false
		}

		chunkType := make([]byte, 4)
		if _, err := io.ReadFull(buf, chunkType); err != nil {
			return 0, 0, false
		}

		switch string(chunkType) {
		case physChunk:
			var pxPerUnitX, pxPerUnitY uint32
			var unit byte
			if err := binary.Read(buf, binary.BigEndian, &pxPerUnitX); err != nil {
				return 0, 0, false
			}
			if err := binary.Read(buf, binary.BigEndian, &pxPerUnitY); err != nil {
				return 0, 0, false
			}
			if err := binary.Read(buf, binary.BigEndian, &unit); err != nil {
				return 0, 0, false
			}
			if unit != 1 {
				return 0, 0, false // unit = 0 (aspect ratio only)
			}
			return float64(pxPerUnitX) * 0.0254, float64(pxPerUnitY) * 0.0254, true
		case "IDAT", "IEND":
			// pHYs must precede the image data
			return 0, 0, false
		}

		// skip chunk data + CRC
		if _, err := buf.Seek(int64(length)+4, io.SeekCurrent); err != nil {
			return 0, 0, false
		}
	}
}

// TIFFPageCount returns the number of image file directories in a TIFF.
func TIFFPageCount(data []byte) (int, error) {
	t, err := tiff.Parse(bytes.NewReader(data), nil, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to parse TIFF: %w", err)
	}
	return len(t.IFDs()), nil
}
