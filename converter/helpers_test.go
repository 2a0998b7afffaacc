package converter

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

type memFile struct {
	name    string
	data    []byte
	readErr error
}

func (f *memFile) Name() string { return f.name }
func (f *memFile) Size() int64  { return int64(len(f.data)) }

func (f *memFile) ReadAll() ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.data, nil
}

var errDiskGone = errors.New("disk gone")

// testImage has an opaque red left half and a transparent right half.
func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w/2; x++ {
			img.Set(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	return img
}

func encodeFixture(t *testing.T, format string, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpg", "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	case "bmp":
		err = bmp.Encode(&buf, img)
	case "tif", "tiff":
		err = tiff.Encode(&buf, img, nil)
	case "webp":
		var data []byte
		data, err = encodeWebP(img, lossyQuality)
		buf.Write(data)
	default:
		t.Fatalf("no fixture encoder for %s", format)
	}
	require.NoError(t, err)
	return buf.Bytes()
}

func decodeOutput(t *testing.T, data []byte) (image.Image, string) {
	t.Helper()
	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img, format
}
