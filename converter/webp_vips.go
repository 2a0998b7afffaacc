//go:build cgo
// +build cgo

package converter

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/davidbyttow/govips/v2/vips"
)

const webpEncoderAvailable = true

var vipsStartup sync.Once

func startVips() {
	vipsStartup.Do(func() {
		vips.LoggingSettings(nil, vips.LogLevelWarning)
		vips.Startup(nil)
	})
}

// encodeWebP hands a lossless PNG of img to libvips and exports it as WebP.
func encodeWebP(img image.Image, quality int) ([]byte, error) {
	startVips()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("intermediate png: %w", err)
	}

	ref, err := vips.NewImageFromBuffer(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("load into libvips: %w", err)
	}
	defer ref.Close()

	params := vips.NewWebpExportParams()
	params.Quality = quality
	out, _, err := ref.ExportWebp(params)
	if err != nil {
		return nil, fmt.Errorf("export webp: %w", err)
	}
	return out, nil
}
