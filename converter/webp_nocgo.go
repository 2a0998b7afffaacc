//go:build !cgo
// +build !cgo

package converter

import "image"

const webpEncoderAvailable = false

func encodeWebP(image.Image, int) ([]byte, error) {
	return nil, ErrWebPUnavailable
}
