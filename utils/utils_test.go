package utils

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"
)

func TestFormatFileSize(t *testing.T) {
	cases := map[int64]string{
		0:                  "0 Bytes",
		-5:                 "0 Bytes",
		512:                "512 Bytes",
		1024:               "1 KB",
		1536:               "1.5 KB",
		1024 * 1024 * 3:    "3 MB",
		1288490189:         "1.2 GB",
		1 << 40:            "1 TB",
		5 * (1 << 50):      "5120 TB",
		1024*1024 + 123456: "1.12 MB",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatFileSize(in), "FormatFileSize(%d)", in)
	}
}

func encodePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

// withPHYs inserts a pHYs chunk right after IHDR.
func withPHYs(t *testing.T, data []byte, x, y uint32, unit byte) []byte {
	t.Helper()
	const ihdrEnd = 8 + 4 + 4 + 13 + 4

	var chunk bytes.Buffer
	payload := new(bytes.Buffer)
	payload.WriteString("pHYs")
	require.NoError(t, binary.Write(payload, binary.BigEndian, x))
	require.NoError(t, binary.Write(payload, binary.BigEndian, y))
	payload.WriteByte(unit)

	require.NoError(t, binary.Write(&chunk, binary.BigEndian, uint32(9)))
	chunk.Write(payload.Bytes())
	require.NoError(t, binary.Write(&chunk, binary.BigEndian, crc32.ChecksumIEEE(payload.Bytes())))

	out := append([]byte{}, data[:ihdrEnd]...)
	out = append(out, chunk.Bytes()...)
	return append(out, data[ihdrEnd:]...)
}

func TestGetImageDPI(t *testing.T) {
	plain := encodePNG(t)

	t.Run("png without pHYs", func(t *testing.T) {
		x, y := GetImageDPI(plain)
		assert.Equal(t, DefaultDPI, x)
		assert.Equal(t, DefaultDPI, y)
	})

	t.Run("png with pHYs", func(t *testing.T) {
		data := withPHYs(t, plain, 11811, 5906, 1)
		_, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)

		x, y := GetImageDPI(data)
		assert.InDelta(t, 300, x, 0.01)
		assert.InDelta(t, 150, y, 0.02)
	})

	t.Run("pHYs without unit", func(t *testing.T) {
		_, _, ok := GetDPIfromPNG(withPHYs(t, plain, 2, 1, 0))
		assert.False(t, ok)
	})

	t.Run("not an image", func(t *testing.T) {
		x, y := GetImageDPI([]byte("hello"))
		assert.Equal(t, DefaultDPI, x)
		assert.Equal(t, DefaultDPI, y)
	})
}

func TestTIFFPageCount(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, tiff.Encode(&buf, image.NewGray(image.Rect(0, 0, 8, 8)), nil))

	n, err := TIFFPageCount(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	x, y := GetImageDPI(buf.Bytes())
	assert.Equal(t, DefaultDPI, x)
	assert.Equal(t, DefaultDPI, y)

	_, err = TIFFPageCount([]byte("not a tiff"))
	assert.Error(t, err)
}
