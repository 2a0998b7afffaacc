package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelabelKeepsBytes(t *testing.T) {
	payload := []byte{0x00, 0x01, 0xFE, 0xFF, 'I', 'D', '3'}

	tests := []struct {
		name      string
		target    string
		mediaType string
	}{
		{"report.pdf", "docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"report.docx", "pdf", "application/pdf"},
		{"legacy.doc", "pdf", "application/pdf"},
		{"report.pdf", "txt", "text/plain"},
		{"legacy.doc", "txt", "text/plain"},
		{"song.mp3", "wav", "audio/wav"},
		{"song.wav", "mp3", "audio/mpeg"},
		{"song.ogg", "mp3", "audio/mpeg"},
		{"song.flac", "mp3", "audio/mpeg"},
		{"clip.mp4", "webm", "video/webm"},
		{"clip.webm", "mp4", "video/mp4"},
		{"clip.mp4", "avi", "video/x-msvideo"},
		{"clip.avi", "mp4", "video/mp4"},
	}

	engine := NewEngine(nil)
	for _, tt := range tests {
		t.Run(tt.name+"->"+tt.target, func(t *testing.T) {
			result, err := engine.Convert(&memFile{name: tt.name, data: payload}, tt.target)
			require.NoError(t, err)
			assert.Equal(t, payload, result.Data)
			assert.Equal(t, tt.mediaType, result.MediaType)
		})
	}
	assert.Equal(t, int64(0), engine.Stats().Fallbacks)
}

func TestFamilyDefaults(t *testing.T) {
	assert.Equal(t, "audio/mpeg", audioMediaType("opus"))
	assert.Equal(t, "video/mp4", videoMediaType("flv"))
	assert.Equal(t, "application/pdf", documentMediaType("pages"))
	assert.Equal(t, "audio/flac", audioMediaType("FLAC"))
}

func TestFallbackMediaTypes(t *testing.T) {
	for target, want := range map[string]string{
		"pdf":  "application/pdf",
		"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"txt":  "text/plain",
		"jpg":  "image/jpeg",
		"jpeg": "image/jpeg",
		"png":  "image/png",
		"gif":  "image/gif",
		"bmp":  "image/bmp",
		"svg":  "image/svg+xml",
		"mp3":  "audio/mpeg",
		"aac":  "audio/aac",
		"mp4":  "video/mp4",
		"mkv":  "video/x-matroska",
		"abc":  "application/octet-stream",
	} {
		assert.Equal(t, want, fallbackMediaType(target), target)
	}
}

func TestFallbackConversionKeepsBytes(t *testing.T) {
	payload := []byte("GIF89a-not-really")

	result, err := NewEngine(nil).Convert(&memFile{name: "anim.gif", data: payload}, "bmp")
	require.NoError(t, err)
	assert.Equal(t, payload, result.Data)
	assert.Equal(t, "image/bmp", result.MediaType)
}
