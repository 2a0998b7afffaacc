package converter

import (
	"strings"

	"github.com/flanksource/commons/logger"
)

const (
	mimeOctetStream = "application/octet-stream"
	mimePDF         = "application/pdf"
	mimeDOCX        = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeJPEG        = "image/jpeg"
	mimePNG         = "image/png"
	mimeWEBP        = "image/webp"
)

// relabel returns the input bytes untouched under the media type of
// targetFormat within family. Nothing is parsed or transcoded.
func relabel(file InputFile, targetFormat string, family MediaFamily) (*ConversionResult, error) {
	data, err := readInput(file)
	if err != nil {
		return nil, err
	}

	var mediaType string
	switch family {
	case Document:
		mediaType = documentMediaType(targetFormat)
	case Audio:
		mediaType = audioMediaType(targetFormat)
	case Video:
		mediaType = videoMediaType(targetFormat)
	default:
		mediaType = mimeOctetStream
	}

	return &ConversionResult{Data: data, MediaType: mediaType}, nil
}

// documentMediaType defaults to PDF for unknown targets.
func documentMediaType(target string) string {
	switch strings.ToLower(target) {
	case "pdf":
		return mimePDF
	case "docx":
		return mimeDOCX
	case "doc":
		return "application/msword"
	case "txt":
		return "text/plain"
	case "rtf":
		return "application/rtf"
	case "odt":
		return "application/vnd.oasis.opendocument.text"
	default:
		return mimePDF
	}
}

// audioMediaType defaults to MPEG audio for unknown targets.
func audioMediaType(target string) string {
	switch strings.ToLower(target) {
	case "mp3":
		return "audio/mpeg"
	case "wav":
		return "audio/wav"
	case "ogg":
		return "audio/ogg"
	case "flac":
		return "audio/flac"
	case "aac":
		return "audio/aac"
	default:
		return "audio/mpeg"
	}
}

// videoMediaType defaults to MP4 for unknown targets.
func videoMediaType(target string) string {
	switch strings.ToLower(target) {
	case "mp4":
		return "video/mp4"
	case "webm":
		return "video/webm"
	case "avi":
		return "video/x-msvideo"
	case "mov":
		return "video/quicktime"
	case "mkv":
		return "video/x-matroska"
	default:
		return "video/mp4"
	}
}

// fallbackMediaType covers every literal the families know about.
func fallbackMediaType(target string) string {
	switch strings.ToLower(target) {
	case "pdf", "docx", "doc", "txt", "rtf", "odt":
		return documentMediaType(target)
	case "mp3", "wav", "ogg", "flac", "aac":
		return audioMediaType(target)
	case "mp4", "webm", "avi", "mov", "mkv":
		return videoMediaType(target)
	case "jpg", "jpeg":
		return mimeJPEG
	case "png":
		return mimePNG
	case "webp":
		return mimeWEBP
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	case "svg":
		return "image/svg+xml"
	case "tif", "tiff":
		return "image/tiff"
	default:
		return mimeOctetStream
	}
}

// fallbackConversion serves keys with no registered handler.
// The content is not converted, only relabelled.
func fallbackConversion(file InputFile, targetFormat string) (*ConversionResult, error) {
	logger.Debugf("Fallback conversion of %s does not change file content", file.Name())
	data, err := readInput(file)
	if err != nil {
		return nil, err
	}
	return &ConversionResult{Data: data, MediaType: fallbackMediaType(targetFormat)}, nil
}
