package converter

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidRequest is returned for a nil file or an empty target format.
	ErrInvalidRequest = errors.New("invalid conversion request")

	// ErrWebPUnavailable is returned by builds without a WebP encoder.
	ErrWebPUnavailable = errors.New("webp encoding requires a cgo build with libvips")
)

// DecodeError means the input bytes are not a valid image for the handler.
type DecodeError struct {
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to decode %s input", e.Format)
	}
	return fmt.Sprintf("failed to decode %s input: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError means the drawing surface could not be turned into bytes.
type EncodeError struct {
	Format string
	Err    error
}

func (e *EncodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to encode %s output: no data produced", e.Format)
	}
	return fmt.Sprintf("failed to encode %s output: %v", e.Format, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// UnsupportedTargetFormatError is raised by raster handlers asked for a
// format outside their fixed set.
type UnsupportedTargetFormatError struct {
	Target string
}

func (e *UnsupportedTargetFormatError) Error() string {
	return fmt.Sprintf("unsupported target format %q", e.Target)
}

// ReadError means the input bytes could not be read.
type ReadError struct {
	Name string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Name, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ConversionFailedError is the only error Engine.Convert returns.
// Its message is meant to be shown to the user as is.
type ConversionFailedError struct {
	Source string
	Target string
	Cause  error
}

func (e *ConversionFailedError) Error() string {
	var b strings.Builder
	b.WriteString("conversion")
	if e.Source != "" {
		b.WriteString(" from " + strings.ToUpper(e.Source))
	}
	if e.Target != "" {
		b.WriteString(" to " + strings.ToUpper(e.Target))
	}
	fmt.Fprintf(&b, " failed: %v", e.Cause)
	return b.String()
}

func (e *ConversionFailedError) Unwrap() error { return e.Cause }
