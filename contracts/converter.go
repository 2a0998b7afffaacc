package contracts

import (
	"fmt"
	"strings"
)

// Converter turns one input file into a result labelled with the target media type.
type Converter interface {
	Convert(file InputFile, targetFormat string) (*ConversionResult, error)
}

// InputFile is the opaque handle a caller hands to the engine.
// Name is only used to derive the source extension.
type InputFile interface {
	Name() string
	Size() int64
	ReadAll() ([]byte, error)
}

// ConversionResult is owned by the caller once returned.
type ConversionResult struct {
	Data      []byte
	MediaType string
}

// ConversionKey identifies a (source, target) extension pair.
// Both parts are lowercase and carry no leading dot.
type ConversionKey struct {
	Source string
	Target string
}

func NewConversionKey(source, target string) ConversionKey {
	return ConversionKey{
		Source: strings.ToLower(source),
		Target: strings.ToLower(target),
	}
}

func (k ConversionKey) String() string {
	return fmt.Sprintf("%s-to-%s", k.Source, k.Target)
}

// SourceExtension returns the part of name after the last '.', lowercased.
// A name without '.' is its own extension.
func SourceExtension(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return strings.ToLower(name[i+1:])
	}
	return strings.ToLower(name)
}
