package converter

import (
	"fmt"
	"sync/atomic"

	"fileconv/contracts"

	"github.com/flanksource/commons/logger"
)

type ConversionResult = contracts.ConversionResult
type InputFile = contracts.InputFile

var _ contracts.Converter = (*Engine)(nil)

// Engine dispatches a file to the handler registered for its conversion key.
// Each call works on its own decoded bitmap and surface, so an Engine may be
// shared between goroutines.
type Engine struct {
	registry *Registry

	converted atomic.Int64
	fallbacks atomic.Int64
	failed    atomic.Int64
}

// Stats counts Convert outcomes since the engine was created.
type Stats struct {
	Converted int64
	Fallbacks int64
	Failed    int64
}

// NewEngine returns an engine backed by registry, or DefaultRegistry when nil.
func NewEngine(registry *Registry) *Engine {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Engine{registry: registry}
}

func (e *Engine) Registry() *Registry {
	return e.registry
}

func (e *Engine) Stats() Stats {
	return Stats{
		Converted: e.converted.Load(),
		Fallbacks: e.fallbacks.Load(),
		Failed:    e.failed.Load(),
	}
}

// Convert converts file to targetFormat. On failure the result is nil and the
// error is a *ConversionFailedError wrapping the handler's error.
func (e *Engine) Convert(file InputFile, targetFormat string) (*ConversionResult, error) {
	if file == nil || targetFormat == "" {
		e.failed.Add(1)
		failure := &ConversionFailedError{Target: targetFormat, Cause: ErrInvalidRequest}
		if file != nil {
			failure.Source = contracts.SourceExtension(file.Name())
		}
		return nil, failure
	}

	key := contracts.NewConversionKey(contracts.SourceExtension(file.Name()), targetFormat)

	handler, ok := e.registry.Lookup(key)
	if !ok {
		logger.Warnf("No specific handler for %s, using fallback", key)
		e.fallbacks.Add(1)
		handler = Handler{Kind: Fallback}
	} else {
		logger.Debugf("Converting %s with %s handler", file.Name(), handler.Kind)
	}

	result, err := invoke(handler, file, targetFormat)
	if err != nil {
		logger.Errorf("Error converting %s to %s: %v", key.Source, key.Target, err)
		e.failed.Add(1)
		return nil, &ConversionFailedError{Source: key.Source, Target: key.Target, Cause: err}
	}

	e.converted.Add(1)
	return result, nil
}

func invoke(handler Handler, file InputFile, targetFormat string) (*ConversionResult, error) {
	switch handler.Kind {
	case Relabel:
		return relabel(file, targetFormat, handler.Family)
	case BitmapRaster:
		return convertImage(file, targetFormat)
	case SvgRaster:
		return svgToRaster(file, targetFormat)
	case ImagePDF:
		return imageToPDF(file)
	case Fallback:
		return fallbackConversion(file, targetFormat)
	default:
		return nil, fmt.Errorf("unknown handler kind %d", handler.Kind)
	}
}

func readInput(file InputFile) ([]byte, error) {
	data, err := file.ReadAll()
	if err != nil {
		return nil, &ReadError{Name: file.Name(), Err: err}
	}
	return data, nil
}
