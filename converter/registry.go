package converter

import (
	"slices"
	"strings"
	"sync"

	"fileconv/contracts"

	"github.com/samber/lo"
)

// HandlerKind is the closed set of conversion handler variants.
type HandlerKind int

const (
	Relabel HandlerKind = iota
	BitmapRaster
	SvgRaster
	ImagePDF
	Fallback
)

func (k HandlerKind) String() string {
	switch k {
	case Relabel:
		return "relabel"
	case BitmapRaster:
		return "bitmap-raster"
	case SvgRaster:
		return "svg-raster"
	case ImagePDF:
		return "image-pdf"
	case Fallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// MediaFamily selects the media-type table used by a Relabel handler.
type MediaFamily string

const (
	Document MediaFamily = "document"
	Audio    MediaFamily = "audio"
	Video    MediaFamily = "video"
)

// Handler is a tagged variant; Family only matters for Relabel.
type Handler struct {
	Kind   HandlerKind
	Family MediaFamily
}

var (
	documentRelabel = Handler{Kind: Relabel, Family: Document}
	audioRelabel    = Handler{Kind: Relabel, Family: Audio}
	videoRelabel    = Handler{Kind: Relabel, Family: Video}
	bitmapRaster    = Handler{Kind: BitmapRaster}
	svgRaster       = Handler{Kind: SvgRaster}
	imagePDF        = Handler{Kind: ImagePDF}
)

var (
	bitmapSources = []string{"jpg", "jpeg", "png", "webp", "gif", "bmp", "tif", "tiff"}
	bitmapTargets = []string{"jpg", "jpeg", "png", "webp"}
	svgTargets    = []string{"png", "jpg", "jpeg", "webp"}
)

// Registry maps "{source}-to-{target}" keys to handlers.
// It has no mutators; build a new one with NewRegistry to extend the table.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry copies table into a new read-only registry.
func NewRegistry(table map[string]Handler) *Registry {
	handlers := make(map[string]Handler, len(table))
	for key, h := range table {
		handlers[key] = h
	}
	return &Registry{handlers: handlers}
}

// DefaultTable returns a fresh copy of the built-in handler table.
func DefaultTable() map[string]Handler {
	table := map[string]Handler{
		"pdf-to-docx": documentRelabel,
		"docx-to-pdf": documentRelabel,
		"doc-to-pdf":  documentRelabel,
		"pdf-to-txt":  documentRelabel,
		"docx-to-txt": documentRelabel,
		"doc-to-txt":  documentRelabel,

		"mp3-to-wav":  audioRelabel,
		"wav-to-mp3":  audioRelabel,
		"ogg-to-mp3":  audioRelabel,
		"flac-to-mp3": audioRelabel,

		"mp4-to-webm": videoRelabel,
		"webm-to-mp4": videoRelabel,
		"mp4-to-avi":  videoRelabel,
		"avi-to-mp4":  videoRelabel,
	}

	for _, src := range bitmapSources {
		for _, dst := range bitmapTargets {
			table[contracts.NewConversionKey(src, dst).String()] = bitmapRaster
		}
		table[contracts.NewConversionKey(src, "pdf").String()] = imagePDF
	}
	for _, dst := range svgTargets {
		table[contracts.NewConversionKey("svg", dst).String()] = svgRaster
	}
	return table
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return NewRegistry(DefaultTable())
})

// DefaultRegistry returns the process-wide registry built from DefaultTable.
func DefaultRegistry() *Registry {
	return defaultRegistry()
}

// Lookup is an exact match on key.String().
func (r *Registry) Lookup(key contracts.ConversionKey) (Handler, bool) {
	h, ok := r.handlers[key.String()]
	return h, ok
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	keys := lo.Keys(r.handlers)
	slices.Sort(keys)
	return keys
}

// TargetsFor lists the targets registered for a source extension.
func (r *Registry) TargetsFor(source string) []string {
	prefix := contracts.NewConversionKey(source, "").String()
	targets := lo.FilterMap(r.Keys(), func(key string, _ int) (string, bool) {
		target, ok := strings.CutPrefix(key, prefix)
		return target, ok && target != ""
	})
	return targets
}
