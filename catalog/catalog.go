// Package catalog lists the target formats offered for each source format.
// The engine does not consult it; it only drives what a front end offers.
package catalog

import (
	"embed"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

type Catalog struct {
	targets  map[string][]string
	families map[string]string
}

type catalogFile struct {
	Families map[string]map[string][]string `yaml:"families"`
}

// Parse builds a catalog from YAML shaped like config/formats.yaml.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}

	c := &Catalog{
		targets:  make(map[string][]string),
		families: make(map[string]string),
	}
	for family, sources := range file.Families {
		for source, targets := range sources {
			source = strings.ToLower(source)
			if other, ok := c.families[source]; ok {
				return nil, fmt.Errorf("source %q listed under both %s and %s", source, other, family)
			}
			c.families[source] = family
			c.targets[source] = lo.Map(targets, func(t string, _ int) string { return strings.ToLower(t) })
		}
	}
	return c, nil
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	data, err := configFiles.ReadFile("config/formats.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read config/formats.yaml: %w", err)
	}
	return Parse(data)
})

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := defaultCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// Targets returns the offered targets for source, nil when unknown.
func (c *Catalog) Targets(source string) []string {
	return slices.Clone(c.targets[normalize(source)])
}

// Sources returns every known source extension, sorted.
func (c *Catalog) Sources() []string {
	sources := lo.Keys(c.targets)
	slices.Sort(sources)
	return sources
}

func (c *Catalog) Offers(source, target string) bool {
	return slices.Contains(c.targets[normalize(source)], normalize(target))
}

// Family returns document, image, audio or video, or "" when unknown.
func (c *Catalog) Family(source string) string {
	return c.families[normalize(source)]
}

func normalize(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
