package main

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"fileconv/catalog"
	"fileconv/contracts"
	"fileconv/converter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats [EXT]",
		Short: "List target formats offered for each source format",
		Long: `List the targets offered for each source extension. Targets marked
with * have a dedicated converter; the rest are written through the
generic fallback with the input bytes unchanged.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := catalog.Default()
			registry := converter.DefaultRegistry()

			sources := knownSources(formats, registry)
			if len(args) == 1 {
				source := strings.ToLower(strings.TrimPrefix(args[0], "."))
				if formats.Family(source) == "" && len(registry.TargetsFor(source)) == 0 {
					return fmt.Errorf("unknown format %q", args[0])
				}
				sources = []string{source}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, source := range sources {
				targets := lo.Union(formats.Targets(source), registry.TargetsFor(source))
				marked := lo.Map(targets, func(target string, _ int) string {
					if _, ok := registry.Lookup(contracts.NewConversionKey(source, target)); ok {
						return target + "*"
					}
					return target
				})
				family := lo.Ternary(formats.Family(source) != "", formats.Family(source), "-")
				fmt.Fprintf(w, "%s\t%s\t%s\n", source, family, strings.Join(marked, " "))
			}
			return w.Flush()
		},
	}
}

// knownSources merges catalog sources with every source the registry handles.
func knownSources(formats *catalog.Catalog, registry *converter.Registry) []string {
	handled := lo.Map(registry.Keys(), func(key string, _ int) string {
		source, _, _ := strings.Cut(key, "-to-")
		return source
	})
	sources := lo.Uniq(append(formats.Sources(), handled...))
	slices.Sort(sources)
	return sources
}
