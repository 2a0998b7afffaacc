package main

import (
	"fmt"

	"fileconv/catalog"
	"fileconv/contracts"
	"fileconv/files_manager"
	"fileconv/utils"

	"github.com/spf13/cobra"
)

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE...",
		Short: "Show size, resolution and page count of files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, path := range args {
				file, err := files_manager.NewOSFile(path)
				if err != nil {
					return err
				}
				data, err := file.ReadAll()
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}

				ext := contracts.SourceExtension(file.Name())
				fmt.Fprintf(out, "%s\n", file.Name())
				fmt.Fprintf(out, "  size:    %s\n", utils.FormatFileSize(file.Size()))
				if family := catalog.Default().Family(ext); family != "" {
					fmt.Fprintf(out, "  family:  %s\n", family)
				}
				if catalog.Default().Family(ext) != "image" && ext != "tif" && ext != "tiff" {
					continue
				}

				dpiX, dpiY := utils.GetImageDPI(data)
				fmt.Fprintf(out, "  dpi:     %.0fx%.0f\n", dpiX, dpiY)
				if ext == "tif" || ext == "tiff" {
					pages, err := utils.TIFFPageCount(data)
					if err != nil {
						fmt.Fprintf(out, "  pages:   unknown (%v)\n", err)
						continue
					}
					fmt.Fprintf(out, "  pages:   %d\n", pages)
				}
			}
			return nil
		},
	}
}
