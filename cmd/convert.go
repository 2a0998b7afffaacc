package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"fileconv/catalog"
	"fileconv/config"
	"fileconv/contracts"
	"fileconv/converter"
	"fileconv/files_manager"
	"fileconv/utils"

	"github.com/flanksource/commons/logger"
	"github.com/spf13/cobra"
)

type InputFlags = contracts.InputFlags

func newConvertCommand() *cobra.Command {
	var flags InputFlags

	cmd := &cobra.Command{
		Use:   "convert --to FORMAT [PATH...]",
		Short: "Convert files or directories to another format",
		Example: `  fileconv convert --to png drawing.svg
  fileconv convert --to pdf --output out/ --recursive scans/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, envFile)
			if err != nil {
				return err
			}
			resolved := mergeFlags(cmd, cfg, flags)
			if resolved.Target == "" {
				return fmt.Errorf("target format required, use --to")
			}
			if err := config.ValidateTarget(resolved.Target); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runConvert(ctx, cmd, resolved, args)
		},
	}

	cmd.Flags().StringVar(&flags.Target, "to", "", "Target format extension, e.g. png or pdf")
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", "", "Output directory")
	cmd.Flags().IntVar(&flags.Workers, "workers", 0, "Concurrent conversions (0 = CPUs - 1)")
	cmd.Flags().BoolVar(&flags.Overwrite, "overwrite", false, "Replace existing output files")
	cmd.Flags().BoolVarP(&flags.Recursive, "recursive", "r", false, "Descend into subdirectories")
	return cmd
}

// mergeFlags layers explicitly set flags over the loaded config.
func mergeFlags(cmd *cobra.Command, cfg *config.Config, flags InputFlags) InputFlags {
	out := InputFlags{
		Target:    cfg.Target,
		OutputDir: cfg.OutputDir,
		Workers:   cfg.Workers,
		Overwrite: cfg.Overwrite,
		Recursive: cfg.Recursive,
	}
	set := cmd.Flags().Changed
	if set("to") {
		out.Target = flags.Target
	}
	if set("output") {
		out.OutputDir = flags.OutputDir
	}
	if set("workers") {
		out.Workers = flags.Workers
	}
	if set("overwrite") {
		out.Overwrite = flags.Overwrite
	}
	if set("recursive") {
		out.Recursive = flags.Recursive
	}
	out.Target = strings.ToLower(strings.TrimPrefix(out.Target, "."))
	return out
}

func runConvert(ctx context.Context, cmd *cobra.Command, flags InputFlags, paths []string) error {
	folders, err := files_manager.CollectInputs(paths, flags.Recursive)
	if err != nil {
		return err
	}
	if err := files_manager.CheckOutputDir(flags.OutputDir); err != nil {
		return err
	}

	formats := catalog.Default()
	var files []converter.InputFile
	var relDirs []string
	for _, folder := range folders {
		logger.Infof("Found %d files in %s (%s)", len(folder.Entries), folder.Path, utils.FormatFileSize(folder.FilesSize))
		for _, entry := range folder.Entries {
			file, err := files_manager.NewOSFile(entry.Path)
			if err != nil {
				logger.Warnf("Skipping %s: %v", entry.Path, err)
				continue
			}
			source := contracts.SourceExtension(file.Name())
			if !formats.Offers(source, flags.Target) {
				logger.Debugf("%s is not a listed target for %s", flags.Target, source)
			}
			files = append(files, file)
			relDirs = append(relDirs, entry.RelDir)
		}
	}
	if len(files) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No input files found.")
		return nil
	}

	startTime := time.Now()
	engine := converter.NewEngine(nil)
	results := converter.ConvertBatch(ctx, engine, files, flags.Target, flags.Workers)

	var failures int
	for i, res := range results {
		if res.Err != nil {
			failures++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", res.File.Name(), res.Err)
			continue
		}
		out, err := files_manager.WriteResult(filepath.Join(flags.OutputDir, relDirs[i]), res.File.Name(), flags.Target, res.Result, flags.Overwrite)
		if err != nil {
			failures++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", res.File.Name(), err)
			continue
		}
		logger.Debugf("Wrote %s (%s, %s)", out, res.Result.MediaType, utils.FormatFileSize(int64(len(res.Result.Data))))
	}

	stats := engine.Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "Converted %d of %d files (%d via fallback) in %s\n",
		len(files)-failures, len(files), stats.Fallbacks, time.Since(startTime).Round(time.Millisecond))

	if failures > 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("conversion interrupted: %w", err)
		}
		return fmt.Errorf("%d of %d conversions failed", failures, len(files))
	}
	return nil
}
