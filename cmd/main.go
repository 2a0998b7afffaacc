package main

import (
	"fmt"
	"os"

	"github.com/flanksource/commons/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	version = "dev"

	logFlags = logger.Flags{
		Level:       "info",
		LogToStderr: true,
	}
	configPath string
	envFile    string
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func bindLogFlags(flags *pflag.FlagSet) {
	flags.CountVarP(&logFlags.LevelCount, "loglevel", "v", "Increase logging level")
	flags.StringVar(&logFlags.Level, "log-level", "info", "Set the default log level")
	flags.BoolVar(&logFlags.JsonLogs, "json-logs", false, "Print logs in json format to stderr")
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fileconv",
		Short:         "Convert documents, images, audio and video between formats",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Configure(logFlags)
		},
	}

	bindLogFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "fileconv.yaml", "Config file with convert defaults")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "File of FILECONV_* variables to load")

	rootCmd.AddCommand(newConvertCommand(), newFormatsCommand(), newInfoCommand())
	return rootCmd
}
