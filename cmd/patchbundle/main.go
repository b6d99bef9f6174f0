package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
)

var (
	flagConfigFile string
	flagBaseDir    string
	flagLogLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "patchbundle",
	Short: "Apply a <FILE_CHANGES> bundle extracted from free-form LLM output",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "optional YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagBaseDir, "base-dir", "", "directory the bundle's paths are resolved against")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "zerolog level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
