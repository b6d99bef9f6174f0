package main

import (
	"fmt"
	"io"
	"os"

	"github.com/developingjames/patchbundle/internal/config"
	"github.com/developingjames/patchbundle/internal/logging"
	"github.com/developingjames/patchbundle/internal/runctx"
	"github.com/developingjames/patchbundle/pkg/clipboard"
	"github.com/developingjames/patchbundle/pkg/envelope"
	"github.com/developingjames/patchbundle/pkg/operations"
	"github.com/spf13/cobra"
)

var flagInputFile string

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Extract and apply a <FILE_CHANGES> bundle against a base directory",
	RunE:  runApply,
}

func init() {
	applyCmd.Flags().StringVarP(&flagInputFile, "file", "f", "", "read the bundle from this file instead of stdin/clipboard")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	opts, err := config.Load(flagConfigFile, config.Options{BaseDir: flagBaseDir, LogLevel: flagLogLevel})
	if err != nil {
		return err
	}

	logger := logging.New(opts.LogLevel)
	rc := runctx.New(logger)

	input, err := acquireInput()
	if err != nil {
		return fmt.Errorf("reading bundle input: %w", err)
	}

	directives, _, found := envelope.Extract(input)
	if !found {
		return fmt.Errorf("no <FILE_CHANGES> block found in input")
	}

	fs := operations.NewRealFileSystem()
	executor := operations.NewExecutor(fs)
	outcomes := executor.Execute(directives, opts.BaseDir, rc)

	printReport(outcomes)

	for _, o := range outcomes {
		if !o.Success {
			return fmt.Errorf("one or more directives failed (run_id=%s)", rc.ID)
		}
	}
	return nil
}

// acquireInput reads the bundle text from --file, else stdin if it is
// piped, else the system clipboard.
func acquireInput() (string, error) {
	if flagInputFile != "" {
		data, err := os.ReadFile(flagInputFile)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	if info, err := os.Stdin.Stat(); err == nil && (info.Mode()&os.ModeCharDevice) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		if len(data) > 0 {
			return string(data), nil
		}
	}

	reader := clipboard.NewReader()
	return reader.Read()
}

func printReport(outcomes []operations.Outcome) {
	for _, o := range outcomes {
		status := "ok"
		if !o.Success {
			status = "FAILED: " + o.Error
		}
		if o.Kind == envelope.KindPatch && o.Success {
			fmt.Printf("%-8s %-40s %s (hunks=%d tiers=%v)\n", o.Kind, o.FilePath, status, o.HunksApplied, o.HunkTiers)
			continue
		}
		fmt.Printf("%-8s %-40s %s\n", o.Kind, o.FilePath, status)
	}
}
