package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"diagdeck/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "diagdeck",
	Short: "Group editor diagnostics into errors, warnings and review",
	Long: `diagdeck classifies diagnostics from linters and review tools into the
errors, warnings & info, and review filter groups, renders them for terminals
and CI, and drives rename prompts.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupCommand,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		teardownTracing()
	},
}

// errSilent is returned when the command already reported the problem and
// only a non-zero exit status is left to deliver.
var errSilent = errors.New("")

// main registers subcommands and persistent flags, then executes the root
// command. Any error exits with status 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Plain()

	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|on|off); default from config")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", -1, "maximum number of diagnostics to show (0=unlimited, -1=from config)")
	rootCmd.PersistentFlags().String("config", "", "path to diagdeck.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "ring", "trace storage mode (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "ring buffer capacity in events")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace output format (auto|text|ndjson)")

	if err := rootCmd.Execute(); err != nil {
		teardownTracing()
		if !errors.Is(err, errSilent) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// setupCommand loads the config and the tracer before any subcommand runs.
func setupCommand(cmd *cobra.Command, args []string) error {
	if _, err := setupTracing(cmd); err != nil {
		return err
	}
	return loadSettings(cmd)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
