package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"diagdeck/internal/config"
)

// settings is the config loaded for the running command.
var settings = config.Default()

func loadSettings(cmd *cobra.Command) error {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	settings = cfg
	return nil
}

// useColor resolves --color (or [display].color) against the terminal.
func useColor(cmd *cobra.Command) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	if colorFlag == "" {
		colorFlag = settings.Display.Color
	}
	switch strings.ToLower(colorFlag) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(os.Stdout), nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
}

// maxDiagnostics resolves --max-diagnostics against [display].max.
func maxDiagnostics(cmd *cobra.Command) (int, error) {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if n < 0 {
		return settings.Display.Max, nil
	}
	return n, nil
}

// stringSetting returns the flag value when the user set it, otherwise fallback.
func stringSetting(cmd *cobra.Command, name, fallback string) (string, error) {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	if !cmd.Flags().Changed(name) {
		return fallback, nil
	}
	return value, nil
}
