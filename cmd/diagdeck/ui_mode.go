package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode is the tri-state of interactive surfaces: the rename prompt and the
// group filter bar.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(flag, value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on", "true", "yes":
		return uiModeOn, nil
	case "off", "false", "no":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
}

// enabled resolves auto against the files the surface reads from and draws on;
// every one of them must be a terminal.
func (m uiMode) enabled(files ...*os.File) bool {
	switch m {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	}
	if len(files) == 0 {
		return false
	}
	for _, f := range files {
		if !isTerminal(f) {
			return false
		}
	}
	return true
}
