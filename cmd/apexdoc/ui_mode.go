package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// autoMode is the auto|on|off switch shared by --ui and --color.
type autoMode string

const (
	modeAuto autoMode = "auto"
	modeOn   autoMode = "on"
	modeOff  autoMode = "off"
)

func readAutoMode(flag, value string) (autoMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return modeAuto, nil
	case "on":
		return modeOn, nil
	case "off":
		return modeOff, nil
	default:
		return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
}

// enabled resolves auto against the terminal f.
func (m autoMode) enabled(f *os.File) bool {
	switch m {
	case modeOn:
		return true
	case modeOff:
		return false
	default:
		return isTerminal(f)
	}
}

// useColor reports whether output to f should be colorized.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	mode, err := readAutoMode("color", value)
	if err != nil {
		return false, err
	}
	return mode.enabled(f), nil
}
