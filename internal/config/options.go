// Package config holds the formatting options record and loads it from
// .apexdoc.toml or .apexdoc.yaml project files.
package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingPrintWidth is returned when a width-sensitive path runs
	// without a positive print width.
	ErrMissingPrintWidth = errors.New("config: printWidth must be a positive integer")
	// ErrInvalidTabWidth is returned for a non-positive tab width.
	ErrInvalidTabWidth = errors.New("config: tabWidth must be a positive integer")
)

const (
	DefaultPrintWidth = 80
	DefaultTabWidth   = 2
)

// Options is the formatting configuration shared by the comment pipeline
// and the host snippet formatter.
type Options struct {
	PrintWidth int
	TabWidth   int
	// UseTabs is tri-state: nil means "not set" and behaves like false.
	UseTabs *bool
}

// Default returns {80, 2, nil}.
func Default() Options {
	return Options{PrintWidth: DefaultPrintWidth, TabWidth: DefaultTabWidth}
}

// Validate fails fast on options that would produce inconsistent width budgets.
func (o Options) Validate() error {
	if o.PrintWidth <= 0 {
		return fmt.Errorf("%w (got %d)", ErrMissingPrintWidth, o.PrintWidth)
	}
	if o.TabWidth <= 0 {
		return fmt.Errorf("%w (got %d)", ErrInvalidTabWidth, o.TabWidth)
	}
	return nil
}

// Tabs reports whether indentation uses tab characters.
func (o Options) Tabs() bool {
	return o.UseTabs != nil && *o.UseTabs
}

// IndentUnit returns one level of indentation.
func (o Options) IndentUnit() string {
	if o.Tabs() {
		return "\t"
	}
	return strings.Repeat(" ", o.TabWidth)
}

// WithPrintWidth returns a copy carrying a different print width.
func (o Options) WithPrintWidth(w int) Options {
	o.PrintWidth = w
	return o
}

// Key renders the options in a stable form for cache keys.
func (o Options) Key() string {
	tabs := "unset"
	if o.UseTabs != nil {
		tabs = fmt.Sprint(*o.UseTabs)
	}
	return fmt.Sprintf("pw=%d;tw=%d;tabs=%s", o.PrintWidth, o.TabWidth, tabs)
}

// Bool returns a pointer to b, for UseTabs literals.
func Bool(b bool) *bool { return &b }
