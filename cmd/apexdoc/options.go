package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"apexdoc/internal/config"
)

func addOptionFlags(cmd *cobra.Command) {
	cmd.Flags().Int("print-width", 0, "maximum line width (overrides config)")
	cmd.Flags().Int("tab-width", 0, "columns per indentation level (overrides config)")
	cmd.Flags().Bool("use-tabs", false, "indent embedded code with tabs (overrides config)")
}

// loadOptions resolves formatting options: defaults, then the project file
// (--config or the nearest one above start), then explicit flags.
func loadOptions(cmd *cobra.Command, start string) (config.Options, *config.Project, error) {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Options{}, nil, err
	}

	var project *config.Project
	if configPath != "" {
		f, err := config.LoadFile(configPath)
		if err != nil {
			return config.Options{}, nil, err
		}
		project = &config.Project{Path: configPath, Root: filepath.Dir(configPath), File: f}
	} else {
		project, _, err = config.Load(start)
		if err != nil {
			return config.Options{}, nil, err
		}
	}

	opts := project.Options()
	flags := cmd.Flags()
	if flags.Changed("print-width") {
		if opts.PrintWidth, err = flags.GetInt("print-width"); err != nil {
			return config.Options{}, nil, err
		}
	}
	if flags.Changed("tab-width") {
		if opts.TabWidth, err = flags.GetInt("tab-width"); err != nil {
			return config.Options{}, nil, err
		}
	}
	if flags.Changed("use-tabs") {
		useTabs, err := flags.GetBool("use-tabs")
		if err != nil {
			return config.Options{}, nil, err
		}
		opts.UseTabs = config.Bool(useTabs)
	}
	if err := opts.Validate(); err != nil {
		return config.Options{}, nil, fmt.Errorf("invalid options: %w", err)
	}
	return opts, project, nil
}
