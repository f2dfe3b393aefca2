package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"apexdoc/internal/diag"
	"apexdoc/internal/diagfmt"
	"apexdoc/internal/driver"
	"apexdoc/internal/version"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format ApexDoc comments in Apex source files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().Bool("diff", false, "print a unified diff instead of rewriting files")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	fmtCmd.Flags().Int("jobs", 0, "files formatted in parallel (0 = GOMAXPROCS)")
	fmtCmd.Flags().Bool("no-cache", false, "do not read or write the on-disk cache")
	fmtCmd.Flags().Bool("clear-cache", false, "drop the on-disk cache before formatting")
	fmtCmd.Flags().StringSlice("exclude", nil, "glob of files or directories to skip (repeatable)")
	fmtCmd.Flags().Bool("code", false, "format whole files, not only doc comments")
	addOptionFlags(fmtCmd)
}

var (
	errFmtFailed  = errors.New("fmt: failed to format some files")
	errFmtChanges = errors.New("fmt: formatting changes required")
)

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceErrors = true
	err := fmtMain(cmd, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	return err
}

func fmtMain(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	check, _ := flags.GetBool("check")
	writeToStdout, _ := flags.GetBool("stdout")
	showDiff, _ := flags.GetBool("diff")
	outputFormat, _ := flags.GetString("format")
	uiValue, _ := flags.GetString("ui")
	jobs, _ := flags.GetInt("jobs")
	noCache, _ := flags.GetBool("no-cache")
	clearCache, _ := flags.GetBool("clear-cache")
	excludes, _ := flags.GetStringSlice("exclude")
	whole, _ := flags.GetBool("code")

	root := cmd.Root().PersistentFlags()
	maxDiagnostics, _ := root.GetInt("max-diagnostics")
	minSeverity, _ := root.GetString("min-severity")
	quiet, _ := root.GetBool("quiet")
	timings, _ := root.GetBool("timings")

	if writeToStdout && (check || showDiff) {
		return fmt.Errorf("fmt: --stdout cannot be used with --check or --diff")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}
	ui, err := readAutoMode("ui", uiValue)
	if err != nil {
		return err
	}
	floor, err := diag.ParseSeverity(minSeverity)
	if err != nil {
		return fmt.Errorf("fmt: %w", err)
	}
	colorErr, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	colorOut, _ := useColor(cmd, os.Stdout)

	opts, project, err := loadOptions(cmd, args[0])
	if err != nil {
		return err
	}

	var cache *driver.DiskCache
	if !noCache && project.CacheEnabled() {
		if cache, err = driver.OpenDiskCache("apexdoc"); err != nil {
			if !quiet {
				fmt.Fprintf(os.Stderr, "fmt: cache disabled: %v\n", err)
			}
			cache = nil
		}
	}
	if clearCache && cache != nil {
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("fmt: clear cache: %w", err)
		}
	}

	onPhase, timer := phaseTimer(timings)
	formatOpts := driver.FormatOptions{
		Check:          check,
		Stdout:         writeToStdout,
		Diff:           showDiff,
		Whole:          whole,
		Config:         opts,
		Excludes:       append(project.Excludes(), excludes...),
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		Cache:          cache,
		Version:        version.Version,
		OnPhase:        onPhase,
	}

	var results []driver.FormatResult
	if outputFormat == "text" && !writeToStdout && !quiet && ui.enabled(os.Stderr) {
		results, err = runFormatWithUI(cmd.Context(), "apexdoc fmt", args, formatOpts)
	} else {
		results, err = driver.FormatPaths(cmd.Context(), args, formatOpts)
	}
	if err != nil {
		return err
	}
	for i := range results {
		results[i].Diagnostics = diag.AtLeast(results[i].Diagnostics, floor)
	}

	var reportIdx int
	if timer != nil {
		reportIdx = timer.Begin("report")
	}
	var hasErrors, hasChanges bool
	switch outputFormat {
	case "json":
		if err := renderFmtJSON(os.Stdout, results, check); err != nil {
			return err
		}
		for _, res := range results {
			hasErrors = hasErrors || res.Err != nil
			hasChanges = hasChanges || res.Changed
		}
	default:
		renderDiagnostics(os.Stderr, results, colorErr)
		switch {
		case writeToStdout:
			renderFmtStdout(results, &hasErrors)
		case showDiff:
			renderFmtDiff(os.Stdout, results, colorOut, &hasErrors, &hasChanges)
		default:
			renderFmtText(results, check, quiet, &hasErrors, &hasChanges)
		}
	}
	if timer != nil {
		timer.End(reportIdx, fmt.Sprintf("%d files", len(results)))
		if err := printTimings(os.Stderr, timer, outputFormat == "json"); err != nil {
			return err
		}
	}

	if hasErrors {
		return errFmtFailed
	}
	if (check || showDiff) && hasChanges {
		return errFmtChanges
	}
	return nil
}

func renderDiagnostics(out io.Writer, results []driver.FormatResult, useColor bool) {
	for _, res := range results {
		if len(res.Diagnostics) == 0 || res.Files == nil {
			continue
		}
		_ = diagfmt.Pretty(out, res.Diagnostics, res.Files, diagfmt.PrettyOpts{
			Color:     useColor,
			Context:   1,
			ShowNotes: true,
		})
	}
}

func renderFmtStdout(results []driver.FormatResult, hasErrors *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		_, _ = os.Stdout.Write(res.Formatted)
	}
}

func renderFmtDiff(out io.Writer, results []driver.FormatResult, useColor bool, hasErrors, hasChanges *bool) {
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	header := color.New(color.FgCyan)
	for _, c := range []*color.Color{added, removed, header} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		if res.Diff == "" {
			continue
		}
		*hasChanges = true
		for _, line := range strings.SplitAfter(res.Diff, "\n") {
			switch {
			case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"), strings.HasPrefix(line, "@@"):
				header.Fprint(out, line)
			case strings.HasPrefix(line, "+"):
				added.Fprint(out, line)
			case strings.HasPrefix(line, "-"):
				removed.Fprint(out, line)
			default:
				fmt.Fprint(out, line)
			}
		}
	}
}

func renderFmtText(results []driver.FormatResult, check, quiet bool, hasErrors, hasChanges *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		if check {
			if res.Changed {
				*hasChanges = true
				if !quiet {
					fmt.Fprintln(os.Stdout, res.Path)
				}
			}
			continue
		}
		if res.Changed && !quiet {
			fmt.Fprintf(os.Stdout, "reformatted %s\n", res.Path)
		}
	}
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path        string                   `json:"path"`
		Changed     bool                     `json:"changed"`
		Comments    int                      `json:"comments"`
		Cached      bool                     `json:"cached,omitempty"`
		Error       string                   `json:"error,omitempty"`
		CheckRun    bool                     `json:"check"`
		Diff        string                   `json:"diff,omitempty"`
		Diagnostics []diagfmt.DiagnosticJSON `json:"diagnostics,omitempty"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{
			Path:     res.Path,
			Changed:  res.Changed,
			Comments: res.Comments,
			Cached:   res.Cached,
			CheckRun: check,
			Diff:     res.Diff,
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		if len(res.Diagnostics) > 0 && res.Files != nil {
			jr.Diagnostics = diagfmt.BuildDiagnosticsOutput(res.Diagnostics, res.Files, diagfmt.JSONOpts{
				IncludePositions: true,
				IncludeNotes:     true,
			}).Diagnostics
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
