package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"apexdoc/internal/diag"
	"apexdoc/internal/diagfmt"
	"apexdoc/internal/driver"
	"apexdoc/internal/source"
)

var commentsCmd = &cobra.Command{
	Use:   "comments [flags] <file>",
	Short: "Dump the token stream of every doc comment in a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runComments,
}

func init() {
	commentsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	addOptionFlags(commentsCmd)
}

func runComments(cmd *cobra.Command, args []string) error {
	cmd.SilenceErrors = true
	path := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	opts, _, err := loadOptions(cmd, path)
	if err != nil {
		return err
	}

	bag := diag.NewBag(maxDiagnostics)
	dumps, dumpErr := driver.DumpComments(cmd.Context(), path, opts, bag)

	// Выводим диагностику в stderr, если есть
	if bag.Len() > 0 {
		colorOn, _ := useColor(cmd, os.Stderr)
		if data, err := os.ReadFile(path); err == nil {
			fs := source.NewFileSet()
			fs.Add(path, data, 0)
			bag.Sort()
			_ = diagfmt.Pretty(os.Stderr, bag.Items(), fs, diagfmt.PrettyOpts{Color: colorOn, Context: 2, ShowNotes: true})
		}
	}
	if dumpErr != nil {
		fmt.Fprintf(os.Stderr, "comments: %v\n", dumpErr)
		return dumpErr
	}

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(dumps)
	}
	colorOn, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	return renderCommentsPretty(os.Stdout, path, dumps, colorOn)
}

func renderCommentsPretty(out io.Writer, path string, dumps []driver.CommentDump, useColor bool) error {
	heading := color.New(color.Bold)
	kind := color.New(color.FgCyan)
	dim := color.New(color.Faint)
	for _, c := range []*color.Color{heading, kind, dim} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	var b strings.Builder
	for i, d := range dumps {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s  indent=%q\n", heading.Sprintf("%s:%d:%d", path, d.Line, d.Column), d.Indent)
		for _, tok := range d.Tokens {
			blank := ""
			if tok.BlankBefore {
				blank = dim.Sprint(" (blank before)")
			}
			fmt.Fprintf(&b, "  %s%s", kind.Sprintf("%-10s", tok.Kind), blank)
			switch tok.Kind {
			case "annotation":
				fmt.Fprintf(&b, " @%s %s", tok.Name, strconv.Quote(tok.Content))
				if tok.FollowingText != "" {
					fmt.Fprintf(&b, " after %s", strconv.Quote(tok.FollowingText))
				}
			case "code":
				fmt.Fprintf(&b, " [%d:%d] %s", tok.StartPos, tok.EndPos, strconv.Quote(tok.Code))
			default:
				fmt.Fprintf(&b, " %s", strconv.Quote(tok.Content))
			}
			b.WriteByte('\n')
		}
		b.WriteString(dim.Sprint("  formatted:"))
		b.WriteByte('\n')
		for _, line := range strings.Split(d.Formatted, "\n") {
			b.WriteString("    ")
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(out, b.String())
	return err
}
