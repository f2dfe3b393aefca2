package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"apexdoc/internal/config"
	"apexdoc/internal/driver"
)

func TestReadAutoMode(t *testing.T) {
	tests := []struct {
		in   string
		want autoMode
		err  bool
	}{
		{"", modeAuto, false},
		{" AUTO ", modeAuto, false},
		{"on", modeOn, false},
		{"Off", modeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := readAutoMode("ui", tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("readAutoMode(%q) = (%q, %v)", tt.in, got, err)
		}
	}
	if !modeOn.enabled(nil) || modeOff.enabled(nil) {
		t.Errorf("explicit modes must not consult the terminal")
	}
}

func TestPhaseTimer(t *testing.T) {
	if obs, timer := phaseTimer(false); obs != nil || timer != nil {
		t.Fatalf("disabled timer should be nil")
	}
	obs, timer := phaseTimer(true)
	obs(driver.PhaseEvent{Name: "collect", Status: driver.PhaseStart})
	obs(driver.PhaseEvent{Name: "collect", Status: driver.PhaseEnd})
	var buf bytes.Buffer
	if err := printTimings(&buf, timer, true); err != nil {
		t.Fatal(err)
	}
	var report struct {
		Phases []struct {
			Name string `json:"name"`
		} `json:"phases"`
	}
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatal(err)
	}
	if len(report.Phases) != 1 || report.Phases[0].Name != "collect" {
		t.Errorf("report = %s", buf.String())
	}
}

func TestRenderFmtDiff(t *testing.T) {
	results := []driver.FormatResult{
		{Path: "a.cls", Diff: "--- a/a.cls\n+++ b/a.cls\n@@ -1 +1 @@\n-x\n+y\n"},
		{Path: "b.cls"},
		{Path: "c.cls", Err: errors.New("boom")},
	}
	var buf bytes.Buffer
	var hasErrors, hasChanges bool
	renderFmtDiff(&buf, results, false, &hasErrors, &hasChanges)
	if buf.String() != results[0].Diff {
		t.Errorf("diff output = %q", buf.String())
	}
	if !hasErrors || !hasChanges {
		t.Errorf("flags = %v %v", hasErrors, hasChanges)
	}
}

func TestRenderFmtJSON(t *testing.T) {
	var buf bytes.Buffer
	err := renderFmtJSON(&buf, []driver.FormatResult{{Path: "a.cls", Changed: true, Comments: 2}}, true)
	if err != nil {
		t.Fatal(err)
	}
	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	want := []map[string]any{{"path": "a.cls", "changed": true, "comments": float64(2), "check": true}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderCommentsPretty(t *testing.T) {
	dumps := []driver.CommentDump{{
		Line: 2, Column: 5, Indent: "    ",
		Tokens: []driver.TokenDump{
			{Kind: "paragraph", Content: "Says hi."},
			{Kind: "annotation", Name: "param", Content: "name who", BlankBefore: true},
		},
		Formatted: "/**\n     */",
	}}
	var buf bytes.Buffer
	if err := renderCommentsPretty(&buf, "G.cls", dumps, false); err != nil {
		t.Fatal(err)
	}
	want := "G.cls:2:5  indent=\"    \"\n" +
		"  paragraph  \"Says hi.\"\n" +
		"  annotation (blank before) @param \"name who\"\n" +
		"  formatted:\n" +
		"    /**\n" +
		"         */\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".apexdoc.toml"), []byte("print_width = 100\ntab_width = 4\n[files]\nexclude = [\"**/gen\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	root := &cobra.Command{Use: "apexdoc"}
	root.PersistentFlags().String("config", "", "")
	cmd := &cobra.Command{Use: "fmt", RunE: func(*cobra.Command, []string) error { return nil }}
	addOptionFlags(cmd)
	root.AddCommand(cmd)
	if err := cmd.Flags().Parse([]string{"--tab-width", "3", "--use-tabs"}); err != nil {
		t.Fatal(err)
	}

	opts, project, err := loadOptions(cmd, dir)
	if err != nil {
		t.Fatal(err)
	}
	want := config.Options{PrintWidth: 100, TabWidth: 3, UseTabs: config.Bool(true)}
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"**/gen"}, project.Excludes()); diff != "" {
		t.Errorf("excludes mismatch (-want +got):\n%s", diff)
	}

	if err := cmd.Flags().Set("print-width", "0"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := loadOptions(cmd, dir); !errors.Is(err, config.ErrMissingPrintWidth) {
		t.Errorf("err = %v, want ErrMissingPrintWidth", err)
	}
}

func TestVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := renderVersionJSON(&buf, true); err != nil {
		t.Fatal(err)
	}
	var got versionPayload
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Tool != "apexdoc" || got.Version == "" || got.GitCommit == "" {
		t.Errorf("payload = %+v", got)
	}
}
