package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"apexdoc/internal/diag"
	"apexdoc/internal/source"
)

func fixture() (*source.FileSet, []*diag.Diagnostic) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("force-app/classes/T.cls", []byte("line one\nx = 'abc\n"))
	d := &diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnterminatedString,
		Message:  "unterminated string literal",
		Primary:  source.Span{File: id, Start: 13, End: 17},
		Notes:    []diag.Note{{Span: source.Span{File: id, Start: 0, End: 4}, Msg: "opened here"}},
	}
	return fs, []*diag.Diagnostic{d}
}

func TestPretty(t *testing.T) {
	fs, diags := fixture()
	var buf bytes.Buffer
	err := Pretty(&buf, diags, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename, ShowNotes: true})
	if err != nil {
		t.Fatal(err)
	}
	want := "T.cls:2:5: ERROR LEX1002: unterminated string literal\n" +
		" 1 | line one\n" +
		" 2 | x = 'abc\n" +
		"   |     ^~~~\n" +
		"  note: T.cls:1:1: opened here\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPrettyColor(t *testing.T) {
	fs, diags := fixture()
	var buf bytes.Buffer
	if err := Pretty(&buf, diags, fs, PrettyOpts{Color: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected ANSI escapes, got %q", buf.String())
	}
}

func TestPrettyExpandsTabs(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.apex", []byte("\tfoo(bar;\n"))
	d := &diag.Diagnostic{Severity: diag.SevWarning, Code: diag.FmtCodeBlockUnformatted, Message: "m", Primary: source.Span{File: id, Start: 1, End: 4}}
	var buf bytes.Buffer
	if err := Pretty(&buf, []*diag.Diagnostic{d}, fs, PrettyOpts{TabWidth: 2, PathMode: PathModeBasename}); err != nil {
		t.Fatal(err)
	}
	want := "a.apex:1:2: WARNING FMT3001: m\n" +
		" 1 |   foo(bar;\n" +
		"   |   ^~~\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestJSON(t *testing.T) {
	fs, diags := fixture()
	var buf bytes.Buffer
	if err := JSON(&buf, diags, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename}); err != nil {
		t.Fatal(err)
	}
	var got DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	want := DiagnosticsOutput{
		Count: 1,
		Diagnostics: []DiagnosticJSON{{
			Severity: "ERROR",
			Code:     "LEX1002",
			Message:  "unterminated string literal",
			Location: LocationJSON{File: "T.cls", StartByte: 13, EndByte: 17, StartLine: 2, StartCol: 5, EndLine: 2, EndCol: 9},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONMax(t *testing.T) {
	fs, diags := fixture()
	diags = append(diags, diags[0])
	out := BuildDiagnosticsOutput(diags, fs, JSONOpts{Max: 1, IncludeNotes: true})
	if out.Count != 1 || len(out.Diagnostics[0].Notes) != 1 {
		t.Errorf("output = %+v", out)
	}
}
