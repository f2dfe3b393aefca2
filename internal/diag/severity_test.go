package diag

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSeverity(t *testing.T) {
	for in, want := range map[string]Severity{"info": SevInfo, "Warning": SevWarning, "warn": SevWarning, "ERROR": SevError} {
		got, err := ParseSeverity(in)
		if err != nil || got != want {
			t.Errorf("ParseSeverity(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseSeverity("fatal"); err == nil {
		t.Error("expected an error for an unknown severity")
	}
}

func TestAtLeast(t *testing.T) {
	block := &Diagnostic{Severity: SevWarning, Code: FmtCodeBlockUnformatted}
	lex := &Diagnostic{Severity: SevError, Code: LexUnterminatedString}
	note := &Diagnostic{Severity: SevInfo}
	all := []*Diagnostic{block, note, lex}

	if diff := cmp.Diff([]*Diagnostic{lex}, AtLeast(all, SevError)); diff != "" {
		t.Errorf("errors only (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]*Diagnostic{block, lex}, AtLeast(all, SevWarning)); diff != "" {
		t.Errorf("warnings and up (-want +got):\n%s", diff)
	}
	if got := AtLeast(all, SevInfo); len(got) != 3 || &got[0] == &all[0] {
		t.Error("AtLeast must copy, not alias, its input")
	}
}
