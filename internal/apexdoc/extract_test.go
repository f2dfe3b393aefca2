package apexdoc

import (
	"strings"
	"testing"
)

func TestExtractCode(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    string
		end     int
		ok      bool
	}{
		{"balanced", "{@code Integer x = 10; }", "Integer x = 10;", 24, true},
		{"trailing text", "{@code Integer x = 10; } extra", "Integer x = 10;", 24, true},
		{"nested braces", "{@code if (x) { y(); } }", "if (x) { y(); }", 24, true},
		{"last closer fallback", "{@code if (x) { y();\n}", "if (x) { y();", 22, true},
		{"no closer", "{@code if (true) { if (false) {", "", 0, false},
		{"empty", "{@code}", "", 7, true},
		{"not a tag", "{@codex }", "", 0, false},
		{"multi-line", "{@code\nInteger a = 1;\n\nInteger b = 2;\n}", "Integer a = 1;\n\nInteger b = 2;", 39, true},
		{"edge blank lines trimmed", "{@code\n\n  a();\n\n}", "  a();", 17, true},
		{"asterisk prefixes", "{@code\n * if (x) {\n *     y();\n * }\n}", "if (x) {\n    y();\n}", 37, true},
		{"multiplication kept", "{@code Integer x = a * b; }", "Integer x = a * b;", 27, true},
		{"quoted brace closes", "{@code String s = '}'; }", "String s = '", 20, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, end, ok := ExtractCode(tt.content, 0)
			if ok != tt.ok || code != tt.code || (ok && end != tt.end) {
				t.Fatalf("ExtractCode(%q) = (%q, %d, %v), want (%q, %d, %v)",
					tt.content, code, end, ok, tt.code, tt.end, tt.ok)
			}
		})
	}
}

func TestExtractCodeOffset(t *testing.T) {
	content := "prose\n{@code a(); } tail"
	idx := strings.Index(content, codeTag)
	code, end, ok := ExtractCode(content, idx)
	if !ok || code != "a();" || content[end:] != " tail" {
		t.Fatalf("got (%q, %d, %v)", code, end, ok)
	}
	if _, _, ok := ExtractCode(content, 0); ok {
		t.Fatalf("offset 0 does not point at a tag")
	}
}

func TestExtractRoundTrip(t *testing.T) {
	payloads := []string{
		"Integer x = 10;",
		"if (a) {\n  b();\n}",
		"Map<Id, Account> m = new Map<Id, Account>{};",
		"a();\n\nb();",
	}
	for _, p := range payloads {
		first, _, ok := ExtractCode(codeTag+" "+p+" }", 0)
		if !ok {
			t.Fatalf("extract %q failed", p)
		}
		second, _, ok := ExtractCode(codeTag+"\n"+first+"\n}", 0)
		if !ok || second != first || first != p {
			t.Fatalf("round trip %q: first %q second %q", p, first, second)
		}
	}
}
