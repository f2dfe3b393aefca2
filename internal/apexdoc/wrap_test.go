package apexdoc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEffectiveWidth(t *testing.T) {
	tests := []struct{ pw, indent, want int }{
		{80, 0, 76},
		{80, 4, 74},
		{40, 1, 37},
	}
	for _, tt := range tests {
		if got := EffectiveWidth(tt.pw, tt.indent); got != tt.want {
			t.Errorf("EffectiveWidth(%d, %d) = %d, want %d", tt.pw, tt.indent, got, tt.want)
		}
	}
}

func TestDisplayWidth(t *testing.T) {
	if got := displayWidth("\tab", 4); got != 6 {
		t.Errorf("tab width: got %d", got)
	}
	if got := displayWidth("日本", 2); got != 4 {
		t.Errorf("wide runes: got %d", got)
	}
}

func TestWrapWords(t *testing.T) {
	tests := []struct {
		name        string
		words       []string
		first, rest int
		want        []string
	}{
		{"greedy", []string{"aaa", "bbb", "ccc"}, 7, 7, []string{"aaa bbb", "ccc"}},
		{"first budget", []string{"aaa", "bbb", "ccc"}, 3, 7, []string{"aaa", "bbb ccc"}},
		{"long word", []string{"a", "bbbbbbbbbb", "c"}, 5, 5, []string{"a", "bbbbbbbbbb", "c"}},
		{"tag glued", []string{"x", "@y", "z"}, 1, 1, []string{"x @y", "z"}},
		{"code glued", []string{"x", "{@code", "y}"}, 1, 1, []string{"x {@code", "y}"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, wrapWords(tt.words, tt.first, tt.rest, 2)); diff != "" {
				t.Errorf("wrapWords mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWrapLine(t *testing.T) {
	if diff := cmp.Diff([]string{"fits"}, wrapLine("fits", 10, 2)); diff != "" {
		t.Error(diff)
	}
	want := []string{"  one two", "  three"}
	if diff := cmp.Diff(want, wrapLine("  one two three", 10, 2)); diff != "" {
		t.Errorf("hanging indent mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapAnnotation(t *testing.T) {
	a := &AnnotationToken{Name: "param", Content: "values the values to sum"}
	want := []string{"@param values the", "values to sum"}
	if diff := cmp.Diff(want, wrapAnnotation(a, 17, 2)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	// No room for content after "@param ": leave the line alone.
	if diff := cmp.Diff([]string{"@param a b"}, wrapAnnotation(&AnnotationToken{Name: "param", Content: "a b"}, 5, 2)); diff != "" {
		t.Errorf("degenerate width mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"@return"}, wrapAnnotation(&AnnotationToken{Name: "return"}, 20, 2)); diff != "" {
		t.Errorf("empty content mismatch (-want +got):\n%s", diff)
	}
}
