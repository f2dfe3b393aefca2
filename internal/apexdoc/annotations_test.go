package apexdoc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func para(lines ...string) *ParagraphToken {
	content := ""
	for i, l := range lines {
		if i > 0 {
			content += "\n"
		}
		content += l
	}
	return &ParagraphToken{Content: content, Lines: lines}
}

func TestDetectAnnotations(t *testing.T) {
	tests := []struct {
		name string
		in   Token
		want []Token
	}{
		{
			name: "hoisted lead",
			in:   para("See the docs @see Foo.bar", "more"),
			want: []Token{&AnnotationToken{Name: "see", Content: "Foo.bar more", FollowingText: "See the docs"}},
		},
		{
			name: "email and unknown mid-line tag",
			in:   para("Mail a@b.com or ping @bob"),
			want: []Token{para("Mail a@b.com or ping @bob")},
		},
		{
			name: "tag inside inline code",
			in:   para("{@code @IsTest} marks tests"),
			want: []Token{para("{@code @IsTest} marks tests")},
		},
		{
			name: "two tags on one line",
			in:   para("@Param a first @return b"),
			want: []Token{
				&AnnotationToken{Name: "Param", Content: "a first"},
				&AnnotationToken{Name: "return", Content: "b"},
			},
		},
		{
			name: "prose then tag",
			in:   &ParagraphToken{Content: "intro\n@throws X when bad", Lines: []string{"intro", "@throws X when bad"}, BlankBefore: true},
			want: []Token{
				&ParagraphToken{Content: "intro", Lines: []string{"intro"}, BlankBefore: true},
				&AnnotationToken{Name: "throws", Content: "X when bad"},
			},
		},
		{
			name: "lead that looks like a tag",
			in:   para("contact @bob @see Foo"),
			want: []Token{
				para("contact @bob"),
				&AnnotationToken{Name: "see", Content: "Foo"},
			},
		},
		{
			name: "unknown tag at line start",
			in:   para("@MyTag value"),
			want: []Token{&AnnotationToken{Name: "MyTag", Content: "value"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectAnnotations([]Token{tt.in}, nil)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DetectAnnotations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDetectAnnotationsKeepsCode(t *testing.T) {
	cb := &CodeBlockToken{RawCode: "@IsTest"}
	got := DetectAnnotations([]Token{cb}, nil)
	if len(got) != 1 || got[0] != cb {
		t.Fatalf("code block must pass through untouched, got %#v", got)
	}
}

type strictClassifier struct{}

func (strictClassifier) Classify(line string) []int {
	if len(line) > 0 && line[0] == '@' {
		return []int{0}
	}
	return nil
}

func TestDetectAnnotationsCustomClassifier(t *testing.T) {
	got := DetectAnnotations([]Token{para("See the docs @see Foo")}, strictClassifier{})
	if diff := cmp.Diff([]Token{para("See the docs @see Foo")}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeAnnotations(t *testing.T) {
	toks := []Token{
		&AnnotationToken{Name: "Param", Content: "foo The description"},
		&AnnotationToken{Name: "GROUP", Content: "class Some description"},
		&AnnotationToken{Name: "group", Content: "lwc"},
		&AnnotationToken{Name: "group", Content: "Billing  stuff"},
		&AnnotationToken{Name: "MyTag", Content: "x"},
	}
	NormalizeAnnotations(toks)
	want := []Token{
		&AnnotationToken{Name: "param", Content: "foo The description"},
		&AnnotationToken{Name: "group", Content: "Class Some description"},
		&AnnotationToken{Name: "group", Content: "LWC"},
		&AnnotationToken{Name: "group", Content: "Billing  stuff"},
		&AnnotationToken{Name: "mytag", Content: "x"},
	}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Errorf("NormalizeAnnotations mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifier(t *testing.T) {
	tests := []struct {
		line string
		want []int
	}{
		{"@param x", []int{0}},
		{"  @anything x", []int{2}},
		{"text @return y", []int{5}},
		{"text @custom y", nil},
		{"user@example.com", nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, DefaultClassifier.Classify(tt.line)); diff != "" {
			t.Errorf("Classify(%q) mismatch (-want +got):\n%s", tt.line, diff)
		}
	}
}
