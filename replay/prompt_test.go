package replay

import "testing"

func TestNormalizePrompt(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase passthrough", "hello world", "hello world"},
		{"uppercase folds", "Hello WORLD", "hello world"},
		{"whitespace runs collapse", "hello \t\n  world", "hello world"},
		{"leading and trailing trimmed", "  hello world \n", "hello world"},
		{"only whitespace", " \t\n ", ""},
		{"punctuation kept", "it's done.", "it's done."},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizePrompt(tc.input)
			if err != nil {
				t.Fatalf("NormalizePrompt(%q): %v", tc.input, err)
			}
			if string(got) != tc.want {
				t.Errorf("NormalizePrompt(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizePrompt_RejectsNonASCII(t *testing.T) {
	if _, err := NormalizePrompt("héllo"); err != ErrPromptNotASCII {
		t.Errorf("err = %v, want ErrPromptNotASCII", err)
	}
}

func TestPromptHash_DependsOnNormalizedForm(t *testing.T) {
	a, err := NormalizePrompt("Hello   World")
	if err != nil {
		t.Fatal(err)
	}
	b, err := NormalizePrompt("hello world")
	if err != nil {
		t.Fatal(err)
	}
	if PromptHash(a) != PromptHash(b) {
		t.Error("equivalent prompts hash differently")
	}

	c, err := NormalizePrompt("hello worlds")
	if err != nil {
		t.Fatal(err)
	}
	if PromptHash(a) == PromptHash(c) {
		t.Error("distinct prompts hash identically")
	}
}
