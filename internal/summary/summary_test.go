package summary

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func TestSummarizeUsesGenerator(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{response: "  A lovely day for everyone.  "}
	s := New(gen, time.Second, nil)

	got := s.Summarize(context.Background(), "long article text", "")
	if got != "A lovely day for everyone." {
		t.Fatalf("unexpected summary: %q", got)
	}

	if len(gen.prompts) != 1 {
		t.Fatalf("expected 1 prompt, got %d", len(gen.prompts))
	}
	if !strings.Contains(gen.prompts[0], "long article text") {
		t.Fatalf("prompt missing article text: %q", gen.prompts[0])
	}
	if !strings.HasPrefix(gen.prompts[0], baseInstruction) {
		t.Fatalf("prompt missing base instruction: %q", gen.prompts[0])
	}
}

func TestSummarizeAppendsInstruction(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{response: "teaser"}
	s := New(gen, time.Second, nil)

	s.Summarize(context.Background(), "body", TeaserInstruction)
	if !strings.HasSuffix(gen.prompts[0], "\n\n"+TeaserInstruction) {
		t.Fatalf("custom instruction not appended: %q", gen.prompts[0])
	}
}

func TestSummarizeFallsBackOnError(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{err: errors.New("connection refused")}
	s := New(gen, time.Second, nil)

	text := strings.Repeat("a", 400)
	got := s.Summarize(context.Background(), text, "")
	if got != Fallback(text) {
		t.Fatalf("expected fallback output, got %q", got)
	}
}

func TestSummarizeFallsBackOnEmptyResponse(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{response: "   "}
	s := New(gen, time.Second, nil)

	if got := s.Summarize(context.Background(), "text", ""); got != Fallback("text") {
		t.Fatalf("expected fallback output, got %q", got)
	}
}

func TestSummarizeWithoutGenerator(t *testing.T) {
	t.Parallel()

	s := New(nil, time.Second, nil)
	if got := s.Summarize(context.Background(), "text", ""); got != Fallback("text") {
		t.Fatalf("expected fallback output, got %q", got)
	}
}

func TestFallback(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 500)
	got := Fallback(long)
	if got != strings.Repeat("x", 300)+ellipsisMarker {
		t.Fatalf("unexpected truncation: %d chars", len(got))
	}

	short := "short text"
	if Fallback(short) != short+ellipsisMarker {
		t.Fatalf("unexpected short fallback: %q", Fallback(short))
	}

	// Truncation counts characters, not bytes.
	wide := strings.Repeat("é", 400)
	gotWide := Fallback(wide)
	if utf8.RuneCountInString(gotWide) != 301 {
		t.Fatalf("expected 301 runes, got %d", utf8.RuneCountInString(gotWide))
	}

	if Fallback(long) != Fallback(long) {
		t.Fatal("fallback is not deterministic")
	}
}
