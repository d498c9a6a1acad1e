// Package summary rewrites article text into short upbeat blurbs via a
// generative-text backend, degrading to a deterministic truncation when the
// backend is unavailable. Curation must never depend on the generative
// service being reachable.
package summary

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"goodnews/internal/ports"
)

const (
	baseInstruction = "Summarise the following article in 2-3 sentences, keep it upbeat and feel-good:"

	// TeaserInstruction is the variant used by the single-URL describe path.
	TeaserInstruction = "Then rewrite it as a teaser of at most 150 characters."

	fallbackLimit  = 300
	ellipsisMarker = "…"
)

// Summarizer implements ports.Summarizer on top of a Generator.
type Summarizer struct {
	gen     ports.Generator
	timeout time.Duration
	logger  *slog.Logger
}

var _ ports.Summarizer = (*Summarizer)(nil)

// New wires the generative backend. gen may be nil, in which case every call
// takes the fallback path.
func New(gen ports.Generator, timeout time.Duration, logger *slog.Logger) *Summarizer {
	return &Summarizer{gen: gen, timeout: timeout, logger: logger}
}

// Summarize asks the backend for a rewrite of text. instruction, when
// non-empty, is appended to the base prompt. Any backend failure (timeout,
// transport error, blank response) yields Fallback(text) instead.
func (s *Summarizer) Summarize(ctx context.Context, text, instruction string) string {
	if s.gen == nil {
		return Fallback(text)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.gen.Generate(ctx, buildPrompt(text, instruction))
	if err != nil {
		s.warn("summarize failed, using fallback", "error", err)
		return Fallback(text)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		s.warn("summarize returned empty response, using fallback")
		return Fallback(text)
	}

	return out
}

// Fallback truncates text to 300 characters and appends an ellipsis marker.
// Deterministic and never fails.
func Fallback(text string) string {
	runes := []rune(text)
	if len(runes) > fallbackLimit {
		runes = runes[:fallbackLimit]
	}
	return string(runes) + ellipsisMarker
}

func buildPrompt(text, instruction string) string {
	prompt := baseInstruction + "\n\n" + text
	if instruction != "" {
		prompt += "\n\n" + instruction
	}
	return prompt
}

func (s *Summarizer) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
