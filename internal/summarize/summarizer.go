package summarize

import (
	"context"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"bookflow/internal/config"
)

// Summary sources, most to least trustworthy.
const (
	SourceRemote         = "remote"
	SourceRemoteFallback = "remote_fallback"
	SourceExtractive     = "extractive"
	SourcePlaceholder    = "placeholder"
)

// Result is a produced summary plus its provenance.
type Result struct {
	Summary  string
	Source   string
	Provider string
	Model    string
}

// Summarizer tries remote providers in order and degrades to the extractive
// fallback. It never returns an empty summary and never fails.
type Summarizer struct {
	providers []Provider
}

// New builds a summarizer over an ordered provider chain. An empty chain is
// valid and yields extractive summaries only.
func New(providers ...Provider) *Summarizer {
	return &Summarizer{providers: providers}
}

// NewFromConfig wires the primary and backup Hugging Face models when an API
// key is configured.
func NewFromConfig(cfg config.Config) *Summarizer {
	if strings.TrimSpace(cfg.HuggingFaceAPIKey) == "" {
		return New()
	}
	timeout := time.Duration(cfg.SummaryTimeoutSecs) * time.Second
	return New(
		NewHFProvider(cfg.HuggingFaceAPIKey, cfg.SummaryModel, timeout),
		NewHFProvider(cfg.HuggingFaceAPIKey, cfg.SummaryModelBackup, timeout),
	)
}

// Summarize produces a summary of text. customMaxLength overrides the
// length-band budget when positive. Remote output that fails the grounding
// check is discarded in favor of the extractive fallback.
func (s *Summarizer) Summarize(ctx context.Context, text string, customMaxLength int) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Summary: "Texte vide - impossible de générer un résumé.", Source: SourcePlaceholder}
	}

	b := bandFor(utf8.RuneCountInString(text))
	maxLen := b.MaxLength
	if customMaxLength > 0 {
		maxLen = customMaxLength
	}

	if len(s.providers) > 0 {
		req := Request{Text: PrepareForModel(text), MaxLength: maxLen, MinLength: b.MinLength}
		for i, p := range s.providers {
			out, err := p.Summarize(ctx, req)
			if err != nil {
				log.Printf("summarize: provider %s model %s failed (%s): %v", p.Name(), p.Model(), ClassifyError(err), err)
				continue
			}
			summary := postprocessSummary(out)
			if !looksGrounded(summary, text) {
				log.Printf("summarize: model %s output failed grounding check, using extractive fallback", p.Model())
				break
			}
			source := SourceRemote
			if i > 0 {
				source = SourceRemoteFallback
			}
			return Result{Summary: summary, Source: source, Provider: p.Name(), Model: p.Model()}
		}
	}

	summary, placeholder := SimpleSummary(text, b.Sentences)
	source := SourceExtractive
	if placeholder {
		source = SourcePlaceholder
	}
	return Result{Summary: summary, Source: source}
}

// Ping checks remote availability with a tiny request against the last (most
// modest) provider in the chain.
func (s *Summarizer) Ping(ctx context.Context) bool {
	if len(s.providers) == 0 {
		return false
	}
	p := s.providers[len(s.providers)-1]
	out, err := p.Summarize(ctx, Request{
		Text:      "This is a simple test to check if the API is working properly. The test should return a brief summary.",
		MaxLength: 50,
		MinLength: 10,
	})
	return err == nil && strings.TrimSpace(out) != ""
}
