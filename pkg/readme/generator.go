// Package readme synthesizes README markdown from a completed analysis.
//
// Generation has two paths. The delegated path builds a prompt from every
// analysis field and makes one blocking completion call against an external
// backend. The template path renders a fixed skeleton from the same data
// with no external calls and cannot fail.
//
// Model selection decides between them: a forced model propagates its
// backend's errors verbatim, while auto tries configured backends in order
// and silently falls back to the template.
package readme

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Ujjayini-101/GitRefiny/pkg/analysis"
	"github.com/Ujjayini-101/GitRefiny/pkg/errors"
	"github.com/Ujjayini-101/GitRefiny/pkg/llm"
)

// Completion parameters for the delegated path.
const (
	maxTokens   = 8000
	temperature = 0.7
)

// Generator synthesizes README documents. Backends are optional: a
// Generator with neither backend still serves the template path.
type Generator struct {
	llama  llm.Client
	gemini llm.Client
	log    *log.Logger
}

// NewGenerator creates a Generator. Either backend may be nil when its API
// key is not configured. A nil logger discards output.
func NewGenerator(llama, gemini llm.Client, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Generator{llama: llama, gemini: gemini, log: logger}
}

// Generate produces README markdown for the analysis result.
func (g *Generator) Generate(ctx context.Context, res *analysis.Result, opts Options) (string, error) {
	if err := opts.normalize(); err != nil {
		return "", err
	}

	switch opts.Model {
	case ModelTemplate:
		return renderTemplate(res), nil
	case ModelLlama3:
		return g.delegate(ctx, g.llama, "llama3", res, opts)
	case ModelGemini:
		return g.delegate(ctx, g.gemini, "gemini", res, opts)
	default:
		return g.auto(ctx, res, opts)
	}
}

// delegate runs the forced-model path: backend errors propagate verbatim.
func (g *Generator) delegate(ctx context.Context, backend llm.Client, name string,
	res *analysis.Result, opts Options) (string, error) {
	if backend == nil {
		return "", errors.New(errors.ErrCodeGeneration, "%s backend not configured", name)
	}

	markdown, err := backend.Complete(ctx, llm.Request{
		System:      systemMessage,
		Prompt:      buildPrompt(res, opts),
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	return formatMarkdown(markdown), nil
}

// auto tries each configured backend in order, falling back to the
// template when all of them fail or none is configured.
func (g *Generator) auto(ctx context.Context, res *analysis.Result, opts Options) (string, error) {
	for _, backend := range []llm.Client{g.llama, g.gemini} {
		if backend == nil {
			continue
		}
		markdown, err := backend.Complete(ctx, llm.Request{
			System:      systemMessage,
			Prompt:      buildPrompt(res, opts),
			MaxTokens:   maxTokens,
			Temperature: temperature,
		})
		if err != nil {
			g.log.Warn("generation backend failed, trying next",
				"backend", backend.Name(), "err", err)
			continue
		}
		return formatMarkdown(markdown), nil
	}

	g.log.Debug("no generation backend succeeded, using template")
	return renderTemplate(res), nil
}

// formatMarkdown normalizes delegated output: a blank line is inserted
// after each header directly followed by body text.
func formatMarkdown(content string) string {
	lines := strings.Split(content, "\n")
	formatted := make([]string, 0, len(lines))
	for i, line := range lines {
		formatted = append(formatted, line)
		if strings.HasPrefix(line, "#") && i+1 < len(lines) {
			next := lines[i+1]
			if next != "" && !strings.HasPrefix(next, "#") {
				formatted = append(formatted, "")
			}
		}
	}
	return strings.Join(formatted, "\n")
}
