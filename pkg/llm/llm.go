// Package llm defines the completion interface the documentation generator
// delegates to. Concrete backends live in subpackages (groq, gemini); the
// generator depends only on Client so backends are swappable and tests can
// substitute fakes.
package llm

import "context"

// Request is a single completion request. One request, one blocking call,
// one response; there is no streaming and no retry layer.
type Request struct {
	// System is the system-role instruction, empty if the backend has none.
	System string
	// Prompt is the user-role content.
	Prompt string
	// MaxTokens bounds the completion length; 0 means backend default.
	MaxTokens int
	// Temperature controls sampling; backends pass it through verbatim.
	Temperature float64
}

// Client is a synchronous completion backend.
type Client interface {
	// Name identifies the backend in model selection and logs.
	Name() string

	// Complete performs one blocking completion call and returns the
	// generated text. Errors carry structured codes distinguishing rate
	// limits, invalid credentials, timeouts, network failures, and
	// malformed responses.
	Complete(ctx context.Context, req Request) (string, error)
}
