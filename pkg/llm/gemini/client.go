// Package gemini implements the llm.Client interface on the official
// google.golang.org/genai SDK.
package gemini

import (
	"context"
	"strings"
	"time"

	genai "google.golang.org/genai"

	"github.com/Ujjayini-101/GitRefiny/pkg/errors"
	"github.com/Ujjayini-101/GitRefiny/pkg/llm"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

const completionTimeout = 60 * time.Second

// Client is a thin wrapper around the official genai client.
type Client struct {
	cli   *genai.Client
	model string
}

// NewClient creates a Gemini client. An empty model selects DefaultModel.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidToken, "Gemini API key not configured")
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeGeneration, err, "create Gemini client")
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{cli: cli, model: model}, nil
}

// Name implements llm.Client.
func (c *Client) Name() string { return "gemini" }

// Complete implements llm.Client with a single GenerateContent call under
// a 60 second deadline.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	temp := float32(req.Temperature)
	cfg.Temperature = &temp

	resp, err := c.cli.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: req.Prompt}}}}, cfg)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", errors.Wrap(errors.ErrCodeTimeout, err, "generation request timed out")
		}
		return "", errors.Wrap(errors.ErrCodeGeneration, err, "Gemini completion failed")
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New(errors.ErrCodeGeneration, "completion response contained no candidates")
	}

	text := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", errors.New(errors.ErrCodeGeneration, "completion response was empty")
	}
	return text, nil
}
