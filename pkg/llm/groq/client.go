// Package groq implements the llm.Client interface against the Groq
// chat-completions API (OpenAI-compatible wire format).
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Ujjayini-101/GitRefiny/pkg/errors"
	"github.com/Ujjayini-101/GitRefiny/pkg/llm"
	"github.com/Ujjayini-101/GitRefiny/pkg/observability"
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1"

	// Model is the Groq model every completion uses.
	Model = "llama-3.3-70b-versatile"

	completionTimeout = 60 * time.Second
)

// Client calls the Groq chat-completions endpoint.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

// NewClient creates a Groq client. The API key is required; Complete fails
// with a structured error when it is empty.
func NewClient(apiKey string) *Client {
	return &Client{
		http:    &http.Client{},
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
	}
}

// Name implements llm.Client.
func (c *Client) Name() string { return "llama3" }

// Complete implements llm.Client with a single blocking chat-completions
// call under a 60 second deadline.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	if c.apiKey == "" {
		return "", errors.New(errors.ErrCodeInvalidToken, "Groq API key not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	var messages []chatMessage
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	body, err := json.Marshal(chatRequest{
		Model:       Model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode completion request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "build completion request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	host := httpReq.URL.Host
	observability.HTTP().OnRequest(ctx, http.MethodPost, host, httpReq.URL.Path)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		mapped := mapTransportError(ctx, err)
		observability.HTTP().OnError(ctx, http.MethodPost, host, httpReq.URL.Path, mapped)
		return "", mapped
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodPost, host, httpReq.URL.Path,
		resp.StatusCode, time.Since(start))

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var data chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", errors.Wrap(errors.ErrCodeGeneration, err, "decode completion response")
	}
	if len(data.Choices) == 0 {
		return "", errors.New(errors.ErrCodeGeneration, "completion response contained no choices")
	}
	text := strings.TrimSpace(data.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New(errors.ErrCodeGeneration, "completion response was empty")
	}
	return text, nil
}

func mapTransportError(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return errors.Wrap(errors.ErrCodeTimeout, err, "generation request timed out")
	}
	return errors.Wrap(errors.ErrCodeNetwork, err, "network error calling generation API")
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	// Error bodies are small; read a bounded amount for the message.
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return errors.New(errors.ErrCodeRateLimited,
			"generation API rate limit exceeded, try again later")
	case http.StatusUnauthorized:
		return errors.New(errors.ErrCodeInvalidToken, "invalid Groq API key")
	case http.StatusForbidden:
		return errors.New(errors.ErrCodeAuthRequired, "Groq API access forbidden")
	default:
		return errors.New(errors.ErrCodeGeneration,
			"generation API error: %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
