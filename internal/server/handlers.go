package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Ujjayini-101/GitRefiny/pkg/analysis"
	"github.com/Ujjayini-101/GitRefiny/pkg/errors"
	"github.com/Ujjayini-101/GitRefiny/pkg/github"
	"github.com/Ujjayini-101/GitRefiny/pkg/llm"
	"github.com/Ujjayini-101/GitRefiny/pkg/readme"
)

// Chat parameters: messages are truncated to keep prompts bounded, replies
// stay short.
const (
	chatMessageLimit = 500
	chatContextLimit = 200
	chatMaxTokens    = 500
	chatTemperature  = 0.7
)

// chatSystemPrompt frames the assistant as a README documentation helper.
const chatSystemPrompt = `You are a helpful README documentation assistant for GitRefiny, an AI-powered README generator.

Your role:
- Help users improve their README files
- Answer questions about README best practices
- Provide suggestions for README sections
- Explain how to use GitRefiny features
- Give advice on documentation structure

Keep responses:
- Concise (2-3 paragraphs max)
- Practical and actionable
- Focused on README documentation
- Friendly and helpful

If asked about non-README topics, politely redirect to README-related help.`

type analyzeRequest struct {
	RepoURL string `json:"repo_url"`
	Token   string `json:"token"`
}

// handleAnalyze runs a full analysis and returns the result document.
// A request token overrides the configured default token.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.RepoURL == "" {
		s.writeError(w, errors.New(errors.ErrCodeMissingField,
			"Missing required field: repo_url"))
		return
	}

	loc, err := github.ParseRepoURL(req.RepoURL)
	if err != nil {
		s.writeError(w, err)
		return
	}

	token := req.Token
	if token == "" {
		token = s.token
	}

	analyzer := analysis.New(s.newClient(token), s.cache, s.log)
	result, err := analyzer.Analyze(r.Context(), loc)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type generateRequest struct {
	RepoURL  string   `json:"repo_url"`
	Sections []string `json:"sections"`
	Tone     string   `json:"tone"`
	Model    string   `json:"model"`
}

type generateResponse struct {
	Markdown    string `json:"markdown"`
	GeneratedAt string `json:"generated_at"`
}

// handleGenerate synthesizes a README from a previously cached analysis.
// Without a prior analysis the request fails with ANALYSIS_NOT_FOUND.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.RepoURL == "" {
		s.writeError(w, errors.New(errors.ErrCodeMissingField,
			"Missing required field: repo_url"))
		return
	}

	loc, err := github.ParseRepoURL(req.RepoURL)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, ok := s.cache.Lookup(r.Context(), loc.String())
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeAnalysisNotFound,
			"Repository analysis not found. Please analyze the repository first."))
		return
	}

	markdown, err := s.gen.Generate(r.Context(), result, readme.Options{
		Sections: req.Sections,
		Tone:     readme.Tone(strings.ToLower(req.Tone)),
		Model:    readme.Model(strings.ToLower(req.Model)),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Markdown:    markdown,
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
	})
}

type chatRequest struct {
	Message string `json:"message"`
	Context string `json:"context"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// handleChat answers README questions through the chat backend.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		s.writeError(w, errors.New(errors.ErrCodeMissingField, "Message cannot be empty"))
		return
	}
	if len(message) > chatMessageLimit {
		message = message[:chatMessageLimit] + "..."
	}

	if s.chat == nil {
		s.writeError(w, errors.New(errors.ErrCodeGeneration,
			"chat backend not configured"))
		return
	}

	prompt := message
	if req.Context != "" {
		ctxText := req.Context
		if len(ctxText) > chatContextLimit {
			ctxText = ctxText[:chatContextLimit]
		}
		prompt = "Context: " + ctxText + "\n\nUser question: " + message
	}

	reply, err := s.chat.Complete(r.Context(), llm.Request{
		System:      chatSystemPrompt,
		Prompt:      prompt,
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Response: reply})
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: s.now().UTC().Format(time.RFC3339),
	})
}

// decodeBody parses a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeMissingField, err, "invalid JSON request body")
	}
	return nil
}
