// Package server exposes the analyzer and generator over HTTP.
//
// The API surface is four JSON endpoints under /api: analyze, generate,
// chat, and health. Errors leave the server as a uniform envelope
// {"error":{"code","message"}} with the status derived from the structured
// error code.
//
// Analysis clients are built per request so a caller-supplied token can
// override the configured one; the result cache is shared process-wide.
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/Ujjayini-101/GitRefiny/pkg/analysis"
	"github.com/Ujjayini-101/GitRefiny/pkg/cache"
	"github.com/Ujjayini-101/GitRefiny/pkg/errors"
	"github.com/Ujjayini-101/GitRefiny/pkg/github"
	"github.com/Ujjayini-101/GitRefiny/pkg/llm"
	"github.com/Ujjayini-101/GitRefiny/pkg/readme"
)

// Server handles the HTTP API.
type Server struct {
	log   *log.Logger
	cache *cache.Store[*analysis.Result]
	gen   *readme.Generator
	chat  llm.Client
	token string

	// newClient builds the GitHub client for one request's token.
	// Replaceable in tests.
	newClient func(token string) analysis.RepoClient

	// now is replaceable in tests.
	now func() time.Time
}

// New creates a Server. chat may be nil when no chat backend is
// configured; defaultToken is used when a request carries no token. A nil
// logger discards output.
func New(store *cache.Store[*analysis.Result], gen *readme.Generator,
	chat llm.Client, defaultToken string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		log:   logger,
		cache: store,
		gen:   gen,
		chat:  chat,
		token: defaultToken,
		newClient: func(token string) analysis.RepoClient {
			return github.NewClient(token)
		},
		now: time.Now,
	}
}

// Router builds the chi routing tree with all middleware attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/generate", s.handleGenerate)
		r.Post("/chat", s.handleChat)
		r.Get("/health", s.handleHealth)
	})

	return r
}

// requestID tags every request with a UUID, echoed in the X-Request-ID
// response header.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// logRequests logs one line per completed request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", ww.Header().Get("X-Request-ID"))
	})
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorEnvelope is the uniform error response shape.
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps a structured error to its HTTP status and envelope.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, errors.HTTPStatus(err), errorEnvelope{
		Error: errorBody{Code: string(code), Message: errors.UserMessage(err)},
	})
}
