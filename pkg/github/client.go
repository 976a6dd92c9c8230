// Package github provides locator parsing and a client for the GitHub REST API.
//
// The client performs three independent fetches per analysis: repository
// metadata, the recursive file tree, and the language byte-count breakdown.
// Metadata and tree failures are load-bearing and surface as structured
// errors; language failures degrade silently to an empty breakdown.
//
// Every call is single-shot with its own timeout. There is no retry layer:
// the analysis pipeline is fail-fast and callers decide whether to rerun.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Ujjayini-101/GitRefiny/pkg/errors"
	"github.com/Ujjayini-101/GitRefiny/pkg/observability"
)

const defaultBaseURL = "https://api.github.com"

// Per-operation timeouts. The tree fetch gets longer because recursive
// listings of large repositories are slow on the GitHub side.
const (
	metadataTimeout  = 10 * time.Second
	treeTimeout      = 15 * time.Second
	languagesTimeout = 10 * time.Second
)

// EntryKind classifies a file tree entry.
type EntryKind string

const (
	// KindFile is a regular file ("blob" in the GitHub tree API).
	KindFile EntryKind = "file"
	// KindDir is a directory ("tree" in the GitHub tree API).
	KindDir EntryKind = "dir"
)

// TreeEntry is one entry of the flat recursive repository listing.
// Order is API-dependent and carries no meaning.
type TreeEntry struct {
	Path string    `json:"path"`
	Kind EntryKind `json:"kind"`
}

// Metadata holds repository metadata fetched from the GitHub API.
// It is produced once per analysis and immutable thereafter.
type Metadata struct {
	Name          string `json:"name"`
	Owner         string `json:"owner"`
	Description   string `json:"description"`
	Stars         int    `json:"stars"`
	Forks         int    `json:"forks"`
	DefaultBranch string `json:"default_branch"`
	URL           string `json:"url"`
}

// Client fetches repository data from the GitHub REST API.
// A zero token means unauthenticated requests (lower rate limits, public
// repositories only).
type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

// NewClient creates a GitHub API client with optional authentication.
// Pass an empty string for token to use unauthenticated requests.
func NewClient(token string) *Client {
	return &Client{
		http:    &http.Client{},
		baseURL: defaultBaseURL,
		token:   token,
	}
}

// FetchMetadata retrieves repository metadata for the given locator.
//
// Missing optional fields are defaulted: empty description, zero star and
// fork counts, "main" as the default branch.
func (c *Client) FetchMetadata(ctx context.Context, loc Locator) (Metadata, error) {
	var data repoResponse
	path := fmt.Sprintf("/repos/%s/%s", loc.Owner, loc.Name)
	if err := c.get(ctx, metadataTimeout, path, &data); err != nil {
		return Metadata{}, err
	}

	m := Metadata{
		Name:          data.Name,
		Owner:         data.Owner.Login,
		Description:   data.Description,
		Stars:         data.Stars,
		Forks:         data.Forks,
		DefaultBranch: data.DefaultBranch,
		URL:           data.HTMLURL,
	}
	if m.DefaultBranch == "" {
		m.DefaultBranch = "main"
	}
	if m.URL == "" {
		m.URL = loc.URL()
	}
	return m, nil
}

// FetchFileTree retrieves the complete recursive tree listing at branch.
//
// A truncated response (the API refuses to list the whole tree) is a hard
// failure with ErrCodeRepoTooLarge; partial listings are never returned.
// A response without a tree field yields an empty slice.
func (c *Client) FetchFileTree(ctx context.Context, loc Locator, branch string) ([]TreeEntry, error) {
	var data treeResponse
	path := fmt.Sprintf("/repos/%s/%s/git/trees/%s?recursive=1",
		loc.Owner, loc.Name, url.PathEscape(branch))
	if err := c.get(ctx, treeTimeout, path, &data); err != nil {
		return nil, err
	}

	if data.Truncated {
		return nil, errors.New(errors.ErrCodeRepoTooLarge,
			"repository too large for analysis, try a smaller repository")
	}

	entries := make([]TreeEntry, 0, len(data.Tree))
	for _, e := range data.Tree {
		entries = append(entries, TreeEntry{Path: e.Path, Kind: entryKind(e.Type)})
	}
	return entries, nil
}

// FetchLanguages retrieves the language byte-count breakdown converted to
// percentages of the total.
//
// Language data is cosmetic: any failure, including transport errors,
// degrades to an empty map with a nil error. A zero byte total also yields
// an empty map.
func (c *Client) FetchLanguages(ctx context.Context, loc Locator) (map[string]float64, error) {
	var data map[string]int64
	path := fmt.Sprintf("/repos/%s/%s/languages", loc.Owner, loc.Name)
	if err := c.get(ctx, languagesTimeout, path, &data); err != nil {
		return map[string]float64{}, nil
	}

	var total int64
	for _, b := range data {
		total += b
	}
	if total == 0 {
		return map[string]float64{}, nil
	}

	percentages := make(map[string]float64, len(data))
	for lang, b := range data {
		percentages[lang] = float64(b) / float64(total) * 100
	}
	return percentages, nil
}

// get performs a single GET against the API and JSON-decodes the response.
// The request runs under its own deadline derived from ctx.
func (c *Client) get(ctx context.Context, timeout time.Duration, path string, v any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "build request")
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	host := req.URL.Host
	observability.HTTP().OnRequest(ctx, http.MethodGet, host, req.URL.Path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		mapped := mapTransportError(ctx, err)
		observability.HTTP().OnError(ctx, http.MethodGet, host, req.URL.Path, mapped)
		return mapped
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodGet, host, req.URL.Path,
		resp.StatusCode, time.Since(start))

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeAPIError, err, "decode GitHub response")
	}
	return nil
}

// mapTransportError distinguishes a deadline hit from other network failures.
func mapTransportError(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return errors.Wrap(errors.ErrCodeTimeout, err,
			"GitHub API request timed out, please try again")
	}
	return errors.Wrap(errors.ErrCodeNetwork, err, "network error")
}

// checkStatus maps non-2xx responses to the analyzer error taxonomy.
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return errors.New(errors.ErrCodeRepoNotFound,
			"repository not found, check URL and access permissions")
	case resp.StatusCode == http.StatusForbidden:
		return mapForbidden(resp)
	case resp.StatusCode == http.StatusUnauthorized:
		return errors.New(errors.ErrCodeInvalidToken,
			"invalid or expired Personal Access Token")
	default:
		return errors.New(errors.ErrCodeAPIError, "GitHub API error: %d", resp.StatusCode)
	}
}

// mapForbidden separates rate limiting from access to a private repository.
// A 403 with an exhausted X-RateLimit-Remaining header (or a rate-limit
// marker in the body) is a quota problem; anything else likely needs a token.
func mapForbidden(resp *http.Response) error {
	remaining := resp.Header.Get("X-RateLimit-Remaining")
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if remaining == "0" || strings.Contains(strings.ToLower(string(body)), "rate limit") {
		rl := &errors.RateLimitError{}
		if n, err := strconv.Atoi(remaining); err == nil {
			rl.Remaining = n
		}
		if ts, err := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64); err == nil {
			rl.Reset = time.Unix(ts, 0)
		}
		return errors.Wrap(errors.ErrCodeRateLimited, rl,
			"GitHub API rate limit exceeded, try again later or provide a Personal Access Token for higher limits")
	}

	return errors.New(errors.ErrCodeAuthRequired,
		"access forbidden, this repository may be private, provide a Personal Access Token")
}

func entryKind(apiType string) EntryKind {
	switch apiType {
	case "blob":
		return KindFile
	case "tree":
		return KindDir
	default:
		// Submodules report type "commit"; keep them distinguishable.
		return EntryKind(apiType)
	}
}

// repoResponse is the GitHub single-repository resource shape.
type repoResponse struct {
	Name  string `json:"name"`
	Owner struct {
		Login string `json:"login"`
	} `json:"owner"`
	Description   string `json:"description"`
	Stars         int    `json:"stargazers_count"`
	Forks         int    `json:"forks_count"`
	DefaultBranch string `json:"default_branch"`
	HTMLURL       string `json:"html_url"`
}

// treeResponse is the GitHub recursive tree resource shape.
type treeResponse struct {
	Truncated bool `json:"truncated"`
	Tree      []struct {
		Path string `json:"path"`
		Type string `json:"type"`
	} `json:"tree"`
}
