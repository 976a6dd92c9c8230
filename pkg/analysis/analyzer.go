// Package analysis orchestrates a full repository analysis: metadata, file
// tree, and languages from the GitHub client, followed by pure detection
// over the fetched data.
//
// The pipeline is sequential and fail-fast. Metadata and tree fetches are
// load-bearing: their failure aborts the run before any derived work, and
// nothing is cached. Language data is cosmetic and never fails. Only a
// complete Result is ever cached or returned.
package analysis

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Ujjayini-101/GitRefiny/pkg/cache"
	"github.com/Ujjayini-101/GitRefiny/pkg/detect"
	"github.com/Ujjayini-101/GitRefiny/pkg/github"
	"github.com/Ujjayini-101/GitRefiny/pkg/observability"
)

// RepoClient is the remote-data dependency of the analyzer. *github.Client
// satisfies it; tests substitute fakes.
type RepoClient interface {
	FetchMetadata(ctx context.Context, loc github.Locator) (github.Metadata, error)
	FetchFileTree(ctx context.Context, loc github.Locator, branch string) ([]github.TreeEntry, error)
	FetchLanguages(ctx context.Context, loc github.Locator) (map[string]float64, error)
}

// Analyzer runs the analysis pipeline against an injected client and cache.
type Analyzer struct {
	client RepoClient
	cache  *cache.Store[*Result]
	log    *log.Logger

	// now is replaceable in tests.
	now func() time.Time
}

// New creates an Analyzer. The cache may be shared across analyzers (the
// server builds a per-request client around one process-wide cache). A nil
// logger discards output.
func New(client RepoClient, store *cache.Store[*Result], logger *log.Logger) *Analyzer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Analyzer{
		client: client,
		cache:  store,
		log:    logger,
		now:    time.Now,
	}
}

// Analyze produces the full analysis for the repository at loc.
//
// A fresh cached result short-circuits the remote calls entirely. Otherwise
// the pipeline runs metadata, tree, and languages fetches in order, derives
// manifests, stack, summary, and hints, caches the result, and returns it.
func (a *Analyzer) Analyze(ctx context.Context, loc github.Locator) (*Result, error) {
	locator := loc.String()
	observability.Analysis().OnAnalyzeStart(ctx, locator)
	start := time.Now()

	if cached, ok := a.cache.Lookup(ctx, locator); ok {
		a.log.Debug("analysis cache hit", "repo", locator)
		observability.Analysis().OnAnalyzeComplete(ctx, locator, true, time.Since(start), nil)
		return cached, nil
	}

	result, err := a.run(ctx, loc)
	observability.Analysis().OnAnalyzeComplete(ctx, locator, false, time.Since(start), err)
	if err != nil {
		a.log.Debug("analysis failed", "repo", locator, "err", err)
		return nil, err
	}

	a.cache.Store(ctx, locator, result)
	a.log.Debug("analysis complete", "repo", locator,
		"files", result.TreeSummary.TotalFiles, "stack", len(result.DetectedStack))
	return result, nil
}

func (a *Analyzer) run(ctx context.Context, loc github.Locator) (*Result, error) {
	meta, err := a.client.FetchMetadata(ctx, loc)
	if err != nil {
		return nil, err
	}

	tree, err := a.client.FetchFileTree(ctx, loc, meta.DefaultBranch)
	if err != nil {
		return nil, err
	}

	// Cosmetic by contract: the client degrades any failure to an empty map.
	languages, err := a.client.FetchLanguages(ctx, loc)
	if err != nil {
		return nil, err
	}

	manifests := detect.IdentifyManifests(tree)
	return &Result{
		Metadata:         meta,
		Languages:        languages,
		TreeSummary:      detect.SummarizeTree(tree),
		DetectedStack:    detect.DetectStack(tree, languages, manifests),
		PackageManifests: manifests,
		SetupHints:       detect.SuggestSetup(manifests, languages),
		CachedAt:         a.now(),
	}, nil
}
