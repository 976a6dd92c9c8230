package analysis

import (
	"time"

	"github.com/Ujjayini-101/GitRefiny/pkg/detect"
	"github.com/Ujjayini-101/GitRefiny/pkg/github"
)

// Result is the complete output of one analysis run. It is assembled
// all-or-nothing: a Result either contains every field or was never built.
//
// The JSON field names form the API response shape and are stable.
type Result struct {
	Metadata         github.Metadata    `json:"repo_meta"`
	Languages        map[string]float64 `json:"languages"`
	TreeSummary      detect.TreeSummary `json:"file_tree_summary"`
	DetectedStack    []string           `json:"detected_stack"`
	PackageManifests []string           `json:"package_manifests"`
	SetupHints       []string           `json:"hints"`

	// CachedAt is when this result was computed; cache hits return the
	// original timestamp, not the lookup time.
	CachedAt time.Time `json:"cached_at"`
}
