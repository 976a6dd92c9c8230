// Package detect derives a technology-stack summary from fetched repository
// data. All functions are pure and deterministic: they operate on the tree
// and language data the GitHub client already fetched, with no I/O.
//
// Detection is table-driven. The manifest and keyword tables below are the
// single source of truth; extending detection means adding a row, not a
// branch. Keyword matching is a plain substring scan over file paths, so a
// file merely named "postgres_notes.txt" counts as PostgreSQL. That is a
// known limitation of the heuristic: downstream consumers treat detected
// labels as soft hints, not guarantees.
package detect

import (
	"sort"
	"strings"

	"github.com/Ujjayini-101/GitRefiny/pkg/github"
)

// topLevelLimit caps the number of top-level entries reported in a summary.
const topLevelLimit = 20

// manifestEcosystems maps well-known manifest filenames to the ecosystem
// their presence implies.
var manifestEcosystems = map[string]string{
	"package.json":     "Node.js",
	"requirements.txt": "Python",
	"pyproject.toml":   "Python",
	"Pipfile":          "Python",
	"go.mod":           "Go",
	"Cargo.toml":       "Rust",
	"pom.xml":          "Java/Maven",
	"build.gradle":     "Java/Gradle",
	"Gemfile":          "Ruby",
	"composer.json":    "PHP",
}

// keywordLabels maps path keywords to framework/database labels. Matching is
// case-insensitive and independent per row: a single path may trigger
// several labels, and any subset of rows may match.
var keywordLabels = []struct {
	keyword string
	label   string
}{
	{"react", "React"},
	{"vue", "Vue.js"},
	{"angular", "Angular"},
	{"flask", "Flask"},
	{"app.py", "Flask"},
	{"django", "Django"},
	{"express", "Express.js"},
	{"postgres", "PostgreSQL"},
	{"pg", "PostgreSQL"},
	{"mongo", "MongoDB"},
	{"redis", "Redis"},
}

// TreeSummary describes the shape of a repository file tree.
type TreeSummary struct {
	TotalFiles int `json:"total_files"`
	TotalDirs  int `json:"total_dirs"`
	// TopLevelStructure lists up to 20 distinct top-level path segments,
	// lexicographically sorted. Segments denoting directory prefixes carry
	// a trailing slash.
	TopLevelStructure []string `json:"top_level_structure"`
	// MaxDepth is the greatest path-segment count among all entries, or 0
	// for an empty tree.
	MaxDepth int `json:"max_depth"`
}

// IdentifyManifests returns the package manifest filenames present in the
// tree, duplicate-free, in first-seen order. Only file entries are
// considered; the match is on the exact basename.
func IdentifyManifests(tree []github.TreeEntry) []string {
	seen := make(map[string]bool)
	var manifests []string
	for _, e := range tree {
		if e.Kind != github.KindFile {
			continue
		}
		base := e.Path
		if i := strings.LastIndexByte(base, '/'); i >= 0 {
			base = base[i+1:]
		}
		if _, known := manifestEcosystems[base]; known && !seen[base] {
			seen[base] = true
			manifests = append(manifests, base)
		}
	}
	return manifests
}

// DetectStack returns the duplicate-free union of language names, the
// ecosystems implied by the identified manifests, and keyword-detected
// framework/database labels from file paths.
func DetectStack(tree []github.TreeEntry, languages map[string]float64, manifests []string) []string {
	seen := make(map[string]bool)
	var stack []string
	add := func(label string) {
		if !seen[label] {
			seen[label] = true
			stack = append(stack, label)
		}
	}

	for _, lang := range sortedLanguages(languages) {
		add(lang)
	}
	for _, m := range manifests {
		if eco, ok := manifestEcosystems[m]; ok {
			add(eco)
		}
	}

	var paths []string
	for _, e := range tree {
		if e.Kind == github.KindFile {
			paths = append(paths, strings.ToLower(e.Path))
		}
	}
	for _, kw := range keywordLabels {
		if seen[kw.label] {
			continue
		}
		for _, p := range paths {
			if strings.Contains(p, kw.keyword) {
				add(kw.label)
				break
			}
		}
	}

	return stack
}

// SummarizeTree computes file and directory counts, the top-level layout,
// and the maximum path depth of the tree.
func SummarizeTree(tree []github.TreeEntry) TreeSummary {
	s := TreeSummary{TopLevelStructure: []string{}}

	topLevel := make(map[string]bool)
	for _, e := range tree {
		switch e.Kind {
		case github.KindFile:
			s.TotalFiles++
		case github.KindDir:
			s.TotalDirs++
		}

		segments := strings.Count(e.Path, "/") + 1
		if segments > s.MaxDepth {
			s.MaxDepth = segments
		}

		first, _, nested := strings.Cut(e.Path, "/")
		if nested {
			topLevel[first+"/"] = true
		} else {
			topLevel[first] = true
		}
	}

	for seg := range topLevel {
		s.TopLevelStructure = append(s.TopLevelStructure, seg)
	}
	sort.Strings(s.TopLevelStructure)
	if len(s.TopLevelStructure) > topLevelLimit {
		s.TopLevelStructure = s.TopLevelStructure[:topLevelLimit]
	}

	return s
}

// sortedLanguages returns language names ordered by percentage descending,
// ties broken by name, so stack output is deterministic.
func sortedLanguages(languages map[string]float64) []string {
	names := make([]string, 0, len(languages))
	for lang := range languages {
		names = append(names, lang)
	}
	sort.Slice(names, func(i, j int) bool {
		if languages[names[i]] != languages[names[j]] {
			return languages[names[i]] > languages[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
