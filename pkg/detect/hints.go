package detect

import "fmt"

// setupHints maps manifests to setup instructions in fixed priority order.
// Every matching manifest contributes two lines; hints are not mutually
// exclusive.
var setupHints = []struct {
	manifest string
	label    string
	command  string
}{
	{"package.json", "Node.js project detected", "Run: npm install"},
	{"requirements.txt", "Python project detected", "Run: pip install -r requirements.txt"},
	{"pyproject.toml", "Python Poetry project detected", "Run: poetry install"},
	{"go.mod", "Go project detected", "Run: go mod download"},
	{"Cargo.toml", "Rust project detected", "Run: cargo build"},
	{"Gemfile", "Ruby project detected", "Run: bundle install"},
}

// SuggestSetup derives human-readable setup instructions from the identified
// manifests. When no manifest matched but language data exists, a single
// fallback hint names the dominant language. With neither, the result is
// empty.
func SuggestSetup(manifests []string, languages map[string]float64) []string {
	present := make(map[string]bool, len(manifests))
	for _, m := range manifests {
		present[m] = true
	}

	var hints []string
	for _, h := range setupHints {
		if present[h.manifest] {
			hints = append(hints, h.label, h.command)
		}
	}

	if len(hints) == 0 && len(languages) > 0 {
		hints = append(hints, fmt.Sprintf("Primary language: %s", PrimaryLanguage(languages)))
	}

	return hints
}

// PrimaryLanguage returns the language with the highest percentage, ties
// broken by name. Returns "" for an empty breakdown.
func PrimaryLanguage(languages map[string]float64) string {
	sorted := sortedLanguages(languages)
	if len(sorted) == 0 {
		return ""
	}
	return sorted[0]
}
