package detect

import (
	"reflect"
	"testing"
)

func TestSuggestSetup(t *testing.T) {
	tests := []struct {
		name      string
		manifests []string
		languages map[string]float64
		want      []string
	}{
		{
			name:      "node project",
			manifests: []string{"package.json"},
			want:      []string{"Node.js project detected", "Run: npm install"},
		},
		{
			name:      "priority order is fixed regardless of input order",
			manifests: []string{"go.mod", "package.json"},
			want: []string{
				"Node.js project detected", "Run: npm install",
				"Go project detected", "Run: go mod download",
			},
		},
		{
			name:      "multiple python manifests all contribute",
			manifests: []string{"requirements.txt", "pyproject.toml"},
			want: []string{
				"Python project detected", "Run: pip install -r requirements.txt",
				"Python Poetry project detected", "Run: poetry install",
			},
		},
		{
			name:      "unknown manifest contributes nothing",
			manifests: []string{"composer.json"},
			languages: map[string]float64{"PHP": 100},
			want:      []string{"Primary language: PHP"},
		},
		{
			name:      "language fallback",
			manifests: nil,
			languages: map[string]float64{"C": 60, "Assembly": 40},
			want:      []string{"Primary language: C"},
		},
		{
			name:      "nothing to suggest",
			manifests: nil,
			languages: nil,
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestSetup(tt.manifests, tt.languages)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SuggestSetup() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrimaryLanguage(t *testing.T) {
	if got := PrimaryLanguage(nil); got != "" {
		t.Errorf("PrimaryLanguage(nil) = %q, want empty", got)
	}
	langs := map[string]float64{"Go": 50, "Rust": 30, "C": 20}
	if got := PrimaryLanguage(langs); got != "Go" {
		t.Errorf("PrimaryLanguage() = %q, want Go", got)
	}
	// Ties break by name for determinism.
	tied := map[string]float64{"B": 50, "A": 50}
	if got := PrimaryLanguage(tied); got != "A" {
		t.Errorf("PrimaryLanguage(tied) = %q, want A", got)
	}
}
