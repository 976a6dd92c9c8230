package github

import (
	"testing"

	"github.com/Ujjayini-101/GitRefiny/pkg/errors"
)

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		owner   string
		repo    string
		wantErr bool
	}{
		{
			name:  "https URL",
			raw:   "https://github.com/foo/bar",
			owner: "foo",
			repo:  "bar",
		},
		{
			name:  "http URL",
			raw:   "http://github.com/foo/bar",
			owner: "foo",
			repo:  "bar",
		},
		{
			name:  "bare host",
			raw:   "github.com/foo/bar",
			owner: "foo",
			repo:  "bar",
		},
		{
			name:  "git suffix and trailing slash",
			raw:   "https://github.com/foo/bar.git/",
			owner: "foo",
			repo:  "bar",
		},
		{
			name:  "surrounding whitespace",
			raw:   "  github.com/foo/bar  ",
			owner: "foo",
			repo:  "bar",
		},
		{
			name:  "dots and dashes in repo name",
			raw:   "github.com/my-org/my.repo-v2",
			owner: "my-org",
			repo:  "my.repo-v2",
		},
		{
			name:  "underscore owner",
			raw:   "github.com/some_user/proj",
			owner: "some_user",
			repo:  "proj",
		},
		{name: "empty string", raw: "", wantErr: true},
		{name: "whitespace only", raw: "   ", wantErr: true},
		{name: "wrong host", raw: "https://gitlab.com/foo/bar", wantErr: true},
		{name: "missing repo segment", raw: "github.com/foo", wantErr: true},
		{name: "extra path segment", raw: "github.com/foo/bar/baz", wantErr: true},
		{name: "invalid owner chars", raw: "github.com/foo$/bar", wantErr: true},
		{name: "dot in owner", raw: "github.com/o.wner/bar", wantErr: true},
		{name: "scheme only", raw: "https://", wantErr: true},
		{name: "bare git suffix", raw: "github.com/foo/.git", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := ParseRepoURL(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRepoURL(%q) = %v, want error", tt.raw, loc)
				}
				if !errors.Is(err, errors.ErrCodeInvalidURL) {
					t.Errorf("error code = %v, want INVALID_URL", errors.GetCode(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRepoURL(%q) returned error: %v", tt.raw, err)
			}
			if loc.Owner != tt.owner || loc.Name != tt.repo {
				t.Errorf("ParseRepoURL(%q) = (%s, %s), want (%s, %s)",
					tt.raw, loc.Owner, loc.Name, tt.owner, tt.repo)
			}
		})
	}
}

func TestLocatorString(t *testing.T) {
	loc := Locator{Owner: "foo", Name: "bar"}
	if loc.String() != "foo/bar" {
		t.Errorf("String() = %q, want %q", loc.String(), "foo/bar")
	}
	if loc.URL() != "https://github.com/foo/bar" {
		t.Errorf("URL() = %q", loc.URL())
	}
}
