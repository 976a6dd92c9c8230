package github

import (
	"regexp"
	"strings"

	"github.com/Ujjayini-101/GitRefiny/pkg/errors"
)

// locatorPattern matches a GitHub repository locator: an optional http/https
// scheme, the literal github.com host, then owner and repository segments.
var locatorPattern = regexp.MustCompile(`^(?:https?://)?github\.com/([A-Za-z0-9_-]+)/([A-Za-z0-9_.-]+)$`)

// Locator identifies a GitHub repository by owner and name.
// It is immutable once parsed.
type Locator struct {
	Owner string
	Name  string
}

// String returns the "owner/name" form of the locator.
func (l Locator) String() string {
	return l.Owner + "/" + l.Name
}

// URL returns the canonical HTTPS URL for the repository.
func (l Locator) URL() string {
	return "https://github.com/" + l.Owner + "/" + l.Name
}

// ParseRepoURL validates and decomposes a repository locator string.
//
// Accepted grammar: [http(s)://]github.com/{owner}/{repo}[.git] with an
// optional trailing slash. Owner is limited to [A-Za-z0-9_-], the repository
// name to [A-Za-z0-9_.-]. A trailing ".git" suffix is stripped.
//
// On any non-match the returned error carries ErrCodeInvalidURL and a
// description of the expected format.
func ParseRepoURL(raw string) (Locator, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "/")

	m := locatorPattern.FindStringSubmatch(s)
	if m == nil {
		return Locator{}, errors.New(errors.ErrCodeInvalidURL,
			"invalid GitHub URL format, expected: https://github.com/{owner}/{repo} or github.com/{owner}/{repo}")
	}

	owner, name := m[1], m[2]
	name = strings.TrimSuffix(name, ".git")
	if name == "" {
		return Locator{}, errors.New(errors.ErrCodeInvalidURL,
			"invalid GitHub URL format, expected: https://github.com/{owner}/{repo} or github.com/{owner}/{repo}")
	}

	return Locator{Owner: owner, Name: name}, nil
}
