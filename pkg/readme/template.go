package readme

import (
	"fmt"
	"strings"

	"github.com/Ujjayini-101/GitRefiny/pkg/analysis"
	"github.com/Ujjayini-101/GitRefiny/pkg/detect"
)

// treeEntryLimit caps how many top-level entries the template tree shows.
const treeEntryLimit = 12

// installCommands maps manifests to install commands, in the order the
// Installation section lists them.
var installCommands = []struct {
	manifest string
	command  string
}{
	{"package.json", "npm install"},
	{"requirements.txt", "pip install -r requirements.txt"},
	{"pyproject.toml", "poetry install"},
	{"go.mod", "go mod download"},
	{"Cargo.toml", "cargo build"},
	{"Gemfile", "bundle install"},
}

// renderTemplate produces the deterministic fallback README. It makes no
// external calls and always succeeds; the output names the repository and
// every detected technology.
func renderTemplate(res *analysis.Result) string {
	name := res.Metadata.Name
	owner := res.Metadata.Owner
	repoURL := res.Metadata.URL
	if repoURL == "" {
		repoURL = fmt.Sprintf("https://github.com/%s/%s", owner, name)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", name)
	fmt.Fprintf(&b, "%s\n\n", templateDescription(res))
	fmt.Fprintf(&b, "![Stars](https://img.shields.io/badge/stars-%d-yellow) ", res.Metadata.Stars)
	fmt.Fprintf(&b, "![Forks](https://img.shields.io/badge/forks-%d-blue)\n\n", res.Metadata.Forks)

	b.WriteString("## Overview\n\n")
	fmt.Fprintf(&b, "This repository contains the source code for **%s**, maintained by **%s**.\n\n",
		name, owner)

	b.WriteString("## Tech Stack\n\n")
	if len(res.DetectedStack) > 0 {
		for _, tech := range res.DetectedStack {
			fmt.Fprintf(&b, "- %s\n", tech)
		}
	} else {
		b.WriteString("- Not detected\n")
	}
	b.WriteString("\n")

	b.WriteString("## Project Structure\n\n")
	b.WriteString(renderTree(name, res.TreeSummary.TopLevelStructure))
	if res.TreeSummary.TotalFiles > 0 {
		fmt.Fprintf(&b, "\n**Total files:** %d\n", res.TreeSummary.TotalFiles)
	}
	b.WriteString("\n")

	b.WriteString("## Installation\n\n")
	b.WriteString("```bash\n")
	fmt.Fprintf(&b, "git clone %s.git\n", repoURL)
	fmt.Fprintf(&b, "cd %s\n", name)
	for _, cmd := range templateInstallCommands(res.PackageManifests) {
		fmt.Fprintf(&b, "%s\n", cmd)
	}
	b.WriteString("```\n\n")

	b.WriteString("## Usage\n\n")
	b.WriteString("```bash\n# Run the application\n# Check the documentation for specific commands\n```\n\n")

	b.WriteString("## Contributing\n\n")
	b.WriteString("Contributions are welcome! Please follow these steps:\n\n")
	b.WriteString("1. Fork the repository\n")
	b.WriteString("2. Create a feature branch (`git checkout -b feature/amazing-feature`)\n")
	b.WriteString("3. Commit your changes (`git commit -m 'Add amazing feature'`)\n")
	b.WriteString("4. Push to the branch (`git push origin feature/amazing-feature`)\n")
	b.WriteString("5. Open a Pull Request\n\n")

	b.WriteString("## License\n\n")
	b.WriteString("This project is open source. Please check the repository for license details.\n\n")

	b.WriteString("## Links\n\n")
	fmt.Fprintf(&b, "- **Repository:** %s\n", repoURL)
	fmt.Fprintf(&b, "- **Issues:** %s/issues\n", repoURL)
	fmt.Fprintf(&b, "- **Pull Requests:** %s/pulls\n", repoURL)

	return b.String()
}

func templateDescription(res *analysis.Result) string {
	if res.Metadata.Description != "" {
		return res.Metadata.Description
	}
	if lang := detect.PrimaryLanguage(res.Languages); lang != "" {
		return fmt.Sprintf("A %s project hosted on GitHub.", lang)
	}
	return "A software project hosted on GitHub."
}

// renderTree draws an ASCII tree of the top-level structure, capped at
// treeEntryLimit entries with an ellipsis marker beyond that.
func renderTree(name string, entries []string) string {
	var b strings.Builder
	b.WriteString("```\n")
	fmt.Fprintf(&b, "%s/\n", name)

	shown := entries
	truncated := false
	if len(shown) > treeEntryLimit {
		shown = shown[:treeEntryLimit]
		truncated = true
	}
	for i, entry := range shown {
		prefix := "├── "
		if i == len(shown)-1 && !truncated {
			prefix = "└── "
		}
		fmt.Fprintf(&b, "%s%s\n", prefix, entry)
	}
	if truncated {
		b.WriteString("└── ...\n")
	}
	b.WriteString("```\n")
	return b.String()
}

func templateInstallCommands(manifests []string) []string {
	present := make(map[string]bool, len(manifests))
	for _, m := range manifests {
		present[m] = true
	}

	var cmds []string
	for _, ic := range installCommands {
		if present[ic.manifest] {
			cmds = append(cmds, ic.command)
		}
	}
	if len(cmds) == 0 {
		cmds = []string{"# See package manifest files for installation instructions"}
	}
	return cmds
}
