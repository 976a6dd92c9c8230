package readme

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Ujjayini-101/GitRefiny/pkg/analysis"
)

// systemMessage is the system-role instruction sent with every delegated
// completion.
const systemMessage = "You are an expert technical writer who creates beautiful, " +
	"comprehensive README files for GitHub repositories."

// promptLanguageLimit caps how many languages the prompt enumerates.
const promptLanguageLimit = 5

// formattingInstructions is the fixed tail of every prompt. It pins the
// output contract: pure markdown, shields.io badges for technologies, a
// styled Mermaid architecture diagram, and an ASCII project tree.
const formattingInstructions = `ARCHITECTURE DIAGRAM:
Create a styled Mermaid diagram (flowchart TD or graph TB) reflecting the
detected tech stack. Use style definitions for colored nodes, <br/> for
multi-line labels, and |Label| edge annotations. Show clients, frontend,
backend, and database layers where they exist.

TECHNOLOGY BADGES:
Use shields.io badges with official logos for every technology, never
emojis. Format:
![Name](https://img.shields.io/badge/Name-HexColor?style=for-the-badge&logo=name&logoColor=white)

FORMATTING REQUIREMENTS:
- Proper markdown syntax throughout, code blocks with language tags
- Mermaid diagrams fenced with ` + "```mermaid" + `
- An ASCII project tree built from the actual top-level structure
- Step-by-step installation derived from the detected package manifests
- Horizontal rules (---) between major sections
- Emojis are welcome in section headers, but never for technologies

Generate ONLY the markdown content.`

// buildPrompt assembles the full generation prompt: every analysis field,
// the requested sections, the tone instruction, and the fixed formatting
// contract.
func buildPrompt(res *analysis.Result, opts Options) string {
	var b strings.Builder

	b.WriteString("You are an expert technical writer creating a beautiful, ")
	b.WriteString("professional README.md for a GitHub repository.\n\n")

	fmt.Fprintf(&b, "REPOSITORY INFORMATION:\n")
	fmt.Fprintf(&b, "- Name: %s\n", res.Metadata.Name)
	fmt.Fprintf(&b, "- Owner: %s\n", res.Metadata.Owner)
	fmt.Fprintf(&b, "- Description: %s\n", res.Metadata.Description)
	fmt.Fprintf(&b, "- Stars: %d\n", res.Metadata.Stars)
	fmt.Fprintf(&b, "- Forks: %d\n", res.Metadata.Forks)
	fmt.Fprintf(&b, "- URL: %s\n\n", res.Metadata.URL)

	b.WriteString("PROGRAMMING LANGUAGES:\n")
	b.WriteString(formatLanguages(res.Languages))
	b.WriteString("\n\n")

	b.WriteString("DETECTED TECH STACK:\n")
	b.WriteString(joinOr(res.DetectedStack, "Not detected"))
	b.WriteString("\n\n")

	b.WriteString("PACKAGE MANIFESTS FOUND:\n")
	b.WriteString(joinOr(res.PackageManifests, "None"))
	b.WriteString("\n\n")

	b.WriteString("FILE STRUCTURE (Top Level):\n")
	b.WriteString(strings.Join(res.TreeSummary.TopLevelStructure, "\n"))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "PROJECT STATISTICS:\n")
	fmt.Fprintf(&b, "- Total Files: %d\n", res.TreeSummary.TotalFiles)
	fmt.Fprintf(&b, "- Total Directories: %d\n", res.TreeSummary.TotalDirs)
	fmt.Fprintf(&b, "- Max Depth: %d\n\n", res.TreeSummary.MaxDepth)

	b.WriteString("SETUP HINTS:\n")
	b.WriteString(strings.Join(res.SetupHints, "\n"))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "SECTIONS TO INCLUDE:\n%s\n\n", strings.Join(opts.Sections, ", "))

	fmt.Fprintf(&b, "INSTRUCTIONS:\n%s\n\n", toneInstructions[opts.Tone])
	b.WriteString(formattingInstructions)

	return b.String()
}

// formatLanguages renders the top languages by percentage, one per line.
func formatLanguages(languages map[string]float64) string {
	if len(languages) == 0 {
		return "Not detected"
	}

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
	if len(names) > promptLanguageLimit {
		names = names[:promptLanguageLimit]
	}

	lines := make([]string, 0, len(names))
	for _, lang := range names {
		lines = append(lines, fmt.Sprintf("- %s: %.1f%%", lang, languages[lang]))
	}
	return strings.Join(lines, "\n")
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}
