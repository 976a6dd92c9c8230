// Package pkg provides the core libraries for GitRefiny repository analysis
// and README generation.
//
// # Overview
//
// GitRefiny inspects a GitHub repository and synthesizes documentation from
// what it finds. The pkg directory is organized into five main areas:
//
//  1. [github] - Locator parsing and the GitHub REST API client
//  2. [detect] - Stack detection and setup hints over fetched data
//  3. [analysis] - The fail-fast analysis pipeline and result types
//  4. [readme] - Prompt building, template rendering, and generation
//  5. [llm] - Completion backends (Groq, Gemini) behind one interface
//
// Supporting packages: [cache] (TTL result cache), [errors] (structured
// error codes), [observability] (instrumentation hooks), and [buildinfo]
// (ldflags version data).
//
// # Architecture
//
// The typical data flow through GitRefiny:
//
//	GitHub URL
//	     ↓
//	github.ParseRepoURL → analysis.Analyzer (metadata → tree → languages)
//	     ↓
//	detect (manifests, stack, summary, hints) → analysis.Result → cache
//	     ↓
//	readme.Generator (llm backend or template) → markdown
package pkg
