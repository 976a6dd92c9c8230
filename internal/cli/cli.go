// Package cli implements the gitrefiny command-line interface.
//
// The main commands are:
//   - analyze: inspect a GitHub repository and print its analysis
//   - readme: generate README markdown for a repository
//   - serve: run the HTTP API server
//
// All commands support --verbose (-v) for debug-level logging and --config
// for an optional TOML configuration file. Credentials come from the
// environment (or a .env file) unless set in the config file.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Ujjayini-101/GitRefiny/internal/config"
	"github.com/Ujjayini-101/GitRefiny/pkg/analysis"
	"github.com/Ujjayini-101/GitRefiny/pkg/buildinfo"
	"github.com/Ujjayini-101/GitRefiny/pkg/llm"
	"github.com/Ujjayini-101/GitRefiny/pkg/llm/gemini"
	"github.com/Ujjayini-101/GitRefiny/pkg/llm/groq"
	"github.com/Ujjayini-101/GitRefiny/pkg/readme"
)

// appName is the application name used for display.
const appName = "gitrefiny"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "GitRefiny analyzes GitHub repositories and generates READMEs",
		Long:         `GitRefiny inspects a GitHub repository's metadata, file tree, and languages, detects its technology stack, and synthesizes README documentation from the analysis.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to TOML config file")

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.readmeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig loads configuration honoring the --config flag.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.Load(c.configPath)
}

// newGenerator builds the README generator with every backend the
// configuration enables. Backend construction failures degrade to a
// generator without that backend; generation falls back accordingly.
func (c *CLI) newGenerator(ctx context.Context, cfg *config.Config) *readme.Generator {
	var llama, gem llm.Client
	if cfg.GroqAPIKey != "" {
		llama = groq.NewClient(cfg.GroqAPIKey)
	}
	if cfg.GeminiAPIKey != "" {
		g, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			c.Logger.Warn("gemini backend unavailable", "err", err)
		} else {
			gem = g
		}
	}
	return readme.NewGenerator(llama, gem, c.Logger)
}

// chatBackend returns the Groq client used by the chat endpoint, or nil
// when no key is configured.
func (c *CLI) chatBackend(cfg *config.Config) llm.Client {
	if cfg.GroqAPIKey == "" {
		return nil
	}
	return groq.NewClient(cfg.GroqAPIKey)
}

// resolveToken picks the per-invocation token: flag over configuration.
func resolveToken(flagToken string, cfg *config.Config) string {
	if flagToken != "" {
		return flagToken
	}
	return cfg.GitHubToken
}

// printAnalysisSummary renders the analysis result for terminal output.
func printAnalysisSummary(res *analysis.Result) {
	printNewline()
	printKeyValue("Repository", res.Metadata.Owner+"/"+res.Metadata.Name)
	if res.Metadata.Description != "" {
		printKeyValue("Description", res.Metadata.Description)
	}
	printKeyValue("Branch", res.Metadata.DefaultBranch)
	printStars(res.Metadata.Stars, res.Metadata.Forks)
	printStack("Stack", res.DetectedStack)
	printStack("Manifests", res.PackageManifests)
	printTreeStats(res.TreeSummary.TotalFiles, res.TreeSummary.TotalDirs, res.TreeSummary.MaxDepth)

	if len(res.SetupHints) > 0 {
		printNewline()
		printInfo("Setup")
		for _, hint := range res.SetupHints {
			printDetail("%s", hint)
		}
	}
}
