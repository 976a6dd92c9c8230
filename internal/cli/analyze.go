package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ujjayini-101/GitRefiny/pkg/analysis"
	"github.com/Ujjayini-101/GitRefiny/pkg/cache"
	"github.com/Ujjayini-101/GitRefiny/pkg/errors"
	"github.com/Ujjayini-101/GitRefiny/pkg/github"
)

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		token  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <repo-url>",
		Short: "Analyze a GitHub repository's stack and structure",
		Long: `Analyze a GitHub repository.

The analyze command fetches the repository's metadata, recursive file tree,
and language breakdown from the GitHub API, detects the technology stack
from manifests and file paths, and prints a summary with setup hints.

Private repositories and higher rate limits require a Personal Access
Token, passed with --token or the GITHUB_TOKEN environment variable.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd.Context(), args[0], token, asJSON)
		},
	}

	cmd.Flags().StringVarP(&token, "token", "t", "", "GitHub Personal Access Token")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw analysis as JSON")

	return cmd
}

// runAnalyze performs the analysis and renders the result.
func (c *CLI) runAnalyze(ctx context.Context, rawURL, token string, asJSON bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	loc, err := github.ParseRepoURL(rawURL)
	if err != nil {
		printError("%s", errors.UserMessage(err))
		return err
	}

	client := github.NewClient(resolveToken(token, cfg))
	analyzer := analysis.New(client, cache.New[*analysis.Result](cfg.CacheTTL), c.Logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Analyzing %s...", loc))
	spinner.Start()
	prog := newProgress(c.Logger)

	result, err := analyzer.Analyze(ctx, loc)
	if err != nil {
		spinner.StopWithError("Analysis failed")
		printDetail("%s", errors.UserMessage(err))
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Analyzed %s", loc))

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printSuccess("Analyzed %s", StyleTitle.Render(loc.String()))
	printAnalysisSummary(result)
	return nil
}
