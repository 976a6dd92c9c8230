package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ujjayini-101/GitRefiny/pkg/analysis"
	"github.com/Ujjayini-101/GitRefiny/pkg/cache"
	"github.com/Ujjayini-101/GitRefiny/pkg/errors"
	"github.com/Ujjayini-101/GitRefiny/pkg/github"
	"github.com/Ujjayini-101/GitRefiny/pkg/readme"
)

// readmeCommand creates the readme command.
func (c *CLI) readmeCommand() *cobra.Command {
	var (
		token    string
		model    string
		tone     string
		sections string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "readme <repo-url>",
		Short: "Generate README markdown for a repository",
		Long: `Generate README markdown for a GitHub repository.

The readme command analyzes the repository and synthesizes README
documentation from the result. With a configured generation backend
(GROQ_API_KEY or GEMINI_API_KEY) the content is written by the model;
without one, or with --model template, a deterministic template is used.

Markdown goes to stdout unless --output names a file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := readme.Options{
				Tone:  readme.Tone(strings.ToLower(tone)),
				Model: readme.Model(strings.ToLower(model)),
			}
			if sections != "" {
				opts.Sections = strings.Split(sections, ",")
			}
			return c.runReadme(cmd.Context(), args[0], token, opts, output)
		},
	}

	cmd.Flags().StringVarP(&token, "token", "t", "", "GitHub Personal Access Token")
	cmd.Flags().StringVarP(&model, "model", "m", "auto", "generation model: auto, llama3, gemini, template")
	cmd.Flags().StringVar(&tone, "tone", "professional", "content tone: professional, concise, enthusiastic")
	cmd.Flags().StringVar(&sections, "sections", "", "sections to include (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

// runReadme analyzes the repository and generates the README.
func (c *CLI) runReadme(ctx context.Context, rawURL, token string, opts readme.Options, output string) error {
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
	result, err := analyzer.Analyze(ctx, loc)
	if err != nil {
		spinner.StopWithError("Analysis failed")
		printDetail("%s", errors.UserMessage(err))
		return err
	}
	spinner.Stop()

	if opts.Model == readme.ModelAuto && cfg.GroqAPIKey == "" && cfg.GeminiAPIKey == "" {
		printWarning("no generation backend configured, using template output")
	}
	gen := c.newGenerator(ctx, cfg)

	spinner = newSpinnerWithContext(ctx, "Generating README...")
	spinner.Start()
	markdown, err := gen.Generate(ctx, result, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		printDetail("%s", errors.UserMessage(err))
		return err
	}
	spinner.Stop()

	if output == "" {
		fmt.Println(markdown)
		return nil
	}
	if err := os.WriteFile(output, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("README written to %s", StyleValue.Render(output))
	return nil
}
