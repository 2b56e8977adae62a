package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/readyou/internal/aiconnect"
	"github.com/readyou/internal/analyzer"
	"github.com/readyou/internal/config"
	"github.com/readyou/internal/generator"
	"github.com/readyou/internal/retry"
	"github.com/readyou/internal/writer"
	"github.com/readyou/pkg/models"
)

// GenerateCommand returns the generate command
func GenerateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Analyze a repository and generate its README",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"d"},
				Usage:   "Preview the document without writing it",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Generate a detailed README",
			},
			&cli.StringFlag{
				Name:    "model",
				Aliases: []string{"m"},
				Usage:   "Override the model to use",
			},
			&cli.StringFlag{
				Name:    "ai",
				Aliases: []string{"a"},
				Usage:   "Override the AI provider to use",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the document to `FILE` instead of README.md",
			},
			&cli.IntFlag{
				Name:  "max-key-files",
				Usage: "Maximum number of files included in the prompt",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Per-request backend timeout",
				Value: 2 * time.Minute,
			},
		},
		ArgsUsage: "REPO_PATH",
		Action:    runGenerate,
	}
}

func runGenerate(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("missing required argument: repository path")
	}
	repoPath := c.Args().Get(0)

	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	aiName := cfg.General.DefaultAI
	if override := c.String("ai"); override != "" {
		aiName = override
	}
	model := cfg.General.Model
	if override := c.String("model"); override != "" {
		model = override
	}

	opts := models.Options{
		Model:               model,
		AIProvider:          aiName,
		Verbose:             c.Bool("verbose"),
		DryRun:              c.Bool("dry-run"),
		MaxKeyFiles:         firstPositive(c.Int("max-key-files"), cfg.Limits.MaxKeyFiles),
		MaxBytesPerFile:     cfg.Limits.MaxBytesPerFile,
		MaxTotalPromptBytes: cfg.Limits.MaxPromptBytes,
		Timeout:             c.Duration("timeout"),
	}

	ctx := context.Background()
	backend, err := createBackend(ctx, aiName, model, cfg.AI[aiName])
	if err != nil {
		return fmt.Errorf("failed to create AI backend: %w", err)
	}

	orch := generator.New(backend, retry.BackendConfig(), opts.Timeout)
	result, err := analyzer.New(orch, opts).Run(ctx, repoPath)
	if err != nil {
		var pe *models.PipelineError
		if errors.As(err, &pe) && pe.Phase == models.PhaseGeneration {
			return fmt.Errorf("%w (check your API key and model configuration)", err)
		}
		return fmt.Errorf("%w (check that the path is a readable repository)", err)
	}

	path, err := writer.Write(result, repoPath, c.String("output"), opts.DryRun, os.Stdout)
	if err != nil {
		return err
	}
	if path != "" {
		fmt.Printf("README generated at: %s\n", path)
	}
	return nil
}

func createBackend(ctx context.Context, name, model string, aiConfig map[string]interface{}) (*aiconnect.Connector, error) {
	apiKey, _ := aiConfig["api_key"].(string)
	baseURL, _ := aiConfig["base_url"].(string)

	return aiconnect.New(ctx, aiconnect.Options{
		Provider:    aiconnect.Provider(name),
		APIKey:      apiKey,
		BaseURL:     baseURL,
		Model:       model,
		Temperature: 0.7,
	})
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
