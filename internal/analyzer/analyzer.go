package analyzer

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/readyou/internal/keyfiles"
	"github.com/readyou/internal/language"
	"github.com/readyou/internal/prompt"
	"github.com/readyou/internal/sampler"
	"github.com/readyou/internal/walker"
	"github.com/readyou/pkg/models"
)

// Generator is the orchestrator boundary the analyzer hands its payload to.
type Generator interface {
	Generate(ctx context.Context, payload models.PromptPayload) (*models.GenerationResult, error)
}

// Analyzer runs the full pipeline: walk, classify, select, sample, assemble,
// generate. Each run is independent; the analyzer holds no mutable state
// between runs.
type Analyzer struct {
	generator Generator
	opts      models.Options
}

// New creates an analyzer bound to a generator and an immutable options
// value. Options are normalized once here so every stage sees the same
// effective limits.
func New(generator Generator, opts models.Options) *Analyzer {
	return &Analyzer{
		generator: generator,
		opts:      opts.Normalize(),
	}
}

// Run analyzes the repository at repoPath and returns the generated
// document. Fatal errors are wrapped in a PipelineError whose phase tells
// the caller whether analysis or generation broke. Cancellation is checked
// at every stage boundary, so a cancelled run never reaches the backend.
func (a *Analyzer) Run(ctx context.Context, repoPath string) (*models.GenerationResult, error) {
	runID := uuid.New().String()
	logger := log.With().Str("run_id", runID).Str("repo", repoPath).Logger()

	records, warnings, err := walker.Walk(repoPath, walker.DefaultOptions())
	if err != nil {
		return nil, &models.PipelineError{Phase: models.PhaseAnalysis, Err: err}
	}
	for _, w := range warnings {
		logger.Warn().Str("path", w.Path).Err(w.Err).Msg("Skipped during walk")
	}
	if err := ctx.Err(); err != nil {
		return nil, &models.PipelineError{Phase: models.PhaseAnalysis, Err: err}
	}

	profile := language.Classify(records)
	if profile.Empty() {
		logger.Warn().Msg("No classifiable files; continuing with degraded selection")
	} else {
		logger.Debug().
			Strs("dominant", profile.Dominant(2)).
			Int("languages", len(profile.Entries)).
			Msg("Language classification complete")
	}
	if err := ctx.Err(); err != nil {
		return nil, &models.PipelineError{Phase: models.PhaseAnalysis, Err: err}
	}

	selected, err := keyfiles.Select(records, profile, keyfiles.Budget{
		MaxFiles:      a.opts.MaxKeyFiles,
		MaxTotalBytes: int64(a.opts.MaxKeyFiles) * int64(a.opts.MaxBytesPerFile),
	})
	if err != nil {
		return nil, &models.PipelineError{Phase: models.PhaseAnalysis, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, &models.PipelineError{Phase: models.PhaseAnalysis, Err: err}
	}

	snippets, sampleWarnings := sampler.Sample(selected, a.opts.MaxBytesPerFile)
	for _, w := range sampleWarnings {
		logger.Warn().Str("path", w.Path).Err(w.Err).Msg("Sampling warning")
	}
	if err := ctx.Err(); err != nil {
		return nil, &models.PipelineError{Phase: models.PhaseAnalysis, Err: err}
	}

	verbosity := models.VerbosityConcise
	if a.opts.Verbose {
		verbosity = models.VerbosityDetailed
	}
	payload := prompt.Assemble(profile, selected, snippets, verbosity, a.opts.MaxTotalPromptBytes)
	logger.Debug().
		Int("prompt_bytes", len(payload.Text)).
		Int("snippets", len(payload.Snippets)).
		Str("verbosity", verbosity.String()).
		Msg("Prompt assembled")
	if err := ctx.Err(); err != nil {
		return nil, &models.PipelineError{Phase: models.PhaseAnalysis, Err: err}
	}

	result, err := a.generator.Generate(ctx, payload)
	if err != nil {
		return nil, &models.PipelineError{Phase: models.PhaseGeneration, Err: err}
	}

	logger.Debug().
		Int("attempts", result.Attempts).
		Dur("duration", result.Duration).
		Msg("Document generated")

	return result, nil
}
