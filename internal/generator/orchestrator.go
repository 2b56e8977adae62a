package generator

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/readyou/internal/retry"
	"github.com/readyou/pkg/models"
)

// Backend is the generation service boundary. aiconnect.Connector satisfies
// it; tests substitute fakes.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Orchestrator invokes the backend with retry, backoff, rate limiting, and
// a per-call timeout. It never alters the payload: every retry resends the
// identical request.
type Orchestrator struct {
	backend Backend
	retry   retry.Config
	limiter *rate.Limiter
	timeout time.Duration
}

// New creates an orchestrator. A zero timeout falls back to the documented
// default; the limiter throttles attempts to one per second with a small
// burst so back-to-back retries cannot hammer a rate-limited backend.
func New(backend Backend, retryCfg retry.Config, timeout time.Duration) *Orchestrator {
	if timeout <= 0 {
		timeout = models.DefaultTimeout
	}
	return &Orchestrator{
		backend: backend,
		retry:   retryCfg,
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
		timeout: timeout,
	}
}

// Generate sends the payload to the backend and returns the generated text
// or a classified BackendError. Transient failures (timeouts, rate limits,
// network trouble) are retried with exponential backoff up to the configured
// limit; terminal failures return immediately.
func (o *Orchestrator) Generate(ctx context.Context, payload models.PromptPayload) (*models.GenerationResult, error) {
	start := time.Now()

	var text string
	result := retry.Do(ctx, o.retry, func() error {
		if err := o.limiter.Wait(ctx); err != nil {
			return err
		}

		attemptCtx, cancel := context.WithTimeout(ctx, o.timeout)
		defer cancel()

		out, err := o.backend.Generate(attemptCtx, payload.Text)
		if err != nil {
			return err
		}
		text = out
		return nil
	})

	if !result.Success {
		log.Error().
			Err(result.LastError).
			Int("attempts", result.Attempts).
			Msg("Generation failed")
		return nil, &models.BackendError{
			Transient: retry.IsTransient(result.LastError),
			Attempts:  result.Attempts,
			Err:       result.LastError,
		}
	}

	log.Debug().
		Int("attempts", result.Attempts).
		Dur("duration", result.TotalDuration).
		Int("chars", len(text)).
		Msg("Generation succeeded")

	return &models.GenerationResult{
		Text:     text,
		Model:    o.backend.Model(),
		Attempts: result.Attempts,
		Duration: time.Since(start),
	}, nil
}
