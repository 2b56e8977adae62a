package generator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/readyou/internal/retry"
	"github.com/readyou/pkg/models"
)

// scriptedBackend returns its queued errors in order, then succeeds.
type scriptedBackend struct {
	errs  []error
	calls int
	seen  []string
}

func (b *scriptedBackend) Generate(_ context.Context, prompt string) (string, error) {
	b.calls++
	b.seen = append(b.seen, prompt)
	if len(b.errs) > 0 {
		err := b.errs[0]
		b.errs = b.errs[1:]
		return "", err
	}
	return "# Generated README", nil
}

func (b *scriptedBackend) Model() string { return "test-model" }

func fastOrchestrator(b Backend, maxRetries int) *Orchestrator {
	o := New(b, retry.Config{
		MaxRetries: maxRetries,
		BaseDelay:  time.Millisecond,
		MaxDelay:   5 * time.Millisecond,
		Multiplier: 2.0,
	}, time.Second)
	o.limiter = rate.NewLimiter(rate.Inf, 1)
	return o
}

func payload() models.PromptPayload {
	return models.PromptPayload{Text: "describe this repository"}
}

func transientErr() error { return errors.New("503 service unavailable") }

func TestGenerateSuccess(t *testing.T) {
	backend := &scriptedBackend{}
	result, err := fastOrchestrator(backend, 3).Generate(context.Background(), payload())

	require.NoError(t, err)
	require.Equal(t, "# Generated README", result.Text)
	require.Equal(t, "test-model", result.Model)
	require.Equal(t, 1, result.Attempts)
}

func TestGenerateRecoversFromThreeTransientFailures(t *testing.T) {
	backend := &scriptedBackend{errs: []error{transientErr(), transientErr(), transientErr()}}
	result, err := fastOrchestrator(backend, 3).Generate(context.Background(), payload())

	require.NoError(t, err)
	require.Equal(t, "# Generated README", result.Text)
	require.Equal(t, 4, result.Attempts)
}

func TestGenerateFourTransientFailuresIsTerminal(t *testing.T) {
	backend := &scriptedBackend{errs: []error{
		transientErr(), transientErr(), transientErr(), transientErr(),
	}}
	result, err := fastOrchestrator(backend, 3).Generate(context.Background(), payload())

	require.Nil(t, result)
	var backendErr *models.BackendError
	require.ErrorAs(t, err, &backendErr)
	require.True(t, backendErr.Transient)
	require.Equal(t, 4, backendErr.Attempts)
	require.Equal(t, 4, backend.calls, "no retry beyond the limit")
}

func TestGenerateTerminalFailureNotRetried(t *testing.T) {
	backend := &scriptedBackend{errs: []error{errors.New("invalid api key")}}
	_, err := fastOrchestrator(backend, 3).Generate(context.Background(), payload())

	var backendErr *models.BackendError
	require.ErrorAs(t, err, &backendErr)
	require.False(t, backendErr.Transient)
	require.Equal(t, 1, backend.calls)
}

func TestGenerateResendsIdenticalRequest(t *testing.T) {
	backend := &scriptedBackend{errs: []error{transientErr(), transientErr()}}
	_, err := fastOrchestrator(backend, 3).Generate(context.Background(), payload())
	require.NoError(t, err)

	require.Len(t, backend.seen, 3)
	for _, p := range backend.seen {
		require.Equal(t, "describe this repository", p)
	}
}

func TestGenerateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	backend := &scriptedBackend{}
	_, err := fastOrchestrator(backend, 3).Generate(ctx, payload())
	require.Error(t, err)
	require.Zero(t, backend.calls)
}
