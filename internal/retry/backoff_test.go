package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig(maxRetries int) Config {
	return Config{
		MaxRetries: maxRetries,
		BaseDelay:  time.Millisecond,
		MaxDelay:   10 * time.Millisecond,
		Multiplier: 2.0,
		Jitter:     false, // predictable delays for testing
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.MaxRetries != 3 {
		t.Errorf("Expected MaxRetries=3, got %d", config.MaxRetries)
	}
	if config.BaseDelay != time.Second {
		t.Errorf("Expected BaseDelay=1s, got %v", config.BaseDelay)
	}
	if config.MaxDelay != 30*time.Second {
		t.Errorf("Expected MaxDelay=30s, got %v", config.MaxDelay)
	}
	if config.Multiplier != 2.0 {
		t.Errorf("Expected Multiplier=2.0, got %f", config.Multiplier)
	}
	if !config.Jitter {
		t.Error("Expected Jitter=true")
	}
}

func TestBackendConfig(t *testing.T) {
	config := BackendConfig()

	if config.MaxRetries != 3 {
		t.Errorf("Expected MaxRetries=3, got %d", config.MaxRetries)
	}
	if config.BaseDelay != 2*time.Second {
		t.Errorf("Expected BaseDelay=2s, got %v", config.BaseDelay)
	}
	if config.MaxDelay != 60*time.Second {
		t.Errorf("Expected MaxDelay=60s, got %v", config.MaxDelay)
	}
	if config.Multiplier != 2.5 {
		t.Errorf("Expected Multiplier=2.5, got %f", config.Multiplier)
	}
}

func TestDoSuccessFirstAttempt(t *testing.T) {
	result := Do(context.Background(), fastConfig(2), func() error {
		return nil
	})

	if !result.Success {
		t.Error("Expected success")
	}
	if result.Attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", result.Attempts)
	}
}

func TestDoRetriesTransientErrors(t *testing.T) {
	calls := 0
	result := Do(context.Background(), fastConfig(3), func() error {
		calls++
		if calls < 3 {
			return errors.New("503 service unavailable")
		}
		return nil
	})

	if !result.Success {
		t.Errorf("Expected eventual success, got %v", result.LastError)
	}
	if result.Attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", result.Attempts)
	}
	if len(result.RetryReasons) != 2 {
		t.Errorf("Expected 2 retry reasons, got %d", len(result.RetryReasons))
	}
}

func TestDoStopsOnTerminalError(t *testing.T) {
	calls := 0
	terminal := errors.New("invalid api key")
	result := Do(context.Background(), fastConfig(3), func() error {
		calls++
		return terminal
	})

	if result.Success {
		t.Error("Expected failure")
	}
	if calls != 1 {
		t.Errorf("Expected 1 call for terminal error, got %d", calls)
	}
	if !errors.Is(result.LastError, terminal) {
		t.Errorf("Expected terminal error, got %v", result.LastError)
	}
}

func TestDoExhaustsRetries(t *testing.T) {
	calls := 0
	result := Do(context.Background(), fastConfig(3), func() error {
		calls++
		return errors.New("rate limit exceeded")
	})

	if result.Success {
		t.Error("Expected failure")
	}
	if calls != 4 {
		t.Errorf("Expected 4 attempts (1 + 3 retries), got %d", calls)
	}
}

func TestDoRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	result := Do(ctx, fastConfig(5), func() error {
		calls++
		cancel()
		return errors.New("timeout")
	})

	if result.Success {
		t.Error("Expected failure")
	}
	if calls != 1 {
		t.Errorf("Expected 1 call before cancellation stopped retries, got %d", calls)
	}
	if !errors.Is(result.LastError, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", result.LastError)
	}
}

func TestCalculateDelayExponentialGrowth(t *testing.T) {
	config := fastConfig(5)

	d0 := calculateDelay(config, 0)
	d1 := calculateDelay(config, 1)
	d2 := calculateDelay(config, 2)

	if d1 != 2*d0 {
		t.Errorf("Expected d1=2*d0, got d0=%v d1=%v", d0, d1)
	}
	if d2 != 4*d0 {
		t.Errorf("Expected d2=4*d0, got d0=%v d2=%v", d0, d2)
	}
}

func TestCalculateDelayCappedAtMax(t *testing.T) {
	config := fastConfig(5)

	d := calculateDelay(config, 20)
	if d > config.MaxDelay {
		t.Errorf("Expected delay capped at %v, got %v", config.MaxDelay, d)
	}
}

func TestIsTransient(t *testing.T) {
	transient := []string{
		"connection refused",
		"request timeout",
		"429 Too Many Requests",
		"rate limit exceeded",
		"503 Service Unavailable",
		"context deadline exceeded",
	}
	for _, msg := range transient {
		if !IsTransient(errors.New(msg)) {
			t.Errorf("Expected %q to be transient", msg)
		}
	}

	terminal := []string{
		"invalid api key",
		"401 Unauthorized",
		"malformed request body",
	}
	for _, msg := range terminal {
		if IsTransient(errors.New(msg)) {
			t.Errorf("Expected %q to be terminal", msg)
		}
	}

	if IsTransient(nil) {
		t.Error("Expected nil to be non-transient")
	}
}
