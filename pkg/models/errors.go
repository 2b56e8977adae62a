package models

import (
	"errors"
	"fmt"
)

// AccessError means the repository root does not exist or cannot be read.
// It is fatal and aborts the pipeline before any backend call.
type AccessError struct {
	Path string
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("cannot access repository at %s: %v", e.Path, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// ErrSelectionEmpty means no key files could be selected. An empty prompt
// cannot produce a meaningful document, so this is fatal.
var ErrSelectionEmpty = errors.New("no key files could be selected from the repository")

// Warning records a non-fatal per-file problem encountered during the walk
// or while sampling content. Warnings accumulate and never abort a run.
type Warning struct {
	Path string
	Err  error
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %v", w.Path, w.Err)
}

// BackendError is a classified failure from the generation backend.
// Transient failures were retried before this error was returned; terminal
// failures (authentication, malformed request) were not.
type BackendError struct {
	Transient bool
	Attempts  int
	Err       error
}

func (e *BackendError) Error() string {
	kind := "terminal"
	if e.Transient {
		kind = "transient"
	}
	return fmt.Sprintf("generation backend failed (%s, %d attempts): %v", kind, e.Attempts, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// Phase identifies which half of the pipeline a fatal error came from, so
// callers can suggest checking the path versus checking credentials.
type Phase string

const (
	PhaseAnalysis   Phase = "analysis"
	PhaseGeneration Phase = "generation"
)

// PipelineError wraps a fatal error with the phase that produced it.
type PipelineError struct {
	Phase Phase
	Err   error
}

func (e *PipelineError) Error() string {
	if e.Phase == PhaseGeneration {
		return fmt.Sprintf("could not generate document: %v", e.Err)
	}
	return fmt.Sprintf("could not analyze repository: %v", e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }
