// Package fileproc provides concurrent file processing for multi-file
// analysis runs. The engine is a pure function of its input, so workers
// share nothing and need no locking beyond result collection.
package fileproc

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/presagehq/presage/pkg/engine"
)

// ProcessingError represents an error that occurred while processing a
// file.
type ProcessingError struct {
	Path string
	Err  error
}

func (e ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// ProcessingErrors collects file processing errors across workers.
type ProcessingErrors struct {
	mu     sync.Mutex
	Errors []ProcessingError
}

// Add appends an error (thread-safe).
func (e *ProcessingErrors) Add(path string, err error) {
	e.mu.Lock()
	e.Errors = append(e.Errors, ProcessingError{Path: path, Err: err})
	e.mu.Unlock()
}

// HasErrors reports whether any errors were collected.
func (e *ProcessingErrors) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Errors) > 0
}

// Error implements the error interface.
func (e *ProcessingErrors) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	default:
		return fmt.Sprintf("%d files failed to process (first: %v)", len(e.Errors), e.Errors[0])
	}
}

// DefaultWorkerMultiplier is applied to NumCPU for the worker count.
// 2x suits the mixed I/O and CGO parsing workload.
const DefaultWorkerMultiplier = 2

// ProgressFunc is called after each file is processed.
type ProgressFunc func()

// Map analyzes files in parallel with a per-call engine, preserving
// input order in the results. Failed files are recorded in the returned
// error collection; successes are never discarded because of them.
// Engine options apply to every worker's engine.
func Map[T any](ctx context.Context, files []string, fn func(*engine.Engine, string) (T, error), onProgress ProgressFunc, opts ...engine.Option) ([]T, *ProcessingErrors) {
	if len(files) == 0 {
		return nil, nil
	}

	maxWorkers := runtime.NumCPU() * DefaultWorkerMultiplier
	results := make([]T, len(files))
	valid := make([]bool, len(files))
	errs := &ProcessingErrors{}

	p := pool.New().WithMaxGoroutines(maxWorkers).WithContext(ctx)
	for i, path := range files {
		p.Go(func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				errs.Add(path, ctx.Err())
				return ctx.Err()
			default:
			}

			eng := engine.New(opts...)
			result, err := fn(eng, path)

			if onProgress != nil {
				onProgress()
			}
			if err != nil {
				errs.Add(path, err)
				return nil // individual failures don't stop the pool
			}

			results[i] = result
			valid[i] = true
			return nil
		})
	}
	_ = p.Wait() // context errors are captured in errs

	ordered := make([]T, 0, len(files))
	for i := range results {
		if valid[i] {
			ordered = append(ordered, results[i])
		}
	}

	if !errs.HasErrors() {
		return ordered, nil
	}
	return ordered, errs
}
