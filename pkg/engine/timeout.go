package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/chazu/gcam/pkg/job"
)

// EvalTimeout is the default hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

var (
	// ErrTimeout is returned when an evaluation runs past the engine's limit.
	ErrTimeout = errors.New("evaluation timed out")
	// ErrSuperseded is returned when a newer Evaluate started while this
	// one was running.
	ErrSuperseded = errors.New("evaluation superseded by newer request")
)

type evalResult struct {
	job    *job.Job
	errors []EvalError
	err    error
}

// stale reports whether Evaluate has been called again since gen began.
func (e *Engine) stale(gen uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation != gen
}

// await blocks until the evaluation tagged gen reports on ch or the limit
// passes. An abandoned goroutine keeps running; ch is buffered so its
// send never blocks, and its result is never read.
func (e *Engine) await(ch <-chan evalResult, gen uint64) (*job.Job, []EvalError, error) {
	timer := time.NewTimer(e.timeout)
	defer timer.Stop()

	var res evalResult
	select {
	case res = <-ch:
	case <-timer.C:
		return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, e.timeout)
	}
	if e.stale(gen) {
		return nil, nil, ErrSuperseded
	}
	return res.job, res.errors, res.err
}
