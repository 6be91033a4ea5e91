package main

import (
	"log"

	"github.com/chazu/gcam/pkg/engine"
	"github.com/chazu/gcam/pkg/job"
	"github.com/chazu/gcam/pkg/kernel"
	"github.com/chazu/gcam/pkg/kernel/sdfx"
	"github.com/chazu/gcam/pkg/program"
)

// App runs the compile pipeline: job source, engine, validation, program.
type App struct {
	engine *engine.Engine

	// precision, when non-negative, replaces the job's precision.
	precision int
}

// ErrorData is a JSON-serializable diagnostic.
type ErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// Result is the outcome of one compile.
type Result struct {
	Program  string      `json:"program"`
	Blocks   int         `json:"blocks"`
	Errors   []ErrorData `json:"errors"`
	Warnings []ErrorData `json:"warnings"`
}

// NewApp creates a new App with an engine and the sdfx kernel.
func NewApp() *App {
	return NewAppWithKernel(sdfx.New())
}

// NewAppWithKernel creates an App whose jobs use k.
func NewAppWithKernel(k kernel.Kernel) *App {
	return &App{
		engine:    engine.NewEngine(k),
		precision: -1,
	}
}

// SetPrecision overrides the precision of every compiled job. A negative
// value keeps the job's own.
func (a *App) SetPrecision(p int) {
	a.precision = p
}

// Compile takes job source and returns the G-code program and diagnostics.
// Program is empty whenever Errors is not.
func (a *App) Compile(source string) Result {
	result := Result{
		Errors:   []ErrorData{},
		Warnings: []ErrorData{},
	}

	// Step 1: Evaluate the Lisp source into a job.
	j, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Compile fatal error: %v", err)
		result.Errors = append(result.Errors, ErrorData{Message: err.Error()})
		return result
	}

	// Step 2: Convert eval errors.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, ErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	if a.precision >= 0 {
		j = withPrecision(j, a.precision)
	}

	// Step 3: Validate the configuration.
	findings := j.Validate()
	for _, f := range job.Warnings(findings) {
		result.Warnings = append(result.Warnings, ErrorData{Message: f.Error()})
	}
	if errs := job.Errors(findings); len(errs) > 0 {
		for _, f := range errs {
			result.Errors = append(result.Errors, ErrorData{Message: f.Error()})
		}
		return result
	}

	// Step 4: Render the program.
	p, err := program.Compile(j)
	if err != nil {
		log.Printf("Render error: %v", err)
		result.Errors = append(result.Errors, ErrorData{Message: "render failed: " + err.Error()})
		return result
	}

	result.Program = p.Text
	result.Blocks = p.Blocks
	return result
}

// withPrecision copies j with a different output precision. Operations
// keep their commands; precision only affects rendering.
func withPrecision(j *job.Job, precision int) *job.Job {
	cfg := j.Config()
	cfg.Precision = precision
	out := job.New(cfg, j.Kernel())
	out.Add(j.Operations()...)
	return out
}
