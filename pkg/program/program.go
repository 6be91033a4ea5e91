// Package program walks a job and renders the complete G-code program:
// the fixed preamble, every operation's commands in one position-tracking
// chain, and the postamble.
package program

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chazu/gcam/pkg/gcode"
	"github.com/chazu/gcam/pkg/job"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrNilJob is returned when Compile is given no job.
var ErrNilJob = errors.New("program: nil job")

// Program is a rendered G-code program.
type Program struct {
	Text string
	// Final is the resolved machine position after the last command.
	Final v3.Vec
	// Blocks is the number of lines in Text.
	Blocks int
	// Warnings are the advisory validation findings of the job.
	Warnings []job.ValidationError
}

// Chain assembles the complete command chain for j without rendering it.
// Operations are appended in job order, so each one starts where the
// previous one stopped.
func Chain(j *job.Job) (*gcode.Chain, error) {
	if j == nil {
		return nil, ErrNilJob
	}
	cfg := j.Config()

	ch := gcode.NewChain(cfg.InitialPosition, gcode.SafetyBlock())
	if cfg.Unit == job.Imperial {
		ch.Append(gcode.UnitsInch())
	}
	if cfg.Tool > 0 {
		// The tool change leaves coolant off; nothing has switched it on yet.
		ch.Append(gcode.ToolChange(cfg.Tool, cfg.Speed, cfg.Coolant), gcode.CoolantOn(cfg.Coolant))
	} else {
		ch.Append(gcode.StartSequence(cfg.Speed, cfg.Coolant))
	}

	for i, op := range j.Operations() {
		if op == nil {
			return nil, fmt.Errorf("program: operation %d is nil", i)
		}
		ch.Append(gcode.Comment(op.Name()))
		ch.Append(op.Commands()...)
	}

	ch.Append(gcode.StopSequence(cfg.Coolant), gcode.ProgramEnd())
	return ch, nil
}

// Compile validates j and renders it. Jobs with blocking validation
// findings are refused.
func Compile(j *job.Job) (*Program, error) {
	if j == nil {
		return nil, ErrNilJob
	}
	findings := j.Validate()
	if errs := job.Errors(findings); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("program: invalid job: %s", strings.Join(msgs, "; "))
	}

	ch, err := Chain(j)
	if err != nil {
		return nil, err
	}
	text, final := ch.Render(j.Config().Precision)

	return &Program{
		Text:     text + "\n",
		Final:    final,
		Blocks:   strings.Count(text, "\n") + 1,
		Warnings: job.Warnings(findings),
	}, nil
}
