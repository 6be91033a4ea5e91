package gcode

import (
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Chain is an ordered command list rendered from a known initial machine
// position. Each command starts where the previous one ended.
type Chain struct {
	Initial  v3.Vec
	Commands []Command
}

// NewChain returns a chain starting at initial.
func NewChain(initial v3.Vec, cmds ...Command) *Chain {
	return &Chain{Initial: initial, Commands: cmds}
}

// Append adds commands to the end of the chain.
func (ch *Chain) Append(cmds ...Command) {
	ch.Commands = append(ch.Commands, cmds...)
}

// Len returns the number of commands.
func (ch *Chain) Len() int {
	return len(ch.Commands)
}

// Render walks the chain once, threading the resolved position forward,
// and returns the program text (one block per line, no trailing newline)
// and the final position. Rendering the same chain twice yields the same
// result.
func (ch *Chain) Render(precision int) (string, v3.Vec) {
	var lines []string
	pos := ch.Initial
	for _, c := range ch.Commands {
		var text string
		text, pos = c.Render(pos, precision)
		if text != "" {
			lines = append(lines, text)
		}
	}
	return strings.Join(lines, "\n"), pos
}

// Positions returns the resolved position after each command.
func (ch *Chain) Positions() []v3.Vec {
	out := make([]v3.Vec, 0, len(ch.Commands))
	pos := ch.Initial
	for _, c := range ch.Commands {
		pos = c.Resolve(pos)
		out = append(out, pos)
	}
	return out
}
