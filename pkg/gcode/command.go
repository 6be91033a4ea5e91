package gcode

import (
	"fmt"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Kind is the motion or directive a Command performs.
type Kind int

const (
	KindRapid     Kind = iota // G0
	KindCut                   // G1
	KindPlunge                // G1 along the tool axis
	KindArcCW                 // G2
	KindArcCCW                // G3
	KindDirective             // fixed state-change text, no motion
)

func (k Kind) String() string {
	switch k {
	case KindRapid:
		return "rapid"
	case KindCut:
		return "cut"
	case KindPlunge:
		return "plunge"
	case KindArcCW:
		return "arc-cw"
	case KindArcCCW:
		return "arc-ccw"
	case KindDirective:
		return "directive"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// code returns the preparatory word that starts a motion block.
func (k Kind) code() string {
	switch k {
	case KindRapid:
		return "G0"
	case KindCut, KindPlunge:
		return "G1"
	case KindArcCW:
		return "G2"
	case KindArcCCW:
		return "G3"
	}
	return ""
}

func (k Kind) takesFeed() bool {
	switch k {
	case KindCut, KindPlunge, KindArcCW, KindArcCCW:
		return true
	}
	return false
}

func (k Kind) isArc() bool {
	return k == KindArcCW || k == KindArcCCW
}

// Command is one machine motion or state directive. Commands are values
// and never change after construction; the start position is supplied by
// whoever renders them.
type Command struct {
	Kind Kind
	// End is the target; axes left unspecified stay where the machine is.
	End AddressVector
	// Relative commands treat End as a displacement from the start.
	Relative bool
	Feed     Coord
	// Center of the arc, arcs only.
	Center AddressVector
	// Lines of a directive, directives only.
	Lines []string
}

// RapidTo is a non-cutting move to end.
func RapidTo(end AddressVector) Command {
	return Command{Kind: KindRapid, End: end}
}

// RapidBy is a non-cutting move by a displacement.
func RapidBy(delta AddressVector) Command {
	return Command{Kind: KindRapid, End: delta, Relative: true}
}

// CutTo is a feed-controlled straight move to end.
func CutTo(end AddressVector, feed Coord) Command {
	return Command{Kind: KindCut, End: end, Feed: feed}
}

// CutBy is a feed-controlled straight move by a displacement.
func CutBy(delta AddressVector, feed Coord) Command {
	return Command{Kind: KindCut, End: delta, Feed: feed, Relative: true}
}

// PlungeTo cuts along Z only, down (or up) to z.
func PlungeTo(z float64, feed Coord) Command {
	return Command{Kind: KindPlunge, End: OnlyZ(z), Feed: feed}
}

// ArcCW is a clockwise circular move to end around center.
func ArcCW(end, center AddressVector, feed Coord) Command {
	return Command{Kind: KindArcCW, End: end, Center: center, Feed: feed}
}

// ArcCCW is a counter-clockwise circular move to end around center.
func ArcCCW(end, center AddressVector, feed Coord) Command {
	return Command{Kind: KindArcCCW, End: end, Center: center, Feed: feed}
}

// Directive wraps fixed program lines that do not move the tool.
func Directive(lines ...string) Command {
	return Command{Kind: KindDirective, Lines: lines}
}

// Resolve returns the machine position after the command runs from start.
func (c Command) Resolve(start v3.Vec) v3.Vec {
	if c.Kind == KindDirective {
		return start
	}
	if c.Relative {
		return c.End.Displace(start)
	}
	return c.End.Resolve(start, false)
}

// Render returns the G-code for the command run from start together with
// the resolved end position. A straight move that changes no axis at the
// given precision renders as "" and still reports its end position.
func (c Command) Render(start v3.Vec, precision int) (string, v3.Vec) {
	end := c.Resolve(start)
	if c.Kind == KindDirective {
		return strings.Join(c.Lines, "\n"), end
	}

	axes := XYZ(changed(start, end, precision), precision).Compact()
	if axes == "" && !c.Kind.isArc() {
		// Nothing moves at this precision; a bare motion word is noise.
		return "", end
	}

	var b strings.Builder
	b.WriteString(c.Kind.code())
	b.WriteString(axes)
	if c.Kind.isArc() {
		b.WriteString(IJK(c.Center.Offset(start), precision).Compact())
	}
	if c.Kind.takesFeed() {
		b.WriteString(NewWord(LetterFeed, c.Feed).String())
	}
	return b.String(), end
}

// changed returns the axes of end that render differently from start.
func changed(start, end v3.Vec, precision int) AddressVector {
	var a AddressVector
	if FormatNumber(start.X, precision) != FormatNumber(end.X, precision) {
		a.X = Set(end.X)
	}
	if FormatNumber(start.Y, precision) != FormatNumber(end.Y, precision) {
		a.Y = Set(end.Y)
	}
	if FormatNumber(start.Z, precision) != FormatNumber(end.Z, precision) {
		a.Z = Set(end.Z)
	}
	return a
}
