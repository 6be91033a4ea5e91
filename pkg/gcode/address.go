// Package gcode renders machine motions as G-code text. It owns the
// letter-address formatting rules, the command model and the forward
// pass that threads the machine position through a command chain.
package gcode

import (
	"fmt"
	"strconv"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// DefaultPrecision is the number of fractional digits used for axis words
// when no precision is configured (mm programs).
const DefaultPrecision = 3

// maxPrecision bounds the digits FormatNumber will ever emit.
const maxPrecision = 10

// Coord is an optional axis value. The zero Coord is unspecified.
type Coord struct {
	V     float64
	Valid bool
}

// Set returns a specified Coord.
func Set(v float64) Coord {
	return Coord{V: v, Valid: true}
}

// Unset is the unspecified Coord: "leave this axis where it is".
var Unset = Coord{}

func (c Coord) String() string {
	if !c.Valid {
		return "None"
	}
	return strconv.FormatFloat(c.V, 'f', -1, 64)
}

// AddressVector is a partially specified 3D point.
type AddressVector struct {
	X, Y, Z Coord
}

// Abs returns a fully specified AddressVector.
func Abs(x, y, z float64) AddressVector {
	return AddressVector{X: Set(x), Y: Set(y), Z: Set(z)}
}

// XY returns an AddressVector that leaves Z unspecified.
func XY(x, y float64) AddressVector {
	return AddressVector{X: Set(x), Y: Set(y)}
}

// OnlyZ returns an AddressVector that only specifies Z.
func OnlyZ(z float64) AddressVector {
	return AddressVector{Z: Set(z)}
}

// FromVec returns a fully specified AddressVector for v.
func FromVec(v v3.Vec) AddressVector {
	return Abs(v.X, v.Y, v.Z)
}

func (a AddressVector) String() string {
	return fmt.Sprintf("(%s %s %s)", a.X, a.Y, a.Z)
}

// IsEmpty reports whether no axis is specified.
func (a AddressVector) IsEmpty() bool {
	return !a.X.Valid && !a.Y.Valid && !a.Z.Valid
}

// Resolve turns the vector into a concrete point relative to origin.
//
// In absolute mode an unspecified axis takes the origin's value. In
// relative mode an unspecified axis is a zero displacement and a specified
// axis is its distance from the origin.
func (a AddressVector) Resolve(origin v3.Vec, relative bool) v3.Vec {
	if relative {
		return v3.Vec{
			X: relAxis(a.X, origin.X),
			Y: relAxis(a.Y, origin.Y),
			Z: relAxis(a.Z, origin.Z),
		}
	}
	return v3.Vec{
		X: absAxis(a.X, origin.X),
		Y: absAxis(a.Y, origin.Y),
		Z: absAxis(a.Z, origin.Z),
	}
}

// Displace treats the specified axes as a displacement and returns
// origin moved by it.
func (a AddressVector) Displace(origin v3.Vec) v3.Vec {
	d := v3.Vec{}
	if a.X.Valid {
		d.X = a.X.V
	}
	if a.Y.Valid {
		d.Y = a.Y.V
	}
	if a.Z.Valid {
		d.Z = a.Z.V
	}
	return origin.Add(d)
}

// Offset returns the per-axis distance from origin to a, keeping
// unspecified axes unspecified.
func (a AddressVector) Offset(origin v3.Vec) AddressVector {
	var o AddressVector
	if a.X.Valid {
		o.X = Set(a.X.V - origin.X)
	}
	if a.Y.Valid {
		o.Y = Set(a.Y.V - origin.Y)
	}
	if a.Z.Valid {
		o.Z = Set(a.Z.V - origin.Z)
	}
	return o
}

func absAxis(c Coord, origin float64) float64 {
	if c.Valid {
		return c.V
	}
	return origin
}

func relAxis(c Coord, origin float64) float64 {
	if c.Valid {
		return c.V - origin
	}
	return 0
}

// Letter is a G-code letter address.
type Letter byte

const (
	LetterG            Letter = 'G'
	LetterM            Letter = 'M'
	LetterX            Letter = 'X'
	LetterY            Letter = 'Y'
	LetterZ            Letter = 'Z'
	LetterArcX         Letter = 'I'
	LetterArcY         Letter = 'J'
	LetterArcZ         Letter = 'K'
	LetterFeed         Letter = 'F'
	LetterSpeed        Letter = 'S'
	LetterDwell        Letter = 'P'
	LetterTool         Letter = 'T'
	LetterRadiusOffset Letter = 'D'
	LetterLengthOffset Letter = 'H'
)

func (l Letter) String() string {
	return string(rune(l))
}

// Word is a letter paired with an optional value. Precision words round
// their value to a fixed number of fractional digits before rendering.
type Word struct {
	Letter    Letter
	Value     Coord
	Precision int
	fixed     bool
}

// NewWord returns a word rendered with the shortest exact decimal.
func NewWord(l Letter, v Coord) Word {
	return Word{Letter: l, Value: v}
}

// PrecisionWord returns a word rounded to precision fractional digits.
func PrecisionWord(l Letter, v Coord, precision int) Word {
	return Word{Letter: l, Value: v, Precision: precision, fixed: true}
}

// String renders the word, or "" when the value is unspecified.
func (w Word) String() string {
	if !w.Value.Valid {
		return ""
	}
	if w.fixed {
		return w.Letter.String() + FormatNumber(w.Value.V, w.Precision)
	}
	return w.Letter.String() + trimNumber(strconv.FormatFloat(w.Value.V, 'f', -1, 64))
}

// FormatNumber rounds v to precision fractional digits and strips trailing
// zeros and a dangling decimal point, so 1.000 becomes "1" and 1.500 "1.5".
func FormatNumber(v float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	if precision > maxPrecision {
		precision = maxPrecision
	}
	return trimNumber(strconv.FormatFloat(v, 'f', precision, 64))
}

func trimNumber(s string) string {
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}

// AxisGroup is an ordered triple of words (X Y Z or I J K).
type AxisGroup [3]Word

// XYZ builds the axis group for an end point. Every specified axis is
// rendered.
func XYZ(end AddressVector, precision int) AxisGroup {
	return AxisGroup{
		PrecisionWord(LetterX, end.X, precision),
		PrecisionWord(LetterY, end.Y, precision),
		PrecisionWord(LetterZ, end.Z, precision),
	}
}

// IJK builds the axis group for an arc center offset. A component is
// rendered whenever it is specified, including an exact zero offset;
// only unspecified components are dropped.
func IJK(offset AddressVector, precision int) AxisGroup {
	return AxisGroup{
		PrecisionWord(LetterArcX, offset.X, precision),
		PrecisionWord(LetterArcY, offset.Y, precision),
		PrecisionWord(LetterArcZ, offset.Z, precision),
	}
}

func (g AxisGroup) words() []string {
	out := make([]string, 0, len(g))
	for _, w := range g {
		if s := w.String(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// String joins the non-empty words with spaces.
func (g AxisGroup) String() string {
	return strings.Join(g.words(), " ")
}

// Compact joins the non-empty words without separators, the form used
// inside motion blocks.
func (g AxisGroup) Compact() string {
	return strings.Join(g.words(), "")
}
