package gcode

import (
	"fmt"
	"strconv"
	"strings"
)

// Coolant is the coolant mode of the machine.
type Coolant int

const (
	CoolantOff Coolant = iota
	CoolantMist
	CoolantFlood
)

func (c Coolant) String() string {
	switch c {
	case CoolantOff:
		return "off"
	case CoolantMist:
		return "mist"
	case CoolantFlood:
		return "flood"
	default:
		return fmt.Sprintf("Coolant(%d)", int(c))
	}
}

// ParseCoolant maps "off", "mist" or "flood" to a Coolant.
func ParseCoolant(s string) (Coolant, error) {
	switch strings.ToLower(s) {
	case "off", "":
		return CoolantOff, nil
	case "mist":
		return CoolantMist, nil
	case "flood":
		return CoolantFlood, nil
	}
	return CoolantOff, fmt.Errorf("invalid coolant %q, expected off, mist or flood", s)
}

// onWord is the M-code switching this coolant on, "" for off.
func (c Coolant) onWord() string {
	switch c {
	case CoolantMist:
		return "M7"
	case CoolantFlood:
		return "M8"
	}
	return ""
}

const safetyBlock = "G90 G54 G64 G50 G17 G94\nG49 G40 G80\nG21\nG30"

// startLine is the single-line spindle start. speed <= 0 omits S.
func startLine(speed int, coolant Coolant) string {
	words := []string{"M3"}
	if speed > 0 {
		words = append(words, NewWord(LetterSpeed, Set(float64(speed))).String())
	}
	if w := coolant.onWord(); w != "" {
		words = append(words, w)
	}
	return strings.Join(words, " ")
}

func stopLine(coolant Coolant) string {
	if coolant != CoolantOff {
		return "M5 M9"
	}
	return "M5"
}

// StartSequence starts the spindle clockwise, optionally at speed, and
// switches coolant on. A speed of zero or less leaves S out.
func StartSequence(speed int, coolant Coolant) Command {
	return Directive(startLine(speed, coolant))
}

// StopSequence stops the spindle and, unless coolant is off, the coolant.
func StopSequence(coolant Coolant) Command {
	return Directive(stopLine(coolant))
}

// SafetyBlock is the fixed preamble: absolute positioning, G54, path
// blending, XY plane, feed per minute, offset and canned cycle cancel,
// millimetres, and a retract to the G30 reference.
func SafetyBlock() Command {
	return Directive(strings.Split(safetyBlock, "\n")...)
}

// ToolChange stops the spindle, retracts, pauses and swaps to tool, then
// restarts the spindle at speed. Coolant is switched off with the spindle
// and is not switched back on.
func ToolChange(tool, speed int, coolant Coolant) Command {
	t := strconv.Itoa(tool)
	return Directive(
		stopLine(coolant),
		"G30",
		"M1",
		"T"+t+" G43 H"+t+" M6",
		startLine(speed, CoolantOff),
	)
}

// CoolantOn switches coolant on without touching the spindle. Coolant off
// yields an empty directive, which renders no line.
func CoolantOn(coolant Coolant) Command {
	if w := coolant.onWord(); w != "" {
		return Directive(w)
	}
	return Directive()
}

// Comment is a program comment block. Parentheses inside text would end
// the comment early, so they are replaced.
func Comment(text string) Command {
	text = strings.NewReplacer("(", "[", ")", "]", "\n", " ").Replace(text)
	return Directive("(" + text + ")")
}

// Dwell pauses motion for seconds.
func Dwell(seconds float64) Command {
	return Directive("G4 " + NewWord(LetterDwell, Set(seconds)).String())
}

// ProgramEnd ends the program and rewinds.
func ProgramEnd() Command {
	return Directive("M30")
}

// UnitsInch selects inch units, overriding the G21 of the safety block.
func UnitsInch() Command {
	return Directive("G20")
}
