package job

import "fmt"

// ValidationSeverity indicates whether a validation finding blocks
// compilation or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks compilation
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// maxPrecision is the most fractional digits a controller is expected to
// accept (inch programs use 4).
const maxPrecision = 4

// ValidationError describes a single validation finding.
type ValidationError struct {
	Field    string             // config field with the problem
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Field, e.Message)
}

// Validate runs all configuration checks and returns the findings. An
// empty slice means the configuration is usable. It never mutates cfg.
func Validate(cfg Config) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateFeed(cfg)...)
	errs = append(errs, validatePrecision(cfg)...)
	errs = append(errs, validateSpindle(cfg)...)
	errs = append(errs, validateSafeHeight(cfg)...)
	return errs
}

// Errors returns only the blocking findings.
func Errors(findings []ValidationError) []ValidationError {
	var out []ValidationError
	for _, f := range findings {
		if f.Severity == SeverityError {
			out = append(out, f)
		}
	}
	return out
}

// Warnings returns only the advisory findings.
func Warnings(findings []ValidationError) []ValidationError {
	var out []ValidationError
	for _, f := range findings {
		if f.Severity == SeverityWarning {
			out = append(out, f)
		}
	}
	return out
}

func validateFeed(cfg Config) []ValidationError {
	if cfg.Feed <= 0 {
		return []ValidationError{{
			Field:    "feed",
			Message:  fmt.Sprintf("feed must be positive, got %g", cfg.Feed),
			Severity: SeverityError,
		}}
	}
	return nil
}

func validatePrecision(cfg Config) []ValidationError {
	if cfg.Precision < 0 || cfg.Precision > maxPrecision {
		return []ValidationError{{
			Field:    "precision",
			Message:  fmt.Sprintf("precision must be between 0 and %d, got %d", maxPrecision, cfg.Precision),
			Severity: SeverityError,
		}}
	}
	return nil
}

func validateSpindle(cfg Config) []ValidationError {
	var errs []ValidationError
	if cfg.Speed < 0 {
		errs = append(errs, ValidationError{
			Field:    "speed",
			Message:  fmt.Sprintf("spindle speed must not be negative, got %d", cfg.Speed),
			Severity: SeverityError,
		})
	}
	if cfg.Tool < 0 {
		errs = append(errs, ValidationError{
			Field:    "tool",
			Message:  fmt.Sprintf("tool number must not be negative, got %d", cfg.Tool),
			Severity: SeverityError,
		})
	}
	return errs
}

// validateSafeHeight warns when the retract plane is at or below the
// stock surface (Z=0).
func validateSafeHeight(cfg Config) []ValidationError {
	if cfg.SafeHeight <= 0 {
		return []ValidationError{{
			Field:    "safe_height",
			Message:  fmt.Sprintf("safe height %g is at or below the stock surface", cfg.SafeHeight),
			Severity: SeverityWarning,
		}}
	}
	return nil
}
