package report

import (
	"os"
	"strings"

	"github.com/arthur-debert/uievent/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format represents the report output format
type Format int

const (
	// FormatAuto picks FormatTerminal or FormatText from the output
	FormatAuto Format = iota
	// FormatTerminal renders styled output for a color terminal
	FormatTerminal
	// FormatText renders plain text without escape sequences
	FormatText
	// FormatJSON renders machine-readable JSON
	FormatJSON
	// FormatJUnit renders JUnit XML for CI systems
	FormatJUnit
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatJUnit:
		return "junit"
	default:
		return "unknown"
	}
}

// Formats lists the accepted format names
func Formats() []string {
	return []string{"auto", "term", "text", "json", "junit"}
}

// ParseFormat parses a string into a Format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "junit", "xml":
		return FormatJUnit, nil
	default:
		return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s).
			WithDetail("valid", Formats())
	}
}

// DetectFormat determines the format for output from the environment and
// terminal capabilities
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}

	if termenv.NewOutput(output).Profile == termenv.Ascii {
		return FormatText
	}

	return FormatTerminal
}

// Resolve turns FormatAuto into a concrete format for output. Other formats
// are returned unchanged. noColor forces FormatText in place of
// FormatTerminal.
func Resolve(f Format, output *os.File, noColor bool) Format {
	if f == FormatAuto {
		if output == nil {
			f = FormatText
		} else {
			f = DetectFormat(output)
		}
	}
	if f == FormatTerminal && noColor {
		return FormatText
	}
	return f
}
