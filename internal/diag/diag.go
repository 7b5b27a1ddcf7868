// Package diag provides the single diagnostic currency shared by the
// Lowerer and Analyzer: a Diagnostic carries a severity, a message, and
// a source position, and knows how to render itself with a source
// excerpt and caret.
package diag

import (
	"fmt"
	"strings"

	"github.com/ohl-lang/ohl/pkg/token"
)

// Severity distinguishes a fatal diagnostic from an advisory one. Only
// Error severity aborts the pipeline (§7); Warning is collected and
// returned alongside a successful result.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Diagnostic is one finding produced during lowering or analysis.
type Diagnostic struct {
	Severity Severity
	Message  string
	Position token.Position
	Source   string // full source text, for excerpt rendering; may be empty
}

// New constructs an Error-severity diagnostic.
func New(pos token.Position, format string, args ...any) *Diagnostic {
	return &Diagnostic{Severity: Error, Message: fmt.Sprintf(format, args...), Position: pos}
}

// Warn constructs a Warning-severity diagnostic.
func Warn(pos token.Position, format string, args ...any) *Diagnostic {
	return &Diagnostic{Severity: Warning, Message: fmt.Sprintf(format, args...), Position: pos}
}

// Error implements the error interface so a Diagnostic can be returned
// anywhere a plain error is expected.
func (d *Diagnostic) Error() string {
	return d.Format(false)
}

// Format renders the diagnostic as "[line|col] severity: message",
// following the bracket/pipe location form used throughout this
// pipeline, plus a source excerpt and caret when Source is set. If
// color is true, the severity label and caret are ANSI-colored.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	sevLabel := d.Severity.String()
	if color {
		if d.Severity == Error {
			sevLabel = "\033[1;31m" + sevLabel + "\033[0m" // red bold
		} else {
			sevLabel = "\033[1;33m" + sevLabel + "\033[0m" // yellow bold
		}
	}

	fmt.Fprintf(&sb, "[%d|%d] %s: %s", d.Position.Line, d.Position.Column, sevLabel, d.Message)

	if line := sourceLine(d.Source, d.Position.Line); line != "" {
		sb.WriteString("\n")
		lineNumStr := fmt.Sprintf("%4d | ", d.Position.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+max(d.Position.Column-1, 0)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
	}

	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// Bag collects diagnostics produced during one pass and reports whether
// any are fatal.
type Bag struct {
	items []*Diagnostic
}

// Add appends a diagnostic to the bag.
func (b *Bag) Add(d *Diagnostic) {
	b.items = append(b.items, d)
}

// Errorf appends a new Error-severity diagnostic.
func (b *Bag) Errorf(pos token.Position, format string, args ...any) {
	b.Add(New(pos, format, args...))
}

// Warnf appends a new Warning-severity diagnostic.
func (b *Bag) Warnf(pos token.Position, format string, args ...any) {
	b.Add(Warn(pos, format, args...))
}

// HasErrors reports whether the bag contains any Error-severity
// diagnostic.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Errors returns only the Error-severity diagnostics, in insertion order.
func (b *Bag) Errors() []*Diagnostic {
	var out []*Diagnostic
	for _, d := range b.items {
		if d.Severity == Error {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns only the Warning-severity diagnostics, in insertion
// order.
func (b *Bag) Warnings() []*Diagnostic {
	var out []*Diagnostic
	for _, d := range b.items {
		if d.Severity == Warning {
			out = append(out, d)
		}
	}
	return out
}

// All returns every diagnostic in insertion order.
func (b *Bag) All() []*Diagnostic {
	return b.items
}
