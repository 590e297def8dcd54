// Package dispatchio centralizes stream wiring and color policy for
// the dispatch library. Help text, diagnostics, and the logger all
// write through an IOManager so tests and embedders can redirect them.
package dispatchio

import (
	stdio "io"
	"os"

	"github.com/fatih/color"
)

// IOManager holds the three standard streams and the color policy.
// The zero policy is auto: color follows what the color package
// detects for the attached streams.
type IOManager struct {
	in  stdio.Reader
	out stdio.Writer
	err stdio.Writer

	forceColor bool
	noColor    bool
}

// New returns a manager bound to process stdio.
func New() *IOManager {
	return &IOManager{in: os.Stdin, out: os.Stdout, err: os.Stderr}
}

// WithIn sets the input reader and returns the manager for chaining.
func (m *IOManager) WithIn(r stdio.Reader) *IOManager { m.in = r; return m }

// WithOut sets the standard output writer and returns the manager for chaining.
func (m *IOManager) WithOut(w stdio.Writer) *IOManager { m.out = w; return m }

// WithErr sets the standard error writer and returns the manager for chaining.
func (m *IOManager) WithErr(w stdio.Writer) *IOManager { m.err = w; return m }

// ForceColor enables color even when the streams are not terminals.
// NO_COLOR in the environment still wins.
func (m *IOManager) ForceColor() *IOManager { m.forceColor = true; m.noColor = false; return m }

// NoColor disables color output, regardless of environment.
func (m *IOManager) NoColor() *IOManager { m.noColor = true; m.forceColor = false; return m }

// In returns the configured input reader.
func (m *IOManager) In() stdio.Reader { return m.in }

// Out returns the configured standard output writer.
func (m *IOManager) Out() stdio.Writer { return m.out }

// Err returns the configured standard error writer.
func (m *IOManager) Err() stdio.Writer { return m.err }

// SupportsColor reports whether styled output should be emitted,
// honoring NO_COLOR and the manager's explicit policy.
func (m *IOManager) SupportsColor() bool {
	if m.noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	if m.forceColor {
		return true
	}
	return !color.NoColor
}

// style applies a color attribute set when the policy allows it.
func (m *IOManager) style(s string, attrs ...color.Attribute) string {
	if !m.SupportsColor() {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

// Heading styles a help-section heading.
func (m *IOManager) Heading(s string) string { return m.style(s, color.Bold) }

// Emphasis styles an inline name (command, flag) in running text.
func (m *IOManager) Emphasis(s string) string { return m.style(s, color.FgCyan) }

// ErrorText styles an error line.
func (m *IOManager) ErrorText(s string) string { return m.style(s, color.FgRed) }

// WarnText styles a warning line.
func (m *IOManager) WarnText(s string) string { return m.style(s, color.FgYellow) }

// SuccessText styles a success line.
func (m *IOManager) SuccessText(s string) string { return m.style(s, color.FgGreen) }
