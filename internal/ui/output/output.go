// Package output provides termenv outputs with consistent color profile
// handling, and a small printer for the CLI's human-readable results.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/dock/internal/ui/style"
)

// ColorProfile returns the color profile to use.
// NO_COLOR forces Ascii; otherwise the terminal's capabilities are detected.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a new termenv.Output with the shared profile logic.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(ColorProfile()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}

// Printer writes command results with status icons.
type Printer struct {
	out *termenv.Output
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{out: New(w)}
}

// Success prints a line prefixed with a check mark.
func (p *Printer) Success(format string, args ...any) {
	p.line(style.Check, style.Green, format, args...)
}

// Failure prints a line prefixed with a cross.
func (p *Printer) Failure(format string, args ...any) {
	p.line(style.Cross, style.Red, format, args...)
}

// Item prints a bullet line.
func (p *Printer) Item(format string, args ...any) {
	p.line(style.Dot, style.Coral, format, args...)
}

// Plain prints an unstyled line.
func (p *Printer) Plain(format string, args ...any) {
	_, _ = fmt.Fprintln(p.out, fmt.Sprintf(format, args...))
}

func (p *Printer) line(icon string, color lipgloss.Color, format string, args ...any) {
	prefix := p.out.String(icon).Foreground(termenv.RGBColor(string(color)))
	_, _ = fmt.Fprintf(p.out, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}
