// Package ui renders status lines for the command line: a colored prefix
// followed by a message. Colors are dropped automatically when the writer is
// not a terminal.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Status selects the prefix and color of a line.
type Status int

const (
	OK Status = iota
	Info
	Warn
	Error
)

var labels = map[Status]string{
	OK:    "ok",
	Info:  "info",
	Warn:  "warn",
	Error: "error",
}

var colors = map[Status]lipgloss.Color{
	OK:    lipgloss.Color("2"),
	Info:  lipgloss.Color("6"),
	Warn:  lipgloss.Color("3"),
	Error: lipgloss.Color("1"),
}

// Printer writes styled status lines to a single writer.
type Printer struct {
	w       io.Writer
	styles  map[Status]lipgloss.Style
	dim     lipgloss.Style
	numbers *message.Printer
}

// New returns a Printer for w. The color profile is detected from w.
func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	styles := make(map[Status]lipgloss.Style, len(colors))
	for s, c := range colors {
		styles[s] = r.NewStyle().Foreground(c).Bold(true)
	}
	return &Printer{
		w:       w,
		styles:  styles,
		dim:     r.NewStyle().Faint(true),
		numbers: message.NewPrinter(language.English),
	}
}

// Line prints "[label] message".
func (p *Printer) Line(s Status, format string, args ...any) {
	prefix := p.styles[s].Render("[" + labels[s] + "]")
	fmt.Fprintf(p.w, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}

func (p *Printer) OK(format string, args ...any)    { p.Line(OK, format, args...) }
func (p *Printer) Info(format string, args ...any)  { p.Line(Info, format, args...) }
func (p *Printer) Warn(format string, args ...any)  { p.Line(Warn, format, args...) }
func (p *Printer) Error(format string, args ...any) { p.Line(Error, format, args...) }

// Dim renders s in a faint style, for secondary columns such as paths.
func (p *Printer) Dim(s string) string {
	return p.dim.Render(s)
}

// Number formats n with digit grouping.
func (p *Printer) Number(n int) string {
	return p.numbers.Sprintf("%d", n)
}

// Count formats n with a singular or plural noun, grouping digits
// ("1 package", "1,204 packages").
func (p *Printer) Count(n int, singular, plural string) string {
	noun := plural
	if n == 1 {
		noun = singular
	}
	return p.numbers.Sprintf("%d %s", n, noun)
}
