package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// Printer writes pass/fail lines, colored when the output supports it.
type Printer struct {
	out *termenv.Output
}

// NewPrinter wraps w. Colors are detected from w and the environment.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{out: termenv.NewOutput(w)}
}

// NewPlainPrinter wraps w without any styling.
func NewPlainPrinter(w io.Writer) *Printer {
	return &Printer{out: termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))}
}

// Pass prints a success line.
func (p *Printer) Pass(format string, args ...any) {
	p.line("PASS", "#22c55e", format, args...)
}

// Fail prints a failure line.
func (p *Printer) Fail(format string, args ...any) {
	p.line("FAIL", "#ef4444", format, args...)
}

// Detail prints an indented, dimmed line under the previous status.
func (p *Printer) Detail(format string, args ...any) {
	msg := p.out.String("    " + fmt.Sprintf(format, args...)).Faint()
	fmt.Fprintln(p.out, msg)
}

func (p *Printer) line(label, color, format string, args ...any) {
	tag := p.out.String(label).Bold().Foreground(p.out.Color(color))
	fmt.Fprintf(p.out, "%s %s\n", tag, fmt.Sprintf(format, args...))
}
