package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Semantic colours for terminal messages
var (
	errorColor = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}
	hintColor  = lipgloss.AdaptiveColor{Light: "#626262", Dark: "#A8A8A8"}
)

// Printer writes styled messages to a terminal stream. Styles degrade to
// plain text when the stream is not a terminal or NO_COLOR is set.
type Printer struct {
	w        io.Writer
	errStyle lipgloss.Style
	hint     lipgloss.Style
}

// NewPrinter creates a Printer for w
func NewPrinter(w io.Writer, noColor bool) *Printer {
	renderer := lipgloss.NewRenderer(w)
	if noColor || !ColorEnabled(w) {
		renderer.SetColorProfile(termenv.Ascii)
	}

	return &Printer{
		w:        w,
		errStyle: renderer.NewStyle().Foreground(errorColor).Bold(true),
		hint:     renderer.NewStyle().Foreground(hintColor),
	}
}

// ColorEnabled reports whether w is a terminal and NO_COLOR is unset
func ColorEnabled(w io.Writer) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Error prints "<label> <message>" with the label styled as an error
func (p *Printer) Error(label, message string) {
	fmt.Fprintf(p.w, "%s %s\n", p.errStyle.Render(label), message)
}

// Hint prints a dimmed line, used for usage text after an error
func (p *Printer) Hint(message string) {
	fmt.Fprintln(p.w, p.hint.Render(message))
}
