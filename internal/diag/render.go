package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Renderer formats diagnostics for a terminal, with the offending source line
// and a caret under the reported column.
type Renderer struct {
	// Color enables ANSI colors. See ColorFor.
	Color bool
	// Context is the number of source lines shown above the reported line.
	Context int
}

// ColorFor reports whether colored output suits w: it must be a terminal and
// NO_COLOR must be unset.
func ColorFor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Render writes every diagnostic in ds to w.
func (r *Renderer) Render(w io.Writer, filename string, src []byte, ds []Diagnostic) {
	lines := strings.Split(string(src), "\n")
	for _, d := range ds {
		r.renderOne(w, filename, lines, d)
	}
}

func (r *Renderer) renderOne(w io.Writer, filename string, lines []string, d Diagnostic) {
	sev := r.sprint(color.FgYellow, "warning")
	if d.Severity == Error {
		sev = r.sprint(color.FgRed, "error")
	}
	fmt.Fprintf(w, "%s %s: %s\n", sev, r.sprint(color.Bold, d.Code), d.Message)

	if d.Pos.Line == 0 {
		return
	}
	fmt.Fprintf(w, "  %s\n", r.sprint(color.FgCyan, fmt.Sprintf("%s:%d:%d", filename, d.Pos.Line, d.Pos.Column)))

	first := d.Pos.Line - r.Context
	if first < 1 {
		first = 1
	}
	for n := first; n <= d.Pos.Line && n <= len(lines); n++ {
		text := strings.TrimRight(lines[n-1], "\r")
		if n == d.Pos.Line {
			fmt.Fprintf(w, "%s%4d %s %s\n", r.sprint(color.FgRed, "→ "), n, r.sprint(color.FgHiBlack, "│"), text)
			if d.Pos.Column > 0 {
				fmt.Fprintf(w, "       %s %s%s\n", r.sprint(color.FgHiBlack, "│"), strings.Repeat(" ", d.Pos.Column-1), r.sprint(color.FgRed, "^"))
			}
			continue
		}
		fmt.Fprintf(w, "  %4d %s %s\n", n, r.sprint(color.FgHiBlack, "│"), text)
	}
	if d.Hint != "" {
		fmt.Fprintf(w, "  %s %s\n", r.sprint(color.FgCyan, "Hint:"), d.Hint)
	}
}

func (r *Renderer) sprint(attr color.Attribute, s string) string {
	if !r.Color {
		return s
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}
