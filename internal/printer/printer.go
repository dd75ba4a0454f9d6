// Package printer renders vectors and conversion warnings for the
// command line.
package printer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/funvec/pkg/kinds"
	"github.com/funvibe/funvec/pkg/vec"
)

// maxElements is how many elements a vector printout shows before
// truncating.
const maxElements = 20

// ANSI foreground codes.
const (
	fgRed    = 31
	fgYellow = 33
	fgCyan   = 36
)

// Printer writes human-readable renderings of vectors to a stream.
type Printer struct {
	out   io.Writer
	color bool
}

// New builds a printer for out. Colors turn on only when out is a
// terminal, NO_COLOR is unset and TERM is not dumb.
func New(out io.Writer) *Printer {
	return &Printer{out: out, color: colorEnabled(out)}
}

func colorEnabled(out io.Writer) bool {
	// NO_COLOR convention: https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}

	return os.Getenv("TERM") != "dumb"
}

func (p *Printer) fg(code int, s string) string {
	if !p.color {
		return s
	}
	return fmt.Sprintf("\033[%dm%s\033[39m", code, s)
}

func (p *Printer) dim(s string) string {
	if !p.color {
		return s
	}
	return fmt.Sprintf("\033[2m%s\033[22m", s)
}

// Descriptor prints a type on its own line.
func (p *Printer) Descriptor(d vec.Descriptor) {
	fmt.Fprintln(p.out, p.fg(fgCyan, d.String()))
}

// Vector prints a vector's type and elements.
func (p *Printer) Vector(v vec.Vector) {
	d := v.Descriptor()
	fmt.Fprintf(p.out, "%s (%d elements)\n", p.fg(fgCyan, d.String()), v.Len())
	if v.Len() == 0 {
		return
	}

	elems := p.elements(v)
	shown := elems
	more := 0
	if len(elems) > maxElements {
		shown = elems[:maxElements]
		more = len(elems) - maxElements
	}

	fmt.Fprintf(p.out, "  %s", strings.Join(shown, " "))
	if more > 0 {
		fmt.Fprintf(p.out, " %s", p.dim(fmt.Sprintf("… (%d more)", more)))
	}
	fmt.Fprintln(p.out)
}

// Warnf prints a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	fmt.Fprintf(p.out, "%s %s\n", p.fg(fgYellow, "warning:"), fmt.Sprintf(format, args...))
}

// Errorf prints an error line.
func (p *Printer) Errorf(format string, args ...any) {
	fmt.Fprintf(p.out, "%s %s\n", p.fg(fgRed, "error:"), fmt.Sprintf(format, args...))
}

// LossyPositions warns about positions a conversion could not keep
// exactly. The label names the converted input, e.g. a file path.
func (p *Printer) LossyPositions(label string, positions vec.LossySet) {
	if positions.Empty() {
		return
	}
	noun := "values"
	if len(positions) == 1 {
		noun = "value"
	}
	p.Warnf("%s: %d %s changed in conversion at %s", label, len(positions), noun, formatPositions(positions))
}

// formatPositions renders a position set compactly, collapsing
// consecutive runs: "3-5, 9".
func formatPositions(positions vec.LossySet) string {
	sorted := append([]int(nil), positions...)
	sort.Ints(sorted)

	var parts []string
	for i := 0; i < len(sorted); {
		j := i
		for j+1 < len(sorted) && sorted[j+1] == sorted[j]+1 {
			j++
		}
		if j > i {
			parts = append(parts, fmt.Sprintf("%d-%d", sorted[i], sorted[j]))
		} else {
			parts = append(parts, strconv.Itoa(sorted[i]))
		}
		i = j + 1
	}
	return strings.Join(parts, ", ")
}

func (p *Printer) elements(v vec.Vector) []string {
	switch v := v.(type) {
	case *kinds.Logical:
		values := v.Bools()
		elems := make([]string, len(values))
		for i, b := range values {
			elems[i] = strconv.FormatBool(b)
		}
		return elems
	case *kinds.Integer:
		values := v.Ints()
		elems := make([]string, len(values))
		for i, n := range values {
			elems[i] = strconv.FormatInt(n, 10)
		}
		return elems
	case *kinds.Double:
		values := v.Floats()
		elems := make([]string, len(values))
		for i, f := range values {
			elems[i] = formatFloat(f)
		}
		return elems
	case *kinds.Character:
		values := v.Strings()
		elems := make([]string, len(values))
		for i, s := range values {
			elems[i] = strconv.Quote(s)
		}
		return elems
	case *kinds.Categorical:
		elems := make([]string, v.Len())
		for i := range elems {
			if label, ok := v.Label(i); ok {
				elems[i] = label
			} else {
				elems[i] = p.dim("<none>")
			}
		}
		return elems
	case *kinds.Binned:
		return binnedElements(v)
	case *kinds.Date:
		times := v.Times()
		elems := make([]string, len(times))
		for i, t := range times {
			elems[i] = t.Format("2006-01-02")
		}
		return elems
	case *kinds.Datetime:
		times := v.Times()
		elems := make([]string, len(times))
		for i, t := range times {
			elems[i] = t.Format(time.RFC3339)
		}
		return elems
	case *kinds.List:
		items := v.Items()
		elems := make([]string, len(items))
		for i, item := range items {
			elems[i] = fmt.Sprintf("<%s[%d]>", item.Descriptor(), item.Len())
		}
		return elems
	default:
		elems := make([]string, v.Len())
		for i := range elems {
			elems[i] = "?"
		}
		return elems
	}
}

// binnedElements renders each stored lower edge as its bin's interval.
// The last bin is closed on both ends, matching how out-of-range values
// clamp into it.
func binnedElements(v *kinds.Binned) []string {
	edges := v.Bounds().Edges()
	upper := make(map[float64]float64, len(edges)-1)
	for i := 0; i+1 < len(edges); i++ {
		upper[edges[i]] = edges[i+1]
	}
	last := edges[len(edges)-2]

	values := v.Floats()
	elems := make([]string, len(values))
	for i, lo := range values {
		hi, ok := upper[lo]
		if !ok {
			elems[i] = formatFloat(lo)
			continue
		}
		closing := ")"
		if lo == last {
			closing = "]"
		}
		elems[i] = fmt.Sprintf("[%s,%s%s", formatFloat(lo), formatFloat(hi), closing)
	}
	return elems
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
