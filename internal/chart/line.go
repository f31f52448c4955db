package chart

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/exodash/internal/planet"
	"github.com/verte-zerg/exodash/internal/stats"
)

// Edge names one side of a brush.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeBottom
	EdgeTop
)

// Line plots counts per year with a one-dimensional brush. The brush is
// visual state only; the dashboard commits it as a range filter.
type Line struct {
	title string
	attr  planet.Attribute
	state State

	series []stats.YearCount
	lo, hi int
}

// NewLine returns an initialized line chart over a year attribute.
func NewLine(title string, attr planet.Attribute) *Line {
	if !planet.IsNumeric(attr) {
		panic(fmt.Sprintf("chart: line attribute %q is not numeric", attr))
	}
	return &Line{title: title, attr: attr, state: Initialized}
}

func (l *Line) Title() string                  { return l.title }
func (l *Line) Attributes() []planet.Attribute { return []planet.Attribute{l.attr} }
func (l *Line) State() State                   { return l.state }

// Series returns the counts from the last refresh.
func (l *Line) Series() []stats.YearCount { return l.series }

func (l *Line) Refresh(records []planet.Record) {
	l.series = stats.TimeSeriesCount(records, l.attr)
	l.state = Rendered
}

// Brush returns the brushed years. lo == hi means no brush.
func (l *Line) Brush() (int, int) {
	return l.lo, l.hi
}

// Preview moves the visual brush without touching any filter.
func (l *Line) Preview(lo, hi int) {
	if lo > hi {
		lo, hi = hi, lo
	}
	l.lo, l.hi = lo, hi
}

// Reset removes the brush.
func (l *Line) Reset() {
	l.lo, l.hi = 0, 0
}

// Domain returns the first and last year of the series.
func (l *Line) Domain() (int, int) {
	if len(l.series) == 0 {
		return 0, 0
	}
	return l.series[0].Year, l.series[len(l.series)-1].Year
}

// Nudge returns the brush after moving one edge by delta years. An unset
// brush starts from the whole domain. Edges stay inside the domain and
// never cross.
func (l *Line) Nudge(edge Edge, delta int) (int, int) {
	first, last := l.Domain()
	lo, hi := l.lo, l.hi
	if lo == hi {
		lo, hi = first, last
	}
	switch edge {
	case EdgeLeft:
		lo = min(max(lo+delta, first), hi)
	case EdgeRight:
		hi = max(min(hi+delta, last), lo)
	}
	return lo, hi
}

func (l *Line) brushed() bool {
	return l.lo != l.hi
}

func (l *Line) View(width, height int) string {
	note := "[/] move start, {/} move end, enter commits, x clears"
	if l.brushed() {
		note = fmt.Sprintf("brush %d..%d", l.lo, l.hi)
	}
	lines := []string{header(l.title, note)}
	if len(l.series) == 0 {
		return joinLines(append(lines, mutedStyle.Render("No records.")))
	}

	focus := l.series
	if l.brushed() {
		focus = nil
		for _, p := range l.series {
			if p.Year >= l.lo && p.Year <= l.hi {
				focus = append(focus, p)
			}
		}
	}
	plotW := stats.PlotWidthFor(width)
	plotH := max(height-4, 3)
	if len(focus) > 0 {
		values := make([]float64, len(focus))
		for i, p := range focus {
			values[i] = float64(p.Count)
		}
		paint := func(_ int, s string) string { return selectedStyle.Render(s) }
		lines = append(lines, stats.SeriesLines([]stats.Series{{Name: "discoveries", Values: values}}, plotW, plotH, paint)...)
		lines = append(lines, axisRow(fmt.Sprint(focus[0].Year), fmt.Sprint(focus[len(focus)-1].Year), plotW))
	}
	lines = append(lines, l.contextRow(plotW))
	return joinLines(lines)
}

// contextRow draws the whole series as a one-line sparkline with the brushed
// years highlighted.
func (l *Line) contextRow(width int) string {
	n := len(l.series)
	cols := min(n, width)
	values := make([]float64, cols)
	inBrush := make([]bool, cols)
	for i, p := range l.series {
		c := stats.ColumnFor(i, n, cols)
		values[c] = max(values[c], float64(p.Count))
		if l.brushed() && p.Year >= l.lo && p.Year <= l.hi {
			inBrush[c] = true
		}
	}
	spark := []rune(stats.Sparkline(values))
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", stats.AxisWidth()))
	for i, r := range spark {
		if inBrush[i] {
			b.WriteString(brushStyle.Render(string(r)))
		} else {
			b.WriteString(mutedStyle.Render(string(r)))
		}
	}
	return b.String()
}

func axisRow(left, right string, width int) string {
	gap := max(width-len(left)-len(right), 1)
	return mutedStyle.Render(strings.Repeat(" ", stats.AxisWidth()) + left + strings.Repeat(" ", gap) + right)
}
