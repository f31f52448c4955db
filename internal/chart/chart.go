// Package chart renders the dashboard charts as terminal text and keeps the
// registry that refreshes them after every filter change.
package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/exodash/internal/planet"
	"github.com/verte-zerg/exodash/internal/stats"
)

// State is a chart's lifecycle position. Constructors leave a chart
// Initialized; the first Refresh moves it to Rendered, where it stays.
type State int

const (
	Uninitialized State = iota
	Initialized
	Rendered
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Rendered:
		return "rendered"
	default:
		return "uninitialized"
	}
}

// Chart is one dashboard view over the shared record set.
type Chart interface {
	Title() string
	// Attributes lists the filter attributes the chart writes: none for
	// read-only charts, one or two otherwise.
	Attributes() []planet.Attribute
	State() State
	// Refresh re-aggregates from records. It must not modify them.
	Refresh(records []planet.Record)
	View(width, height int) string
}

// Cursor is implemented by charts with a movable row cursor.
type Cursor interface {
	MoveCursor(delta int)
}

// Toggler is implemented by charts whose cursor row maps to a discrete filter value.
type Toggler interface {
	Cursor
	Selection() (planet.Attribute, planet.Value, bool)
}

// Previewer is implemented by charts that show a range brush before it is
// committed.
type Previewer interface {
	Preview(lo, hi int)
}

// Resetter is implemented by charts holding brush state that a filter
// reset must discard.
type Resetter interface {
	Reset()
}

// Active reports whether a discrete value is part of the current filter.
type Active interface {
	Contains(attr planet.Attribute, v planet.Value) bool
}

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	barStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#4682B4"))
	activeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4682B4"))
	dimmedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	brushStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	referenceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

const (
	maxLabelWidth = 24
	cursorMarker  = "›"
)

// Registration binds a chart to the filter attributes it contributes.
type Registration struct {
	Chart      Chart
	Attributes []planet.Attribute
}

// Registry is the fixed set of live charts.
type Registry struct {
	regs []Registration
}

// NewRegistry builds a registry. Registration order is refresh order.
func NewRegistry(charts ...Chart) *Registry {
	r := &Registry{regs: make([]Registration, 0, len(charts))}
	for _, c := range charts {
		if c.State() == Uninitialized {
			panic(fmt.Sprintf("chart: %q registered before initialization", c.Title()))
		}
		r.regs = append(r.regs, Registration{Chart: c, Attributes: c.Attributes()})
	}
	return r
}

// Refresh hands every chart the same record slice, in registration order.
func (r *Registry) Refresh(records []planet.Record) {
	for _, reg := range r.regs {
		reg.Chart.Refresh(records)
	}
}

// Len returns the number of registered charts.
func (r *Registry) Len() int {
	return len(r.regs)
}

// At returns the i-th registered chart.
func (r *Registry) At(i int) Chart {
	return r.regs[i].Chart
}

// Registrations returns a copy of the registrations.
func (r *Registry) Registrations() []Registration {
	out := make([]Registration, len(r.regs))
	copy(out, r.regs)
	return out
}

// Find returns the first chart that filters on attr.
func (r *Registry) Find(attr planet.Attribute) (Chart, bool) {
	for _, reg := range r.regs {
		for _, a := range reg.Attributes {
			if a == attr {
				return reg.Chart, true
			}
		}
	}
	return nil, false
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

// window returns the [start, end) slice of n rows that fits height while
// keeping cursor visible.
func window(cursor, n, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}

func labelWidth(labels []string) int {
	w := 0
	for _, l := range labels {
		if lw := lipgloss.Width(l); lw > w {
			w = lw
		}
	}
	return min(w, maxLabelWidth)
}

func header(title, note string) string {
	if note == "" {
		return titleStyle.Render(title)
	}
	return titleStyle.Render(title) + "  " + mutedStyle.Render(note)
}

func barRow(marker, label string, labelW int, count, maxCount, barW int, style lipgloss.Style) string {
	label = stats.PadRight(stats.Truncate(label, labelW), labelW)
	bar := stats.Bar(count, maxCount, barW)
	return fmt.Sprintf("%s %s %s %s", marker, style.Render(label), barStyle.Render(bar), mutedStyle.Render(fmt.Sprint(count)))
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
