package chart

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/exodash/internal/planet"
	"github.com/verte-zerg/exodash/internal/stats"
)

// DefaultBins is the histogram bin count used when none is configured.
const DefaultBins = 20

// Histogram bins a numeric attribute. It writes no filters.
type Histogram struct {
	title string
	attr  planet.Attribute
	state State
	bins  int

	records []planet.Record
	result  []stats.Bin
}

// NewHistogram returns an initialized histogram over a numeric attribute.
func NewHistogram(title string, attr planet.Attribute, bins int) *Histogram {
	if !planet.IsNumeric(attr) {
		panic(fmt.Sprintf("chart: histogram attribute %q is not numeric", attr))
	}
	if bins < 1 {
		bins = DefaultBins
	}
	return &Histogram{title: title, attr: attr, bins: bins, state: Initialized}
}

func (h *Histogram) Title() string                  { return h.title }
func (h *Histogram) Attributes() []planet.Attribute { return nil }
func (h *Histogram) State() State                   { return h.state }

// Bins returns the current bin count.
func (h *Histogram) Bins() int { return h.bins }

// Result returns the bins from the last refresh.
func (h *Histogram) Result() []stats.Bin { return h.result }

func (h *Histogram) Refresh(records []planet.Record) {
	h.records = records
	h.result = stats.BinByRange(records, h.attr, h.bins)
	h.state = Rendered
}

// SetBins changes the bin count and re-bins the last records seen.
// It panics when n < 1.
func (h *Histogram) SetBins(n int) {
	if n < 1 {
		panic("chart: histogram needs at least one bin")
	}
	h.bins = n
	if h.state == Rendered {
		h.Refresh(h.records)
	}
}

func (h *Histogram) View(width, height int) string {
	lines := []string{header(h.title, fmt.Sprintf("%d bins, -/= to change", h.bins))}
	if len(h.result) == 0 {
		return joinLines(append(lines, mutedStyle.Render("No records.")))
	}
	labels := make([]string, len(h.result))
	maxCount := 0
	for i, b := range h.result {
		labels[i] = fmt.Sprintf("%.1f-%.1f", b.Lower, b.Upper)
		maxCount = max(maxCount, b.Count)
	}
	labelW := labelWidth(labels)
	barW := max(width-labelW-len(fmt.Sprint(maxCount))-4, 1)
	start, end := window(0, len(h.result), height-1)
	for i := start; i < end; i++ {
		lines = append(lines, barRow(" ", labels[i], labelW, h.result[i].Count, maxCount, barW, lipgloss.NewStyle()))
	}
	return joinLines(lines)
}
