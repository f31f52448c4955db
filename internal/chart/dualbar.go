package chart

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/exodash/internal/planet"
	"github.com/verte-zerg/exodash/internal/stats"
)

// DualBar counts records per value of a primary attribute split by a boolean
// attribute, one bar per split. Selecting a row toggles the split value under
// the cursor.
type DualBar struct {
	title   string
	primary planet.Attribute
	split   planet.Attribute
	keys    []string
	active  Active
	state   State

	groups []stats.SplitCount
	cursor int
}

var splitValues = []planet.Value{planet.Bool(true), planet.Bool(false)}

// NewDualBar returns an initialized dual bar chart. When keys is non-empty
// only those primary values are shown, in that order.
func NewDualBar(title string, primary, split planet.Attribute, keys []string, active Active) *DualBar {
	planet.MustKnow(primary)
	planet.MustKnow(split)
	return &DualBar{title: title, primary: primary, split: split, keys: keys, active: active, state: Initialized}
}

func (d *DualBar) Title() string                  { return d.title }
func (d *DualBar) Attributes() []planet.Attribute { return []planet.Attribute{d.split} }
func (d *DualBar) State() State                   { return d.state }

// Groups returns the split counts from the last refresh.
func (d *DualBar) Groups() []stats.SplitCount { return d.groups }

func (d *DualBar) Refresh(records []planet.Record) {
	groups := stats.CountByTwoCategories(records, d.primary, d.split)
	if len(d.keys) > 0 {
		byKey := make(map[string]stats.SplitCount, len(groups))
		for _, g := range groups {
			byKey[g.Key.Key()] = g
		}
		ordered := make([]stats.SplitCount, 0, len(d.keys))
		for _, k := range d.keys {
			g, ok := byKey[k]
			if !ok {
				g = stats.SplitCount{Key: planet.String(k)}
			}
			ordered = append(ordered, g)
		}
		groups = ordered
	}
	d.groups = groups
	d.cursor = clampCursor(d.cursor, d.rows())
	d.state = Rendered
}

func (d *DualBar) rows() int {
	return len(d.groups) * len(splitValues)
}

func (d *DualBar) MoveCursor(delta int) {
	d.cursor = clampCursor(d.cursor+delta, d.rows())
}

// Selection returns the split value of the row under the cursor.
func (d *DualBar) Selection() (planet.Attribute, planet.Value, bool) {
	if d.rows() == 0 {
		return d.split, planet.Value{}, false
	}
	return d.split, splitValues[d.cursor%len(splitValues)], true
}

func splitLabel(v planet.Value) string {
	if v.Bool {
		return "habitable"
	}
	return "not habitable"
}

func (d *DualBar) View(width, height int) string {
	lines := []string{header(d.title, "enter toggles habitable / not habitable")}
	if d.rows() == 0 {
		return joinLines(append(lines, mutedStyle.Render("No records.")))
	}
	labels := make([]string, 0, d.rows())
	counts := make([]int, 0, d.rows())
	maxCount := 0
	for _, g := range d.groups {
		for _, v := range splitValues {
			labels = append(labels, fmt.Sprintf("%s %s", g.Key.Key(), splitLabel(v)))
			n := g.Split(v)
			counts = append(counts, n)
			maxCount = max(maxCount, n)
		}
	}
	labelW := labelWidth(labels)
	barW := max(width-labelW-len(fmt.Sprint(maxCount))-4, 1)
	start, end := window(d.cursor, len(labels), height-1)
	for i := start; i < end; i++ {
		marker := " "
		if i == d.cursor {
			marker = cursorStyle.Render(cursorMarker)
		}
		style := lipgloss.NewStyle()
		if d.active != nil && d.active.Contains(d.split, splitValues[i%len(splitValues)]) {
			style = activeStyle
		}
		lines = append(lines, barRow(marker, labels[i], labelW, counts[i], maxCount, barW, style))
	}
	return joinLines(lines)
}
