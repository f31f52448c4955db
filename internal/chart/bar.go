package chart

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/exodash/internal/planet"
	"github.com/verte-zerg/exodash/internal/stats"
)

// Bar counts records per value of one attribute. The cursor row can be
// toggled as a discrete filter value.
type Bar struct {
	title  string
	attr   planet.Attribute
	active Active
	state  State

	counts    []stats.Count
	cursor    int
	cursorKey string
}

// NewBar returns an initialized bar chart over attr. active may be nil.
func NewBar(title string, attr planet.Attribute, active Active) *Bar {
	planet.MustKnow(attr)
	return &Bar{title: title, attr: attr, active: active, state: Initialized}
}

func (b *Bar) Title() string                  { return b.title }
func (b *Bar) Attributes() []planet.Attribute { return []planet.Attribute{b.attr} }
func (b *Bar) State() State                   { return b.state }

// Counts returns the counts from the last refresh.
func (b *Bar) Counts() []stats.Count { return b.counts }

// Refresh recounts and keeps the cursor on the same key when it still exists.
func (b *Bar) Refresh(records []planet.Record) {
	b.counts = stats.CountByCategory(records, b.attr)
	b.cursor = clampCursor(b.cursor, len(b.counts))
	for i, c := range b.counts {
		if c.Key.Key() == b.cursorKey {
			b.cursor = i
			break
		}
	}
	b.syncCursorKey()
	b.state = Rendered
}

// MoveCursor moves the cursor by delta rows.
func (b *Bar) MoveCursor(delta int) {
	b.cursor = clampCursor(b.cursor+delta, len(b.counts))
	b.syncCursorKey()
}

func (b *Bar) syncCursorKey() {
	if len(b.counts) == 0 {
		b.cursorKey = ""
		return
	}
	b.cursorKey = b.counts[b.cursor].Key.Key()
}

// Selection returns the value under the cursor.
func (b *Bar) Selection() (planet.Attribute, planet.Value, bool) {
	if len(b.counts) == 0 {
		return b.attr, planet.Value{}, false
	}
	return b.attr, b.counts[b.cursor].Key, true
}

func (b *Bar) View(width, height int) string {
	lines := []string{header(b.title, "enter toggles a value")}
	if len(b.counts) == 0 {
		return joinLines(append(lines, mutedStyle.Render("No records.")))
	}
	labels := make([]string, len(b.counts))
	maxCount := 0
	for i, c := range b.counts {
		labels[i] = c.Key.Key()
		maxCount = max(maxCount, c.Count)
	}
	labelW := labelWidth(labels)
	barW := max(width-labelW-len(fmt.Sprint(maxCount))-4, 1)
	start, end := window(b.cursor, len(b.counts), height-1)
	for i := start; i < end; i++ {
		c := b.counts[i]
		marker := " "
		if i == b.cursor {
			marker = cursorStyle.Render(cursorMarker)
		}
		style := lipgloss.NewStyle()
		if b.active != nil && b.active.Contains(b.attr, c.Key) {
			style = activeStyle
		}
		lines = append(lines, barRow(marker, labels[i], labelW, c.Count, maxCount, barW, style))
	}
	return joinLines(lines)
}
