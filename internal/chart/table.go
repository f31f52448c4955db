package chart

import (
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/exodash/internal/planet"
)

// Column is one table column bound to a record attribute.
type Column struct {
	Attr  planet.Attribute
	Title string
	Width int
}

// DefaultColumns are the planet table columns.
var DefaultColumns = []Column{
	{planet.AttrPlanetName, "Planet Name", 18},
	{planet.AttrHostName, "Host Name", 14},
	{planet.AttrSpectralClass, "Star Type", 9},
	{planet.AttrDiscoveryFacility, "Discovery Facility", 20},
	{planet.AttrDiscoveryMethod, "Discovery Method", 18},
	{planet.AttrDiscoveryYear, "Disc. Year", 10},
	{planet.AttrDistanceParsecs, "Distance [pc]", 13},
	{planet.AttrStarCount, "# Stars", 7},
	{planet.AttrPlanetCount, "# Planets", 9},
	{planet.AttrStellarRadius, "St. Radius", 10},
	{planet.AttrStellarMass, "St. Mass", 8},
	{planet.AttrRadiusEarth, "Radius", 8},
	{planet.AttrMassEarth, "Mass", 9},
}

// Table lists the selected records. It is read-only.
type Table struct {
	title   string
	columns []Column
	state   State

	model table.Model
	rows  []planet.Record
}

// NewTable returns an initialized table showing columns.
func NewTable(title string, columns []Column) *Table {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		planet.MustKnow(c.Attr)
		cols[i] = table.Column{Title: c.Title, Width: c.Width}
	}
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(1),
	)
	t.SetStyles(tableStyles())
	return &Table{title: title, columns: columns, model: t, state: Initialized}
}

func (t *Table) Title() string                  { return t.title }
func (t *Table) Attributes() []planet.Attribute { return nil }
func (t *Table) State() State                   { return t.state }

// Refresh lists every record that is not filtered out.
func (t *Table) Refresh(records []planet.Record) {
	t.rows = t.rows[:0]
	out := make([]table.Row, 0, len(records))
	for i := range records {
		r := &records[i]
		if r.Filtered {
			continue
		}
		t.rows = append(t.rows, *r)
		row := make(table.Row, len(t.columns))
		for j, c := range t.columns {
			row[j] = FormatCell(r.Value(c.Attr))
		}
		out = append(out, row)
	}
	t.model.SetRows(out)
	if t.model.Cursor() >= len(out) {
		t.model.SetCursor(max(len(out)-1, 0))
	}
	t.state = Rendered
}

// Len returns the number of listed rows.
func (t *Table) Len() int { return len(t.rows) }

func (t *Table) MoveCursor(delta int) {
	if delta < 0 {
		t.model.MoveUp(-delta)
	} else {
		t.model.MoveDown(delta)
	}
}

// Current returns the record under the cursor.
func (t *Table) Current() (planet.Record, bool) {
	c := t.model.Cursor()
	if c < 0 || c >= len(t.rows) {
		return planet.Record{}, false
	}
	return t.rows[c], true
}

func (t *Table) View(width, height int) string {
	lines := []string{header(t.title, fmt.Sprintf("%d rows, enter opens the system", len(t.rows)))}
	if len(t.rows) == 0 {
		return joinLines(append(lines, mutedStyle.Render("No records.")))
	}
	t.model.SetWidth(width)
	t.model.SetHeight(max(height-2, 1))
	return joinLines(append(lines, t.model.View()))
}

// FormatCell renders a value for a table cell. Missing numbers are blank.
func FormatCell(v planet.Value) string {
	switch {
	case v.IsMissing():
		return ""
	case v.Kind == planet.KindNumber && v.Num == math.Trunc(v.Num):
		return strconv.FormatFloat(v.Num, 'f', 0, 64)
	case v.Kind == planet.KindNumber:
		return strconv.FormatFloat(v.Num, 'f', 2, 64)
	default:
		return v.Key()
	}
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
