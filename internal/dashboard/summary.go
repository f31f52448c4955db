package dashboard

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/exodash/internal/chart"
	"github.com/verte-zerg/exodash/internal/model"
	"github.com/verte-zerg/exodash/internal/planet"
	"github.com/verte-zerg/exodash/internal/stats"
)

const summaryBarWidth = 30

// summaryAttrs are the numeric attributes listed in the summary statistics.
var summaryAttrs = []planet.Attribute{
	planet.AttrDistanceParsecs,
	planet.AttrRadiusEarth,
	planet.AttrMassEarth,
	planet.AttrOrbitMax,
	planet.AttrDiscoveryYear,
}

// ParseFilter parses an "attr=value" argument.
func ParseFilter(arg string) (planet.Attribute, planet.Value, error) {
	name, raw, ok := strings.Cut(arg, "=")
	if !ok {
		return "", planet.Value{}, fmt.Errorf("invalid filter %q (expected attr=value)", arg)
	}
	attr := planet.Attribute(strings.TrimSpace(name))
	v, err := planet.ParseValue(attr, raw)
	if err != nil {
		return "", planet.Value{}, err
	}
	return attr, v, nil
}

// ParseYears parses a "lo:hi" year range.
func ParseYears(arg string) (int, int, error) {
	left, right, ok := strings.Cut(arg, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid year range %q (expected lo:hi)", arg)
	}
	lo, err := strconv.Atoi(strings.TrimSpace(left))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year range %q: %w", arg, err)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(right))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year range %q: %w", arg, err)
	}
	return lo, hi, nil
}

// WriteSummary prints every standard chart once as plain text.
func (d *Dashboard) WriteSummary(w io.Writer, cfg model.SummaryConfig) error {
	c := d.charts
	if _, err := fmt.Fprintf(w, "Selected: %s\n", d.Selected()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Filters: %s\n\n", d.filters.String()); err != nil {
		return err
	}
	for _, b := range []*chart.Bar{c.Stars, c.Planets, c.StarType, c.Method} {
		if b == nil {
			continue
		}
		if err := stats.RenderCounts(w, b.Title(), b.Counts(), summaryBarWidth); err != nil {
			return err
		}
	}
	if c.Livability != nil {
		if err := writeLivability(w, c.Livability); err != nil {
			return err
		}
	}
	if c.Distance != nil {
		title := fmt.Sprintf("%s (%d bins)", c.Distance.Title(), c.Distance.Bins())
		if err := stats.RenderBins(w, title, c.Distance.Result(), summaryBarWidth); err != nil {
			return err
		}
	}
	if c.Years != nil {
		if err := writeYears(w, c.Years, cfg); err != nil {
			return err
		}
	}
	if err := d.writeStats(w); err != nil {
		return err
	}
	return d.writeRows(w, cfg.TableRows)
}

func writeLivability(w io.Writer, d *chart.DualBar) error {
	rows := make([][]string, 0, len(d.Groups()))
	for _, g := range d.Groups() {
		rows = append(rows, []string{
			g.Key.Key(),
			strconv.Itoa(g.Split(planet.Bool(true))),
			strconv.Itoa(g.Split(planet.Bool(false))),
		})
	}
	if _, err := fmt.Fprintln(w, d.Title()); err != nil {
		return err
	}
	for _, line := range stats.FormatTable([]string{"Class", "Habitable", "Not habitable"}, rows, map[int]bool{1: true, 2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func writeYears(w io.Writer, l *chart.Line, cfg model.SummaryConfig) error {
	series := l.Series()
	if len(series) == 0 {
		_, err := fmt.Fprintf(w, "%s\nNo records.\n\n", l.Title())
		return err
	}
	values := make([]float64, len(series))
	for i, p := range series {
		values[i] = float64(p.Count)
	}
	first, last := l.Domain()
	title := fmt.Sprintf("%s (%d-%d)", l.Title(), first, last)
	if lo, hi := l.Brush(); lo != hi {
		title = fmt.Sprintf("%s, brush %d..%d", title, lo, hi)
	}
	width := cfg.Width
	if width <= 0 {
		width = stats.PlotWidthFor(stats.TerminalWidth())
	}
	return stats.PlotSeriesWithColor(w, title, []stats.Series{{Name: "discoveries", Values: values}}, width, 0, cfg.Color)
}

func (d *Dashboard) writeStats(w io.Writer) error {
	rows := make([][]string, 0, len(summaryAttrs))
	for _, attr := range summaryAttrs {
		s, err := stats.Summarize(d.records, attr)
		if err != nil {
			return fmt.Errorf("failed to summarize %s: %w", attr, err)
		}
		if s.Count == 0 {
			rows = append(rows, []string{string(attr), "0", "-", "-", "-", "-"})
			continue
		}
		rows = append(rows, []string{
			string(attr),
			strconv.Itoa(s.Count),
			fmt.Sprintf("%.2f", s.Min),
			fmt.Sprintf("%.2f", s.Max),
			fmt.Sprintf("%.2f", s.Mean),
			fmt.Sprintf("%.2f", s.Median),
		})
	}
	if _, err := fmt.Fprintln(w, "Statistics"); err != nil {
		return err
	}
	right := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}
	for _, line := range stats.FormatTable([]string{"Attribute", "Count", "Min", "Max", "Mean", "Median"}, rows, right) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func (d *Dashboard) writeRows(w io.Writer, limit int) error {
	if limit <= 0 {
		return nil
	}
	columns := chart.DefaultColumns
	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Title
	}
	var rows [][]string
	for i := range d.records {
		if len(rows) == limit {
			break
		}
		r := &d.records[i]
		if r.Filtered {
			continue
		}
		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = stats.Truncate(chart.FormatCell(r.Value(col.Attr)), col.Width)
		}
		rows = append(rows, row)
	}
	if _, err := fmt.Fprintf(w, "Planets (first %d)\n", limit); err != nil {
		return err
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No records.")
		return err
	}
	for _, line := range stats.FormatTable(headers, rows, nil) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
