// Package stats aggregates filtered records and renders text plots and tables.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
)

const sparkChars = " .:-=+*#%@"

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// SelectedLine formats the "N out of Total" count.
func SelectedLine(selected, total int) string {
	return fmt.Sprintf("%d out of %d", selected, total)
}

// RenderCounts prints a count-by-category table with a proportional bar column.
func RenderCounts(w io.Writer, title string, counts []Count, barWidth int) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	if len(counts) == 0 {
		_, err := fmt.Fprintln(w, "No records.")
		return err
	}
	maxCount := 0
	for _, c := range counts {
		if c.Count > maxCount {
			maxCount = c.Count
		}
	}
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Key.Key(), fmt.Sprintf("%d", c.Count), Bar(c.Count, maxCount, barWidth)})
	}
	for _, line := range FormatTable([]string{"Key", "Count", ""}, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderBins prints histogram bins.
func RenderBins(w io.Writer, title string, bins []Bin, barWidth int) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	if len(bins) == 0 {
		_, err := fmt.Fprintln(w, "No records.")
		return err
	}
	maxCount := 0
	for _, b := range bins {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	rows := make([][]string, 0, len(bins))
	for _, b := range bins {
		rows = append(rows, []string{
			fmt.Sprintf("%.1f-%.1f", b.Lower, b.Upper),
			fmt.Sprintf("%d", b.Count),
			Bar(b.Count, maxCount, barWidth),
		})
	}
	for _, line := range FormatTable([]string{"Range", "Count", ""}, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// Bar returns a block bar of up to width cells proportional to n/maxN.
func Bar(n, maxN, width int) string {
	if n <= 0 || maxN <= 0 || width <= 0 {
		return ""
	}
	cells := int(math.Round(float64(n) / float64(maxN) * float64(width)))
	if cells < 1 {
		cells = 1
	}
	return strings.Repeat("█", cells)
}
