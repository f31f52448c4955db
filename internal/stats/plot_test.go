package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Discoveries", []Series{
		{Name: "A", Values: []float64{1, 2, 3, 2, 1}},
		{Name: "B", Values: []float64{1, 1, 2, 3, 4}},
	}, 10, 4)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Discoveries") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, "Legend:") {
		t.Fatalf("expected legend in output")
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1+4+1 {
		t.Fatalf("expected 6 lines of output, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "     4 │ ") {
		t.Fatalf("expected max label on first row, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[4], "     1 │ ") {
		t.Fatalf("expected min label on last row, got %q", lines[4])
	}
}

func TestSeriesLinesSingleSeriesHasNoLegend(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "", []Series{{Name: "count", Values: []float64{3, 1}}}, 10, 2); err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if strings.Contains(buf.String(), "Legend:") {
		t.Fatalf("single series should not print a legend")
	}
}

func TestSeriesLinesPaintsBySeries(t *testing.T) {
	paint := func(idx int, s string) string { return "<" + string(rune('a'+idx)) + ">" + s }
	rows := SeriesLines([]Series{{Name: "x", Values: []float64{0, 1}}}, 10, 2, paint)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if !strings.Contains(rows[0], "<a>") {
		t.Fatalf("expected painted run, got %q", rows[0])
	}
}

func TestColumnFor(t *testing.T) {
	cases := []struct {
		index, n, width, want int
	}{
		{0, 1, 10, 0},
		{0, 5, 5, 0},
		{4, 5, 5, 4},
		{2, 3, 11, 10},
		{1, 3, 11, 5},
		{9, 20, 10, 4},
		{19, 20, 10, 9},
	}
	for _, tc := range cases {
		if got := ColumnFor(tc.index, tc.n, tc.width); got != tc.want {
			t.Fatalf("ColumnFor(%d, %d, %d) = %d, want %d", tc.index, tc.n, tc.width, got, tc.want)
		}
	}
}

func TestScaleLog(t *testing.T) {
	s := NewScale([]float64{-1, 0, 1, 10, 100, math.NaN()}, true)
	if s.Min != 1 || s.Max != 100 {
		t.Fatalf("unexpected domain %v..%v", s.Min, s.Max)
	}
	if pos, ok := s.Pos(10, 21); !ok || pos != 10 {
		t.Fatalf("expected midpoint 10, got %d (%v)", pos, ok)
	}
	if _, ok := s.Pos(0, 21); ok {
		t.Fatalf("zero is outside a log scale")
	}
	if got := s.Value(20, 21); math.Abs(got-100) > 1e-9 {
		t.Fatalf("expected inverse 100, got %v", got)
	}
}

func TestPlotPoints(t *testing.T) {
	xs := Scale{Min: 0, Max: 1}
	ys := Scale{Min: 0, Max: 1}
	rows := PlotPoints([]Point{{X: 0, Y: 1}, {X: 1, Y: 0, Layer: 1}, {X: 2, Y: 0}}, xs, ys, 2, 1, 2, nil)
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	if utf8.RuneCountInString(rows[0]) != 2 {
		t.Fatalf("expected two cells, got %q", rows[0])
	}
	r := []rune(rows[0])
	if r[0] != brailleFromMask(0x01) {
		t.Fatalf("expected top-left dot, got %q", r[0])
	}
	if r[1] != brailleFromMask(0x80) {
		t.Fatalf("expected bottom-right dot, got %q", r[1])
	}
}

func TestCanvasTopLayerWins(t *testing.T) {
	c := NewCanvas(1, 1, 3)
	c.Set(0, 0, 0)
	c.Set(2, 1, 3)
	var got []int
	c.Lines(func(idx int, s string) string {
		got = append(got, idx)
		return s
	})
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected layer 2 to color the cell, got %v", got)
	}
}
