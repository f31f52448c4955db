package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// Series represents a named data series for plotting.
type Series struct {
	Name   string
	Values []float64
}

// Painter decorates the braille run drawn for layer (or series) idx.
type Painter func(idx int, s string) string

type lineStyle struct {
	name   string
	period int
	on     int
}

type ansiColor struct {
	name string
	code string
}

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	axisLabelWidth      = 6
	axisSeparator       = " │ "
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var lineStyles = []lineStyle{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
	{name: "dashdot", period: 8, on: 3},
}

var colorPalette = []ansiColor{
	{name: "cyan", code: "\x1b[36m"},
	{name: "magenta", code: "\x1b[35m"},
	{name: "yellow", code: "\x1b[33m"},
	{name: "green", code: "\x1b[32m"},
	{name: "blue", code: "\x1b[34m"},
}

// PlotSeries renders a multi-line text plot for the provided series.
func PlotSeries(w io.Writer, title string, series []Series, width, height int) error {
	return plotSeries(w, title, series, width, height, false)
}

// PlotSeriesWithColor renders a multi-line text plot with optional forced color output.
func PlotSeriesWithColor(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	return plotSeries(w, title, series, width, height, forceColor)
}

func plotSeries(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	series = filterSeries(series)
	if len(series) == 0 {
		return nil
	}
	if width <= 0 {
		width = autoPlotWidth()
	}
	useColor := shouldUseColor(w, forceColor)
	var paint Painter
	if useColor {
		paint = ansiPainter
	}

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for _, line := range SeriesLines(series, width, height, paint) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(series) > 1 {
		if _, err := fmt.Fprintln(w, renderLegend(series, useColor)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// SeriesLines draws the series on one shared y axis and returns the rows,
// each prefixed with its axis label. A nil paint leaves cells undecorated.
func SeriesLines(series []Series, width, height int, paint Painter) []string {
	series = filterSeries(series)
	if len(series) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		lo, hi := seriesMinMaxSingle(s.Values)
		minVal = math.Min(minVal, lo)
		maxVal = math.Max(maxVal, hi)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		maxVal = minVal + 1
	}

	canvas := NewCanvas(width, height, len(series))
	_, dotsY := canvas.Dots()
	for si, s := range series {
		style := lineStyles[si%len(lineStyles)]
		prevX, prevY := -1, -1
		for i, v := range s.Values {
			px := ColumnFor(i, len(s.Values), width) * 2
			py := valueToRow(v, minVal, maxVal, dotsY)
			if prevX >= 0 {
				drawLine(prevX, prevY, px, py, func(dx, dy int) {
					if style.shouldPlot(dx) {
						canvas.Set(si, dx, dy)
					}
				})
			} else if style.shouldPlot(px) {
				canvas.Set(si, px, py)
			}
			prevX, prevY = px, py
		}
	}

	labels := makeAxisLabels(height, minVal, maxVal)
	rows := canvas.Lines(paint)
	for y := range rows {
		rows[y] = fmt.Sprintf("%*s%s%s", axisLabelWidth, labels[y], axisSeparator, rows[y])
	}
	return rows
}

// ColumnFor maps the index-th of n evenly spaced samples onto width columns.
func ColumnFor(index, n, width int) int {
	if n <= 1 || width <= 1 {
		return 0
	}
	var col int
	if n > width {
		col = index * width / n
	} else {
		col = int(math.Round(float64(index) * float64(width-1) / float64(n-1)))
	}
	if col < 0 {
		return 0
	}
	if col >= width {
		return width - 1
	}
	return col
}

// Scale maps a data domain onto plot positions. A log scale ignores
// non-positive values.
type Scale struct {
	Min float64
	Max float64
	Log bool
}

// NewScale fits a scale to the finite values (positive ones when log is set).
func NewScale(values []float64, log bool) Scale {
	s := Scale{Min: math.Inf(1), Max: math.Inf(-1), Log: log}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || (log && v <= 0) {
			continue
		}
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	if math.IsInf(s.Min, 1) {
		s.Min, s.Max = 1, 10
	}
	if s.Min == s.Max {
		if log {
			s.Min /= 10
			s.Max *= 10
		} else {
			s.Min--
			s.Max++
		}
	}
	return s
}

func (s Scale) project(v float64) float64 {
	if s.Log {
		return math.Log10(v)
	}
	return v
}

// Pos returns the position of v among n slots, or false when v lies outside
// the scale.
func (s Scale) Pos(v float64, n int) (int, bool) {
	if n <= 0 || math.IsNaN(v) || v < s.Min || v > s.Max || (s.Log && v <= 0) {
		return 0, false
	}
	lo, hi := s.project(s.Min), s.project(s.Max)
	pos := int(math.Round((s.project(v) - lo) / (hi - lo) * float64(n-1)))
	return min(max(pos, 0), n-1), true
}

// Value is the inverse of Pos.
func (s Scale) Value(pos, n int) float64 {
	if n <= 1 {
		return s.Min
	}
	lo, hi := s.project(s.Min), s.project(s.Max)
	v := lo + float64(pos)/float64(n-1)*(hi-lo)
	if s.Log {
		return math.Pow(10, v)
	}
	return v
}

// Point is one scatter dot drawn on layer Layer.
type Point struct {
	X     float64
	Y     float64
	Layer int
}

// PlotPoints draws a braille scatter plot of width x height cells. Points
// outside either scale are dropped.
func PlotPoints(points []Point, xs, ys Scale, width, height, layers int, paint Painter) []string {
	canvas := NewCanvas(width, height, layers)
	dotsX, dotsY := canvas.Dots()
	for _, p := range points {
		px, okX := xs.Pos(p.X, dotsX)
		py, okY := ys.Pos(p.Y, dotsY)
		if !okX || !okY {
			continue
		}
		canvas.Set(p.Layer, px, dotsY-1-py)
	}
	return canvas.Lines(paint)
}

// Canvas is a braille drawing surface with stacked layers. Each cell holds
// 2x4 dots; a cell takes the color of the highest layer drawn into it.
type Canvas struct {
	width  int
	height int
	layers [][][]uint8
}

// NewCanvas allocates a canvas of width x height cells.
func NewCanvas(width, height, layers int) *Canvas {
	width = max(width, 1)
	height = max(height, 1)
	layers = max(layers, 1)
	c := &Canvas{width: width, height: height}
	for i := 0; i < layers; i++ {
		c.layers = append(c.layers, makeCells(height, width))
	}
	return c
}

// Dots reports the canvas resolution in dots.
func (c *Canvas) Dots() (int, int) {
	return c.width * 2, c.height * 4
}

// Set turns on the dot at (x, y); y grows downward.
func (c *Canvas) Set(layer, x, y int) {
	if layer < 0 || layer >= len(c.layers) {
		return
	}
	setBrailleDot(c.layers[layer], x, y)
}

// Rect outlines the dot rectangle spanning the two corners.
func (c *Canvas) Rect(layer, x0, y0, x1, y1 int) {
	drawLine(x0, y0, x1, y0, func(x, y int) { c.Set(layer, x, y) })
	drawLine(x1, y0, x1, y1, func(x, y int) { c.Set(layer, x, y) })
	drawLine(x1, y1, x0, y1, func(x, y int) { c.Set(layer, x, y) })
	drawLine(x0, y1, x0, y0, func(x, y int) { c.Set(layer, x, y) })
}

// Lines renders the canvas, grouping runs of equally colored cells for paint.
func (c *Canvas) Lines(paint Painter) []string {
	out := make([]string, c.height)
	for y := 0; y < c.height; y++ {
		var row, run strings.Builder
		runLayer := -1
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if paint != nil && runLayer >= 0 {
				row.WriteString(paint(runLayer, run.String()))
			} else {
				row.WriteString(run.String())
			}
			run.Reset()
		}
		for x := 0; x < c.width; x++ {
			mask, layer := composeCell(c.layers, x, y)
			if layer != runLayer {
				flush()
				runLayer = layer
			}
			run.WriteRune(brailleFromMask(mask))
		}
		flush()
		out[y] = row.String()
	}
	return out
}

func ansiPainter(idx int, s string) string {
	return colorPalette[idx%len(colorPalette)].code + s + colorReset
}

func filterSeries(series []Series) []Series {
	out := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		out = append(out, s)
	}
	return out
}

func autoPlotWidth() int {
	return PlotWidthFor(TerminalWidth())
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	plotWidth := totalWidth - AxisWidth()
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	return plotWidth
}

// AxisWidth is the width of the axis labels and separator before each plot row.
func AxisWidth() int {
	return axisLabelWidth + utf8.RuneCountInString(axisSeparator)
}

// TerminalWidth returns the width of stdout, or 80 when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func makeAxisLabels(height int, minVal, maxVal float64) []string {
	labels := make([]string, height)
	if height <= 0 {
		return labels
	}
	labels[0] = compactNumber(maxVal)
	if height > 2 {
		labels[height/2] = compactNumber((minVal + maxVal) / 2)
	}
	if height > 1 {
		labels[height-1] = compactNumber(minVal)
	}
	return labels
}

func compactNumber(v float64) string {
	switch abs := math.Abs(v); {
	case abs >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case abs >= 1e4:
		return fmt.Sprintf("%.0fk", v/1e3)
	case abs == math.Trunc(abs):
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]uint8, width)
	}
	return cells
}

func composeCell(layers [][][]uint8, x, y int) (uint8, int) {
	var mask uint8
	top := -1
	for i, cells := range layers {
		if y < 0 || y >= len(cells) {
			continue
		}
		if x < 0 || x >= len(cells[y]) {
			continue
		}
		cellMask := cells[y][x]
		if cellMask == 0 {
			continue
		}
		top = i
		mask |= cellMask
	}
	return mask, top
}

func (ls lineStyle) shouldPlot(x int) bool {
	if ls.period <= 1 {
		return true
	}
	if x < 0 {
		x = -x
	}
	return x%ls.period < ls.on
}

func seriesMinMaxSingle(values []float64) (float64, float64) {
	minVal := math.Inf(1)
	maxVal := math.Inf(-1)
	for _, v := range values {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if minVal == math.Inf(1) {
		minVal = 0
	}
	if maxVal == math.Inf(-1) {
		maxVal = 0
	}
	return minVal, maxVal
}

func valueToRow(v, minVal, maxVal float64, height int) int {
	if height <= 1 {
		return 0
	}
	pos := (v - minVal) / (maxVal - minVal)
	row := int(math.Round((1 - pos) * float64(height-1)))
	if row < 0 {
		row = 0
	}
	if row >= height {
		row = height - 1
	}
	return row
}

func renderLegend(series []Series, useColor bool) string {
	parts := make([]string, 0, len(series))
	marker := brailleFromMask(0x01)
	for i, s := range series {
		styleName := lineStyles[i%len(lineStyles)].name
		label := fmt.Sprintf("%c %s (%s)", marker, s.Name, styleName)
		if useColor {
			label = ansiPainter(i, label)
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			err += dx
			y0 += sy
		}
	}
}

func setBrailleDot(cells [][]uint8, x, y int) {
	if y < 0 || x < 0 {
		return
	}
	cellY := y / 4
	cellX := x / 2
	if cellY >= len(cells) {
		return
	}
	if cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDotMask(x%2, y%4)
}

func brailleDotMask(x, y int) uint8 {
	switch {
	case x == 0 && y == 0:
		return 0x01
	case x == 0 && y == 1:
		return 0x02
	case x == 0 && y == 2:
		return 0x04
	case x == 0 && y == 3:
		return 0x40
	case x == 1 && y == 0:
		return 0x08
	case x == 1 && y == 1:
		return 0x10
	case x == 1 && y == 2:
		return 0x20
	case x == 1 && y == 3:
		return 0x80
	default:
		return 0
	}
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
