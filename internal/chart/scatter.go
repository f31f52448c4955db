package chart

import (
	"fmt"
	"math"
	"slices"

	"github.com/verte-zerg/exodash/internal/planet"
	"github.com/verte-zerg/exodash/internal/stats"
)

// brushSteps is the number of brush positions along each axis.
const brushSteps = 20

const (
	layerFiltered = iota
	layerSelected
	layerReference
	layerBrush
	layerCount
)

// Scatter plots two numeric attributes on log scales with a rectangular
// brush. Committing the brush yields the names of the planets inside it.
type Scatter struct {
	title     string
	xAttr     planet.Attribute
	yAttr     planet.Attribute
	nameAttr  planet.Attribute
	reference []planet.Record
	state     State

	records []planet.Record
	xs, ys  stats.Scale

	brushing       bool
	x0, x1, y0, y1 int
	committed      []string
}

// NewScatter returns an initialized scatterplot of yAttr against xAttr.
// reference points are drawn but never selected.
func NewScatter(title string, xAttr, yAttr planet.Attribute, reference []planet.Record) *Scatter {
	for _, attr := range []planet.Attribute{xAttr, yAttr} {
		if !planet.IsNumeric(attr) {
			panic(fmt.Sprintf("chart: scatter attribute %q is not numeric", attr))
		}
	}
	return &Scatter{
		title:     title,
		xAttr:     xAttr,
		yAttr:     yAttr,
		nameAttr:  planet.AttrPlanetName,
		reference: reference,
		state:     Initialized,
	}
}

func (s *Scatter) Title() string                  { return s.title }
func (s *Scatter) Attributes() []planet.Attribute { return []planet.Attribute{s.nameAttr} }
func (s *Scatter) State() State                   { return s.state }

// Refresh keeps a reference to records. Scales cover every record so the
// axes do not move while filtering.
func (s *Scatter) Refresh(records []planet.Record) {
	s.records = records
	xv := make([]float64, 0, len(records)+len(s.reference))
	yv := make([]float64, 0, len(records)+len(s.reference))
	for _, set := range [][]planet.Record{records, s.reference} {
		for i := range set {
			xv = append(xv, set[i].Number(s.xAttr))
			yv = append(yv, set[i].Number(s.yAttr))
		}
	}
	s.xs = stats.NewScale(xv, true)
	s.ys = stats.NewScale(yv, true)
	s.state = Rendered
}

// MoveBrush moves one brush edge by delta steps. An inactive brush starts
// out covering the whole plot.
func (s *Scatter) MoveBrush(edge Edge, delta int) {
	if !s.brushing {
		s.brushing = true
		s.x0, s.x1, s.y0, s.y1 = 0, brushSteps, 0, brushSteps
	}
	switch edge {
	case EdgeLeft:
		s.x0 = min(max(s.x0+delta, 0), s.x1)
	case EdgeRight:
		s.x1 = max(min(s.x1+delta, brushSteps), s.x0)
	case EdgeBottom:
		s.y0 = min(max(s.y0+delta, 0), s.y1)
	case EdgeTop:
		s.y1 = max(min(s.y1+delta, brushSteps), s.y0)
	}
}

// ClearBrush removes the brush.
func (s *Scatter) ClearBrush() {
	s.brushing = false
}

// Reset removes the brush and forgets the last commit.
func (s *Scatter) Reset() {
	s.brushing = false
	s.committed = nil
}

// SetCommitted records names as the last commit.
func (s *Scatter) SetCommitted(names []string) {
	s.committed = slices.Clone(names)
}

// Brushing reports whether a brush is drawn.
func (s *Scatter) Brushing() bool {
	return s.brushing
}

func (s *Scatter) inside(r *planet.Record) bool {
	if !s.brushing {
		return false
	}
	xp, okX := s.xs.Pos(r.Number(s.xAttr), brushSteps+1)
	yp, okY := s.ys.Pos(r.Number(s.yAttr), brushSteps+1)
	return okX && okY && xp >= s.x0 && xp <= s.x1 && yp >= s.y0 && yp <= s.y1
}

// Inside returns the names of the records under the brush, in record order.
func (s *Scatter) Inside() []string {
	var names []string
	for i := range s.records {
		if s.inside(&s.records[i]) {
			names = append(names, s.records[i].PlanetName)
		}
	}
	return names
}

// Commit returns the brushed names and whether they differ from the last
// commit. An unchanged selection is not meant to be re-applied.
func (s *Scatter) Commit() ([]string, bool) {
	names := s.Inside()
	if slices.Equal(names, s.committed) {
		return names, false
	}
	s.committed = names
	return names, true
}

// Nearest returns the unfiltered record closest to the brush centre, used to
// open a system from the scatterplot.
func (s *Scatter) Nearest() (planet.Record, bool) {
	cx, cy := float64(brushSteps)/2, float64(brushSteps)/2
	if s.brushing {
		cx, cy = float64(s.x0+s.x1)/2, float64(s.y0+s.y1)/2
	}
	best, bestDist := -1, math.Inf(1)
	for i := range s.records {
		r := &s.records[i]
		if r.Filtered {
			continue
		}
		xp, okX := s.xs.Pos(r.Number(s.xAttr), brushSteps+1)
		yp, okY := s.ys.Pos(r.Number(s.yAttr), brushSteps+1)
		if !okX || !okY {
			continue
		}
		if d := math.Hypot(float64(xp)-cx, float64(yp)-cy); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return planet.Record{}, false
	}
	return s.records[best], true
}

func (s *Scatter) View(width, height int) string {
	note := "[/] {/} move x edges, ,/. </> move y edges, enter commits, x clears, o opens"
	if s.brushing {
		note = fmt.Sprintf("brush covers %d planets", len(s.Inside()))
	}
	lines := []string{header(s.title, note)}
	if s.state != Rendered {
		return joinLines(lines)
	}

	plotW := stats.PlotWidthFor(width)
	plotH := max(height-3, 3)
	points := make([]stats.Point, 0, len(s.records)+len(s.reference))
	for i := range s.records {
		r := &s.records[i]
		layer := layerSelected
		if r.Filtered {
			layer = layerFiltered
		}
		points = append(points, stats.Point{X: r.Number(s.xAttr), Y: r.Number(s.yAttr), Layer: layer})
	}
	for i := range s.reference {
		r := &s.reference[i]
		points = append(points, stats.Point{X: r.Number(s.xAttr), Y: r.Number(s.yAttr), Layer: layerReference})
	}
	rows := s.plot(points, plotW, plotH)
	for i, row := range rows {
		label := ""
		switch i {
		case 0:
			label = fmt.Sprintf("%.3g", s.ys.Max)
		case len(rows) - 1:
			label = fmt.Sprintf("%.3g", s.ys.Min)
		}
		lines = append(lines, fmt.Sprintf("%*s │ %s", stats.AxisWidth()-3, label, row))
	}
	lines = append(lines, axisRow(fmt.Sprintf("%.3g", s.xs.Min), fmt.Sprintf("%.3g", s.xs.Max), plotW))
	lines = append(lines, mutedStyle.Render(fmt.Sprintf("x: %s (log)  y: %s (log)  red: solar system", s.xAttr, s.yAttr)))
	return joinLines(lines)
}

func (s *Scatter) plot(points []stats.Point, w, h int) []string {
	canvas := stats.NewCanvas(w, h, layerCount)
	dotsX, dotsY := canvas.Dots()
	for _, p := range points {
		px, okX := s.xs.Pos(p.X, dotsX)
		py, okY := s.ys.Pos(p.Y, dotsY)
		if okX && okY {
			canvas.Set(p.Layer, px, dotsY-1-py)
		}
	}
	if !s.brushing {
		return canvas.Lines(paintLayer)
	}
	toDots := func(step, n int) int {
		return int(math.Round(float64(step) / brushSteps * float64(n-1)))
	}
	canvas.Rect(layerBrush,
		toDots(s.x0, dotsX), dotsY-1-toDots(s.y0, dotsY),
		toDots(s.x1, dotsX), dotsY-1-toDots(s.y1, dotsY))
	return canvas.Lines(paintLayer)
}

func paintLayer(layer int, s string) string {
	switch layer {
	case layerFiltered:
		return dimmedStyle.Render(s)
	case layerReference:
		return referenceStyle.Render(s)
	case layerBrush:
		return brushStyle.Render(s)
	default:
		return selectedStyle.Render(s)
	}
}
