package chart

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/exodash/internal/planet"
	"github.com/verte-zerg/exodash/internal/stats"
)

// Bubble shows one planetary system: orbit against mass, with the host star
// at orbit 0. It is opened on demand and is never registered.
type Bubble struct {
	system planet.System
	state  State
}

// NewBubble builds the detail view for the system containing p.
func NewBubble(records []planet.Record, p planet.Record) *Bubble {
	return &Bubble{system: planet.BuildSystem(records, p), state: Initialized}
}

func (b *Bubble) Title() string                  { return "System " + b.system.Name }
func (b *Bubble) Attributes() []planet.Attribute { return nil }
func (b *Bubble) State() State                   { return b.state }

// System returns the system being shown.
func (b *Bubble) System() planet.System { return b.system }

// Refresh does not depend on the filter; the system is fixed at creation.
func (b *Bubble) Refresh([]planet.Record) {
	b.state = Rendered
}

func (b *Bubble) View(width, height int) string {
	lines := []string{header(b.Title(), "esc closes")}
	sys := b.system
	maxOrbit := sys.MaxOrbit()
	if maxOrbit == 0 {
		maxOrbit = 1
	}

	var masses []float64
	for _, body := range sys.Bodies {
		masses = append(masses, body.MassEarth)
	}
	xs := stats.Scale{Min: 0, Max: maxOrbit * 1.05}
	ys := stats.NewScale(masses, true)
	points := make([]stats.Point, 0, len(sys.Bodies))
	for _, body := range sys.Bodies {
		layer := 0
		if body.IsStar {
			layer = 1
		}
		mass := body.MassEarth
		if math.IsNaN(mass) || mass <= 0 {
			mass = ys.Min
		}
		points = append(points, stats.Point{X: body.OrbitMax, Y: mass, Layer: layer})
	}
	starStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(planet.StarColor(sys.Planet.StarSpectralClass)))
	paint := func(layer int, s string) string {
		if layer == 1 {
			return starStyle.Render(s)
		}
		return selectedStyle.Render(s)
	}
	plotH := max(min(height-len(sys.Bodies)-4, 8), 3)
	for _, row := range stats.PlotPoints(points, xs, ys, stats.PlotWidthFor(width), plotH, 2, paint) {
		lines = append(lines, fmt.Sprintf("%*s │ %s", stats.AxisWidth()-3, "", row))
	}

	rows := make([][]string, 0, len(sys.Bodies))
	for _, body := range sys.Bodies {
		name := body.Name
		if body.Name == sys.Planet.PlanetName {
			name = "* " + name
		}
		rows = append(rows, []string{
			name, body.Type, number(body.OrbitMax), number(body.RadiusEarth), number(body.MassEarth),
		})
	}
	lines = append(lines, stats.FormatTable([]string{"Body", "Type", "Orbit [AU]", "Radius", "Mass"}, rows, map[int]bool{2: true, 3: true, 4: true})...)
	return joinLines(lines)
}

func number(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.3g", v)
}
