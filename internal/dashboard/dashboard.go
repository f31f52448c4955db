// Package dashboard wires the record set, the filter store and the chart
// registry together. Every committed interaction re-evaluates the filters
// and refreshes all charts before returning.
package dashboard

import (
	"fmt"

	"github.com/verte-zerg/exodash/internal/chart"
	"github.com/verte-zerg/exodash/internal/filter"
	"github.com/verte-zerg/exodash/internal/planet"
	"github.com/verte-zerg/exodash/internal/stats"
)

// Charts gives typed access to the standard charts.
type Charts struct {
	Stars      *chart.Bar
	Planets    *chart.Bar
	StarType   *chart.Bar
	Method     *chart.Bar
	Livability *chart.DualBar
	Distance   *chart.Histogram
	Years      *chart.Line
	Size       *chart.Scatter
	Table      *chart.Table
}

// Dashboard is the cross-filter controller. It is not safe for concurrent use.
type Dashboard struct {
	records  []planet.Record
	filters  *filter.Store
	registry *chart.Registry
	charts   Charts
}

// New builds the standard charts over records and renders them once.
func New(records []planet.Record, bins int) *Dashboard {
	filters := filter.NewStore()
	c := Charts{
		Stars:      chart.NewBar("Star Quantity", planet.AttrStarCount, filters),
		Planets:    chart.NewBar("Planet Quantity", planet.AttrPlanetCount, filters),
		StarType:   chart.NewBar("Star Type Quantity", planet.AttrSpectralClass, filters),
		Method:     chart.NewBar("Discovery Method Quantity", planet.AttrDiscoveryMethod, filters),
		Livability: chart.NewDualBar("Livability", planet.AttrSpectralClass, planet.AttrHabitable, []string{"A", "F", "G", "K", "M"}, filters),
		Distance:   chart.NewHistogram("Earth's Distance", planet.AttrDistanceParsecs, bins),
		Years:      chart.NewLine("Discovery Years", planet.AttrDiscoveryYear),
		Size:       chart.NewScatter("Planet Size", planet.AttrRadiusEarth, planet.AttrMassEarth, planet.SolarSystem()),
		Table:      chart.NewTable("Planets", chart.DefaultColumns),
	}
	registry := chart.NewRegistry(
		c.Stars, c.Planets, c.StarType, c.Method, c.Livability,
		c.Distance, c.Years, c.Size, c.Table,
	)
	d := NewWithRegistry(records, filters, registry)
	d.charts = c
	return d
}

// NewWithRegistry builds a dashboard over an existing store and registry and
// renders it once.
func NewWithRegistry(records []planet.Record, filters *filter.Store, registry *chart.Registry) *Dashboard {
	d := &Dashboard{records: records, filters: filters, registry: registry}
	d.refresh()
	return d
}

// Records returns the shared record slice.
func (d *Dashboard) Records() []planet.Record { return d.records }

// Filters returns the filter store. Callers must mutate it only through the
// dashboard so that charts stay in sync.
func (d *Dashboard) Filters() *filter.Store { return d.filters }

// Registry returns the chart registry.
func (d *Dashboard) Registry() *chart.Registry { return d.registry }

// Charts returns the standard charts built by New.
func (d *Dashboard) Charts() Charts { return d.charts }

// Toggle adds or removes one discrete filter value.
func (d *Dashboard) Toggle(attr planet.Attribute, v planet.Value) {
	d.filters.ToggleDiscrete(attr, v)
	d.refresh()
}

// Brush handles a range brush event. Preview events only move the brush of
// the chart filtering on attr; a final event also commits the range.
// lo == hi clears the range constraint.
func (d *Dashboard) Brush(attr planet.Attribute, lo, hi int, isFinal bool) {
	if lo > hi {
		lo, hi = hi, lo
	}
	if c, ok := d.registry.Find(attr); ok {
		if p, ok := c.(chart.Previewer); ok {
			p.Preview(lo, hi)
		}
	}
	if !isFinal {
		return
	}
	d.filters.ReplaceRange(attr, lo, hi)
	d.refresh()
}

// SelectNames replaces the discrete set of attr with names on a final event.
// An empty selection removes the constraint.
func (d *Dashboard) SelectNames(attr planet.Attribute, names []string, isFinal bool) {
	if !isFinal {
		return
	}
	values := make([]planet.Value, len(names))
	for i, n := range names {
		values[i] = planet.String(n)
	}
	d.filters.ReplaceDiscrete(attr, values)
	d.refresh()
}

// SetBins changes the histogram bin count. It touches neither the filter
// store nor the other charts.
func (d *Dashboard) SetBins(n int) error {
	if n < 1 {
		return fmt.Errorf("bins must be at least 1, got %d", n)
	}
	if d.charts.Distance == nil {
		return fmt.Errorf("dashboard has no histogram")
	}
	d.charts.Distance.SetBins(n)
	return nil
}

// Clear resets the filters to their initial shape, drops chart brushes and
// recomputes everything.
func (d *Dashboard) Clear() {
	d.filters.Clear()
	d.resetBrushes()
	d.refresh()
}

// ApplySnapshot replaces the filters with a saved snapshot. The year brush
// follows the restored range and the scatterplot adopts the restored names.
func (d *Dashboard) ApplySnapshot(snap filter.Snapshot) error {
	if err := d.filters.Restore(snap); err != nil {
		return err
	}
	d.resetBrushes()
	if d.charts.Size != nil {
		if e, ok := d.filters.Get(planet.AttrPlanetName); ok && !e.IsRange() {
			names := make([]string, 0, len(e.Values))
			for _, v := range e.Values {
				names = append(names, v.Key())
			}
			d.charts.Size.SetCommitted(names)
		}
	}
	for _, e := range d.filters.Entries() {
		if !e.IsRange() {
			continue
		}
		if c, ok := d.registry.Find(e.Attr); ok {
			if p, ok := c.(chart.Previewer); ok {
				p.Preview(e.Range.Lo, e.Range.Hi)
			}
		}
	}
	d.refresh()
	return nil
}

// Counts returns the number of selected records and the total.
func (d *Dashboard) Counts() (int, int) {
	return planet.Selected(d.records)
}

// Selected formats the "N out of Total" line.
func (d *Dashboard) Selected() string {
	return stats.SelectedLine(d.Counts())
}

func (d *Dashboard) resetBrushes() {
	for i := 0; i < d.registry.Len(); i++ {
		if r, ok := d.registry.At(i).(chart.Resetter); ok {
			r.Reset()
		}
	}
}

func (d *Dashboard) refresh() {
	filter.Evaluate(d.records, d.filters)
	d.registry.Refresh(d.records)
}
