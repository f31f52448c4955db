package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/exodash/internal/planet"
)

func fixture() []planet.Record {
	classes := []string{"A", "A", "G", "M", planet.UnknownClass}
	years := []float64{1999, 2005, 2010, 2015, math.NaN()}
	out := make([]planet.Record, len(classes))
	for i := range classes {
		out[i] = planet.Record{
			PlanetName:        string(rune('a' + i)),
			StarSpectralClass: classes[i],
			DiscoveryYear:     years[i],
			IsHabitable:       i%2 == 0,
		}
	}
	return out
}

func flags(records []planet.Record) []bool {
	out := make([]bool, len(records))
	for i, r := range records {
		out[i] = r.Filtered
	}
	return out
}

func TestEvaluateNoFilters(t *testing.T) {
	records := fixture()
	Evaluate(records, NewStore())
	selected, total := planet.Selected(records)
	assert.Equal(t, 5, selected)
	assert.Equal(t, 5, total)
}

func TestEvaluateDiscrete(t *testing.T) {
	records := fixture()
	s := NewStore()
	s.ToggleDiscrete(planet.AttrSpectralClass, planet.String("A"))
	Evaluate(records, s)

	assert.Equal(t, []bool{false, false, true, true, true}, flags(records))
	selected, total := planet.Selected(records)
	assert.Equal(t, 2, selected)
	assert.Equal(t, 5, total)
}

func TestEvaluateRangeSentinelResets(t *testing.T) {
	records := fixture()
	s := NewStore()
	s.ReplaceRange(planet.AttrDiscoveryYear, 2000, 2010)
	Evaluate(records, s)
	selected, _ := planet.Selected(records)
	assert.Equal(t, 2, selected)

	s.ReplaceRange(planet.AttrDiscoveryYear, 2000, 2000)
	Evaluate(records, s)
	selected, _ = planet.Selected(records)
	assert.Equal(t, 5, selected, "lo == hi must not constrain")
}

func TestEvaluateMissingValueFailsActiveRange(t *testing.T) {
	records := fixture()
	s := NewStore()
	s.ReplaceRange(planet.AttrDiscoveryYear, 1900, 2100)
	Evaluate(records, s)
	assert.True(t, records[4].Filtered)
	assert.False(t, records[0].Filtered)
}

func TestEvaluateRecomputesFromScratch(t *testing.T) {
	records := fixture()
	for i := range records {
		records[i].Filtered = true
	}
	Evaluate(records, NewStore())
	for _, r := range records {
		assert.False(t, r.Filtered)
	}
}

func TestEvaluateAfterCollapse(t *testing.T) {
	records := fixture()
	s := NewStore()
	s.ToggleDiscrete(planet.AttrSpectralClass, planet.String("G"))
	s.ToggleDiscrete(planet.AttrSpectralClass, planet.String("G"))
	Evaluate(records, s)
	selected, _ := planet.Selected(records)
	assert.Equal(t, 5, selected)
}

func TestEvaluateIsOrderIndependent(t *testing.T) {
	steps := []func(*Store){
		func(s *Store) { s.ToggleDiscrete(planet.AttrSpectralClass, planet.String("A")) },
		func(s *Store) { s.ToggleDiscrete(planet.AttrSpectralClass, planet.String("G")) },
		func(s *Store) { s.ReplaceRange(planet.AttrDiscoveryYear, 2000, 2012) },
		func(s *Store) { s.ToggleDiscrete(planet.AttrHabitable, planet.Bool(true)) },
	}
	perms := [][]int{{0, 1, 2, 3}, {3, 2, 1, 0}, {2, 0, 3, 1}, {1, 3, 0, 2}}

	var want []bool
	for _, perm := range perms {
		s := &Store{}
		for _, i := range perm {
			steps[i](s)
		}
		records := fixture()
		Evaluate(records, s)
		got := flags(records)
		if want == nil {
			want = got
			continue
		}
		require.Equal(t, want, got, "order %v changed the result", perm)
	}
	assert.Equal(t, []bool{true, true, false, true, true}, want)
}

func TestEvaluateBoolAndNumberKinds(t *testing.T) {
	records := []planet.Record{
		{PlanetCount: 1, IsHabitable: true},
		{PlanetCount: 2},
		{PlanetCount: math.NaN()},
	}
	s := NewStore()
	s.ToggleDiscrete(planet.AttrPlanetCount, planet.Number(2))
	Evaluate(records, s)
	assert.Equal(t, []bool{true, false, true}, flags(records))

	s.Clear()
	s.ToggleDiscrete(planet.AttrHabitable, planet.String("true"))
	Evaluate(records, s)
	assert.Equal(t, []bool{true, true, true}, flags(records), "string true must not match bool true")
}
