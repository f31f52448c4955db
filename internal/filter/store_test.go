package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/exodash/internal/planet"
)

func TestNewStoreInitialShape(t *testing.T) {
	s := NewStore()
	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, planet.AttrPlanetName, entries[0].Attr)
	assert.Equal(t, planet.AttrDiscoveryYear, entries[1].Attr)
	for _, e := range entries {
		assert.False(t, e.Active(), "initial entries must not constrain anything")
	}
	assert.Equal(t, "none", s.String())
}

func TestToggleDiscreteCreatesAndAppends(t *testing.T) {
	s := NewStore()
	s.ToggleDiscrete(planet.AttrSpectralClass, planet.String("A"))
	s.ToggleDiscrete(planet.AttrSpectralClass, planet.String("G"))

	e, ok := s.Get(planet.AttrSpectralClass)
	require.True(t, ok)
	require.Len(t, e.Values, 2)
	assert.Equal(t, "A", e.Values[0].Key())
	assert.Equal(t, "G", e.Values[1].Key())
	assert.True(t, s.Contains(planet.AttrSpectralClass, planet.String("G")))
}

func TestToggleDiscreteRemovesNonLastValue(t *testing.T) {
	s := NewStore()
	s.ToggleDiscrete(planet.AttrSpectralClass, planet.String("A"))
	s.ToggleDiscrete(planet.AttrSpectralClass, planet.String("G"))
	s.ToggleDiscrete(planet.AttrSpectralClass, planet.String("A"))

	e, ok := s.Get(planet.AttrSpectralClass)
	require.True(t, ok)
	require.Len(t, e.Values, 1)
	assert.Equal(t, "G", e.Values[0].Key())
}

func TestToggleDiscreteEmptySetCollapses(t *testing.T) {
	s := NewStore()
	s.ToggleDiscrete(planet.AttrHabitable, planet.Bool(true))
	s.ToggleDiscrete(planet.AttrHabitable, planet.Bool(true))

	_, ok := s.Get(planet.AttrHabitable)
	assert.False(t, ok, "removing the last value must delete the entry")
}

func TestToggleIsIdempotentPair(t *testing.T) {
	s := NewStore()
	s.ToggleDiscrete(planet.AttrDiscoveryMethod, planet.String("Transit"))
	before := s.Snapshot()

	s.ToggleDiscrete(planet.AttrDiscoveryMethod, planet.String("Imaging"))
	s.ToggleDiscrete(planet.AttrDiscoveryMethod, planet.String("Imaging"))

	assert.Equal(t, before, s.Snapshot())
}

func TestReplaceRangeOverwritesInPlace(t *testing.T) {
	s := NewStore()
	s.ReplaceRange(planet.AttrDiscoveryYear, 2000, 2010)
	s.ReplaceRange(planet.AttrDiscoveryYear, 2001, 2005)

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, planet.AttrDiscoveryYear, entries[1].Attr)
	require.True(t, entries[1].IsRange())
	assert.Equal(t, Range{Lo: 2001, Hi: 2005}, *entries[1].Range)
	assert.Equal(t, "disc_year=2001..2005", s.String())
}

func TestReplaceDiscreteEmptyDeletes(t *testing.T) {
	s := NewStore()
	s.ReplaceDiscrete(planet.AttrPlanetName, []planet.Value{planet.String("a"), planet.String("a"), planet.String("b")})
	e, ok := s.Get(planet.AttrPlanetName)
	require.True(t, ok)
	assert.Len(t, e.Values, 2)

	s.ReplaceDiscrete(planet.AttrPlanetName, nil)
	_, ok = s.Get(planet.AttrPlanetName)
	assert.False(t, ok)
}

func TestClearRestoresInitialShape(t *testing.T) {
	s := NewStore()
	s.ToggleDiscrete(planet.AttrSpectralClass, planet.String("M"))
	s.ReplaceRange(planet.AttrDiscoveryYear, 1995, 2000)
	s.Clear()
	assert.Equal(t, NewStore().Snapshot(), s.Snapshot())
}

func TestRestoreRejectsDuplicates(t *testing.T) {
	s := NewStore()
	err := s.Restore(Snapshot{
		{Attr: planet.AttrSpectralClass, Values: []planet.Value{planet.String("A")}},
		{Attr: planet.AttrSpectralClass, Values: []planet.Value{planet.String("G")}},
	})
	require.Error(t, err)
	require.Error(t, s.Restore(Snapshot{{Attr: "bogus"}}))
}

func TestRestoreRejectsMalformedEntries(t *testing.T) {
	s := NewStore()
	s.ToggleDiscrete(planet.AttrSpectralClass, planet.String("M"))
	before := s.Snapshot()

	err := s.Restore(Snapshot{{
		Attr:   planet.AttrDiscoveryYear,
		Values: []planet.Value{planet.Number(2000)},
		Range:  &Range{Lo: 1995, Hi: 2005},
	}})
	require.Error(t, err)

	err = s.Restore(Snapshot{{
		Attr:   planet.AttrSpectralClass,
		Values: []planet.Value{planet.String("A"), planet.String("G"), planet.String("A")},
	}})
	require.Error(t, err)

	assert.Equal(t, before, s.Snapshot())
}

func TestUnknownAttributePanics(t *testing.T) {
	s := NewStore()
	assert.Panics(t, func() {
		s.ToggleDiscrete("bogus", planet.String("x"))
	})
}

func TestEntriesAreCopies(t *testing.T) {
	s := NewStore()
	s.ToggleDiscrete(planet.AttrSpectralClass, planet.String("A"))
	entries := s.Entries()
	entries[2].Values[0] = planet.String("Z")
	assert.True(t, s.Contains(planet.AttrSpectralClass, planet.String("A")))
}
