package store

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/exodash/internal/filter"
	"github.com/verte-zerg/exodash/internal/model"
	"github.com/verte-zerg/exodash/internal/planet"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "exodash.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestSaveAndLoadPreset(t *testing.T) {
	st := openTestStore(t)
	st.now = func() time.Time { return time.Unix(100, 0) }
	ctx := context.Background()

	snap := filter.Snapshot{
		{Attr: planet.AttrPlanetName},
		{Attr: planet.AttrDiscoveryYear, Range: &filter.Range{Lo: 2000, Hi: 2010}},
		{Attr: planet.AttrSpectralClass, Values: []planet.Value{planet.String("G"), planet.String("K")}},
		{Attr: planet.AttrHabitable, Values: []planet.Value{planet.Bool(true)}},
		{Attr: planet.AttrPlanetCount, Values: []planet.Value{planet.Number(2), planet.Number(math.NaN())}},
	}
	id, err := st.SavePreset(ctx, model.Preset{Name: " warm ", Bins: 12, Filters: snap})
	if err != nil {
		t.Fatalf("save preset: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected a preset id")
	}

	got, err := st.LoadPreset(ctx, "warm")
	if err != nil {
		t.Fatalf("load preset: %v", err)
	}
	if got.ID != id || got.Name != "warm" || got.Bins != 12 {
		t.Fatalf("unexpected preset: %+v", got)
	}
	if !got.CreatedAt.Equal(time.Unix(100, 0)) {
		t.Fatalf("unexpected created time: %v", got.CreatedAt)
	}
	if len(got.Filters) != len(snap) {
		t.Fatalf("expected %d entries, got %d", len(snap), len(got.Filters))
	}
	if r := got.Filters[1].Range; r == nil || r.Lo != 2000 || r.Hi != 2010 {
		t.Fatalf("range not restored: %+v", got.Filters[1])
	}
	if v := got.Filters[3].Values[0]; v.Kind != planet.KindBool || !v.Bool {
		t.Fatalf("bool value not restored: %+v", v)
	}
	if v := got.Filters[4].Values[1]; !v.IsMissing() {
		t.Fatalf("missing number not restored: %+v", v)
	}

	s := filter.NewStore()
	if err := s.Restore(got.Filters); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !s.Contains(planet.AttrSpectralClass, planet.String("K")) {
		t.Fatalf("restored store lost a value")
	}
}

func TestSavePresetUpserts(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	clock := time.Unix(0, 0)
	st.now = func() time.Time { return clock }

	first, err := st.SavePreset(ctx, model.Preset{Name: "a", Bins: 5})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	clock = clock.Add(time.Hour)
	second, err := st.SavePreset(ctx, model.Preset{Name: "a", Bins: 9})
	if err != nil {
		t.Fatalf("save again: %v", err)
	}
	if first != second {
		t.Fatalf("expected upsert to keep id %d, got %d", first, second)
	}
	got, err := st.LoadPreset(ctx, "a")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Bins != 9 {
		t.Fatalf("expected bins 9, got %d", got.Bins)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Fatalf("expected updated_at to move: %v vs %v", got.UpdatedAt, got.CreatedAt)
	}
}

func TestListAndDeletePresets(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if _, err := st.SavePreset(ctx, model.Preset{Name: name, Bins: 20}); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}
	presets, err := st.ListPresets(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(presets) != 3 || presets[0].Name != "alpha" || presets[2].Name != "zeta" {
		t.Fatalf("unexpected order: %+v", presets)
	}

	if err := st.DeletePreset(ctx, "mid"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := st.DeletePreset(ctx, "mid"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := st.LoadPreset(ctx, "mid"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSavePresetRejectsEmptyName(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.SavePreset(context.Background(), model.Preset{Name: "  "}); err == nil {
		t.Fatalf("expected error for empty name")
	}
}
