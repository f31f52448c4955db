package dashui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/exodash/internal/dashboard"
	"github.com/verte-zerg/exodash/internal/filter"
	"github.com/verte-zerg/exodash/internal/model"
	"github.com/verte-zerg/exodash/internal/planet"
	"github.com/verte-zerg/exodash/internal/store"
)

func testRecords() []planet.Record {
	classes := []string{"A", "A", "G", "M", planet.UnknownClass}
	years := []float64{1999, 2003, 2008, 2012, 2020}
	out := make([]planet.Record, len(classes))
	for i := range classes {
		name := string(rune('a' + i))
		out[i] = planet.Record{
			PlanetName:        "planet-" + name,
			HostName:          "host-" + name,
			SystemName:        "host-" + name,
			StarSpectralClass: classes[i],
			DiscoveryYear:     years[i],
			DistanceParsecs:   float64(i * 10),
			RadiusEarth:       float64(i + 1),
			MassEarth:         float64((i + 1) * 3),
			OrbitMax:          float64(i + 1),
			StellarRadius:     1,
			StellarMass:       1,
			StarCount:         1,
			PlanetCount:       1,
			DiscoveryMethod:   "Transit",
		}
	}
	return out
}

func newTestModel(t *testing.T, st *store.Store) *Model {
	t.Helper()
	dash := dashboard.New(testRecords(), 4)
	m := NewModel(dash, st, model.Config{Bins: 4, TableRows: 3})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func selectedCount(m *Model) int {
	n, _ := m.dash.Counts()
	return n
}

func TestViewShowsTabsAndSelection(t *testing.T) {
	m := newTestModel(t, nil)
	out := m.View()
	if !containsAll(out, []string{"Overview", "5 selected out of 5", "Filters: none", "planet-a"}) {
		t.Fatalf("view missing expected segments:\n%s", out)
	}
	if got := len(strings.Split(out, "\n")); got != 40 {
		t.Fatalf("expected 40 lines, got %d", got)
	}
}

func TestMoveTabWraps(t *testing.T) {
	m := newTestModel(t, nil)
	press(m, "h")
	if m.activeTab != tabTable {
		t.Fatalf("expected table tab, got %d", m.activeTab)
	}
	press(m, "l")
	if m.activeTab != tabOverview {
		t.Fatalf("expected overview tab, got %d", m.activeTab)
	}
}

func TestEnterTogglesBarUnderCursor(t *testing.T) {
	m := newTestModel(t, nil)
	m.activeTab = tabStarType
	press(m, "enter")
	if got := selectedCount(m); got != 2 {
		t.Fatalf("expected 2 selected, got %d", got)
	}
	if !strings.Contains(m.View(), "st_spectype=A") {
		t.Fatalf("expected active filter in header")
	}
	press(m, " ")
	if got := selectedCount(m); got != 5 {
		t.Fatalf("expected toggle off to restore 5, got %d", got)
	}
}

func TestYearBrushPreviewThenCommit(t *testing.T) {
	m := newTestModel(t, nil)
	m.activeTab = tabYears
	press(m, "]")
	if lo, hi := m.dash.Charts().Years.Brush(); lo != 2000 || hi != 2020 {
		t.Fatalf("expected brush 2000..2020, got %d..%d", lo, hi)
	}
	if got := selectedCount(m); got != 5 {
		t.Fatalf("preview must not filter, got %d selected", got)
	}
	press(m, "enter")
	if got := selectedCount(m); got != 4 {
		t.Fatalf("expected 4 selected after commit, got %d", got)
	}
	press(m, "x")
	if got := selectedCount(m); got != 5 {
		t.Fatalf("expected reset brush to clear the range, got %d", got)
	}
}

func TestScatterCommitOnlyWhenChanged(t *testing.T) {
	m := newTestModel(t, nil)
	m.activeTab = tabSize
	press(m, "[", "enter")
	if e, ok := m.dash.Filters().Get(planet.AttrPlanetName); !ok || len(e.Values) != 5 {
		t.Fatalf("expected five brushed names after commit")
	}
	press(m, "enter")
	if m.status != "Selection unchanged" {
		t.Fatalf("expected unchanged status, got %q", m.status)
	}
	press(m, "x")
	if _, ok := m.dash.Filters().Get(planet.AttrPlanetName); ok {
		t.Fatalf("expected cleared brush to drop the name filter")
	}
}

func TestScatterClearsRestoredNameFilter(t *testing.T) {
	m := newTestModel(t, nil)
	err := m.dash.ApplySnapshot(filter.Snapshot{{
		Attr:   planet.AttrPlanetName,
		Values: []planet.Value{planet.String("planet-a")},
	}})
	if err != nil {
		t.Fatalf("apply snapshot: %v", err)
	}
	if got := selectedCount(m); got != 1 {
		t.Fatalf("expected 1 selected after restore, got %d", got)
	}
	m.activeTab = tabSize
	press(m, "x")
	if got := selectedCount(m); got != 5 {
		t.Fatalf("expected clearing the brush to drop the restored names, got %d", got)
	}
	if got := m.dash.Filters().String(); got != "none" {
		t.Fatalf("expected no active filters, got %s", got)
	}
}

func TestBinsKeysOnlyTouchHistogram(t *testing.T) {
	m := newTestModel(t, nil)
	m.activeTab = tabDistance
	press(m, "=", "=", "-")
	if got := m.dash.Charts().Distance.Bins(); got != 5 {
		t.Fatalf("expected 5 bins, got %d", got)
	}
	if got := m.dash.Filters().String(); got != "none" {
		t.Fatalf("bins must not change filters, got %s", got)
	}
}

func TestClearResetsFilters(t *testing.T) {
	m := newTestModel(t, nil)
	m.activeTab = tabStarType
	press(m, "enter", "c")
	if got := selectedCount(m); got != 5 {
		t.Fatalf("expected 5 selected after clear, got %d", got)
	}
}

func TestTableOpensSystemDetail(t *testing.T) {
	m := newTestModel(t, nil)
	m.activeTab = tabTable
	press(m, "enter")
	if m.detail == nil {
		t.Fatalf("expected system detail to open")
	}
	if !strings.Contains(m.View(), "System host-a") {
		t.Fatalf("expected system title in view")
	}
	press(m, "esc")
	if m.detail != nil {
		t.Fatalf("expected esc to close the detail")
	}
}

func TestPresetsWithoutStore(t *testing.T) {
	m := newTestModel(t, nil)
	press(m, "s")
	if m.saveMode {
		t.Fatalf("save must be disabled without a store")
	}
	if m.errMsg == "" {
		t.Fatalf("expected an error message")
	}
}

func TestSaveAndLoadPreset(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "exodash.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	m := newTestModel(t, st)
	m.activeTab = tabStarType
	press(m, "enter", "=")

	press(m, "s", "a-stars", "enter")
	if m.saveMode {
		t.Fatalf("expected save modal to close, err=%q", m.errMsg)
	}
	if m.status != "Saved preset a-stars" {
		t.Fatalf("unexpected status %q", m.status)
	}

	press(m, "c")
	m.activeTab = tabDistance
	press(m, "-")
	if got := selectedCount(m); got != 5 {
		t.Fatalf("expected 5 selected after clear, got %d", got)
	}

	press(m, "p")
	if !m.presetMode || len(m.presets) != 1 {
		t.Fatalf("expected one preset listed, got %d", len(m.presets))
	}
	press(m, "enter")
	if got := selectedCount(m); got != 2 {
		t.Fatalf("expected preset to select 2, got %d", got)
	}
	if got := m.dash.Charts().Distance.Bins(); got != 5 {
		t.Fatalf("expected preset bins 5, got %d", got)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
