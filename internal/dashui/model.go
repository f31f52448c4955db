// Package dashui provides the Bubble Tea dashboard interface.
package dashui

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/exodash/internal/chart"
	"github.com/verte-zerg/exodash/internal/dashboard"
	"github.com/verte-zerg/exodash/internal/model"
	"github.com/verte-zerg/exodash/internal/planet"
	"github.com/verte-zerg/exodash/internal/stats"
	"github.com/verte-zerg/exodash/internal/store"
)

const (
	tabOverview = iota
	tabPlanets
	tabStars
	tabStarType
	tabMethod
	tabLivability
	tabDistance
	tabYears
	tabSize
	tabTable
)

const maxFilterLines = 2

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	filterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8FBC8F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	cursorRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	modalStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// brushKeys maps a key to the brush edge it moves and the direction.
var brushKeys = map[string]struct {
	edge  chart.Edge
	delta int
}{
	"[": {chart.EdgeLeft, -1},
	"]": {chart.EdgeLeft, 1},
	"{": {chart.EdgeRight, -1},
	"}": {chart.EdgeRight, 1},
	",": {chart.EdgeBottom, -1},
	".": {chart.EdgeBottom, 1},
	"<": {chart.EdgeTop, -1},
	">": {chart.EdgeTop, 1},
}

// Model implements the Bubble Tea dashboard UI.
type Model struct {
	dash  *dashboard.Dashboard
	store *store.Store
	cfg   model.Config

	tabs      []string
	charts    []chart.Chart
	activeTab int
	viewports []viewport.Model

	width  int
	height int

	errMsg string
	status string

	saveMode  bool
	nameInput textinput.Model

	presetMode  bool
	presets     []model.Preset
	presetIndex int

	detail *chart.Bubble
}

// NewModel constructs the dashboard UI. st may be nil, which disables
// presets.
func NewModel(dash *dashboard.Dashboard, st *store.Store, cfg model.Config) *Model {
	c := dash.Charts()
	m := &Model{
		dash:  dash,
		store: st,
		cfg:   cfg,
		tabs: []string{
			"Overview", "Planets", "Stars", "Star Type", "Discovery Method",
			"Livability", "Distance", "Discovery Years", "Planet Size", "Table",
		},
		charts: []chart.Chart{
			nil, c.Planets, c.Stars, c.StarType, c.Method,
			c.Livability, c.Distance, c.Years, c.Size, c.Table,
		},
	}
	m.initNameInput()
	m.initViewports()
	m.renderTabContents()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.saveMode {
			return m.updateSave(msg)
		}
		if msg.String() == "q" {
			return m, tea.Quit
		}
		if m.detail != nil {
			if msg.Type == tea.KeyEsc {
				m.detail = nil
				return m, tea.ClearScreen
			}
			return m, nil
		}
		if m.presetMode {
			return m.updatePresets(msg)
		}
		m.status = ""
		return m.updateDashboard(msg)
	}
	return m, nil
}

func (m *Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if b, ok := brushKeys[key]; ok {
		m.moveBrush(b.edge, b.delta)
		return m, nil
	}
	switch key {
	case "left", "h":
		m.moveTab(-1)
		return m, tea.ClearScreen
	case "right", "l":
		m.moveTab(1)
		return m, tea.ClearScreen
	case "up", "k":
		if c, ok := m.current().(chart.Cursor); ok {
			c.MoveCursor(-1)
			m.renderTabContents()
			return m, nil
		}
	case "down", "j":
		if c, ok := m.current().(chart.Cursor); ok {
			c.MoveCursor(1)
			m.renderTabContents()
			return m, nil
		}
	case "enter", " ":
		m.activate(key)
		return m, nil
	case "o":
		m.openDetail()
		return m, nil
	case "x":
		m.clearBrush()
		return m, nil
	case "=":
		m.changeBins(1)
		return m, nil
	case "-":
		m.changeBins(-1)
		return m, nil
	case "c":
		m.dash.Clear()
		m.status = "Filters cleared"
		m.renderTabContents()
		return m, nil
	case "s":
		return m.startSave()
	case "p":
		m.startPresets()
		return m, nil
	case "g", "home":
		m.viewports[m.activeTab].GotoTop()
		return m, nil
	case "G", "end":
		m.viewports[m.activeTab].GotoBottom()
		return m, nil
	}
	vp := m.viewports[m.activeTab]
	var cmd tea.Cmd
	vp, cmd = vp.Update(msg)
	m.viewports[m.activeTab] = vp
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	switch {
	case m.saveMode:
		return fitLines(m.renderSaveModal(), m.width, m.height)
	case m.presetMode:
		return fitLines(m.renderPresetModal(), m.width, m.height)
	case m.detail != nil:
		return fitLines(m.renderDetail(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.viewports[m.activeTab].View(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) current() chart.Chart {
	return m.charts[m.activeTab]
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initNameInput() {
	input := textinput.New()
	input.Prompt = "Name: "
	input.Placeholder = "habitable-g-stars"
	input.CharLimit = 64
	input.Cursor.SetMode(cursor.CursorBlink)
	m.nameInput = input
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = lipgloss.Height(m.renderHeader())
	footerHeight = 1
	if m.errMsg != "" || m.status != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	promptWidth := lipgloss.Width(m.nameInput.Prompt)
	m.nameInput.Width = maxInt(10, modalInnerWidth(m.width)-promptWidth)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	m.updateLayout()
	m.renderTabContents()
}

// activate handles enter and space: toggle the row under the cursor, commit
// a brush, or open the system of the selected table row.
func (m *Model) activate(key string) {
	c := m.dash.Charts()
	switch m.activeTab {
	case tabYears:
		if key != "enter" {
			return
		}
		lo, hi := c.Years.Brush()
		m.dash.Brush(planet.AttrDiscoveryYear, lo, hi, true)
	case tabSize:
		if key != "enter" {
			return
		}
		names, changed := c.Size.Commit()
		if !changed {
			m.status = "Selection unchanged"
			return
		}
		m.dash.SelectNames(planet.AttrPlanetName, names, true)
	case tabTable:
		m.openDetail()
		return
	default:
		t, ok := m.current().(chart.Toggler)
		if !ok {
			return
		}
		attr, v, ok := t.Selection()
		if !ok {
			return
		}
		m.dash.Toggle(attr, v)
	}
	m.renderTabContents()
}

func (m *Model) moveBrush(edge chart.Edge, delta int) {
	c := m.dash.Charts()
	switch m.activeTab {
	case tabYears:
		if edge != chart.EdgeLeft && edge != chart.EdgeRight {
			return
		}
		lo, hi := c.Years.Nudge(edge, delta)
		m.dash.Brush(planet.AttrDiscoveryYear, lo, hi, false)
	case tabSize:
		c.Size.MoveBrush(edge, delta)
		m.dash.SelectNames(planet.AttrPlanetName, c.Size.Inside(), false)
	default:
		return
	}
	m.renderTabContents()
}

func (m *Model) clearBrush() {
	c := m.dash.Charts()
	switch m.activeTab {
	case tabYears:
		m.dash.Brush(planet.AttrDiscoveryYear, 0, 0, true)
	case tabSize:
		c.Size.ClearBrush()
		if names, changed := c.Size.Commit(); changed {
			m.dash.SelectNames(planet.AttrPlanetName, names, true)
		}
	default:
		return
	}
	m.renderTabContents()
}

func (m *Model) changeBins(delta int) {
	bins := m.dash.Charts().Distance.Bins() + delta
	if err := m.dash.SetBins(bins); err != nil {
		return
	}
	m.status = fmt.Sprintf("Distance bins: %d", bins)
	m.renderTabContents()
}

func (m *Model) openDetail() {
	c := m.dash.Charts()
	var (
		p  planet.Record
		ok bool
	)
	switch m.activeTab {
	case tabTable:
		p, ok = c.Table.Current()
	case tabSize:
		p, ok = c.Size.Nearest()
	default:
		return
	}
	if !ok {
		m.status = "No planet selected"
		return
	}
	m.detail = chart.NewBubble(m.dash.Records(), p)
	m.detail.Refresh(m.dash.Records())
}

func (m *Model) startSave() (tea.Model, tea.Cmd) {
	if m.store == nil {
		m.errMsg = "presets are unavailable"
		return m, nil
	}
	m.saveMode = true
	m.errMsg = ""
	m.nameInput.SetValue("")
	return m, m.nameInput.Focus()
}

func (m *Model) updateSave(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.saveMode = false
		m.errMsg = ""
		m.nameInput.Blur()
		return m, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			m.errMsg = "preset name is empty"
			return m, nil
		}
		p := model.Preset{
			Name:    name,
			Bins:    m.dash.Charts().Distance.Bins(),
			Filters: m.dash.Filters().Snapshot(),
		}
		if _, err := m.store.SavePreset(context.Background(), p); err != nil {
			log.Printf("save preset %q: %v", name, err)
			m.errMsg = err.Error()
			return m, nil
		}
		m.saveMode = false
		m.errMsg = ""
		m.nameInput.Blur()
		m.status = fmt.Sprintf("Saved preset %s", name)
		return m, nil
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) startPresets() {
	if m.store == nil {
		m.errMsg = "presets are unavailable"
		return
	}
	presets, err := m.store.ListPresets(context.Background())
	if err != nil {
		log.Printf("list presets: %v", err)
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.presets = presets
	m.presetIndex = 0
	m.presetMode = true
}

func (m *Model) updatePresets(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "p":
		m.presetMode = false
		return m, nil
	case "up", "k":
		m.presetIndex = maxInt(0, m.presetIndex-1)
		return m, nil
	case "down", "j":
		m.presetIndex = minInt(len(m.presets)-1, m.presetIndex+1)
		if m.presetIndex < 0 {
			m.presetIndex = 0
		}
		return m, nil
	case "enter":
		if len(m.presets) == 0 {
			m.presetMode = false
			return m, nil
		}
		p := m.presets[m.presetIndex]
		if err := m.applyPreset(p); err != nil {
			log.Printf("apply preset %q: %v", p.Name, err)
			m.errMsg = err.Error()
			return m, nil
		}
		m.presetMode = false
		m.status = fmt.Sprintf("Loaded preset %s", p.Name)
		m.renderTabContents()
		return m, nil
	case "d":
		if len(m.presets) == 0 {
			return m, nil
		}
		p := m.presets[m.presetIndex]
		if err := m.store.DeletePreset(context.Background(), p.Name); err != nil {
			log.Printf("delete preset %q: %v", p.Name, err)
			m.errMsg = err.Error()
			return m, nil
		}
		m.presets = append(m.presets[:m.presetIndex], m.presets[m.presetIndex+1:]...)
		if m.presetIndex >= len(m.presets) {
			m.presetIndex = maxInt(0, len(m.presets)-1)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) applyPreset(p model.Preset) error {
	if err := m.dash.ApplySnapshot(p.Filters); err != nil {
		return err
	}
	if p.Bins > 0 {
		return m.dash.SetBins(p.Bins)
	}
	return nil
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if m.width > 0 && lipgloss.Width(tabs) > m.width {
		return activeNavStyle.Render(fmt.Sprintf("‹ %s %d/%d ›", m.tabs[m.activeTab], m.activeTab+1, len(m.tabs)))
	}
	return tabs
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	return tabs + "\n" + padLines(m.renderFilterSummary(), m.width)
}

func (m *Model) renderFilterSummary() string {
	summary := fmt.Sprintf("%s selected out of %s  Filters: %s",
		strconv.Itoa(m.selected()), strconv.Itoa(len(m.dash.Records())), m.dash.Filters().String())
	text := []rune(summary)
	runes := buildStyledRunes(text, filterNames(text), headerStyle, filterStyle)
	lines := wrapStyledRunes(runes, m.width)
	if len(lines) > maxFilterLines {
		lines = lines[:maxFilterLines]
	}
	return strings.Join(lines, "\n")
}

func (m *Model) selected() int {
	n, _ := m.dash.Counts()
	return n
}

func (m *Model) renderHelp() string {
	help := "Nav: left/right  Scroll: up/down  Clear: c  Save: s  Presets: p  Quit: q"
	switch m.activeTab {
	case tabPlanets, tabStars, tabStarType, tabMethod, tabLivability:
		help = "Nav: left/right  Move: up/down  Toggle: enter/space  Clear: c  Save: s  Presets: p  Quit: q"
	case tabDistance:
		help = "Nav: left/right  Bins: -/=  Clear: c  Save: s  Presets: p  Quit: q"
	case tabYears:
		help = "Nav: left/right  Brush: [ ] { }  Commit: enter  Reset: x  Clear: c  Quit: q"
	case tabSize:
		help = "Nav: left/right  Brush: [ ] { } , . < >  Commit: enter  Reset: x  Open: o  Quit: q"
	case tabTable:
		help = "Nav: left/right  Move: up/down  Open system: enter  Clear: c  Quit: q"
	}
	return headerStyle.Render(help)
}

func (m *Model) renderFooter() string {
	lines := []string{m.renderHelp()}
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(m.errMsg))
	} else if m.status != "" {
		lines = append(lines, statusStyle.Render(m.status))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	_, bodyHeight, _ := m.layoutHeights()
	if m.height <= 0 {
		bodyHeight = 24
	}
	m.viewports[tabOverview].SetContent(m.renderOverview(width))
	for i, c := range m.charts {
		if c == nil {
			continue
		}
		m.viewports[i].SetContent(c.View(width, bodyHeight))
	}
}

func (m *Model) renderOverview(width int) string {
	records := m.dash.Records()
	if len(records) == 0 {
		return "No planets loaded."
	}
	cards := m.renderSummaryCards(width)
	lines := []string{cards, ""}
	lines = append(lines, m.renderStats()...)
	if rows := m.renderFirstRows(); len(rows) > 0 {
		lines = append(lines, "")
		lines = append(lines, rows...)
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

func (m *Model) renderSummaryCards(width int) string {
	records := m.dash.Records()
	selected, total := m.dash.Counts()
	habitable := 0
	systems := map[string]struct{}{}
	methods := map[string]struct{}{}
	for i := range records {
		r := &records[i]
		if r.Filtered {
			continue
		}
		if r.IsHabitable {
			habitable++
		}
		systems[r.SystemName] = struct{}{}
		methods[r.DiscoveryMethod] = struct{}{}
	}
	first, last := m.dash.Charts().Years.Domain()
	cards := []string{
		metricCard("Selected", stats.SelectedLine(selected, total)),
		metricCard("Habitable", strconv.Itoa(habitable)),
		metricCard("Systems", strconv.Itoa(len(systems))),
		metricCard("Methods", strconv.Itoa(len(methods))),
		metricCard("Years", fmt.Sprintf("%d-%d", first, last)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func (m *Model) renderStats() []string {
	attrs := []planet.Attribute{
		planet.AttrDistanceParsecs, planet.AttrRadiusEarth, planet.AttrMassEarth, planet.AttrOrbitMax,
	}
	rows := make([][]string, 0, len(attrs))
	for _, attr := range attrs {
		s, err := stats.Summarize(m.dash.Records(), attr)
		if err != nil {
			log.Printf("summarize %s: %v", attr, err)
			continue
		}
		if s.Count == 0 {
			rows = append(rows, []string{string(attr), "0", "-", "-", "-"})
			continue
		}
		rows = append(rows, []string{
			string(attr),
			strconv.Itoa(s.Count),
			fmt.Sprintf("%.2f", s.Min),
			fmt.Sprintf("%.2f", s.Median),
			fmt.Sprintf("%.2f", s.Max),
		})
	}
	right := map[int]bool{1: true, 2: true, 3: true, 4: true}
	lines := stats.FormatTable([]string{"Attribute", "Count", "Min", "Median", "Max"}, rows, right)
	if len(lines) > 0 {
		lines[0] = cursorRowStyle.Render(lines[0])
	}
	return lines
}

func (m *Model) renderFirstRows() []string {
	if m.cfg.TableRows <= 0 {
		return nil
	}
	records := m.dash.Records()
	var rows [][]string
	for i := range records {
		if len(rows) == m.cfg.TableRows {
			break
		}
		r := &records[i]
		if r.Filtered {
			continue
		}
		rows = append(rows, []string{
			r.PlanetName,
			r.HostName,
			r.StarSpectralClass,
			chart.FormatCell(r.Value(planet.AttrDiscoveryYear)),
			planet.PlanetType(r.MassEarth),
		})
	}
	if len(rows) == 0 {
		return nil
	}
	lines := stats.FormatTable([]string{"Planet", "Host", "Class", "Year", "Type"}, rows, map[int]bool{3: true})
	lines[0] = cursorRowStyle.Render(lines[0])
	return lines
}

func (m *Model) renderSaveModal() string {
	body := []string{
		cardValueStyle.Render("Save Preset"),
		m.nameInput.View(),
		headerStyle.Render(fmt.Sprintf("Filters: %s", m.dash.Filters().String())),
		headerStyle.Render("Enter to save / Esc to cancel"),
	}
	if m.errMsg != "" {
		body = append(body, errorStyle.Render(m.errMsg))
	}
	return m.modal(strings.Join(body, "\n"))
}

func (m *Model) renderPresetModal() string {
	body := []string{cardValueStyle.Render("Presets")}
	if len(m.presets) == 0 {
		body = append(body, headerStyle.Render("No presets saved. Press s to save one."))
	}
	for i, p := range m.presets {
		line := fmt.Sprintf("  %s (%d bins)", p.Name, p.Bins)
		if i == m.presetIndex {
			line = cursorRowStyle.Render("› " + strings.TrimPrefix(line, "  "))
		}
		body = append(body, line)
	}
	body = append(body, headerStyle.Render("Enter to load / d to delete / Esc to close"))
	if m.errMsg != "" {
		body = append(body, errorStyle.Render(m.errMsg))
	}
	return m.modal(strings.Join(body, "\n"))
}

func (m *Model) renderDetail() string {
	inner := modalInnerWidth(m.width)
	height := maxInt(6, m.height-6)
	return m.modal(m.detail.View(inner, height))
}

func (m *Model) modal(content string) string {
	box := modalStyle.Width(modalWidth(m.width)).Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func modalWidth(width int) int {
	return maxInt(40, minInt(width-4, 100))
}

func modalInnerWidth(width int) int {
	w := modalWidth(width)
	w -= 6 // 2 border + 4 padding
	if w < 10 {
		return 10
	}
	return w
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}
