// Package main provides the CLI entrypoint for exodash.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/exodash/internal/chart"
	"github.com/verte-zerg/exodash/internal/config"
	"github.com/verte-zerg/exodash/internal/dashboard"
	"github.com/verte-zerg/exodash/internal/dashui"
	"github.com/verte-zerg/exodash/internal/dataset"
	"github.com/verte-zerg/exodash/internal/model"
	"github.com/verte-zerg/exodash/internal/planet"
	"github.com/verte-zerg/exodash/internal/stats"
	"github.com/verte-zerg/exodash/internal/store"
)

const (
	defaultData      = "exoplanets.csv"
	defaultBins      = chart.DefaultBins
	defaultTableRows = 10
)

var (
	dashData   string
	dashBins   int
	dashPreset string
	dashLog    string

	summaryFilters   []string
	summaryYears     string
	summaryBins      int
	summaryTableRows int
	summaryWidth     int
	summaryColor     bool
	summaryPreset    string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "exodash",
		Short:         "Cross-filtering exoplanet dashboard",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDashboardCmd,
	}

	rootCmd.PersistentFlags().StringVar(&dashData, "data", defaultData, "dataset path (.csv or .xlsx)")
	rootCmd.Flags().IntVar(&dashBins, "bins", defaultBins, "distance histogram bins")
	rootCmd.Flags().StringVar(&dashPreset, "preset", "", "saved filter preset to apply on start")
	rootCmd.Flags().StringVar(&dashLog, "log", "", "debug log file")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSummaryCmd())
	rootCmd.AddCommand(newPresetsCmd())

	return rootCmd
}

func loadFileConfig() (config.DashboardConfig, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return config.DashboardConfig{}, err
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.DashboardConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := fileCfg.Dashboard
	config.ApplyEnv(&cfg)
	return cfg, nil
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "data", &dashData, fileCfg.Data)
	applyIntConfig(cmd, "bins", &dashBins, fileCfg.Bins)
	applyStringConfig(cmd, "log", &dashLog, fileCfg.Log)

	tableRows := defaultTableRows
	if fileCfg.TableRows != nil {
		tableRows = *fileCfg.TableRows
	}
	cfg := model.Config{
		DataPath:  dashData,
		Bins:      dashBins,
		TableRows: tableRows,
		LogPath:   dashLog,
		Preset:    dashPreset,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	if cfg.LogPath != "" {
		f, err := tea.LogToFile(cfg.LogPath, "exodash")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				logErrf("failed to close log file: %v\n", cerr)
			}
		}()
	}

	records, err := dataset.Load(cfg.DataPath)
	if err != nil {
		return datasetLoadError(cfg.DataPath, err)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	dash := dashboard.New(records, cfg.Bins)
	if cfg.Preset != "" {
		if err := applyPreset(context.Background(), st, dash, cfg.Preset); err != nil {
			return err
		}
	}

	ui := dashui.NewModel(dash, st, cfg)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func applyPreset(ctx context.Context, st *store.Store, dash *dashboard.Dashboard, name string) error {
	p, err := st.LoadPreset(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to load preset %q: %w", name, err)
	}
	if err := dash.ApplySnapshot(p.Filters); err != nil {
		return fmt.Errorf("failed to apply preset %q: %w", name, err)
	}
	if p.Bins > 0 {
		if err := dash.SetBins(p.Bins); err != nil {
			return fmt.Errorf("failed to apply preset %q: %w", name, err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print every chart once",
		Args:  cobra.NoArgs,
		RunE:  runSummaryCmd,
	}
	cmd.Flags().StringArrayVar(&summaryFilters, "filter", nil, "toggle a filter value (attr=value, repeatable)")
	cmd.Flags().StringVar(&summaryYears, "years", "", "discovery year range (lo:hi)")
	cmd.Flags().IntVar(&summaryBins, "bins", defaultBins, "distance histogram bins")
	cmd.Flags().IntVar(&summaryTableRows, "rows", defaultTableRows, "planet rows to print (0 to skip)")
	cmd.Flags().IntVar(&summaryWidth, "width", 0, "plot width (default: terminal width)")
	cmd.Flags().BoolVar(&summaryColor, "color", false, "force colored plots")
	cmd.Flags().StringVar(&summaryPreset, "preset", "", "saved filter preset to apply first")
	return cmd
}

func runSummaryCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "data", &dashData, fileCfg.Data)
	applyIntConfig(cmd, "bins", &summaryBins, fileCfg.Bins)
	applyIntConfig(cmd, "rows", &summaryTableRows, fileCfg.TableRows)
	applyBoolConfig(cmd, "color", &summaryColor, fileCfg.Color)

	cfg := model.SummaryConfig{
		Filters:   summaryFilters,
		Years:     summaryYears,
		Bins:      summaryBins,
		TableRows: summaryTableRows,
		Width:     summaryWidth,
		Color:     summaryColor,
	}
	if cfg.Bins < 1 {
		return fmt.Errorf("--bins must be >= 1")
	}
	if cfg.TableRows < 0 {
		return fmt.Errorf("--rows must be >= 0")
	}

	type toggle struct {
		attr  planet.Attribute
		value planet.Value
	}
	toggles := make([]toggle, 0, len(cfg.Filters))
	for _, arg := range cfg.Filters {
		attr, v, err := dashboard.ParseFilter(arg)
		if err != nil {
			return fmt.Errorf("invalid --filter: %w", err)
		}
		toggles = append(toggles, toggle{attr: attr, value: v})
	}

	records, err := dataset.Load(dashData)
	if err != nil {
		return datasetLoadError(dashData, err)
	}
	dash := dashboard.New(records, cfg.Bins)

	if summaryPreset != "" {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		err = applyPreset(cmd.Context(), st, dash, summaryPreset)
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
		if err != nil {
			return err
		}
	}
	for _, t := range toggles {
		dash.Toggle(t.attr, t.value)
	}
	if cfg.Years != "" {
		lo, hi, err := dashboard.ParseYears(cfg.Years)
		if err != nil {
			return fmt.Errorf("invalid --years: %w", err)
		}
		dash.Brush(planet.AttrDiscoveryYear, lo, hi, true)
	}

	if cfg.Width <= 0 {
		cfg.Width = stats.PlotWidthFor(stats.TerminalWidth())
	}
	return dash.WriteSummary(cmd.OutOrStdout(), cfg)
}

func newPresetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List saved filter presets",
		Args:  cobra.NoArgs,
		RunE:  runPresetsCmd,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a saved filter preset",
		Args:  cobra.ExactArgs(1),
		RunE:  runPresetsDeleteCmd,
	})
	return cmd
}

func runPresetsCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	presets, err := st.ListPresets(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list presets: %w", err)
	}
	if len(presets) == 0 {
		logErrln("No presets saved. Press s in the dashboard to save one.")
		return nil
	}
	rows := make([][]string, 0, len(presets))
	for _, p := range presets {
		rows = append(rows, []string{
			p.Name,
			fmt.Sprintf("%d", p.Bins),
			presetFilters(p),
			p.UpdatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	for _, line := range stats.FormatTable([]string{"Name", "Bins", "Filters", "Updated"}, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func runPresetsDeleteCmd(cmd *cobra.Command, args []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	if err := st.DeletePreset(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("preset %q does not exist", args[0])
		}
		return fmt.Errorf("failed to delete preset: %w", err)
	}
	logErrf("Deleted preset %s\n", args[0])
	return nil
}

func presetFilters(p model.Preset) string {
	parts := make([]string, 0, len(p.Filters))
	for _, e := range p.Filters {
		if e.Active() {
			parts = append(parts, e.String())
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "  ")
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# exodash configuration
# Uncomment a value to enable it. CLI flags override config values.
# EXODASH_DATA and EXODASH_LOG (also read from ./.env) override the file.

[dashboard]
# data = %q    # Dataset path (.csv or .xlsx)
# bins = %d              # Distance histogram bins
# table-rows = %d        # Planet rows printed by summary
# color = false          # Force colored summary plots
# log = ""               # Debug log file for the dashboard
`,
		defaultData,
		defaultBins,
		defaultTableRows,
	)
}

func validateConfig(cfg model.Config) error {
	if strings.TrimSpace(cfg.DataPath) == "" {
		return fmt.Errorf("--data must not be empty")
	}
	if cfg.Bins < 1 {
		return fmt.Errorf("--bins must be >= 1")
	}
	if cfg.TableRows < 0 {
		return fmt.Errorf("table-rows must be >= 0")
	}
	return nil
}

func datasetLoadError(path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load dataset: %v", err),
		fmt.Sprintf("expected dataset at: %s", path),
		"Set it with --data, EXODASH_DATA or the data key in: exodash config",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
