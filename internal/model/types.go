// Package model defines shared data structures.
package model

import (
	"time"

	"github.com/verte-zerg/exodash/internal/filter"
)

// Config defines dashboard settings.
type Config struct {
	DataPath  string
	Bins      int
	TableRows int
	LogPath   string
	Preset    string
}

// SummaryConfig defines filters and options for the summary output.
type SummaryConfig struct {
	Filters   []string
	Years     string
	Bins      int
	TableRows int
	Width     int
	Color     bool
}

// Preset is a named filter state saved on request.
type Preset struct {
	ID        int64
	Name      string
	Bins      int
	Filters   filter.Snapshot
	CreatedAt time.Time
	UpdatedAt time.Time
}
