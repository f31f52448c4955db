package dataset

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/exodash/internal/planet"
)

const sample = `# exported table
pl_name,hostname,sys_name,pl_orbsmax,pl_rade,pl_bmasse,st_spectype,sy_dist,disc_year,discoverymethod,disc_facility
Kepler-22 b,Kepler-22,,0.849,2.1,,G5 V,190.0,2011,Transit,Kepler
Proxima b,Proxima Cen,Alpha Cen,0.0485,1.07,1.07,M5.5 V,1.3,2016,Radial Velocity,ESO
HD 1 b,HD 1,,abc,,,BLANK,,2001,Imaging,Keck

`

func TestReadCSV(t *testing.T) {
	records, err := ReadCSV(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, records, 3)

	k := records[0]
	assert.Equal(t, "Kepler-22 b", k.PlanetName)
	assert.Equal(t, "Kepler-22", k.SystemName, "system falls back to host")
	assert.Equal(t, "G", k.StarSpectralClass)
	assert.Equal(t, 2011.0, k.DiscoveryYear)
	assert.True(t, math.IsNaN(k.MassEarth))

	p := records[1]
	assert.Equal(t, "Alpha Cen", p.SystemName)
	assert.Equal(t, "M", p.StarSpectralClass)
	assert.False(t, p.IsHabitable)

	h := records[2]
	assert.True(t, math.IsNaN(h.OrbitMax))
	assert.Equal(t, planet.UnknownClass, h.StarSpectralClass)
}

func TestReadCSVHeaderOnly(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("pl_name,hostname\n"))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planets.csv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	records, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestLoadExcelFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planets.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"pl_name", "hostname", "pl_orbsmax", "st_spectype", "disc_year"},
		{"Kepler-62 f", "Kepler-62", 0.718, "K2 V", 2013},
		{"Gliese 581 g", "Gliese 581", 0.1, "M3 V", 2010},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Kepler-62 f", records[0].PlanetName)
	assert.Equal(t, "K", records[0].StarSpectralClass)
	assert.Equal(t, 2013.0, records[0].DiscoveryYear)
	assert.True(t, records[1].IsHabitable)
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	_, err := Load("planets.json")
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
