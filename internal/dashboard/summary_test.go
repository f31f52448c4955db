package dashboard

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/exodash/internal/model"
	"github.com/verte-zerg/exodash/internal/planet"
)

func TestParseFilter(t *testing.T) {
	attr, v, err := ParseFilter("st_spectype=G")
	require.NoError(t, err)
	assert.Equal(t, planet.AttrSpectralClass, attr)
	assert.True(t, v.Equal(planet.String("G")))

	attr, v, err = ParseFilter("sy_snum = 2")
	require.NoError(t, err)
	assert.Equal(t, planet.AttrStarCount, attr)
	assert.True(t, v.Equal(planet.Number(2)))

	_, v, err = ParseFilter("isHabitable=true")
	require.NoError(t, err)
	assert.True(t, v.Equal(planet.Bool(true)))

	_, _, err = ParseFilter("st_spectype")
	assert.Error(t, err)
	_, _, err = ParseFilter("colour=red")
	assert.Error(t, err)
	_, _, err = ParseFilter("sy_snum=two")
	assert.Error(t, err)
}

func TestParseYears(t *testing.T) {
	lo, hi, err := ParseYears("2000:2010")
	require.NoError(t, err)
	assert.Equal(t, 2000, lo)
	assert.Equal(t, 2010, hi)

	_, _, err = ParseYears("2000")
	assert.Error(t, err)
	_, _, err = ParseYears("a:2010")
	assert.Error(t, err)
}

func TestWriteSummary(t *testing.T) {
	d := New(fiveRecords(), 4)
	d.Toggle(planet.AttrSpectralClass, planet.String("A"))

	var buf bytes.Buffer
	require.NoError(t, d.WriteSummary(&buf, model.SummaryConfig{TableRows: 5, Width: 20}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Selected: 2 out of 5\n"))
	assert.Contains(t, out, "st_spectype=A")
	for _, title := range []string{"Star Quantity", "Planet Quantity", "Star Type Quantity", "Discovery Method Quantity", "Livability", "Earth's Distance (4 bins)", "Discovery Years (1999-2020)", "Statistics", "Planets (first 5)"} {
		assert.Contains(t, out, title)
	}
	assert.Contains(t, out, "A-a")
	assert.Contains(t, out, "A-b")
	assert.NotContains(t, out, "G-c", "filtered rows are not listed")
}

func TestWriteSummaryWithoutRows(t *testing.T) {
	d := New(fiveRecords(), 4)
	var buf bytes.Buffer
	require.NoError(t, d.WriteSummary(&buf, model.SummaryConfig{Width: 20}))
	assert.NotContains(t, buf.String(), "Planets (first")
}
