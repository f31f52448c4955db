package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/verte-zerg/exodash/internal/planet"
)

// SpectralKeys are the spectral classes shown when counting by star type.
var SpectralKeys = []string{"A", "F", "G", "K", "M", planet.UnknownClass}

// Count is one category of a count-by-category result.
type Count struct {
	Key   planet.Value
	Count int
}

// SplitCount holds the counts of one primary key split by a second attribute.
type SplitCount struct {
	Key    planet.Value
	Splits []Count
	Total  int
}

// Split returns the count for the split value v, or 0.
func (s SplitCount) Split(v planet.Value) int {
	for _, c := range s.Splits {
		if c.Key.Equal(v) {
			return c.Count
		}
	}
	return 0
}

// Bin is one histogram bucket. Upper is exclusive except for the last bin.
type Bin struct {
	Lower float64
	Upper float64
	Count int
}

// YearCount is one point of a time series.
type YearCount struct {
	Year  int
	Count int
}

// CountByCategory counts unfiltered records per value of attr, sorted by
// count descending. Keys come from every record so a fully filtered category
// stays visible with a count of 0; ties keep first-seen order. Counting by
// spectral class only reports SpectralKeys.
func CountByCategory(records []planet.Record, attr planet.Attribute) []Count {
	planet.MustKnow(attr)
	index := map[string]int{}
	var out []Count
	for i := range records {
		r := &records[i]
		v := r.Value(attr)
		idx, ok := index[v.Key()]
		if !ok {
			idx = len(out)
			index[v.Key()] = idx
			out = append(out, Count{Key: v})
		}
		if !r.Filtered {
			out[idx].Count++
		}
	}
	if attr == planet.AttrSpectralClass {
		out = keepKeys(out, SpectralKeys)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

func keepKeys(counts []Count, keys []string) []Count {
	allowed := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		allowed[k] = struct{}{}
	}
	out := counts[:0]
	for _, c := range counts {
		if _, ok := allowed[c.Key.Key()]; ok {
			out = append(out, c)
		}
	}
	return out
}

// CountByTwoCategories groups unfiltered records by attrA, then counts each
// group by attrB. Every group reports every attrB value seen, with 0 for
// missing splits. Groups and splits keep first-seen order.
func CountByTwoCategories(records []planet.Record, attrA, attrB planet.Attribute) []SplitCount {
	planet.MustKnow(attrA)
	planet.MustKnow(attrB)
	var splitKeys []planet.Value
	splitIndex := map[string]int{}
	groupIndex := map[string]int{}
	var groups []SplitCount
	var cells [][]int
	for i := range records {
		r := &records[i]
		if r.Filtered {
			continue
		}
		a, b := r.Value(attrA), r.Value(attrB)
		si, ok := splitIndex[b.Key()]
		if !ok {
			si = len(splitKeys)
			splitIndex[b.Key()] = si
			splitKeys = append(splitKeys, b)
		}
		gi, ok := groupIndex[a.Key()]
		if !ok {
			gi = len(groups)
			groupIndex[a.Key()] = gi
			groups = append(groups, SplitCount{Key: a})
			cells = append(cells, nil)
		}
		for len(cells[gi]) <= si {
			cells[gi] = append(cells[gi], 0)
		}
		cells[gi][si]++
		groups[gi].Total++
	}
	for gi := range groups {
		splits := make([]Count, len(splitKeys))
		for si, key := range splitKeys {
			splits[si] = Count{Key: key}
			if si < len(cells[gi]) {
				splits[si].Count = cells[gi][si]
			}
		}
		groups[gi].Splits = splits
	}
	return groups
}

// BinByRange buckets the unfiltered, non-missing, non-negative values of attr
// into numBins bins of equal width covering [0, max]. The maximum lands in
// the last bin. Bin edges are recomputed on every call.
func BinByRange(records []planet.Record, attr planet.Attribute, numBins int) []Bin {
	if numBins < 1 {
		panic("stats: numBins must be at least 1")
	}
	values := make([]float64, 0, len(records))
	maxVal := 0.0
	for i := range records {
		r := &records[i]
		if r.Filtered {
			continue
		}
		v := r.Number(attr)
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			continue
		}
		values = append(values, v)
		if v > maxVal {
			maxVal = v
		}
	}
	if len(values) == 0 {
		return nil
	}
	if maxVal == 0 {
		return []Bin{{Lower: 0, Upper: 0, Count: len(values)}}
	}
	width := maxVal / float64(numBins)
	dividers := make([]float64, numBins+1)
	for i := range dividers {
		dividers[i] = float64(i) * width
	}
	dividers[numBins] = math.Nextafter(maxVal, math.Inf(1))
	sort.Float64s(values)
	counts := stat.Histogram(nil, dividers, values, nil)

	bins := make([]Bin, numBins)
	for i := range bins {
		bins[i] = Bin{Lower: dividers[i], Upper: dividers[i] + width, Count: int(counts[i])}
	}
	bins[numBins-1].Upper = maxVal
	return bins
}

// TimeSeriesCount counts unfiltered records per year of attr, ascending.
// Years come from every record with a valid value so the axis is stable.
func TimeSeriesCount(records []planet.Record, attr planet.Attribute) []YearCount {
	counts := map[int]int{}
	for i := range records {
		r := &records[i]
		v := r.Number(attr)
		if math.IsNaN(v) {
			continue
		}
		year := int(v)
		if _, ok := counts[year]; !ok {
			counts[year] = 0
		}
		if !r.Filtered {
			counts[year]++
		}
	}
	out := make([]YearCount, 0, len(counts))
	for year, n := range counts {
		out = append(out, YearCount{Year: year, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
