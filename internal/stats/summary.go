package stats

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/verte-zerg/exodash/internal/planet"
)

// Summary describes the unfiltered, non-missing values of one attribute.
type Summary struct {
	Attr   planet.Attribute
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
}

// Summarize computes a Summary. An attribute with no values yields Count 0.
func Summarize(records []planet.Record, attr planet.Attribute) (Summary, error) {
	out := Summary{Attr: attr}
	data := make(stats.Float64Data, 0, len(records))
	for i := range records {
		r := &records[i]
		if r.Filtered {
			continue
		}
		if v := r.Number(attr); !math.IsNaN(v) {
			data = append(data, v)
		}
	}
	if len(data) == 0 {
		return out, nil
	}
	var err error
	out.Count = len(data)
	if out.Min, err = data.Min(); err != nil {
		return out, err
	}
	if out.Max, err = data.Max(); err != nil {
		return out, err
	}
	if out.Mean, err = data.Mean(); err != nil {
		return out, err
	}
	if out.Median, err = data.Median(); err != nil {
		return out, err
	}
	return out, nil
}
