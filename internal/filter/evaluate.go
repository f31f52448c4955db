package filter

import (
	"math"

	"github.com/verte-zerg/exodash/internal/planet"
)

type predicate func(r *planet.Record) bool

// Evaluate recomputes Filtered for every record from scratch. A record
// passes only when no entry excludes it; entry order does not matter.
func Evaluate(records []planet.Record, s *Store) {
	preds := compile(s.entries)
	for i := range records {
		r := &records[i]
		r.Filtered = false
		for _, keep := range preds {
			if !keep(r) {
				r.Filtered = true
				break
			}
		}
	}
}

func compile(entries []Entry) []predicate {
	preds := make([]predicate, 0, len(entries))
	for _, e := range entries {
		if !e.Active() {
			continue
		}
		attr := e.Attr
		if e.IsRange() {
			lo, hi := float64(e.Range.Lo), float64(e.Range.Hi)
			preds = append(preds, func(r *planet.Record) bool {
				v := r.Number(attr)
				if math.IsNaN(v) {
					return false
				}
				return v >= lo && v <= hi
			})
			continue
		}
		set := make(map[planet.Kind]map[string]struct{})
		for _, v := range e.Values {
			if set[v.Kind] == nil {
				set[v.Kind] = map[string]struct{}{}
			}
			set[v.Kind][v.Key()] = struct{}{}
		}
		preds = append(preds, func(r *planet.Record) bool {
			v := r.Value(attr)
			_, ok := set[v.Kind][v.Key()]
			return ok
		})
	}
	return preds
}
