// Package planet defines the exoplanet record model.
package planet

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Attribute names a record field. Names match the dataset column headers.
type Attribute string

const (
	AttrPlanetName        Attribute = "pl_name"
	AttrHostName          Attribute = "hostname"
	AttrSystemName        Attribute = "sys_name"
	AttrOrbitMax          Attribute = "pl_orbsmax"
	AttrRadiusEarth       Attribute = "pl_rade"
	AttrMassEarth         Attribute = "pl_bmasse"
	AttrOrbitEccentricity Attribute = "pl_orbeccen"
	AttrStellarRadius     Attribute = "st_rad"
	AttrStellarMass       Attribute = "st_mass"
	AttrDistanceParsecs   Attribute = "sy_dist"
	AttrStarCount         Attribute = "sy_snum"
	AttrPlanetCount       Attribute = "sy_pnum"
	AttrDiscoveryYear     Attribute = "disc_year"
	AttrSpectralClass     Attribute = "st_spectype"
	AttrDiscoveryFacility Attribute = "disc_facility"
	AttrDiscoveryMethod   Attribute = "discoverymethod"
	AttrHabitable         Attribute = "isHabitable"
)

// UnknownClass is the spectral class used for missing or blank values.
const UnknownClass = "Unknown"

// Kind tags the dynamic type held by a Value.
type Kind uint8

const (
	KindString Kind = iota
	KindNumber
	KindBool
)

// Value is a comparable attribute value: a string, a number or a bool.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
}

// String returns a string value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Key returns the canonical text form used for grouping and set membership.
// All missing numbers share the key "NaN".
func (v Value) Key() string {
	switch v.Kind {
	case KindNumber:
		if math.IsNaN(v.Num) {
			return "NaN"
		}
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

// Equal reports whether two values have the same kind and key.
func (v Value) Equal(o Value) bool {
	return v.Kind == o.Kind && v.Key() == o.Key()
}

// IsMissing reports whether the value is a missing number.
func (v Value) IsMissing() bool {
	return v.Kind == KindNumber && math.IsNaN(v.Num)
}

func (v Value) String() string {
	return v.Key()
}

// Record is one exoplanet observation.
type Record struct {
	PlanetName string
	HostName   string
	SystemName string

	OrbitMax          float64
	RadiusEarth       float64
	MassEarth         float64
	OrbitEccentricity float64
	StellarRadius     float64
	StellarMass       float64
	DistanceParsecs   float64
	StarCount         float64
	PlanetCount       float64
	DiscoveryYear     float64

	StarSpectralClass string
	DiscoveryFacility string
	DiscoveryMethod   string

	IsHabitable bool

	// Filtered excludes the record from aggregations. Only the filter
	// evaluator writes it.
	Filtered bool
}

// Value returns the record's value for attr. It panics on an unknown attribute.
func (r *Record) Value(attr Attribute) Value {
	switch attr {
	case AttrPlanetName:
		return String(r.PlanetName)
	case AttrHostName:
		return String(r.HostName)
	case AttrSystemName:
		return String(r.SystemName)
	case AttrSpectralClass:
		return String(r.StarSpectralClass)
	case AttrDiscoveryFacility:
		return String(r.DiscoveryFacility)
	case AttrDiscoveryMethod:
		return String(r.DiscoveryMethod)
	case AttrHabitable:
		return Bool(r.IsHabitable)
	}
	return Number(r.Number(attr))
}

// Number returns a numeric attribute. It panics when attr is not numeric.
func (r *Record) Number(attr Attribute) float64 {
	switch attr {
	case AttrOrbitMax:
		return r.OrbitMax
	case AttrRadiusEarth:
		return r.RadiusEarth
	case AttrMassEarth:
		return r.MassEarth
	case AttrOrbitEccentricity:
		return r.OrbitEccentricity
	case AttrStellarRadius:
		return r.StellarRadius
	case AttrStellarMass:
		return r.StellarMass
	case AttrDistanceParsecs:
		return r.DistanceParsecs
	case AttrStarCount:
		return r.StarCount
	case AttrPlanetCount:
		return r.PlanetCount
	case AttrDiscoveryYear:
		return r.DiscoveryYear
	}
	panic(fmt.Sprintf("planet: attribute %q is not numeric", attr))
}

// IsNumeric reports whether attr holds a number.
func IsNumeric(attr Attribute) bool {
	switch attr {
	case AttrOrbitMax, AttrRadiusEarth, AttrMassEarth, AttrOrbitEccentricity,
		AttrStellarRadius, AttrStellarMass, AttrDistanceParsecs, AttrStarCount,
		AttrPlanetCount, AttrDiscoveryYear:
		return true
	}
	return false
}

// Known reports whether attr names a record field.
func Known(attr Attribute) bool {
	if IsNumeric(attr) {
		return true
	}
	switch attr {
	case AttrPlanetName, AttrHostName, AttrSystemName, AttrSpectralClass,
		AttrDiscoveryFacility, AttrDiscoveryMethod, AttrHabitable:
		return true
	}
	return false
}

// MustKnow panics when attr is not a record field.
func MustKnow(attr Attribute) {
	if !Known(attr) {
		panic(fmt.Sprintf("planet: unknown attribute %q", attr))
	}
}

// Selected counts the records with Filtered unset.
func Selected(records []Record) (selected, total int) {
	for i := range records {
		if !records[i].Filtered {
			selected++
		}
	}
	return selected, len(records)
}

// MarshalJSON encodes the value as a JSON string, number or bool.
// A missing number encodes as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return []byte("null"), nil
		}
		return []byte(strconv.FormatFloat(v.Num, 'f', -1, 64)), nil
	case KindBool:
		return []byte(strconv.FormatBool(v.Bool)), nil
	default:
		return json.Marshal(v.Str)
	}
}

// UnmarshalJSON decodes a value written by MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	s := string(data)
	switch {
	case s == "null":
		*v = Number(math.NaN())
	case s == "true" || s == "false":
		*v = Bool(s == "true")
	case len(s) > 0 && s[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("invalid string value %s: %w", s, err)
		}
		*v = String(str)
	default:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid value %s: %w", s, err)
		}
		*v = Number(n)
	}
	return nil
}
