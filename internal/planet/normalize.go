package planet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Columns lists the dataset columns read by Normalize.
var Columns = []Attribute{
	AttrPlanetName, AttrHostName, AttrSystemName,
	AttrOrbitMax, AttrRadiusEarth, AttrMassEarth, AttrOrbitEccentricity,
	AttrStellarRadius, AttrStellarMass, AttrDistanceParsecs,
	AttrStarCount, AttrPlanetCount, AttrDiscoveryYear,
	AttrSpectralClass, AttrDiscoveryFacility, AttrDiscoveryMethod,
}

// Normalize builds a typed record from a raw row keyed by column name.
// Malformed or missing numbers become NaN; a blank spectral type becomes Unknown.
func Normalize(raw map[string]string) Record {
	r := Record{
		PlanetName:        strings.TrimSpace(raw[string(AttrPlanetName)]),
		HostName:          strings.TrimSpace(raw[string(AttrHostName)]),
		SystemName:        strings.TrimSpace(raw[string(AttrSystemName)]),
		OrbitMax:          parseNumber(raw[string(AttrOrbitMax)]),
		RadiusEarth:       parseNumber(raw[string(AttrRadiusEarth)]),
		MassEarth:         parseNumber(raw[string(AttrMassEarth)]),
		OrbitEccentricity: parseNumber(raw[string(AttrOrbitEccentricity)]),
		StellarRadius:     parseNumber(raw[string(AttrStellarRadius)]),
		StellarMass:       parseNumber(raw[string(AttrStellarMass)]),
		DistanceParsecs:   parseNumber(raw[string(AttrDistanceParsecs)]),
		StarCount:         parseNumber(raw[string(AttrStarCount)]),
		PlanetCount:       parseNumber(raw[string(AttrPlanetCount)]),
		DiscoveryYear:     parseNumber(raw[string(AttrDiscoveryYear)]),
		StarSpectralClass: SpectralClass(raw[string(AttrSpectralClass)]),
		DiscoveryFacility: strings.TrimSpace(raw[string(AttrDiscoveryFacility)]),
		DiscoveryMethod:   strings.TrimSpace(raw[string(AttrDiscoveryMethod)]),
	}
	if r.SystemName == "" {
		r.SystemName = r.HostName
	}
	r.IsHabitable = Habitable(r.OrbitMax, r.StarSpectralClass)
	return r
}

// SpectralClass reduces a raw spectral type such as "G2 V" to its class letter.
func SpectralClass(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "BLANK") || strings.EqualFold(raw, UnknownClass) {
		return UnknownClass
	}
	first := []rune(raw)[0]
	if !unicode.IsLetter(first) {
		return UnknownClass
	}
	return string(unicode.ToUpper(first))
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

type orbitBand struct {
	lo, hi float64
}

var habitableBands = map[string]orbitBand{
	"A": {8.5, 12.5},
	"B": {1.5, 2.2},
	"G": {0.95, 1.4},
	"K": {0.38, 0.56},
	"M": {0.08, 0.12},
}

// Habitable reports whether a planet's maximum orbit (AU) lies in the
// habitable band of its star's spectral class.
func Habitable(orbitMax float64, class string) bool {
	band, ok := habitableBands[class]
	if !ok || math.IsNaN(orbitMax) {
		return false
	}
	return orbitMax >= band.lo && orbitMax <= band.hi
}

// PlanetType classifies a planet by mass in Earth masses.
func PlanetType(mass float64) string {
	switch {
	case math.IsNaN(mass):
		return "Unknown"
	case mass < 0.00001:
		return "Asteroidian"
	case mass < 0.1:
		return "Mercurian"
	case mass < 0.5:
		return "Subterran"
	case mass < 2:
		return "Terran"
	case mass < 10:
		return "Superterran"
	case mass < 50:
		return "Neptunian"
	default:
		return "Jovian"
	}
}

// ParseValue converts text into a Value of the kind attr holds.
func ParseValue(attr Attribute, s string) (Value, error) {
	if !Known(attr) {
		return Value{}, fmt.Errorf("unknown attribute %q", attr)
	}
	s = strings.TrimSpace(s)
	switch {
	case attr == AttrHabitable:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return Value{}, fmt.Errorf("invalid %s value %q: %w", attr, s, err)
		}
		return Bool(b), nil
	case IsNumeric(attr):
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid %s value %q: %w", attr, s, err)
		}
		return Number(n), nil
	default:
		return String(s), nil
	}
}
