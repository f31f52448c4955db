package planet

import "math"

// earthRadiiPerSolarRadius converts stellar radii to Earth radii.
const earthRadiiPerSolarRadius = 109.076

var starColors = map[string]string{
	"A":          "#800080",
	"F":          "#000000",
	"G":          "#FFA500",
	"K":          "#0000FF",
	"M":          "#008000",
	UnknownClass: "#FF0000",
}

const otherStarColor = "#A52A2A"

// Body is one member of a planetary system view.
type Body struct {
	Name         string
	OrbitMax     float64
	RadiusEarth  float64
	MassEarth    float64
	Eccentricity float64
	Type         string
	IsStar       bool
	Color        string
}

// System describes a planet's host system for the detail view.
type System struct {
	Planet   Record
	Name     string
	HostName string
	Bodies   []Body
}

// StarColor returns the display colour for a spectral class.
func StarColor(class string) string {
	if c, ok := starColors[class]; ok {
		return c
	}
	return otherStarColor
}

// BuildSystem collects every record sharing p's system plus a synthetic
// host star. The returned bodies keep dataset order with the star last.
func BuildSystem(records []Record, p Record) System {
	sys := System{Planet: p, Name: p.SystemName, HostName: p.HostName}
	var first *Record
	for i := range records {
		r := &records[i]
		if r.SystemName != p.SystemName {
			continue
		}
		if first == nil {
			first = r
		}
		sys.Bodies = append(sys.Bodies, Body{
			Name:         r.PlanetName,
			OrbitMax:     r.OrbitMax,
			RadiusEarth:  r.RadiusEarth,
			MassEarth:    r.MassEarth,
			Eccentricity: r.OrbitEccentricity,
			Type:         PlanetType(r.MassEarth),
		})
	}
	if first == nil {
		first = &p
	}
	sys.Bodies = append(sys.Bodies, Body{
		Name:        first.HostName,
		OrbitMax:    0,
		RadiusEarth: first.StellarRadius * earthRadiiPerSolarRadius,
		MassEarth:   first.StellarMass,
		Type:        first.StarSpectralClass,
		IsStar:      true,
		Color:       StarColor(first.StarSpectralClass),
	})
	return sys
}

// MaxOrbit returns the largest known planet orbit in the system, or 0.
func (s System) MaxOrbit() float64 {
	maxOrbit := 0.0
	for _, b := range s.Bodies {
		if b.IsStar || math.IsNaN(b.OrbitMax) {
			continue
		}
		if b.OrbitMax > maxOrbit {
			maxOrbit = b.OrbitMax
		}
	}
	return maxOrbit
}

// SolarSystem returns reference bodies drawn alongside the exoplanets.
// They are never counted or filtered.
func SolarSystem() []Record {
	bodies := []struct {
		name   string
		radius float64
		mass   float64
		orbit  float64
	}{
		{"Mercury", 0.383, 0.0553, 0.387},
		{"Venus", 0.949, 0.815, 0.723},
		{"Earth", 1, 1, 1},
		{"Mars", 0.532, 0.107, 1.52},
		{"Jupiter", 11.21, 317.8, 5.20},
		{"Saturn", 9.45, 95.2, 9.57},
		{"Uranus", 4.01, 14.5, 19.17},
		{"Neptune", 3.88, 17.1, 30.18},
	}
	out := make([]Record, 0, len(bodies))
	for _, b := range bodies {
		out = append(out, Record{
			PlanetName:        b.name,
			HostName:          "Sun",
			SystemName:        "Solar System",
			RadiusEarth:       b.radius,
			MassEarth:         b.mass,
			OrbitMax:          b.orbit,
			StarSpectralClass: "G",
		})
	}
	return out
}
