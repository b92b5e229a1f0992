package geo

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v2"
)

// Coordinates is a WGS84 lat/lon pair.
type Coordinates struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

// Resolver maps a postal code to coordinates. Implementations must return
// ok=false rather than an error for unknown codes; scoring degrades to an
// incompatible distance dimension instead of failing.
type Resolver interface {
	Resolve(postalCode string) (Coordinates, bool)
}

// StaticResolver is an immutable in-memory postal table loaded once at
// startup.
type StaticResolver struct {
	table map[string]Coordinates
}

func NewStaticResolver(table map[string]Coordinates) *StaticResolver {
	return &StaticResolver{table: table}
}

// LoadResolver reads a yaml postal table (postal code → {lat, lon}).
func LoadResolver(path string) (*StaticResolver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read postal table at %s: %w", path, err)
	}

	table := map[string]Coordinates{}
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse postal table at %s: %w", path, err)
	}

	return &StaticResolver{table: table}, nil
}

func (r *StaticResolver) Resolve(postalCode string) (Coordinates, bool) {
	c, ok := r.table[postalCode]
	return c, ok
}

// HaversineKM computes the great-circle distance between two points in
// kilometers.
func HaversineKM(a, b Coordinates) float64 {
	const earthRadius = 6371 // km

	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadius * c
}

// Distance resolves both postal codes and returns the distance between them.
// ok=false when either code cannot be resolved.
func Distance(r Resolver, postalA, postalB string) (float64, bool) {
	ca, okA := r.Resolve(postalA)
	cb, okB := r.Resolve(postalB)
	if !okA || !okB {
		return 0, false
	}
	return HaversineKM(ca, cb), true
}
