package game

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"gopkg.in/yaml.v3"
)

var ErrInvalidLayout = errors.New("invalid layout")

// VehicleSpawn places one parked vehicle.
type VehicleSpawn struct {
	Kind     VehicleKind `json:"kind" yaml:"kind"`
	Position Vec3        `json:"position" yaml:"position"`
	Heading  float64     `json:"heading" yaml:"heading"`
}

// Layout holds the static anchors a world is built from. Roads and buildings
// belong to the scene and are not part of it.
type Layout struct {
	HalfExtent  float64        `json:"half_extent" yaml:"half_extent"`
	Origin      Vec3           `json:"origin" yaml:"origin"` // pursuit units dispatch from here
	PlayerStart Vec3           `json:"player_start" yaml:"player_start"`
	Parked      []VehicleSpawn `json:"parked" yaml:"parked"`
	Traffic     int            `json:"traffic" yaml:"traffic"`
	Pedestrians int            `json:"pedestrians" yaml:"pedestrians"`
}

// LoadLayout decodes a YAML layout and validates it.
func LoadLayout(r io.Reader) (*Layout, error) {
	var l Layout
	if err := yaml.NewDecoder(r).Decode(&l); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Validate checks the layout describes a usable world.
func (l *Layout) Validate() error {
	if l.HalfExtent <= 0 {
		return fmt.Errorf("%w: half_extent must be positive", ErrInvalidLayout)
	}
	if !l.contains(l.Origin) {
		return fmt.Errorf("%w: origin outside bounds", ErrInvalidLayout)
	}
	if !l.contains(l.PlayerStart) {
		return fmt.Errorf("%w: player_start outside bounds", ErrInvalidLayout)
	}
	if l.Traffic < 0 || l.Pedestrians < 0 {
		return fmt.Errorf("%w: negative actor count", ErrInvalidLayout)
	}
	for i, p := range l.Parked {
		if !l.contains(p.Position) {
			return fmt.Errorf("%w: parked vehicle %d outside bounds", ErrInvalidLayout, i)
		}
	}
	return nil
}

func (l *Layout) contains(p Vec3) bool {
	return abs(p.X) <= l.HalfExtent && abs(p.Z) <= l.HalfExtent
}

var parkedKinds = []VehicleKind{KindCar, KindTaxi, KindSport, KindCar}

// GenerateLayout builds a random layout: a pursuit origin away from the
// center, one car parked beside the player start and the rest spread out
// keeping MinLayoutSpacing between vehicles.
func GenerateLayout(rng *rand.Rand, parked int) *Layout {
	l := &Layout{
		HalfExtent:  WorldHalfExtent,
		PlayerStart: Vec3{Y: GroundHeight},
		Traffic:     DefaultTraffic,
		Pedestrians: DefaultPedestrians,
	}

	// origin sits in the outer half of the map
	inner := WorldHalfExtent / 2
	l.Origin = Vec3{X: inner + rng.Float64()*inner, Z: inner + rng.Float64()*inner}
	if rng.Intn(2) == 0 {
		l.Origin.X = -l.Origin.X
	}
	if rng.Intn(2) == 0 {
		l.Origin.Z = -l.Origin.Z
	}

	placed := []Vec3{l.PlayerStart}
	if parked > 0 {
		starter := l.PlayerStart.Horizontal().Add(Vec3{X: PossessRange - 0.5})
		l.Parked = append(l.Parked, VehicleSpawn{Kind: KindCar, Position: starter})
		placed = append(placed, starter)
	}
	for i := 1; i < parked; i++ {
		pos := generatePosition(rng, WorldHalfExtent-MinLayoutSpacing, placed)
		l.Parked = append(l.Parked, VehicleSpawn{
			Kind:     parkedKinds[i%len(parkedKinds)],
			Position: pos,
			Heading:  float64(rng.Intn(4)) * 90,
		})
		placed = append(placed, pos)
	}
	return l
}

// RandomPoint returns a ground-level point inside the layout bounds.
func (l *Layout) RandomPoint(rng *rand.Rand) Vec3 {
	return Vec3{
		X: (rng.Float64()*2 - 1) * l.HalfExtent,
		Y: GroundHeight,
		Z: (rng.Float64()*2 - 1) * l.HalfExtent,
	}
}

// generatePosition finds a random position within halfExtent that respects
// MinLayoutSpacing from all existing positions. Falls back to a random
// position after maxAttempts.
func generatePosition(rng *rand.Rand, halfExtent float64, existing []Vec3) Vec3 {
	const maxAttempts = 100
	random := func() Vec3 {
		return Vec3{
			X: (rng.Float64()*2 - 1) * halfExtent,
			Z: (rng.Float64()*2 - 1) * halfExtent,
		}
	}

	for i := 0; i < maxAttempts; i++ {
		p := random()
		if isFarEnough(p, existing) {
			return p
		}
	}
	return random()
}

// isFarEnough checks if p is at least MinLayoutSpacing from all existing positions.
func isFarEnough(p Vec3, existing []Vec3) bool {
	for _, e := range existing {
		if Distance(p.Horizontal(), e.Horizontal()) < MinLayoutSpacing {
			return false
		}
	}
	return true
}
