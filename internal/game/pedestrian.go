package game

import (
	"encoding/json"
	"math/rand"
)

// StrikePolicy decides what happens to a pedestrian struck by a vehicle.
// Both policies escalate the threat level identically.
type StrikePolicy int

const (
	// StrikeInert leaves the pedestrian in the world, knocked down and inert.
	StrikeInert StrikePolicy = iota
	// StrikeRemove drops the pedestrian from the active set.
	StrikeRemove
	// StrikeRespawn puts the pedestrian back on its feet at a random point.
	StrikeRespawn
)

func (s StrikePolicy) String() string {
	switch s {
	case StrikeRemove:
		return "remove"
	case StrikeRespawn:
		return "respawn"
	default:
		return "inert"
	}
}

// ParseStrikePolicy maps a policy name to a StrikePolicy. ok is false for unknown names.
func ParseStrikePolicy(s string) (StrikePolicy, bool) {
	switch s {
	case "inert":
		return StrikeInert, true
	case "remove":
		return StrikeRemove, true
	case "respawn":
		return StrikeRespawn, true
	default:
		return StrikeInert, false
	}
}

// MarshalJSON serializes StrikePolicy as a string.
func (s StrikePolicy) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

type Pedestrian struct {
	Actor
	WalkSpeed   float64 `json:"-"`
	Alive       bool    `json:"alive"`
	WanderTimer float64 `json:"-"`
}

// NewPedestrian creates a live pedestrian with a random heading, pace and timer.
func NewPedestrian(pos Vec3, rng *rand.Rand) *Pedestrian {
	pos.Y = GroundHeight
	return &Pedestrian{
		Actor:       newActor(pos, rng.Float64()*360),
		WalkSpeed:   PedWalkMin + rng.Float64()*(PedWalkMax-PedWalkMin),
		Alive:       true,
		WanderTimer: wanderDelay(rng),
	}
}

func wanderDelay(rng *rand.Rand) float64 {
	return WanderMin + rng.Float64()*(WanderMax-WanderMin)
}

// Wander advances a live pedestrian one frame: walk forward, pick a new
// heading when the timer runs out and turn back at the world edge.
func (p *Pedestrian) Wander(rng *rand.Rand, halfExtent, dt float64) {
	if !p.Alive {
		return
	}
	p.advance(p.WalkSpeed * dt)

	p.WanderTimer -= dt
	if p.WanderTimer <= 0 {
		p.Heading = NormalizeHeading(rng.Float64() * 360)
		p.WanderTimer = wanderDelay(rng)
	}
	p.turnAroundOutside(halfExtent)
}

// Strike knocks the pedestrian down. It no longer moves or collides.
func (p *Pedestrian) Strike() {
	p.Alive = false
	p.Collidable = false
	p.Position.Y = StruckHeight
}

// Respawn brings a struck pedestrian back at pos with a fresh heading and pace.
func (p *Pedestrian) Respawn(pos Vec3, rng *rand.Rand) {
	pos.Y = GroundHeight
	p.Position = pos
	p.Heading = NormalizeHeading(rng.Float64() * 360)
	p.WalkSpeed = PedWalkMin + rng.Float64()*(PedWalkMax-PedWalkMin)
	p.WanderTimer = wanderDelay(rng)
	p.Alive = true
	p.Collidable = true
}
