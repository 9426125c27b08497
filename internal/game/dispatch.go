package game

import "math/rand"

// PursuitUnit is a police vehicle whose only behavior is chasing the player.
type PursuitUnit struct {
	Vehicle
	target *Actor
}

// TargetID returns the ID of the actor being chased, or "" when idle.
func (u *PursuitUnit) TargetID() string {
	if u.target == nil {
		return ""
	}
	return u.target.ID
}

// Dispatcher spawns pursuit units for the current threat level and steers them.
type Dispatcher struct {
	MaxPerCall int
	Spread     float64
	ChaseSpeed float64
	Standoff   float64
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		MaxPerCall: MaxSpawnPerCall,
		Spread:     SpawnSpread,
		ChaseSpeed: ChaseSpeed,
		Standoff:   ChaseStandoff,
	}
}

// Spawn tops up the active units toward the threat capacity, at most
// MaxPerCall units per call, each placed at the origin plus a random offset.
func (d *Dispatcher) Spawn(t *Threat, rng *rand.Rand) []*PursuitUnit {
	var spawned []*PursuitUnit
	for t.UnitCount() < t.Capacity() && len(spawned) < d.MaxPerCall {
		pos := t.Origin().Add(Vec3{
			X: (rng.Float64()*2 - 1) * d.Spread,
			Z: (rng.Float64()*2 - 1) * d.Spread,
		})
		u := &PursuitUnit{Vehicle: *NewVehicle(KindPolice, pos, rng.Float64()*360)}
		u.MaxSpeed = max(u.MaxSpeed, d.ChaseSpeed)
		t.register(u)
		spawned = append(spawned, u)
	}
	return spawned
}

// Chase steers one unit toward target. Inside the standoff distance the unit
// holds position, and a long frame never carries it past the standoff.
// It reports whether the unit moved.
func (d *Dispatcher) Chase(u *PursuitUnit, target *Actor, dt float64) bool {
	u.target = target
	dist := Distance(u.Position.Horizontal(), target.Position.Horizontal())
	if dist <= d.Standoff {
		u.stop()
		return false
	}
	// coincident positions keep the previous heading for this frame
	u.Face(target.Position)
	u.Speed = d.ChaseSpeed
	u.state = DriveAccelerating
	u.advance(min(d.ChaseSpeed*dt, dist-d.Standoff))
	return true
}

// ChaseAll steers every active unit toward whatever the player is using.
// Units stay dormant while the player is not wanted.
func (d *Dispatcher) ChaseAll(t *Threat, p *Player, dt float64) {
	if !t.Wanted() {
		for _, u := range t.units {
			u.target = nil
			u.stop()
		}
		return
	}
	target := &p.Actor
	if v := p.Possessed(); v != nil {
		target = &v.Actor
	}
	for _, u := range t.units {
		d.Chase(u, target, dt)
	}
}
