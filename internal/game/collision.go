package game

import "math/rand"

// HitEvent records one impact: a driven vehicle striking every pedestrian in
// range on the same frame.
type HitEvent struct {
	VehicleID     string
	PedestrianIDs []string
	Position      Vec3
	Speed         float64
	Penalty       int
}

// InHitRange checks if a vehicle is within hit radius of a pedestrian.
func InHitRange(v *Vehicle, p *Pedestrian) bool {
	return Distance(v.Position.Horizontal(), p.Position.Horizontal()) <= HitRadius
}

// CanHit reports whether a vehicle is driven fast enough to strike pedestrians.
func CanHit(v *Vehicle) bool {
	return v.IsDriven() && abs(v.Speed) > HitSpeedThreshold
}

// FindHitPairs returns, per qualifying vehicle, the live collidable
// pedestrians within hit range. Each pedestrian is claimed by the first
// vehicle that reaches it.
func FindHitPairs(vehicles []*Vehicle, peds []*Pedestrian) map[*Vehicle][]*Pedestrian {
	pairs := make(map[*Vehicle][]*Pedestrian)
	claimed := make(map[*Pedestrian]bool)
	for _, v := range vehicles {
		if !CanHit(v) {
			continue
		}
		for _, p := range peds {
			if !p.Alive || !p.Collidable || claimed[p] {
				continue
			}
			if InHitRange(v, p) {
				claimed[p] = true
				pairs[v] = append(pairs[v], p)
			}
		}
	}
	return pairs
}

// ProcessHits strikes the pedestrians hit this frame and escalates the threat
// by exactly one per impacting vehicle. Vehicles are visited in order so the
// events are deterministic.
func ProcessHits(vehicles []*Vehicle, peds []*Pedestrian, t *Threat) []HitEvent {
	pairs := FindHitPairs(vehicles, peds)
	if len(pairs) == 0 {
		return nil
	}

	var events []HitEvent
	for _, v := range vehicles {
		struck, ok := pairs[v]
		if !ok {
			continue
		}
		ev := HitEvent{
			VehicleID: v.ID,
			Position:  v.Position,
			Speed:     v.Speed,
			Penalty:   HitPenalty * len(struck),
		}
		for _, p := range struck {
			p.Strike()
			ev.PedestrianIDs = append(ev.PedestrianIDs, p.ID)
		}
		t.Escalate(1)
		events = append(events, ev)
	}
	return events
}

// RemoveStruck drops knocked-down pedestrians from the active set.
func RemoveStruck(peds []*Pedestrian) []*Pedestrian {
	kept := peds[:0]
	for _, p := range peds {
		if p.Alive {
			kept = append(kept, p)
		}
	}
	return kept
}

// RespawnStruck returns knocked-down pedestrians to random points in the layout.
func RespawnStruck(peds []*Pedestrian, l *Layout, rng *rand.Rand) {
	for _, p := range peds {
		if !p.Alive {
			p.Respawn(l.RandomPoint(rng), rng)
		}
	}
}
