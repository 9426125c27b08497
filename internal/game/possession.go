package game

// Possession transfers the driver role between the player and a vehicle.
type Possession struct {
	MaxRange   float64
	ExitOffset float64
}

func NewPossession() *Possession {
	return &Possession{MaxRange: PossessRange, ExitOffset: ExitOffset}
}

// TryPossess scans candidates in order and takes the first free vehicle within
// MaxRange of the player. It returns nil, changing nothing, when the player is
// already driving or nothing is in range.
func (m *Possession) TryPossess(p *Player, candidates []Possessable) *Vehicle {
	if p.possessed != nil {
		return nil
	}
	for _, c := range candidates {
		v := c.vehicle()
		if v == nil || v.driver != nil {
			continue
		}
		if Distance(p.Position.Horizontal(), v.Position.Horizontal()) > m.MaxRange {
			continue
		}

		v.driver = p
		p.possessed = v
		p.wasVisible, p.wasCollidable = p.Visible, p.Collidable
		p.Visible = false
		p.Collidable = false
		p.Grounded = true
		p.VerticalVelocity = 0
		v.stop()
		return v
	}
	return nil
}

// Release puts the player back on foot beside the vehicle it drives.
// It returns the vacated vehicle, or nil when the player is on foot.
func (m *Possession) Release(p *Player) *Vehicle {
	v := p.possessed
	if v == nil {
		return nil
	}

	v.driver = nil
	p.possessed = nil
	p.Visible, p.Collidable = p.wasVisible, p.wasCollidable

	exit := v.Position.Add(v.Right().Scale(m.ExitOffset))
	exit.Y = GroundHeight
	p.Position = exit
	p.Heading = v.Heading

	// an abandoned vehicle stays where it was left
	v.CruiseSpeed = 0
	v.stop()
	return v
}

// VehiclesAsCandidates adapts a vehicle list to the possession scan.
func VehiclesAsCandidates(vs []*Vehicle) []Possessable {
	out := make([]Possessable, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}
