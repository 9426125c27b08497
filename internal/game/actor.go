package game

import "github.com/google/uuid"

// Actor is the kinematic base shared by every simulated body.
type Actor struct {
	ID         string  `json:"id"`
	Position   Vec3    `json:"position"`
	Heading    float64 `json:"heading"`
	Visible    bool    `json:"visible"`
	Collidable bool    `json:"collidable"`
}

func newActor(pos Vec3, heading float64) Actor {
	return Actor{
		ID:         uuid.New().String(),
		Position:   pos,
		Heading:    NormalizeHeading(heading),
		Visible:    true,
		Collidable: true,
	}
}

// Forward is the horizontal unit vector the actor faces.
func (a *Actor) Forward() Vec3 {
	return forwardFor(a.Heading)
}

// Right is Forward rotated 90 degrees clockwise seen from above.
func (a *Actor) Right() Vec3 {
	return rightFor(a.Heading)
}

// Rotate adds yawDelta degrees to the heading.
func (a *Actor) Rotate(yawDelta float64) {
	a.Heading = NormalizeHeading(a.Heading + yawDelta)
}

// Face turns the actor toward target. Returns false and leaves the heading
// untouched when target is directly above or below the actor.
func (a *Actor) Face(target Vec3) bool {
	h, ok := HeadingToward(a.Position, target)
	if !ok {
		return false
	}
	a.Heading = h
	return true
}

// Integrate moves the actor along its forward and right vectors.
// Both axes are clamped to [-1, 1].
func (a *Actor) Integrate(forwardAxis, strafeAxis, speed, dt float64) {
	move := a.Forward().Scale(clampAxis(forwardAxis)).
		Add(a.Right().Scale(clampAxis(strafeAxis)))
	a.Position = a.Position.Add(move.Scale(speed * dt))
}

// advance moves the actor along forward by a signed distance.
func (a *Actor) advance(distance float64) {
	a.Position = a.Position.Add(a.Forward().Scale(distance))
}

// turnAroundOutside flips the heading when the actor is past halfExtent on X or Z
// and still heading outward.
func (a *Actor) turnAroundOutside(halfExtent float64) bool {
	f, p := a.Forward(), a.Position
	if (abs(p.X) > halfExtent && f.X*p.X > 0) || (abs(p.Z) > halfExtent && f.Z*p.Z > 0) {
		a.Rotate(180)
		return true
	}
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
