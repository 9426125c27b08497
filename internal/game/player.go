package game

// Player is the single actor driven by input. While it possesses a vehicle the
// input is redirected to that vehicle and the player body is hidden.
type Player struct {
	Actor
	Grounded         bool    `json:"grounded"`
	VerticalVelocity float64 `json:"vertical_velocity"`
	WalkSpeed        float64 `json:"-"`
	TurnRate         float64 `json:"-"`

	possessed *Vehicle

	// visibility captured at possession time, restored on release
	wasVisible    bool
	wasCollidable bool
}

func NewPlayer(pos Vec3) *Player {
	pos.Y = GroundHeight
	return &Player{
		Actor:     newActor(pos, 0),
		Grounded:  true,
		WalkSpeed: PlayerWalkSpeed,
		TurnRate:  PlayerTurnRate,
	}
}

// Possessed returns the vehicle the player is driving, or nil on foot.
func (p *Player) Possessed() *Vehicle {
	return p.possessed
}

func (p *Player) IsDriving() bool {
	return p.possessed != nil
}

// Walk applies one frame of on-foot input. yawAxis in [-1, 1] scales TurnRate.
func (p *Player) Walk(forwardAxis, strafeAxis, yawAxis, dt float64) {
	p.Rotate(clampAxis(yawAxis) * p.TurnRate * dt)
	p.Integrate(forwardAxis, strafeAxis, p.WalkSpeed, dt)
}

// Jump starts a jump when standing on the ground. Ignored while driving.
func (p *Player) Jump() bool {
	if p.possessed != nil || !p.Grounded {
		return false
	}
	p.VerticalVelocity = JumpVelocity
	p.Grounded = false
	return true
}

// ApplyGravity integrates vertical motion and lands the player on the ground.
func (p *Player) ApplyGravity(dt float64) {
	if p.Grounded {
		return
	}
	p.VerticalVelocity -= Gravity * dt
	p.Position.Y += p.VerticalVelocity * dt
	if p.Position.Y <= GroundHeight {
		p.Position.Y = GroundHeight
		p.VerticalVelocity = 0
		p.Grounded = true
	}
}

// Focus is the position pursuers and the camera should track: the possessed
// vehicle while driving, the player body otherwise.
func (p *Player) Focus() Vec3 {
	if p.possessed != nil {
		return p.possessed.Position
	}
	return p.Position
}
