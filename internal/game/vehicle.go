package game

import (
	"encoding/json"
	"math"
	"math/rand"
)

type VehicleKind int

const (
	KindCar VehicleKind = iota
	KindPolice
	KindTaxi
	KindSport
	KindTraffic
)

func (k VehicleKind) String() string {
	switch k {
	case KindPolice:
		return "police"
	case KindTaxi:
		return "taxi"
	case KindSport:
		return "sport"
	case KindTraffic:
		return "traffic"
	default:
		return "car"
	}
}

// ParseVehicleKind maps a kind name to a VehicleKind. Unknown names are cars.
func ParseVehicleKind(s string) VehicleKind {
	switch s {
	case "police":
		return KindPolice
	case "taxi":
		return KindTaxi
	case "sport":
		return KindSport
	case "traffic":
		return KindTraffic
	default:
		return KindCar
	}
}

// MarshalText serializes VehicleKind as its name for both JSON and YAML.
func (k VehicleKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText deserializes VehicleKind from its name.
func (k *VehicleKind) UnmarshalText(data []byte) error {
	*k = ParseVehicleKind(string(data))
	return nil
}

// DriveState is the controller state observed on the last driven frame.
type DriveState int

const (
	DriveIdle DriveState = iota
	DriveAccelerating
	DriveBraking
	DriveCoasting
)

func (s DriveState) String() string {
	switch s {
	case DriveAccelerating:
		return "accelerating"
	case DriveBraking:
		return "braking"
	case DriveCoasting:
		return "coasting"
	default:
		return "idle"
	}
}

// MarshalJSON serializes DriveState as a string.
func (s DriveState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON deserializes DriveState from a string.
func (s *DriveState) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "accelerating":
		*s = DriveAccelerating
	case "braking":
		*s = DriveBraking
	case "coasting":
		*s = DriveCoasting
	default:
		*s = DriveIdle
	}
	return nil
}

// idleSpeed is the band around zero reported as idle.
const idleSpeed = 0.05

type handling struct {
	maxSpeed, acceleration, brakeForce, turnRate float64
}

var handlingByKind = map[VehicleKind]handling{
	KindCar:     {maxSpeed: 15, acceleration: 8, brakeForce: 12, turnRate: 60},
	KindPolice:  {maxSpeed: 18, acceleration: 10, brakeForce: 14, turnRate: 70},
	KindTaxi:    {maxSpeed: 16, acceleration: 8, brakeForce: 12, turnRate: 60},
	KindSport:   {maxSpeed: 25, acceleration: 12, brakeForce: 16, turnRate: 80},
	KindTraffic: {maxSpeed: 15, acceleration: 6, brakeForce: 10, turnRate: 50},
}

// Possessable is implemented only by *Vehicle. The possession scan works on
// this capability rather than probing arbitrary actors.
type Possessable interface {
	vehicle() *Vehicle
}

type Vehicle struct {
	Actor
	Kind         VehicleKind `json:"kind"`
	Speed        float64     `json:"speed"`
	MaxSpeed     float64     `json:"max_speed"`
	Acceleration float64     `json:"-"`
	BrakeForce   float64     `json:"-"`
	TurnRate     float64     `json:"-"`
	CruiseSpeed  float64     `json:"-"` // autonomous speed; zero means parked

	driver *Player
	state  DriveState
}

// NewVehicle creates an autonomous vehicle with the handling preset for kind.
func NewVehicle(kind VehicleKind, pos Vec3, heading float64) *Vehicle {
	h, ok := handlingByKind[kind]
	if !ok {
		h = handlingByKind[KindCar]
	}
	return &Vehicle{
		Actor:        newActor(pos, heading),
		Kind:         kind,
		MaxSpeed:     h.maxSpeed,
		Acceleration: h.acceleration,
		BrakeForce:   h.brakeForce,
		TurnRate:     h.turnRate,
	}
}

func (v *Vehicle) vehicle() *Vehicle { return v }

// Driver returns the player currently driving, or nil when autonomous.
func (v *Vehicle) Driver() *Player {
	return v.driver
}

func (v *Vehicle) IsDriven() bool {
	return v.driver != nil
}

func (v *Vehicle) State() DriveState {
	return v.state
}

// MinSpeed is the reverse limit, half of MaxSpeed.
func (v *Vehicle) MinSpeed() float64 {
	return -v.MaxSpeed / 2
}

func (v *Vehicle) clampSpeed() {
	v.Speed = math.Max(v.MinSpeed(), math.Min(v.Speed, v.MaxSpeed))
}

// Drive applies one frame of driver input. throttle > 0 accelerates,
// throttle < 0 brakes and then reverses, zero coasts toward a stop.
// steer in [-1, 1] turns right for positive values while moving forward.
func (v *Vehicle) Drive(throttle, steer, dt float64) {
	switch {
	case throttle > 0:
		v.Speed += v.Acceleration * dt
		v.state = DriveAccelerating
	case throttle < 0:
		v.Speed -= v.BrakeForce * dt
		v.state = DriveBraking
	default:
		v.coast(dt)
	}
	v.clampSpeed()

	if v.MaxSpeed > 0 {
		v.Rotate(clampAxis(steer) * v.TurnRate * dt * (v.Speed / v.MaxSpeed))
	}
	v.advance(v.Speed * dt)
}

// coast decays speed linearly toward zero without crossing it.
func (v *Vehicle) coast(dt float64) {
	decay := v.BrakeForce * CoastFactor * dt
	switch {
	case v.Speed > 0:
		v.Speed = math.Max(0, v.Speed-decay)
	case v.Speed < 0:
		v.Speed = math.Min(0, v.Speed+decay)
	}
	if math.Abs(v.Speed) < idleSpeed {
		v.state = DriveIdle
	} else {
		v.state = DriveCoasting
	}
}

// Cruise moves an autonomous vehicle along its heading at CruiseSpeed and
// turns it around at the world edge. No-op for driven or parked vehicles.
func (v *Vehicle) Cruise(halfExtent, dt float64) {
	if v.driver != nil || v.CruiseSpeed == 0 {
		return
	}
	v.Speed = math.Min(v.CruiseSpeed, v.MaxSpeed)
	v.state = DriveAccelerating
	v.advance(v.Speed * dt)
	v.turnAroundOutside(halfExtent)
}

// ChangeLane is evaluated once per fixed tick for cruising vehicles: with
// LaneChangeChance the heading is perturbed by up to LaneChangeYaw degrees.
func (v *Vehicle) ChangeLane(rng *rand.Rand) bool {
	if v.driver != nil || v.CruiseSpeed == 0 {
		return false
	}
	if rng.Float64() >= LaneChangeChance {
		return false
	}
	v.Rotate((rng.Float64()*2 - 1) * LaneChangeYaw)
	return true
}

// stop snaps the vehicle to rest, used when control changes hands.
func (v *Vehicle) stop() {
	v.Speed = 0
	v.state = DriveIdle
}
