package game

import "time"

// World bounds (world units, centered on the origin)
const (
	WorldHalfExtent    = 80.0 // traffic turns around past this on X or Z
	WanderHalfExtent   = 90.0 // pedestrians turn around past this
	GroundHeight       = 0.9
	MinLayoutSpacing   = 6.0 // minimum distance between parked vehicles
	DefaultTraffic     = 8
	DefaultPedestrians = 30
	DefaultParked      = 6
)

// On-foot movement
const (
	PlayerWalkSpeed = 6.0   // units per second
	PlayerTurnRate  = 150.0 // degrees per second
	JumpVelocity    = 3.0
	Gravity         = 1.0
	PedWalkMin      = 2.0
	PedWalkMax      = 4.0
	WanderMin       = 2.0 // seconds between heading changes
	WanderMax       = 5.0
	StruckHeight    = 0.2
)

// Vehicle handling
const (
	CoastFactor      = 0.5 // coasting decays by BrakeForce*CoastFactor per second
	CruiseMin        = 8.0
	CruiseMax        = 15.0
	LaneChangeChance = 0.01 // per fixed tick
	LaneChangeYaw    = 30.0 // degrees
	RideHeight       = 0.5
)

// Possession
const (
	PossessRange = 3.0
	ExitOffset   = 2.0 // lateral distance along the vehicle's right vector
)

// Threat and pursuit
const (
	MaxThreatLevel    = 5
	DecayChance       = 0.001 // per fixed tick
	UnitsPerLevel     = 3
	MaxSpawnPerCall   = 3
	SpawnSpread       = 40.0
	ChaseSpeed        = 40.0
	ChaseStandoff     = 8.0
	CaptureRadius     = 2.0
	HitRadius         = 3.0
	HitSpeedThreshold = 5.0
	HitPenalty        = 100 // reported with hit events, charged by the caller
	BustPenalty       = 500
)

// Timing
const (
	TickRate      = 20 // fixed ticks per second
	TickInterval  = time.Second / TickRate
	MaxFrameDelta = 0.25 // seconds; longer frames are clamped
	MaxTicksFrame = 8    // fixed ticks evaluated per frame at most
)
