package game

import (
	"math/rand"
	"time"
)

// Options tune how a world reacts. The zero value uses the defaults.
type Options struct {
	Seed          int64
	CapturePolicy CapturePolicy
	StrikePolicy  StrikePolicy
	DebugControls bool
	TickInterval  time.Duration
}

// Input is the held movement input for the player. Forward drives the throttle
// and Yaw the steering while the player is in a vehicle; Strafe only applies on foot.
type Input struct {
	Forward float64 `json:"forward"`
	Strafe  float64 `json:"strafe"`
	Yaw     float64 `json:"yaw"`
}

type controlRequest int

const (
	controlNone controlRequest = iota
	controlPossess
	controlRelease
)

// World is one independent simulation: a player, ambient traffic and
// pedestrians, and the police response. It is not safe for concurrent use;
// callers serialize access.
type World struct {
	Player *Player
	Threat *Threat

	vehicles    []*Vehicle
	pedestrians []*Pedestrian
	layout      *Layout

	possession *Possession
	dispatcher *Dispatcher
	rng        *rand.Rand
	fixed      *FixedStep
	strike     StrikePolicy
	debug      bool

	input      Input
	jump       bool
	control    controlRequest
	debugDelta int

	frame   uint64
	elapsed float64
}

// NewWorld builds a world from a layout.
func NewWorld(l *Layout, opts Options) *World {
	interval := opts.TickInterval
	if interval <= 0 {
		interval = TickInterval
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	w := &World{
		Player:     NewPlayer(l.PlayerStart),
		Threat:     NewThreat(l.Origin, opts.CapturePolicy),
		layout:     l,
		possession: NewPossession(),
		dispatcher: NewDispatcher(),
		rng:        rng,
		fixed:      NewFixedStep(interval),
		strike:     opts.StrikePolicy,
		debug:      opts.DebugControls,
	}

	for _, p := range l.Parked {
		pos := p.Position
		pos.Y = RideHeight
		w.AddVehicle(NewVehicle(p.Kind, pos, p.Heading))
	}
	for i := 0; i < l.Traffic; i++ {
		pos := l.RandomPoint(rng)
		pos.Y = RideHeight
		v := NewVehicle(KindTraffic, pos, float64(rng.Intn(4))*90)
		v.CruiseSpeed = CruiseMin + rng.Float64()*(CruiseMax-CruiseMin)
		w.AddVehicle(v)
	}
	for i := 0; i < l.Pedestrians; i++ {
		w.AddPedestrian(NewPedestrian(l.RandomPoint(rng), rng))
	}
	return w
}

// AddVehicle appends a vehicle to the world in insertion order.
func (w *World) AddVehicle(v *Vehicle) {
	w.vehicles = append(w.vehicles, v)
}

// AddPedestrian appends a pedestrian to the world in insertion order.
func (w *World) AddPedestrian(p *Pedestrian) {
	w.pedestrians = append(w.pedestrians, p)
}

// RemoveVehicle destroys a vehicle, forcing the player out first if driving it.
func (w *World) RemoveVehicle(id string) bool {
	for i, v := range w.vehicles {
		if v.ID != id {
			continue
		}
		if v.driver != nil {
			w.possession.Release(v.driver)
		}
		w.vehicles = append(w.vehicles[:i], w.vehicles[i+1:]...)
		return true
	}
	return false
}

func (w *World) Vehicles() []*Vehicle       { return w.vehicles }
func (w *World) Pedestrians() []*Pedestrian { return w.pedestrians }
func (w *World) Layout() *Layout            { return w.layout }
func (w *World) Frame() uint64              { return w.frame }
func (w *World) DebugControls() bool        { return w.debug }

// RequestMove sets the held movement input until the next RequestMove.
func (w *World) RequestMove(forward, strafe, yaw float64) {
	w.input = Input{Forward: clampAxis(forward), Strafe: clampAxis(strafe), Yaw: clampAxis(yaw)}
}

// RequestJump asks for a jump on the next frame.
func (w *World) RequestJump() {
	w.jump = true
}

// RequestPossess asks to enter the nearest vehicle at the end of the next frame.
// A later RequestRelease in the same frame replaces it.
func (w *World) RequestPossess() {
	w.control = controlPossess
}

// RequestRelease asks to leave the current vehicle at the end of the next frame.
func (w *World) RequestRelease() {
	w.control = controlRelease
}

// ForceEscalate raises the threat level on the next frame. It reports false
// when debug controls are disabled.
func (w *World) ForceEscalate() bool {
	if !w.debug {
		return false
	}
	w.debugDelta++
	return true
}

// ForceDeescalate lowers the threat level on the next frame. It reports false
// when debug controls are disabled.
func (w *World) ForceDeescalate() bool {
	if !w.debug {
		return false
	}
	w.debugDelta--
	return true
}

// Step advances the world by one frame of dt seconds and returns what happened.
//
// Order: input and AI motion, hit registration, threat transitions, dispatch
// and chase, capture, and finally any control transfer requested this frame.
func (w *World) Step(dt float64) []Event {
	dt = ClampFrame(dt)
	w.frame++
	w.elapsed += dt

	var events []Event

	w.movePlayer(dt)
	for _, p := range w.pedestrians {
		p.Wander(w.rng, w.wanderExtent(), dt)
	}
	for _, v := range w.vehicles {
		v.Cruise(w.layout.HalfExtent, dt)
	}

	escalated := false
	for _, h := range ProcessHits(w.vehicles, w.pedestrians, w.Threat) {
		events = append(events, Event{
			Kind:     EventHit,
			Level:    w.Threat.Level(),
			ActorID:  h.VehicleID,
			Position: h.Position,
			Count:    len(h.PedestrianIDs),
			Penalty:  h.Penalty,
		})
		escalated = true
	}
	switch w.strike {
	case StrikeRemove:
		w.pedestrians = RemoveStruck(w.pedestrians)
	case StrikeRespawn:
		RespawnStruck(w.pedestrians, w.layout, w.rng)
	}
	if escalated {
		events = append(events, w.levelEvent(EventEscalated))
	}
	events = append(events, w.applyDebug()...)

	for i, n := 0, w.fixed.Advance(dt); i < n; i++ {
		if ok, retired := w.Threat.Decay(w.rng); ok {
			ev := w.levelEvent(EventDeescalated)
			ev.Count = len(retired)
			events = append(events, ev)
		}
		for _, v := range w.vehicles {
			v.ChangeLane(w.rng)
		}
		events = append(events, w.spawn()...)
	}
	if escalated {
		events = append(events, w.spawn()...)
	}

	w.dispatcher.ChaseAll(w.Threat, w.Player, dt)
	if b := ProcessBust(w.Threat, w.Player); b != nil {
		events = append(events, Event{
			Kind:     EventBusted,
			Level:    b.LevelTo,
			ActorID:  b.UnitID,
			Position: w.Player.Position,
			Count:    len(b.Retired),
			Penalty:  b.Penalty,
		})
	}

	if ev, ok := w.applyControl(); ok {
		events = append(events, ev)
	}
	return events
}

func (w *World) movePlayer(dt float64) {
	in := w.input
	if v := w.Player.Possessed(); v != nil {
		w.jump = false
		v.Drive(in.Forward, in.Yaw, dt)
		// the hidden body rides along so release and capture see the right place
		w.Player.Position = v.Position
		w.Player.Heading = v.Heading
		return
	}
	w.Player.Walk(in.Forward, in.Strafe, in.Yaw, dt)
	if w.jump {
		w.Player.Jump()
		w.jump = false
	}
	w.Player.ApplyGravity(dt)
}

// pedestrians roam a margin past the traffic bounds
func (w *World) wanderExtent() float64 {
	return w.layout.HalfExtent + WanderHalfExtent - WorldHalfExtent
}

func (w *World) applyDebug() []Event {
	var events []Event
	for ; w.debugDelta > 0; w.debugDelta-- {
		if w.Threat.ForceEscalate() {
			events = append(events, w.levelEvent(EventEscalated))
			events = append(events, w.spawn()...)
		}
	}
	for ; w.debugDelta < 0; w.debugDelta++ {
		if ok, retired := w.Threat.ForceDeescalate(); ok {
			ev := w.levelEvent(EventDeescalated)
			ev.Count = len(retired)
			events = append(events, ev)
		}
	}
	return events
}

func (w *World) spawn() []Event {
	units := w.dispatcher.Spawn(w.Threat, w.rng)
	if len(units) == 0 {
		return nil
	}
	return []Event{{
		Kind:     EventSpawned,
		Level:    w.Threat.Level(),
		Position: w.Threat.Origin(),
		Count:    len(units),
	}}
}

func (w *World) applyControl() (Event, bool) {
	req := w.control
	w.control = controlNone

	switch req {
	case controlPossess:
		v := w.possession.TryPossess(w.Player, VehiclesAsCandidates(w.vehicles))
		if v == nil {
			return Event{}, false
		}
		return Event{Kind: EventPossessed, Level: w.Threat.Level(), ActorID: v.ID, Position: v.Position}, true
	case controlRelease:
		v := w.possession.Release(w.Player)
		if v == nil {
			return Event{}, false
		}
		return Event{Kind: EventReleased, Level: w.Threat.Level(), ActorID: v.ID, Position: w.Player.Position}, true
	}
	return Event{}, false
}

func (w *World) levelEvent(kind EventKind) Event {
	return Event{Kind: kind, Level: w.Threat.Level(), Position: w.Player.Focus()}
}

// Snapshot copies the public state of the world.
func (w *World) Snapshot() Snapshot {
	p := w.Player
	s := Snapshot{
		Frame:   w.frame,
		Elapsed: w.elapsed,
		Player: PlayerView{
			ID:       p.ID,
			Position: p.Position,
			Heading:  p.Heading,
			Visible:  p.Visible,
			Grounded: p.Grounded,
		},
		Vehicles:    make([]VehicleView, 0, len(w.vehicles)),
		Pedestrians: make([]PedestrianView, 0, len(w.pedestrians)),
		Threat: ThreatView{
			Level:  w.Threat.Level(),
			Origin: w.Threat.Origin(),
			Units:  make([]UnitView, 0, w.Threat.UnitCount()),
		},
	}
	if v := p.Possessed(); v != nil {
		s.Player.VehicleID = v.ID
	}
	for _, v := range w.vehicles {
		s.Vehicles = append(s.Vehicles, viewVehicle(v))
	}
	for _, ped := range w.pedestrians {
		s.Pedestrians = append(s.Pedestrians, PedestrianView{
			ID:       ped.ID,
			Position: ped.Position,
			Heading:  ped.Heading,
			Alive:    ped.Alive,
		})
	}
	for _, u := range w.Threat.units {
		s.Threat.Units = append(s.Threat.Units, UnitView{
			ID:       u.ID,
			Position: u.Position,
			Heading:  u.Heading,
			TargetID: u.TargetID(),
		})
	}
	return s
}
