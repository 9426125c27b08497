package game

import (
	"encoding/json"
	"fmt"
)

type EventKind int

const (
	EventHit EventKind = iota
	EventEscalated
	EventDeescalated
	EventSpawned
	EventBusted
	EventPossessed
	EventReleased
)

func (k EventKind) String() string {
	switch k {
	case EventHit:
		return "hit"
	case EventEscalated:
		return "escalated"
	case EventDeescalated:
		return "deescalated"
	case EventSpawned:
		return "spawned"
	case EventBusted:
		return "busted"
	case EventPossessed:
		return "possessed"
	case EventReleased:
		return "released"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes EventKind as a string.
func (k EventKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON deserializes EventKind from a string.
func (k *EventKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for kind := EventHit; kind <= EventReleased; kind++ {
		if kind.String() == s {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", s)
}

// Event is something observers of a world may want to react to: a HUD
// notification, a money penalty, an incident record.
type Event struct {
	Kind     EventKind `json:"kind"`
	Level    int       `json:"level"` // threat level after the event
	ActorID  string    `json:"actor_id,omitempty"`
	Position Vec3      `json:"position"`
	Count    int       `json:"count,omitempty"`
	Penalty  int       `json:"penalty,omitempty"`
}

// Snapshot is the read-only public state of a world after a frame.
type Snapshot struct {
	Frame       uint64           `json:"frame"`
	Elapsed     float64          `json:"elapsed"`
	Player      PlayerView       `json:"player"`
	Vehicles    []VehicleView    `json:"vehicles"`
	Pedestrians []PedestrianView `json:"pedestrians"`
	Threat      ThreatView       `json:"threat"`
}

type PlayerView struct {
	ID        string  `json:"id"`
	Position  Vec3    `json:"position"`
	Heading   float64 `json:"heading"`
	Visible   bool    `json:"visible"`
	Grounded  bool    `json:"grounded"`
	VehicleID string  `json:"vehicle_id,omitempty"`
}

type VehicleView struct {
	ID       string      `json:"id"`
	Kind     VehicleKind `json:"kind"`
	Position Vec3        `json:"position"`
	Heading  float64     `json:"heading"`
	Speed    float64     `json:"speed"`
	State    DriveState  `json:"state"`
	Driven   bool        `json:"driven"`
}

type PedestrianView struct {
	ID       string  `json:"id"`
	Position Vec3    `json:"position"`
	Heading  float64 `json:"heading"`
	Alive    bool    `json:"alive"`
}

type ThreatView struct {
	Level  int        `json:"level"`
	Origin Vec3       `json:"origin"`
	Units  []UnitView `json:"units"`
}

type UnitView struct {
	ID       string  `json:"id"`
	Position Vec3    `json:"position"`
	Heading  float64 `json:"heading"`
	TargetID string  `json:"target_id,omitempty"`
}

func viewVehicle(v *Vehicle) VehicleView {
	return VehicleView{
		ID:       v.ID,
		Kind:     v.Kind,
		Position: v.Position,
		Heading:  v.Heading,
		Speed:    v.Speed,
		State:    v.state,
		Driven:   v.IsDriven(),
	}
}
