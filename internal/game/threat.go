package game

import (
	"encoding/json"
	"math/rand"
)

// CapturePolicy decides how a bust resets the threat level.
type CapturePolicy int

const (
	// CaptureResetDespawn drops the level to zero and retires every unit.
	CaptureResetDespawn CapturePolicy = iota
	// CaptureResetOnly drops the level to zero; units stay but go dormant.
	CaptureResetOnly
	// CaptureStepDown lowers the level by one and retires units above the new cap.
	CaptureStepDown
)

func (c CapturePolicy) String() string {
	switch c {
	case CaptureResetOnly:
		return "reset_only"
	case CaptureStepDown:
		return "step_down"
	default:
		return "reset_despawn"
	}
}

// ParseCapturePolicy maps a policy name to a CapturePolicy. ok is false for unknown names.
func ParseCapturePolicy(s string) (CapturePolicy, bool) {
	switch s {
	case "reset_despawn":
		return CaptureResetDespawn, true
	case "reset_only":
		return CaptureResetOnly, true
	case "step_down":
		return CaptureStepDown, true
	default:
		return CaptureResetDespawn, false
	}
}

// MarshalJSON serializes CapturePolicy as a string.
func (c CapturePolicy) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// Threat is the wanted level of the player and the pursuit units answering it.
// Its fields are only changed through the transition methods below.
type Threat struct {
	level  int
	origin Vec3
	units  []*PursuitUnit
	policy CapturePolicy
}

// NewThreat creates a quiet threat state dispatching from origin.
func NewThreat(origin Vec3, policy CapturePolicy) *Threat {
	return &Threat{origin: origin, policy: policy}
}

func (t *Threat) Level() int            { return t.level }
func (t *Threat) Origin() Vec3          { return t.origin }
func (t *Threat) Policy() CapturePolicy { return t.policy }
func (t *Threat) UnitCount() int        { return len(t.units) }
func (t *Threat) Wanted() bool          { return t.level > 0 }
func (t *Threat) Capacity() int         { return t.level * UnitsPerLevel }

func (t *Threat) Units() []*PursuitUnit {
	out := make([]*PursuitUnit, len(t.units))
	copy(out, t.units)
	return out
}

// Escalate raises the level by amount, saturating at MaxThreatLevel.
// It reports whether the level changed.
func (t *Threat) Escalate(amount int) bool {
	if amount <= 0 || t.level >= MaxThreatLevel {
		return false
	}
	t.level = min(MaxThreatLevel, t.level+amount)
	return true
}

// Decay is evaluated once per fixed tick. With DecayChance the level drops by one.
// Units above the lowered capacity are retired and returned.
func (t *Threat) Decay(rng *rand.Rand) (bool, []*PursuitUnit) {
	if t.level == 0 || rng.Float64() >= DecayChance {
		return false, nil
	}
	return true, t.lower()
}

// ForceEscalate raises the level by one. Debug only.
func (t *Threat) ForceEscalate() bool {
	return t.Escalate(1)
}

// ForceDeescalate lowers the level by one and retires units above the new
// capacity. Debug only.
func (t *Threat) ForceDeescalate() (bool, []*PursuitUnit) {
	if t.level == 0 {
		return false, nil
	}
	return true, t.lower()
}

func (t *Threat) lower() []*PursuitUnit {
	t.level--
	if t.level == 0 {
		return t.despawnAll()
	}
	return t.despawnOver(t.Capacity())
}

// Capture handles a bust according to the policy. It returns false when the
// player was not wanted, plus the units that were retired.
func (t *Threat) Capture() (bool, []*PursuitUnit) {
	if t.level == 0 {
		return false, nil
	}
	switch t.policy {
	case CaptureResetOnly:
		t.level = 0
		return true, nil
	case CaptureStepDown:
		t.level--
		return true, t.despawnOver(t.Capacity())
	default:
		t.level = 0
		return true, t.despawnAll()
	}
}

func (t *Threat) register(u *PursuitUnit) {
	t.units = append(t.units, u)
}

func (t *Threat) despawnAll() []*PursuitUnit {
	gone := t.units
	t.units = nil
	return gone
}

// despawnOver retires the most recently spawned units above limit.
func (t *Threat) despawnOver(limit int) []*PursuitUnit {
	if len(t.units) <= limit {
		return nil
	}
	gone := append([]*PursuitUnit(nil), t.units[limit:]...)
	t.units = t.units[:limit]
	return gone
}
