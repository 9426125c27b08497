package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherSpawn(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	d := NewDispatcher()
	origin := Vec3{X: -60, Z: 55}
	th := NewThreat(origin, CaptureResetDespawn)

	assert.Empty(t, d.Spawn(th, rng), "nothing to spawn when quiet")

	th.Escalate(1)
	units := d.Spawn(th, rng)
	require.Len(t, units, UnitsPerLevel)
	for _, u := range units {
		assert.Equal(t, KindPolice, u.Kind)
		assert.LessOrEqual(t, abs(u.Position.X-origin.X), SpawnSpread)
		assert.LessOrEqual(t, abs(u.Position.Z-origin.Z), SpawnSpread)
		assert.GreaterOrEqual(t, u.MaxSpeed, ChaseSpeed)
	}

	assert.Empty(t, d.Spawn(th, rng), "already at capacity")
}

func TestDispatcherSpawn_PerCallLimit(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	d := NewDispatcher()
	th := NewThreat(Vec3{}, CaptureResetDespawn)
	th.Escalate(MaxThreatLevel)

	calls := 0
	for th.UnitCount() < th.Capacity() {
		spawned := d.Spawn(th, rng)
		require.NotEmpty(t, spawned)
		assert.LessOrEqual(t, len(spawned), MaxSpawnPerCall)
		calls++
	}
	assert.Equal(t, MaxThreatLevel*UnitsPerLevel/MaxSpawnPerCall, calls)
	assert.Equal(t, th.Capacity(), th.UnitCount())
}

func TestDispatcherChase(t *testing.T) {
	d := NewDispatcher()

	t.Run("closes on a distant target", func(t *testing.T) {
		u := &PursuitUnit{Vehicle: *NewVehicle(KindPolice, Vec3{}, 270)}
		target := newActor(Vec3{Z: 100}, 0)

		require.True(t, d.Chase(u, &target, 0.1))
		assert.InDelta(t, 0, u.Heading, 1e-9)
		assert.InDelta(t, ChaseSpeed*0.1, u.Position.Z, 1e-9)
		assert.Equal(t, target.ID, u.TargetID())
	})

	t.Run("long frames stop at the standoff", func(t *testing.T) {
		tests := []struct {
			name     string
			start    float64
			dt       float64
			expected float64
		}{
			{"max frame from just outside", -(ChaseStandoff + 1), MaxFrameDelta, ChaseStandoff},
			{"slow tick rate", -(ChaseStandoff + 3), 0.1, ChaseStandoff},
			{"short frame falls short", -(ChaseStandoff + 10), 0.05, ChaseStandoff + 10 - ChaseSpeed*0.05},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				u := &PursuitUnit{Vehicle: *NewVehicle(KindPolice, Vec3{Z: tc.start}, 0)}
				target := newActor(Vec3{}, 0)

				require.True(t, d.Chase(u, &target, tc.dt))
				assert.InDelta(t, tc.expected, Distance(u.Position, target.Position), 1e-9)
				assert.False(t, d.Chase(u, &target, tc.dt), "holds once at the standoff")
			})
		}
	})

	t.Run("holds inside standoff", func(t *testing.T) {
		u := &PursuitUnit{Vehicle: *NewVehicle(KindPolice, Vec3{}, 0)}
		u.Speed = 10
		target := newActor(Vec3{X: ChaseStandoff - 1}, 0)

		assert.False(t, d.Chase(u, &target, 0.1))
		assert.Equal(t, Vec3{}, u.Position)
		assert.Equal(t, 0.0, u.Speed)
	})
}

func TestDispatcherChaseAll(t *testing.T) {
	d := NewDispatcher()
	p := NewPlayer(Vec3{Z: -70})
	th := newWantedThreat(t, 1, CaptureResetDespawn)

	t.Run("targets the player on foot", func(t *testing.T) {
		d.ChaseAll(th, p, 0.05)
		for _, u := range th.Units() {
			assert.Equal(t, p.ID, u.TargetID())
		}
	})

	t.Run("targets the possessed vehicle", func(t *testing.T) {
		v := NewVehicle(KindCar, Vec3{X: 1, Z: -70}, 0)
		require.NotNil(t, NewPossession().TryPossess(p, VehiclesAsCandidates([]*Vehicle{v})))

		d.ChaseAll(th, p, 0.05)
		for _, u := range th.Units() {
			assert.Equal(t, v.ID, u.TargetID())
		}
	})
}

func TestDispatcherChaseAll_Dormant(t *testing.T) {
	d := NewDispatcher()
	p := NewPlayer(Vec3{Z: -70})
	th := newWantedThreat(t, 1, CaptureResetOnly)
	_, _ = th.Capture()
	require.Equal(t, UnitsPerLevel, th.UnitCount())

	before := th.Units()[0].Position
	d.ChaseAll(th, p, 0.5)
	for _, u := range th.Units() {
		assert.Empty(t, u.TargetID())
		assert.Equal(t, 0.0, u.Speed)
	}
	assert.Equal(t, before, th.Units()[0].Position)
}
