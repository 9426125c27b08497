package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryPossess(t *testing.T) {
	m := NewPossession()
	p := NewPlayer(Vec3{})
	far := NewVehicle(KindCar, Vec3{X: 10}, 0)
	near := NewVehicle(KindCar, Vec3{X: 2}, 0)
	near.Speed = 5

	v := m.TryPossess(p, VehiclesAsCandidates([]*Vehicle{far, near}))
	require.NotNil(t, v)
	assert.Same(t, near, v)
	assert.Same(t, near, p.Possessed())
	assert.Same(t, p, near.Driver())
	assert.False(t, p.Visible)
	assert.False(t, p.Collidable)
	assert.Equal(t, 0.0, near.Speed)
	assert.Nil(t, far.Driver())
}

func TestTryPossess_Rejected(t *testing.T) {
	m := NewPossession()

	t.Run("nothing in range", func(t *testing.T) {
		p := NewPlayer(Vec3{})
		v := NewVehicle(KindCar, Vec3{Z: PossessRange + 0.1}, 0)
		assert.Nil(t, m.TryPossess(p, VehiclesAsCandidates([]*Vehicle{v})))
		assert.False(t, p.IsDriving())
		assert.True(t, p.Visible)
	})

	t.Run("already driving", func(t *testing.T) {
		p := NewPlayer(Vec3{})
		first := NewVehicle(KindCar, Vec3{X: 1}, 0)
		second := NewVehicle(KindCar, Vec3{X: -1}, 0)
		candidates := VehiclesAsCandidates([]*Vehicle{first, second})

		require.NotNil(t, m.TryPossess(p, candidates))
		assert.Nil(t, m.TryPossess(p, candidates))
		assert.Same(t, first, p.Possessed())
		assert.Nil(t, second.Driver())
	})

	t.Run("vehicle taken", func(t *testing.T) {
		other := NewPlayer(Vec3{})
		v := NewVehicle(KindCar, Vec3{X: 1}, 0)
		require.NotNil(t, m.TryPossess(other, VehiclesAsCandidates([]*Vehicle{v})))

		p := NewPlayer(Vec3{})
		assert.Nil(t, m.TryPossess(p, VehiclesAsCandidates([]*Vehicle{v})))
		assert.Same(t, other, v.Driver())
	})

	t.Run("height is ignored", func(t *testing.T) {
		p := NewPlayer(Vec3{})
		v := NewVehicle(KindCar, Vec3{X: 1, Y: 20}, 0)
		assert.NotNil(t, m.TryPossess(p, VehiclesAsCandidates([]*Vehicle{v})))
	})
}

func TestRelease(t *testing.T) {
	m := NewPossession()
	p := NewPlayer(Vec3{})
	v := NewVehicle(KindCar, Vec3{X: 1, Y: RideHeight}, 0)
	v.CruiseSpeed = 10
	require.NotNil(t, m.TryPossess(p, VehiclesAsCandidates([]*Vehicle{v})))

	v.Speed = 12
	v.Position = Vec3{X: 20, Y: RideHeight, Z: 30}

	got := m.Release(p)
	require.Same(t, v, got)
	assert.False(t, p.IsDriving())
	assert.Nil(t, v.Driver())
	assert.True(t, p.Visible)
	assert.True(t, p.Collidable)

	// heading 0 puts the right side on +X
	assert.InDelta(t, 20+ExitOffset, p.Position.X, 1e-9)
	assert.InDelta(t, 30, p.Position.Z, 1e-9)
	assert.Equal(t, GroundHeight, p.Position.Y)
	assert.Equal(t, v.Heading, p.Heading)

	assert.Equal(t, 0.0, v.Speed)
	assert.Equal(t, 0.0, v.CruiseSpeed)
	assert.Equal(t, DriveIdle, v.State())
}

func TestRelease_OnFoot(t *testing.T) {
	m := NewPossession()
	p := NewPlayer(Vec3{X: 5})

	assert.Nil(t, m.Release(p))
	assert.Equal(t, 5.0, p.Position.X)
	assert.True(t, p.Visible)
}

func TestPossession_RoundTrip(t *testing.T) {
	m := NewPossession()
	p := NewPlayer(Vec3{})
	p.Visible = false
	v := NewVehicle(KindCar, Vec3{X: 1}, 90)

	require.NotNil(t, m.TryPossess(p, VehiclesAsCandidates([]*Vehicle{v})))
	require.NotNil(t, m.Release(p))
	assert.Nil(t, m.Release(p))

	// visibility is restored to what it was, not forced on
	assert.False(t, p.Visible)
	assert.True(t, p.Collidable)

	require.NotNil(t, m.TryPossess(p, VehiclesAsCandidates([]*Vehicle{v})))
	assert.Same(t, v, p.Possessed())
}
