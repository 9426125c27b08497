package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessBust(t *testing.T) {
	th := newWantedThreat(t, 3, CaptureResetDespawn)
	p := NewPlayer(Vec3{X: -40, Z: -40})

	assert.Nil(t, ProcessBust(th, p), "no unit nearby")

	captor := th.Units()[4]
	for i, u := range th.Units() {
		if u != captor {
			u.Position = Vec3{X: 1000 + float64(i)*10}
		}
	}
	p.Position = captor.Position.Add(Vec3{X: CaptureRadius - 0.5})

	ev := ProcessBust(th, p)
	require.NotNil(t, ev)
	assert.Equal(t, captor.ID, ev.UnitID)
	assert.Equal(t, 3, ev.LevelFrom)
	assert.Equal(t, 0, ev.LevelTo)
	assert.Len(t, ev.Retired, 3*UnitsPerLevel)
	assert.Equal(t, BustPenalty, ev.Penalty)

	assert.Equal(t, 0, th.Level())
	assert.Equal(t, 0, th.UnitCount())
	assert.Nil(t, ProcessBust(th, p))
}

func TestFindCaptor(t *testing.T) {
	t.Run("driver cannot be busted", func(t *testing.T) {
		th := newWantedThreat(t, 1, CaptureResetDespawn)
		u := th.Units()[0]
		p := NewPlayer(u.Position)
		v := NewVehicle(KindCar, u.Position, 0)
		require.NotNil(t, NewPossession().TryPossess(p, VehiclesAsCandidates([]*Vehicle{v})))

		assert.Nil(t, FindCaptor(th, p))
	})

	t.Run("dormant units do not bust", func(t *testing.T) {
		th := newWantedThreat(t, 1, CaptureResetOnly)
		th.Capture()
		p := NewPlayer(th.Units()[0].Position)

		assert.Nil(t, FindCaptor(th, p))
	})

	t.Run("outside capture radius", func(t *testing.T) {
		th := newWantedThreat(t, 1, CaptureResetDespawn)
		u := th.Units()[0]
		p := NewPlayer(u.Position.Add(Vec3{Z: CaptureRadius + 0.1}))

		for _, other := range th.Units()[1:] {
			other.Position = Vec3{X: -1000}
		}
		assert.Nil(t, FindCaptor(th, p))
	})
}
