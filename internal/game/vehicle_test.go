package game

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVehicle_Presets(t *testing.T) {
	tests := []struct {
		kind     VehicleKind
		maxSpeed float64
	}{
		{KindCar, 15},
		{KindPolice, 18},
		{KindSport, 25},
		{VehicleKind(99), 15},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			v := NewVehicle(tt.kind, Vec3{}, 0)
			assert.Equal(t, tt.maxSpeed, v.MaxSpeed)
			assert.Equal(t, -tt.maxSpeed/2, v.MinSpeed())
			assert.False(t, v.IsDriven())
			assert.Equal(t, DriveIdle, v.State())
		})
	}
}

func TestVehicleDrive_Accelerate(t *testing.T) {
	v := NewVehicle(KindCar, Vec3{}, 0)

	for i := 0; i < TickRate; i++ {
		v.Drive(1, 0, TickInterval.Seconds())
	}

	assert.InDelta(t, 8, v.Speed, 1e-6)
	assert.Equal(t, DriveAccelerating, v.State())
	assert.Greater(t, v.Position.Z, 0.0)
	assert.InDelta(t, 0, v.Position.X, 1e-9)
}

func TestVehicleDrive_SpeedBounds(t *testing.T) {
	v := NewVehicle(KindCar, Vec3{}, 0)

	for i := 0; i < 100; i++ {
		v.Drive(1, 0, 0.1)
	}
	assert.Equal(t, v.MaxSpeed, v.Speed)

	for i := 0; i < 200; i++ {
		v.Drive(-1, 0, 0.1)
	}
	assert.Equal(t, v.MinSpeed(), v.Speed)
	assert.Equal(t, DriveBraking, v.State())
}

func TestVehicleDrive_Coast(t *testing.T) {
	t.Run("slows toward zero", func(t *testing.T) {
		v := NewVehicle(KindCar, Vec3{}, 0)
		v.Speed = 10
		v.Drive(0, 0, 0.1)
		// 12 * 0.5 * 0.1
		assert.InDelta(t, 9.4, v.Speed, 1e-9)
		assert.Equal(t, DriveCoasting, v.State())
	})

	t.Run("does not overshoot", func(t *testing.T) {
		v := NewVehicle(KindCar, Vec3{}, 0)
		v.Speed = 0.1
		v.Drive(0, 0, 1)
		assert.Equal(t, 0.0, v.Speed)
		assert.Equal(t, DriveIdle, v.State())
	})

	t.Run("reverse coasts up to zero", func(t *testing.T) {
		v := NewVehicle(KindCar, Vec3{}, 0)
		v.Speed = -0.1
		v.Drive(0, 0, 1)
		assert.Equal(t, 0.0, v.Speed)
	})
}

func TestVehicleDrive_Steering(t *testing.T) {
	t.Run("no turn at rest", func(t *testing.T) {
		v := NewVehicle(KindCar, Vec3{}, 0)
		v.Drive(0, 1, 0.5)
		assert.Equal(t, 0.0, v.Heading)
	})

	t.Run("turn scales with speed", func(t *testing.T) {
		v := NewVehicle(KindCar, Vec3{}, 0)
		v.Speed = v.MaxSpeed
		v.Drive(1, 1, 0.5)
		assert.InDelta(t, 30, v.Heading, 1e-9)
	})
}

func TestVehicleCruise(t *testing.T) {
	t.Run("parked stays", func(t *testing.T) {
		v := NewVehicle(KindTraffic, Vec3{}, 0)
		v.Cruise(WorldHalfExtent, 1)
		assert.Equal(t, Vec3{}, v.Position)
	})

	t.Run("moves at cruise speed", func(t *testing.T) {
		v := NewVehicle(KindTraffic, Vec3{}, 90)
		v.CruiseSpeed = 10
		v.Cruise(WorldHalfExtent, 0.5)
		assert.InDelta(t, 5, v.Position.X, 1e-9)
		assert.Equal(t, 10.0, v.Speed)
	})

	t.Run("turns around at the edge", func(t *testing.T) {
		v := NewVehicle(KindTraffic, Vec3{X: 79.9}, 90)
		v.CruiseSpeed = 10
		v.Cruise(WorldHalfExtent, 0.1)
		assert.InDelta(t, 270, v.Heading, 1e-9)
	})

	t.Run("driven vehicle ignores autonomy", func(t *testing.T) {
		v := NewVehicle(KindTraffic, Vec3{}, 0)
		v.CruiseSpeed = 10
		v.driver = NewPlayer(Vec3{})
		v.Cruise(WorldHalfExtent, 1)
		assert.Equal(t, 0.0, v.Position.Z)
	})
}

func TestVehicleChangeLane(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	parked := NewVehicle(KindTraffic, Vec3{}, 0)
	for i := 0; i < 1000; i++ {
		require.False(t, parked.ChangeLane(rng))
	}

	v := NewVehicle(KindTraffic, Vec3{}, 0)
	v.CruiseSpeed = 10
	changed := 0
	for i := 0; i < 10000; i++ {
		before := v.Heading
		if v.ChangeLane(rng) {
			changed++
			delta := NormalizeHeading(v.Heading - before)
			if delta > 180 {
				delta = 360 - delta
			}
			assert.LessOrEqual(t, delta, LaneChangeYaw)
		}
	}
	assert.Greater(t, changed, 0)
	assert.Less(t, changed, 1000)
}

func TestVehicleKind_Text(t *testing.T) {
	var spawn VehicleSpawn
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"sport"}`), &spawn))
	assert.Equal(t, KindSport, spawn.Kind)

	data, err := json.Marshal(VehicleView{Kind: KindPolice, State: DriveBraking})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"police"`)
	assert.Contains(t, string(data), `"state":"braking"`)
}

func TestDriveState_JSON(t *testing.T) {
	for _, s := range []DriveState{DriveIdle, DriveAccelerating, DriveBraking, DriveCoasting} {
		data, err := json.Marshal(s)
		require.NoError(t, err)

		var got DriveState
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, s, got)
	}
}
