package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ugaemi/citypursuit/internal/game"
)

func TestWallet_Charge(t *testing.T) {
	hit := game.Event{Kind: game.EventHit, Penalty: game.HitPenalty}
	bust := game.Event{Kind: game.EventBusted, Penalty: game.BustPenalty}
	spawn := game.Event{Kind: game.EventSpawned, Count: 3}

	tests := []struct {
		name    string
		start   int
		events  []game.Event
		balance int
		debited int
	}{
		{"hit", StartingBalance, []game.Event{hit}, 900, 100},
		{"bust", StartingBalance, []game.Event{bust}, 500, 500},
		{"free events", StartingBalance, []game.Event{spawn}, StartingBalance, 0},
		{"floors at zero", 300, []game.Event{hit, bust}, 0, 300},
		{"already broke", 0, []game.Event{bust}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &Wallet{balance: tt.start}
			assert.Equal(t, tt.debited, w.Charge(tt.events))
			assert.Equal(t, tt.balance, w.Balance())
		})
	}
}

func TestWallet_Credit(t *testing.T) {
	w := newWallet()
	w.Credit(DebugGrant)
	assert.Equal(t, StartingBalance+DebugGrant, w.Balance())

	w.Credit(-50)
	assert.Equal(t, StartingBalance+DebugGrant, w.Balance())
}
