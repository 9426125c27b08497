package session

import "github.com/ugaemi/citypursuit/internal/game"

const (
	StartingBalance = 1000
	DebugGrant      = 1000
)

// Wallet is the player's money. Hit and bust penalties are debited from it
// and it never goes below zero.
type Wallet struct {
	balance int
}

func newWallet() *Wallet {
	return &Wallet{balance: StartingBalance}
}

func (w *Wallet) Balance() int { return w.balance }

// Charge debits the penalty of every event and returns the amount actually
// taken.
func (w *Wallet) Charge(events []game.Event) int {
	before := w.balance
	for _, ev := range events {
		if ev.Penalty > 0 {
			w.balance = max(0, w.balance-ev.Penalty)
		}
	}
	return before - w.balance
}

func (w *Wallet) Credit(amount int) {
	if amount > 0 {
		w.balance += amount
	}
}

// BalanceMessage is pushed to clients whenever the balance changes.
type BalanceMessage struct {
	Balance int `json:"balance"`
	Delta   int `json:"delta"`
}
