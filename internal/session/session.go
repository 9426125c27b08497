package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/ugaemi/citypursuit/internal/game"
	"github.com/ugaemi/citypursuit/internal/store"
	"github.com/ugaemi/citypursuit/internal/ws"
)

var (
	ErrNotController = errors.New("only the controller can drive the player")
	ErrDebugDisabled = errors.New("debug controls are disabled")
	ErrEnded         = errors.New("session has ended")
)

// State is the lifecycle of a session.
type State int

const (
	StateWaiting State = iota
	StateRunning
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateRunning:
		return "running"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes State as a string.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Session hosts one world. The first client to join controls the player; the
// rest watch. All access to the world goes through mu.
type Session struct {
	Code  string
	State State

	world        *game.World
	wallet       *Wallet
	controllerID string
	clients      map[string]*ws.Client
	joinOrder    []string

	journal  *journaler
	metrics  *instruments
	interval time.Duration
	stopCh   chan struct{}

	mu sync.RWMutex
}

func newSession(code string, world *game.World, interval time.Duration, journal *journaler, metrics *instruments) *Session {
	return &Session{
		Code:     code,
		State:    StateWaiting,
		world:    world,
		wallet:   newWallet(),
		clients:  make(map[string]*ws.Client),
		journal:  journal,
		metrics:  metrics,
		interval: interval,
	}
}

// AddClient attaches a client and reports whether it became the controller.
func (s *Session) AddClient(client *ws.Client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[client.ID]; !ok {
		s.joinOrder = append(s.joinOrder, client.ID)
	}
	s.clients[client.ID] = client
	if s.controllerID == "" {
		s.controllerID = client.ID
	}
	return s.controllerID == client.ID
}

// RemoveClient detaches a client. Control passes to the longest-connected viewer.
func (s *Session) RemoveClient(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.clients, clientID)
	s.joinOrder = slices.DeleteFunc(s.joinOrder, func(id string) bool { return id == clientID })

	if s.controllerID == clientID {
		s.controllerID = ""
		if len(s.joinOrder) > 0 {
			s.controllerID = s.joinOrder[0]
			slog.Info("session control transferred", "session", s.Code, "client", s.controllerID)
		}
	}
}

// ClientCount returns the number of attached clients.
func (s *Session) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// IsEmpty returns true if no client is attached.
func (s *Session) IsEmpty() bool {
	return s.ClientCount() == 0
}

func (s *Session) HasClient(clientID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.clients[clientID]
	return ok
}

// ControllerID returns the client driving the player, or "" when none.
func (s *Session) ControllerID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.controllerID
}

// Info is the session summary sent to clients.
type Info struct {
	Code         string      `json:"code"`
	State        State       `json:"state"`
	ControllerID string      `json:"controller_id"`
	Clients      int         `json:"clients"`
	Level        int         `json:"level"`
	Balance      int         `json:"balance"`
	Layout       game.Layout `json:"layout"`
}

func (s *Session) Info() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Info{
		Code:         s.Code,
		State:        s.State,
		ControllerID: s.controllerID,
		Clients:      len(s.clients),
		Level:        s.world.Threat.Level(),
		Balance:      s.wallet.Balance(),
		Layout:       *s.world.Layout(),
	}
}

// Snapshot returns the current public state of the world.
func (s *Session) Snapshot() game.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.world.Snapshot()
}

// control runs fn against the world on behalf of the controller.
func (s *Session) control(clientID string, fn func(w *game.World) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State == StateEnded {
		return ErrEnded
	}
	if clientID != s.controllerID {
		return ErrNotController
	}
	return fn(s.world)
}

func (s *Session) Possess(clientID string) error {
	return s.control(clientID, func(w *game.World) error {
		w.RequestPossess()
		return nil
	})
}

func (s *Session) Release(clientID string) error {
	return s.control(clientID, func(w *game.World) error {
		w.RequestRelease()
		return nil
	})
}

// Move sets the held movement input; axes are clamped to [-1, 1].
func (s *Session) Move(clientID string, forward, strafe, yaw float64) error {
	return s.control(clientID, func(w *game.World) error {
		w.RequestMove(forward, strafe, yaw)
		return nil
	})
}

func (s *Session) Jump(clientID string) error {
	return s.control(clientID, func(w *game.World) error {
		w.RequestJump()
		return nil
	})
}

func (s *Session) Escalate(clientID string) error {
	return s.control(clientID, func(w *game.World) error {
		if !w.ForceEscalate() {
			return ErrDebugDisabled
		}
		return nil
	})
}

func (s *Session) Deescalate(clientID string) error {
	return s.control(clientID, func(w *game.World) error {
		if !w.ForceDeescalate() {
			return ErrDebugDisabled
		}
		return nil
	})
}

// GrantMoney credits DebugGrant to the wallet. Debug only.
func (s *Session) GrantMoney(clientID string) error {
	var balance int
	err := s.control(clientID, func(w *game.World) error {
		if !w.DebugControls() {
			return ErrDebugDisabled
		}
		s.wallet.Credit(DebugGrant)
		balance = s.wallet.Balance()
		return nil
	})
	if err != nil {
		return err
	}
	s.broadcastBalance(balance, DebugGrant)
	return nil
}

// Balance returns the wallet balance.
func (s *Session) Balance() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wallet.Balance()
}

func (s *Session) broadcastBalance(balance, delta int) {
	if msg, err := ws.NewMessage(ws.TypeBalance, BalanceMessage{Balance: balance, Delta: delta}); err == nil {
		s.BroadcastMessage(msg)
	}
}

// BroadcastMessage sends a message to every attached client.
func (s *Session) BroadcastMessage(msg ws.Message) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, client := range s.clients {
		client.SendMessage(msg)
	}
}

// Start runs the tick loop until Stop. No-op unless the session is waiting.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State != StateWaiting {
		return
	}
	s.State = StateRunning
	s.stopCh = make(chan struct{})
	s.metrics.sessions.Add(context.Background(), 1)

	go s.loop(s.stopCh)
	slog.Info("session started", "session", s.Code, "tick", s.interval)
}

// Stop ends the tick loop. The session cannot be restarted.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.State != StateRunning {
		s.State = StateEnded
		s.mu.Unlock()
		return
	}
	s.State = StateEnded
	close(s.stopCh)
	s.mu.Unlock()

	s.metrics.sessions.Add(context.Background(), -1)
	slog.Info("session stopped", "session", s.Code)
}

func (s *Session) loop(stopCh <-chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	dt := s.interval.Seconds()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			s.Tick(dt)
		}
	}
}

// Tick steps the world once, charges penalties to the wallet, then publishes
// the snapshot, events and any balance change.
func (s *Session) Tick(dt float64) []game.Event {
	s.mu.Lock()
	if s.State == StateEnded {
		s.mu.Unlock()
		return nil
	}
	events := s.world.Step(dt)
	snap := s.world.Snapshot()
	charged := s.wallet.Charge(events)
	balance := s.wallet.Balance()
	s.mu.Unlock()

	msg, err := ws.NewMessage(ws.TypeSnapshot, snap)
	if err != nil {
		slog.Error("failed to encode snapshot", "session", s.Code, "error", err)
	} else {
		s.BroadcastMessage(msg)
	}

	for _, ev := range events {
		s.logEvent(ev)
		if msg, err := ws.NewMessage(ws.TypeEvent, ev); err == nil {
			s.BroadcastMessage(msg)
		}
	}
	if charged > 0 {
		s.broadcastBalance(balance, -charged)
	}

	ctx := context.Background()
	s.metrics.record(ctx, events)
	s.record(events)
	return events
}

func (s *Session) logEvent(ev game.Event) {
	switch ev.Kind {
	case game.EventBusted:
		slog.Info("player busted", "session", s.Code, "unit", ev.ActorID, "retired", ev.Count)
	case game.EventEscalated, game.EventDeescalated:
		slog.Info("threat level changed", "session", s.Code, "event", ev.Kind.String(), "level", ev.Level)
	default:
		slog.Debug("world event", "session", s.Code, "event", ev.Kind.String(), "actor", ev.ActorID)
	}
}

// journaled lists the event kinds written to the incident journal.
var journaled = map[game.EventKind]bool{
	game.EventHit:       true,
	game.EventBusted:    true,
	game.EventEscalated: true,
}

func (s *Session) record(events []game.Event) {
	if s.journal == nil {
		return
	}
	for _, ev := range events {
		if !journaled[ev.Kind] {
			continue
		}
		inc := store.NewIncident(s.Code, ev.Kind.String(), ev.Level)
		inc.ActorID = ev.ActorID
		inc.X, inc.Y, inc.Z = ev.Position.X, ev.Position.Y, ev.Position.Z
		inc.Penalty = ev.Penalty
		s.journal.enqueue(inc)
	}
}
