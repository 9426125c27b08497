package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/ugaemi/citypursuit/internal/session"
	"github.com/ugaemi/citypursuit/internal/ws"
)

// ControlHandler forwards player input to the client's session. Results
// arrive asynchronously as snapshot and event messages.
type ControlHandler struct {
	sm     *session.Manager
	router *Router
}

// NewControlHandler creates a new control handler.
func NewControlHandler(sm *session.Manager, router *Router) *ControlHandler {
	return &ControlHandler{
		sm:     sm,
		router: router,
	}
}

func (h *ControlHandler) HandlePossess(client *ws.Client, _ ws.Message) {
	h.apply(client, "possess", (*session.Session).Possess)
}

func (h *ControlHandler) HandleRelease(client *ws.Client, _ ws.Message) {
	h.apply(client, "release", (*session.Session).Release)
}

func (h *ControlHandler) HandleJump(client *ws.Client, _ ws.Message) {
	h.apply(client, "jump", (*session.Session).Jump)
}

func (h *ControlHandler) HandleDebugEscalate(client *ws.Client, _ ws.Message) {
	h.apply(client, "debug_escalate", (*session.Session).Escalate)
}

func (h *ControlHandler) HandleDebugDeescalate(client *ws.Client, _ ws.Message) {
	h.apply(client, "debug_deescalate", (*session.Session).Deescalate)
}

func (h *ControlHandler) HandleDebugMoney(client *ws.Client, _ ws.Message) {
	h.apply(client, "debug_money", (*session.Session).GrantMoney)
}

type moveRequest struct {
	Forward float64 `json:"forward"`
	Strafe  float64 `json:"strafe"`
	Yaw     float64 `json:"yaw"`
}

// HandleMove sets the held movement input. Axes outside [-1, 1] are clamped
// by the world.
func (h *ControlHandler) HandleMove(client *ws.Client, msg ws.Message) {
	var req moveRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid move data"))
		return
	}

	h.apply(client, "move", func(s *session.Session, clientID string) error {
		return s.Move(clientID, req.Forward, req.Strafe, req.Yaw)
	})
}

func (h *ControlHandler) apply(client *ws.Client, action string, fn func(s *session.Session, clientID string) error) {
	s := h.findSession(client)
	if s == nil {
		client.SendMessage(ws.NewErrorMessage("not in a session"))
		return
	}

	if err := fn(s, client.ID); err != nil {
		slog.Debug("control rejected", "client", client.ID, "session", s.Code, "action", action, "error", err)
		client.SendMessage(ws.NewErrorMessage(err.Error()))
	}
}

func (h *ControlHandler) findSession(client *ws.Client) *session.Session {
	code := h.router.GetSessionCode(client.ID)
	if code == "" {
		return nil
	}
	return h.sm.GetSession(code)
}
