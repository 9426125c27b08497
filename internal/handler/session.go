package handler

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/ugaemi/citypursuit/internal/session"
	"github.com/ugaemi/citypursuit/internal/ws"
)

// SessionHandler handles session membership messages.
type SessionHandler struct {
	sm     *session.Manager
	router *Router
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sm *session.Manager, router *Router) *SessionHandler {
	return &SessionHandler{
		sm:     sm,
		router: router,
	}
}

type sessionJoinedResponse struct {
	Code       string `json:"code"`
	ClientID   string `json:"client_id"`
	Controller bool   `json:"controller"`
}

// HandleCreateSession creates a session, makes the client its controller and
// starts the tick loop.
func (h *SessionHandler) HandleCreateSession(client *ws.Client, _ ws.Message) {
	if h.router.GetSessionCode(client.ID) != "" {
		client.SendMessage(ws.NewErrorMessage("already in a session"))
		return
	}

	s := h.sm.CreateSession()
	controller := s.AddClient(client)
	h.router.RegisterClient(client.ID, s.Code)

	resp, _ := ws.NewMessage(ws.TypeCreateSession, sessionJoinedResponse{
		Code:       s.Code,
		ClientID:   client.ID,
		Controller: controller,
	})
	client.SendMessage(resp)

	h.broadcastSessionInfo(s)
	s.Start()

	slog.Info("client created session", "client", client.ID, "session", s.Code)
}

type joinSessionRequest struct {
	Code string `json:"code"`
}

// HandleJoinSession attaches the client to an existing session as a viewer.
func (h *SessionHandler) HandleJoinSession(client *ws.Client, msg ws.Message) {
	var req joinSessionRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Code == "" {
		client.SendMessage(ws.NewErrorMessage("code is required"))
		return
	}
	if h.router.GetSessionCode(client.ID) != "" {
		client.SendMessage(ws.NewErrorMessage("already in a session"))
		return
	}

	s := h.sm.GetSession(strings.ToUpper(req.Code))
	if s == nil {
		client.SendMessage(ws.NewErrorMessage("session not found"))
		return
	}

	controller := s.AddClient(client)
	h.router.RegisterClient(client.ID, s.Code)

	resp, _ := ws.NewMessage(ws.TypeJoinSession, sessionJoinedResponse{
		Code:       s.Code,
		ClientID:   client.ID,
		Controller: controller,
	})
	client.SendMessage(resp)

	h.broadcastSessionInfo(s)

	slog.Info("client joined session", "client", client.ID, "session", s.Code, "controller", controller)
}

// HandleLeaveSession handles a client leaving its session.
func (h *SessionHandler) HandleLeaveSession(client *ws.Client, _ ws.Message) {
	h.removeClient(client)
}

// HandleDisconnect handles client disconnection.
func (h *SessionHandler) HandleDisconnect(client *ws.Client) {
	h.removeClient(client)
}

func (h *SessionHandler) removeClient(client *ws.Client) {
	code := h.router.GetSessionCode(client.ID)
	if code == "" {
		return
	}

	if s := h.sm.GetSession(code); s != nil {
		s.RemoveClient(client.ID)
		if s.IsEmpty() {
			h.sm.RemoveSession(s.Code)
		} else {
			h.broadcastSessionInfo(s)
		}
	}

	h.router.UnregisterClient(client.ID)
	slog.Info("client left session", "client", client.ID, "session", code)
}

func (h *SessionHandler) broadcastSessionInfo(s *session.Session) {
	resp, _ := ws.NewMessage(ws.TypeSessionInfo, s.Info())
	s.BroadcastMessage(resp)
}
