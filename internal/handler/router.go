package handler

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/ugaemi/citypursuit/internal/session"
	"github.com/ugaemi/citypursuit/internal/ws"
)

// Router dispatches incoming messages to the appropriate handler.
type Router struct {
	sessions *SessionHandler
	control  *ControlHandler

	// sessionMap tracks client ID -> session code, shared across handlers.
	sessionMap map[string]string
	mu         sync.RWMutex
}

// NewRouter creates a new message router.
func NewRouter(sm *session.Manager) *Router {
	r := &Router{
		sessionMap: make(map[string]string),
	}
	r.sessions = NewSessionHandler(sm, r)
	r.control = NewControlHandler(sm, r)
	return r
}

// RegisterClient maps a client ID to a session code.
func (r *Router) RegisterClient(clientID, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessionMap[clientID] = code
}

// UnregisterClient removes a client's session mapping.
func (r *Router) UnregisterClient(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessionMap, clientID)
}

// GetSessionCode returns the session code for a client, or empty string if not found.
func (r *Router) GetSessionCode(clientID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessionMap[clientID]
}

// HandleMessage parses and routes an incoming client message.
func (r *Router) HandleMessage(cm *ws.ClientMessage) {
	var msg ws.Message
	if err := json.Unmarshal(cm.Data, &msg); err != nil {
		slog.Warn("invalid message format", "client", cm.Client.ID, "error", err)
		cm.Client.SendMessage(ws.NewErrorMessage("invalid message format"))
		return
	}

	switch msg.Type {
	// Session messages
	case ws.TypeCreateSession:
		r.sessions.HandleCreateSession(cm.Client, msg)
	case ws.TypeJoinSession:
		r.sessions.HandleJoinSession(cm.Client, msg)
	case ws.TypeLeaveSession:
		r.sessions.HandleLeaveSession(cm.Client, msg)

	// Control messages
	case ws.TypePossess:
		r.control.HandlePossess(cm.Client, msg)
	case ws.TypeRelease:
		r.control.HandleRelease(cm.Client, msg)
	case ws.TypeMove:
		r.control.HandleMove(cm.Client, msg)
	case ws.TypeJump:
		r.control.HandleJump(cm.Client, msg)
	case ws.TypeDebugEscalate:
		r.control.HandleDebugEscalate(cm.Client, msg)
	case ws.TypeDebugDeescalate:
		r.control.HandleDebugDeescalate(cm.Client, msg)
	case ws.TypeDebugMoney:
		r.control.HandleDebugMoney(cm.Client, msg)

	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", cm.Client.ID)
		cm.Client.SendMessage(ws.NewErrorMessage("unknown message type: " + msg.Type))
	}
}

// HandleDisconnect handles client disconnection.
func (r *Router) HandleDisconnect(client *ws.Client) {
	r.sessions.HandleDisconnect(client)
}
