package ws

import "encoding/json"

// Message represents a WebSocket message with type-based routing.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Message types - Session
const (
	TypeCreateSession = "create_session"
	TypeJoinSession   = "join_session"
	TypeLeaveSession  = "leave_session"
)

// Message types - Control (session controller only)
const (
	TypePossess         = "possess"
	TypeRelease         = "release"
	TypeMove            = "move"
	TypeJump            = "jump"
	TypeDebugEscalate   = "debug_escalate"
	TypeDebugDeescalate = "debug_deescalate"
	TypeDebugMoney      = "debug_money"
)

// Message types - Server push
const (
	TypeSnapshot = "snapshot"
	TypeEvent    = "event"
	TypeBalance  = "balance"
)

// Message types - System
const (
	TypeError       = "error"
	TypeSessionInfo = "session_info"
)

// ErrorMessage is sent when an error occurs.
type ErrorMessage struct {
	Message string `json:"message"`
}

// NewErrorMessage creates a Message with an error payload.
func NewErrorMessage(msg string) Message {
	data, _ := json.Marshal(ErrorMessage{Message: msg})
	return Message{Type: TypeError, Data: data}
}

// NewMessage creates a Message with a typed payload.
func NewMessage(msgType string, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Data: data}, nil
}
