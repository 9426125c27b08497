package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("store closed")

// Incident is one journaled pursuit event of a session.
type Incident struct {
	ID          string    `json:"id"`
	SessionCode string    `json:"session_code"`
	Kind        string    `json:"kind"`
	Level       int       `json:"level"` // threat level after the incident
	ActorID     string    `json:"actor_id,omitempty"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Z           float64   `json:"z"`
	Penalty     int       `json:"penalty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewIncident creates an incident stamped with a fresh ID and the current time.
func NewIncident(sessionCode, kind string, level int) Incident {
	return Incident{
		ID:          uuid.New().String(),
		SessionCode: sessionCode,
		Kind:        kind,
		Level:       level,
		OccurredAt:  time.Now().UTC(),
	}
}

// IncidentStore journals incidents for operators. Nothing in a running
// session reads it back.
type IncidentStore interface {
	// Record appends an incident.
	Record(ctx context.Context, inc Incident) error
	// ListBySession returns up to limit incidents of a session, newest first.
	ListBySession(ctx context.Context, sessionCode string, limit int) ([]Incident, error)
	// Close releases resources.
	Close() error
}
