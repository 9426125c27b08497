package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS incidents (
    id TEXT PRIMARY KEY,
    session_code TEXT NOT NULL,
    kind TEXT NOT NULL,
    level INTEGER NOT NULL,
    actor_id TEXT NOT NULL DEFAULT '',
    x DOUBLE PRECISION NOT NULL DEFAULT 0,
    y DOUBLE PRECISION NOT NULL DEFAULT 0,
    z DOUBLE PRECISION NOT NULL DEFAULT 0,
    penalty INTEGER NOT NULL DEFAULT 0,
    occurred_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_incidents_session ON incidents(session_code, occurred_at DESC);
`

// PostgresStore implements IncidentStore using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and initializes the schema.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Record inserts an incident.
func (s *PostgresStore) Record(ctx context.Context, inc Incident) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO incidents (id, session_code, kind, level, actor_id, x, y, z, penalty, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		inc.ID, inc.SessionCode, inc.Kind, inc.Level, inc.ActorID,
		inc.X, inc.Y, inc.Z, inc.Penalty, inc.OccurredAt)
	if err != nil {
		return fmt.Errorf("insert incident: %w", err)
	}
	return nil
}

// ListBySession returns the latest incidents of a session. A zero limit returns all.
func (s *PostgresStore) ListBySession(ctx context.Context, sessionCode string, limit int) ([]Incident, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, session_code, kind, level, actor_id, x, y, z, penalty, occurred_at
		 FROM incidents WHERE session_code = $1
		 ORDER BY occurred_at DESC LIMIT NULLIF($2, 0)`, sessionCode, limit)
	if err != nil {
		return nil, fmt.Errorf("query incidents: %w", err)
	}
	defer rows.Close()

	var out []Incident
	for rows.Next() {
		inc, err := scanIncident(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inc)
	}
	return out, rows.Err()
}

// Close releases database resources.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanIncident(row pgx.Row) (Incident, error) {
	var inc Incident
	err := row.Scan(&inc.ID, &inc.SessionCode, &inc.Kind, &inc.Level, &inc.ActorID,
		&inc.X, &inc.Y, &inc.Z, &inc.Penalty, &inc.OccurredAt)
	if err != nil {
		return Incident{}, fmt.Errorf("scan incident: %w", err)
	}
	return inc, nil
}
