package session

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ugaemi/citypursuit/internal/game"
)

const instrumentationName = "github.com/ugaemi/citypursuit/internal/session"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// instruments are shared by every session of a manager.
// Uses the global OTel meter (no-op if not configured).
type instruments struct {
	hits     metric.Int64Counter
	busts    metric.Int64Counter
	spawned  metric.Int64Counter
	sessions metric.Int64UpDownCounter
}

func newInstruments() (*instruments, error) {
	m := meter()
	var (
		in  instruments
		err error
	)

	in.hits, err = m.Int64Counter(
		"pursuit.hits",
		metric.WithDescription("Pedestrian impacts that escalated the threat level"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating hits counter: %w", err)
	}

	in.busts, err = m.Int64Counter(
		"pursuit.busts",
		metric.WithDescription("Players captured on foot"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating busts counter: %w", err)
	}

	in.spawned, err = m.Int64Counter(
		"pursuit.spawned",
		metric.WithDescription("Pursuit units dispatched"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating spawned counter: %w", err)
	}

	in.sessions, err = m.Int64UpDownCounter(
		"pursuit.sessions",
		metric.WithDescription("Sessions currently running"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sessions counter: %w", err)
	}

	return &in, nil
}

func (in *instruments) record(ctx context.Context, events []game.Event) {
	for _, ev := range events {
		attrs := metric.WithAttributes(attribute.Int("level", ev.Level))
		switch ev.Kind {
		case game.EventHit:
			in.hits.Add(ctx, 1, attrs)
		case game.EventBusted:
			in.busts.Add(ctx, 1, attrs)
		case game.EventSpawned:
			in.spawned.Add(ctx, int64(ev.Count), attrs)
		}
	}
}
