package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ugaemi/citypursuit/internal/store"
)

const (
	journalTimeout = 2 * time.Second
	journalBuffer  = 1024
)

// journaler writes incidents on its own goroutine so a slow store never
// holds up a session tick. Incidents are dropped while the queue is full.
type journaler struct {
	store store.IncidentStore
	queue chan store.Incident
	done  chan struct{}

	closeOnce sync.Once
	wg        sync.WaitGroup
}

func newJournaler(s store.IncidentStore, buffer int) *journaler {
	j := &journaler{
		store: s,
		queue: make(chan store.Incident, buffer),
		done:  make(chan struct{}),
	}
	j.wg.Add(1)
	go j.run()
	return j
}

// enqueue reports whether the incident was accepted.
func (j *journaler) enqueue(inc store.Incident) bool {
	select {
	case <-j.done:
		return false
	default:
	}

	select {
	case j.queue <- inc:
		return true
	default:
		slog.Warn("incident journal queue full, dropping incident", "session", inc.SessionCode, "kind", inc.Kind)
		return false
	}
}

func (j *journaler) run() {
	defer j.wg.Done()
	for {
		select {
		case inc := <-j.queue:
			j.write(inc)
		case <-j.done:
			for {
				select {
				case inc := <-j.queue:
					j.write(inc)
				default:
					return
				}
			}
		}
	}
}

func (j *journaler) write(inc store.Incident) {
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()
	if err := j.store.Record(ctx, inc); err != nil {
		slog.Warn("failed to journal incident", "session", inc.SessionCode, "kind", inc.Kind, "error", err)
	}
}

// close stops accepting incidents and waits for the queued ones to be written.
func (j *journaler) close() {
	j.closeOnce.Do(func() { close(j.done) })
	j.wg.Wait()
}
