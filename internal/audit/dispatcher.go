package audit

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

const (
	ActionOrderCreated     = "order_created"
	ActionOrderRejected    = "order_rejected"
	ActionOrderRescheduled = "order_rescheduled"
	ActionOrderCancelled   = "order_cancelled"
	ActionBusinessCreated  = "business_created"
	ActionEmployeeCreated  = "employee_created"
	ActionServiceCreated   = "service_created"
)

type Event struct {
	BusinessID uint
	UserID     *uint
	Action     string
	Entity     string
	EntityID   *uint
	Metadata   any
}

// Writer persists a single event.
type Writer interface {
	Write(ctx context.Context, ev Event) error
}

// sink pairs a writer with its own queue so a slow writer only backs up
// itself.
type sink struct {
	writer Writer
	queue  chan Event
}

type Dispatcher struct {
	sinks []sink

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
	done   chan struct{}
}

const queueSize = 100

// NewDispatcher starts one worker per non-nil writer. Every dispatched
// event is delivered to each writer independently.
func NewDispatcher(writers ...Writer) *Dispatcher {
	d := &Dispatcher{done: make(chan struct{})}

	for _, w := range writers {
		if w == nil {
			continue
		}
		s := sink{writer: w, queue: make(chan Event, queueSize)}
		d.sinks = append(d.sinks, s)

		d.wg.Add(1)
		go d.worker(s)
	}

	go func() {
		d.wg.Wait()
		close(d.done)
	}()
	return d
}

func (d *Dispatcher) worker(s sink) {
	defer d.wg.Done()
	for ev := range s.queue {
		if err := s.writer.Write(context.Background(), ev); err != nil {
			log.Error().Err(err).
				Str("action", ev.Action).
				Uint("business_id", ev.BusinessID).
				Str("writer", fmt.Sprintf("%T", s.writer)).
				Msg("audit write failed")
		}
	}
}

// Dispatch enqueues ev on every writer without blocking. A writer whose
// queue is full drops the event; the others still get it. Events are
// ignored once the dispatcher is closed. A nil dispatcher discards events.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	for _, s := range d.sinks {
		select {
		case s.queue <- ev:
		default:
			log.Warn().
				Str("action", ev.Action).
				Str("writer", fmt.Sprintf("%T", s.writer)).
				Msg("audit queue full, dropping event")
		}
	}
}

// Close stops accepting events and waits until queued ones are written or
// ctx is done.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, s := range d.sinks {
			close(s.queue)
		}
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
