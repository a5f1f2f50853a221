package board

import (
	"context"
	"errors"
	"sync"

	"pmboard/internal/models"
)

// Message is an event consumed by the dispatcher loop.
type Message interface {
	isMessage()
}

// DragStart is emitted when a card is picked up.
type DragStart struct {
	TaskID int64
}

// DragEnd is emitted when a card is released over Target.
type DragEnd struct {
	TaskID int64
	Target DropTarget
}

// MutationResult reports the outcome of a request started by the loop.
type MutationResult struct {
	Intent Intent
	Task   models.Task
	Err    error
}

// requestDone carries a MutationResult back to the loop that started the
// request. It never goes through Send.
type requestDone struct {
	seq    uint64
	result MutationResult
}

func (DragStart) isMessage()   {}
func (DragEnd) isMessage()     {}
func (requestDone) isMessage() {}

// Applier performs update intents. *Gateway implements it.
type Applier interface {
	Apply(ctx context.Context, intent Intent) (models.Task, error)
}

// ErrStopped is returned by Send once the loop has exited.
var ErrStopped = errors.New("dispatcher stopped")

// loopState is what the board shows around the cards.
type loopState struct {
	// Dragging is the id of the card being moved, 0 when none.
	Dragging int64
	// Pending counts requests still in flight.
	Pending int
	// LastError is the message of the most recent failed request, cleared
	// by the next success.
	LastError string
}

// Dispatcher serializes drag events and mutation results on one goroutine.
// Requests run concurrently with the loop and report back through the same
// inbox, so the loop never waits on the network.
type Dispatcher struct {
	store    *TaskStore
	applier  Applier
	onResult func(MutationResult)

	inbox chan Message
	done  chan struct{}

	// owned by the loop goroutine
	nextReq  uint64
	inflight map[uint64]struct{}

	mu    sync.RWMutex
	state loopState
}

// NewDispatcher creates a dispatcher resolving drags against store and
// sending intents through applier. onResult, if set, is called on the loop
// goroutine for every finished request.
func NewDispatcher(store *TaskStore, applier Applier, onResult func(MutationResult)) *Dispatcher {
	return &Dispatcher{
		store:    store,
		applier:  applier,
		onResult: onResult,
		inbox:    make(chan Message, 16),
		done:     make(chan struct{}),
		inflight: make(map[uint64]struct{}),
	}
}

// Send queues a message for the loop.
func (d *Dispatcher) Send(ctx context.Context, msg Message) error {
	select {
	case <-d.done:
		return ErrStopped
	default:
	}
	select {
	case d.inbox <- msg:
		return nil
	case <-d.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) current() loopState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// Run processes messages until ctx is cancelled. Results of requests still
// in flight at that point are discarded.
func (d *Dispatcher) Run(ctx context.Context) error {
	defer close(d.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-d.inbox:
			d.handle(ctx, msg)
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, msg Message) {
	switch m := msg.(type) {
	case DragStart:
		if _, ok := findTask(d.store.Tasks(), m.TaskID); ok {
			d.update(func(s *loopState) { s.Dragging = m.TaskID })
		}
	case DragEnd:
		d.update(func(s *loopState) { s.Dragging = 0 })
		intent, ok := ResolveDrop(d.store.Tasks(), m)
		if !ok {
			return
		}
		d.nextReq++
		seq := d.nextReq
		d.inflight[seq] = struct{}{}
		d.update(func(s *loopState) { s.Pending = len(d.inflight) })
		go d.apply(ctx, seq, intent)
	case requestDone:
		if _, ok := d.inflight[m.seq]; !ok {
			return
		}
		delete(d.inflight, m.seq)
		d.update(func(s *loopState) {
			s.Pending = len(d.inflight)
			if m.result.Err != nil {
				s.LastError = m.result.Err.Error()
			} else {
				s.LastError = ""
			}
		})
		if d.onResult != nil {
			d.onResult(m.result)
		}
	}
}

func (d *Dispatcher) apply(ctx context.Context, seq uint64, intent Intent) {
	task, err := d.applier.Apply(ctx, intent)
	done := requestDone{seq: seq, result: MutationResult{Intent: intent, Task: task, Err: err}}
	select {
	case d.inbox <- done:
	case <-ctx.Done():
	}
}

func (d *Dispatcher) update(fn func(*loopState)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(&d.state)
}
