package board

import (
	"context"
	"sync"

	"pmboard/internal/models"
)

// TaskLister fetches the authoritative task list.
type TaskLister interface {
	ListTasks(ctx context.Context, projectID *int64) ([]models.Task, error)
}

// TaskStore is the local cache of the tasks shown on the board. It is only
// ever replaced wholesale with a fresh fetch, never patched in place.
//
// Fetches are numbered when they start. A fetch that finishes after a later
// one has already been applied is discarded, so overlapping refreshes always
// leave the most recent server state behind.
type TaskStore struct {
	mu      sync.Mutex
	tasks   []models.Task
	version uint64
	fetched uint64 // sequence handed to the last started fetch
	applied uint64 // sequence of the snapshot currently held
	subs    map[int]chan []models.Task
	nextSub int
}

// NewTaskStore returns an empty store.
func NewTaskStore() *TaskStore {
	return &TaskStore{subs: make(map[int]chan []models.Task)}
}

// Tasks returns a copy of the current tasks.
func (s *TaskStore) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.tasks)
}

// Version increases on every replace.
func (s *TaskStore) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Replace swaps in a new collection, normalized, and notifies subscribers.
// It supersedes every fetch started before it.
func (s *TaskStore) Replace(tasks []models.Task) {
	normalized := models.NormalizeTasks(tasks)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetched++
	s.applied = s.fetched
	s.swap(normalized)
}

// BeginFetch numbers a fetch about to start. Pass the result to
// ReplaceIfNewer once the fetch returns.
func (s *TaskStore) BeginFetch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetched++
	return s.fetched
}

// ReplaceIfNewer replaces the collection with the result of fetch seq unless
// a fetch started after it has already been applied. It reports whether the
// snapshot was taken.
func (s *TaskStore) ReplaceIfNewer(seq uint64, tasks []models.Task) bool {
	normalized := models.NormalizeTasks(tasks)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.applied {
		return false
	}
	s.applied = seq
	s.swap(normalized)
	return true
}

// swap must be called with mu held.
func (s *TaskStore) swap(tasks []models.Task) {
	s.tasks = tasks
	s.version++
	for _, ch := range s.subs {
		publish(ch, clone(tasks))
	}
}

// Refresh fetches the tasks through lister and replaces the collection. On
// error, or when a newer fetch has landed in the meantime, the store is left
// untouched.
func (s *TaskStore) Refresh(ctx context.Context, lister TaskLister, projectID *int64) error {
	seq := s.BeginFetch()
	tasks, err := lister.ListTasks(ctx, projectID)
	if err != nil {
		return err
	}
	s.ReplaceIfNewer(seq, tasks)
	return nil
}

// Subscribe returns a channel receiving the latest snapshot after each
// replace. Slow readers only see the most recent snapshot. The returned
// func unsubscribes and closes the channel.
func (s *TaskStore) Subscribe() (<-chan []models.Task, func()) {
	ch := make(chan []models.Task, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// publish delivers snap, dropping an unread older snapshot if needed.
func publish(ch chan []models.Task, snap []models.Task) {
	select {
	case ch <- snap:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}

func clone(tasks []models.Task) []models.Task {
	if tasks == nil {
		return []models.Task{}
	}
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	return out
}
