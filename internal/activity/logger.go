package activity

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"pmboard/internal/models"
)

// Sink persists activity records.
type Sink interface {
	CreateActivity(ctx context.Context, activity models.Activity) (models.Activity, error)
}

// Logger turns successful mutations into activity records. Writes are best
// effort: a failed write is logged and dropped, never retried or reported.
type Logger struct {
	sink   Sink
	logger *slog.Logger

	mu    sync.RWMutex
	actor *Actor
}

// NewLogger creates a Logger persisting through sink.
func NewLogger(sink Sink, logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Logger{sink: sink, logger: logger}
}

// SetActor sets the user credited with subsequent activities. A nil actor
// disables recording.
func (l *Logger) SetActor(actor *Actor) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.actor = actor
}

// Record writes the activity for m. Nothing is written without an actor.
func (l *Logger) Record(ctx context.Context, m Mutation) {
	if l == nil || m == nil {
		return
	}
	l.mu.RLock()
	actor := l.actor
	l.mu.RUnlock()
	if actor == nil {
		return
	}

	a := Describe(m, *actor)
	if _, err := l.sink.CreateActivity(ctx, a); err != nil {
		l.logger.Debug("activity not recorded",
			slog.String("type", string(a.Type)),
			slog.Int64("entity_id", a.EntityID),
			slog.String("error", err.Error()))
	}
}
