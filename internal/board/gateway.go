package board

import (
	"context"
	"fmt"

	"pmboard/internal/activity"
	"pmboard/internal/models"
)

// API is the part of the REST client the gateway needs.
type API interface {
	TaskLister
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// Recorder receives successful mutations for the activity feed.
type Recorder interface {
	Record(ctx context.Context, m activity.Mutation)
}

// MutationError is the user-facing error of a failed request.
type MutationError struct {
	Op  string
	Err error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }

// Gateway sends task mutations to the API and refreshes the store from the
// server afterwards. Nothing is applied locally before the server confirms,
// so a failed request leaves the store as it was.
type Gateway struct {
	api       API
	store     *TaskStore
	recorder  Recorder
	projectID *int64
}

// NewGateway creates a gateway. projectID scopes refreshes to one project
// when non-nil. recorder may be nil.
func NewGateway(api API, store *TaskStore, recorder Recorder, projectID *int64) *Gateway {
	return &Gateway{api: api, store: store, recorder: recorder, projectID: projectID}
}

// Store returns the task store kept in sync by the gateway.
func (g *Gateway) Store() *TaskStore { return g.store }

// Load fills the store with the current tasks.
func (g *Gateway) Load(ctx context.Context) error {
	if err := g.store.Refresh(ctx, g.api, g.projectID); err != nil {
		return &MutationError{Op: "load tasks", Err: err}
	}
	return nil
}

// Apply sends an update intent and returns the server's record.
func (g *Gateway) Apply(ctx context.Context, intent Intent) (models.Task, error) {
	task, err := g.api.UpdateTask(ctx, intent.TaskID(), intent.Patch())
	if err != nil {
		return models.Task{}, &MutationError{Op: "update task", Err: err}
	}
	return task, g.settle(ctx, "update task", intent.Mutation(task))
}

// Create adds a task and returns the server's record.
func (g *Gateway) Create(ctx context.Context, task models.Task) (models.Task, error) {
	created, err := g.api.CreateTask(ctx, task)
	if err != nil {
		return models.Task{}, &MutationError{Op: "create task", Err: err}
	}
	return created, g.settle(ctx, "create task", activity.TaskCreated{Task: created})
}

// Delete removes a task.
func (g *Gateway) Delete(ctx context.Context, id int64) error {
	if err := g.api.DeleteTask(ctx, id); err != nil {
		return &MutationError{Op: "delete task", Err: err}
	}
	return g.settle(ctx, "delete task", activity.TaskDeleted{TaskID: id})
}

// settle runs after the server accepted a mutation: refresh the cache, then
// log the activity. The activity is logged even when the refresh fails,
// since the change itself went through.
func (g *Gateway) settle(ctx context.Context, op string, m activity.Mutation) error {
	refreshErr := g.store.Refresh(ctx, g.api, g.projectID)
	if g.recorder != nil {
		g.recorder.Record(ctx, m)
	}
	if refreshErr != nil {
		return &MutationError{Op: op, Err: fmt.Errorf("refresh tasks: %w", refreshErr)}
	}
	return nil
}
