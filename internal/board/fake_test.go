package board

import (
	"context"
	"errors"
	"sync"
	"time"

	"pmboard/internal/activity"
	"pmboard/internal/models"
)

var errBoom = errors.New("boom")

// fakeAPI is an in-memory task API. Set fail to make every mutation error.
type fakeAPI struct {
	mu      sync.Mutex
	tasks   []models.Task
	nextID  int64
	fail    error
	listErr error
	updates []models.TaskPatch
	lists   int

	// afterList, if set, runs after the nth list call has read the tasks
	// and before it returns them.
	afterList func(n int)
}

func newFakeAPI(tasks ...models.Task) *fakeAPI {
	f := &fakeAPI{nextID: 100}
	f.tasks = append(f.tasks, tasks...)
	return f
}

func (f *fakeAPI) ListTasks(_ context.Context, projectID *int64) ([]models.Task, error) {
	f.mu.Lock()
	f.lists++
	n, hook := f.lists, f.afterList
	if f.listErr != nil {
		f.mu.Unlock()
		return nil, f.listErr
	}
	var out []models.Task
	for _, t := range f.tasks {
		if projectID == nil || t.ProjectID == *projectID {
			out = append(out, t)
		}
	}
	f.mu.Unlock()

	if hook != nil {
		hook(n)
	}
	return out, nil
}

func (f *fakeAPI) CreateTask(_ context.Context, task models.Task) (models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return models.Task{}, f.fail
	}
	f.nextID++
	task.ID = f.nextID
	f.tasks = append(f.tasks, task)
	return task, nil
}

func (f *fakeAPI) UpdateTask(_ context.Context, id int64, patch models.TaskPatch) (models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, patch)
	if f.fail != nil {
		return models.Task{}, f.fail
	}
	for i, t := range f.tasks {
		if t.ID != id {
			continue
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		if patch.AssigneeID != nil {
			t.AssigneeID = patch.AssigneeID
		}
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		t.UpdatedAt = time.Now()
		f.tasks[i] = t
		return t, nil
	}
	return models.Task{}, errors.New("not found")
}

func (f *fakeAPI) DeleteTask(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeAPI) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updates)
}

// fakeRecorder collects recorded mutations.
type fakeRecorder struct {
	mu        sync.Mutex
	mutations []activity.Mutation
}

func (r *fakeRecorder) Record(_ context.Context, m activity.Mutation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mutations = append(r.mutations, m)
}

func (r *fakeRecorder) recorded() []activity.Mutation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]activity.Mutation(nil), r.mutations...)
}

func sampleTasks() []models.Task {
	return []models.Task{
		{ID: 1, Title: "Setup", Status: models.StatusInProgress, Priority: models.PriorityHigh, ProjectID: 1},
		{ID: 2, Title: "Design", Status: models.StatusTodo, Priority: models.PriorityMedium, ProjectID: 1},
		{ID: 3, Title: "Ship", Status: models.StatusDone, Priority: models.PriorityLow, ProjectID: 1},
		{ID: 4, Title: "Elsewhere", Status: models.StatusTodo, ProjectID: 2},
	}
}
