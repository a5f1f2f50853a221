package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmboard/internal/activity"
	"pmboard/internal/models"
)

func newTestGateway(t *testing.T) (*Gateway, *fakeAPI, *fakeRecorder) {
	t.Helper()
	api := newFakeAPI(sampleTasks()...)
	rec := &fakeRecorder{}
	project := int64(1)
	g := NewGateway(api, NewTaskStore(), rec, &project)
	require.NoError(t, g.Load(context.Background()))
	return g, api, rec
}

func TestGateway_ApplyRefreshesAndRecords(t *testing.T) {
	g, api, rec := newTestGateway(t)
	before := api.lists

	task, err := g.Apply(context.Background(), StatusChange{ID: 1, Status: models.StatusDone})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, task.Status)
	assert.Equal(t, before+1, api.lists, "store refreshed from the server")

	got, ok := findTask(g.Store().Tasks(), 1)
	require.True(t, ok)
	assert.Equal(t, models.StatusDone, got.Status)

	recorded := rec.recorded()
	require.Len(t, recorded, 1)
	changed, ok := recorded[0].(activity.TaskStatusChanged)
	require.True(t, ok)
	assert.Equal(t, "Setup", changed.Task.Title)
	assert.Equal(t, models.StatusDone, changed.Status)
}

func TestGateway_FailureLeavesStoreUntouched(t *testing.T) {
	g, api, rec := newTestGateway(t)
	api.fail = errBoom
	before := g.Store().Tasks()
	version := g.Store().Version()

	_, err := g.Apply(context.Background(), StatusChange{ID: 1, Status: models.StatusDone})
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "failed to update task")

	assert.Equal(t, before, g.Store().Tasks())
	assert.Equal(t, version, g.Store().Version())
	assert.Empty(t, rec.recorded())

	_, err = g.Create(context.Background(), models.Task{Title: "x", ProjectID: 1})
	assert.Contains(t, err.Error(), "failed to create task")
	assert.Contains(t, g.Delete(context.Background(), 1).Error(), "failed to delete task")
	assert.Empty(t, rec.recorded())
}

func TestGateway_CreateAndDelete(t *testing.T) {
	g, _, rec := newTestGateway(t)

	created, err := g.Create(context.Background(), models.Task{Title: "New", ProjectID: 1, Status: models.StatusTodo})
	require.NoError(t, err)
	_, ok := findTask(g.Store().Tasks(), created.ID)
	assert.True(t, ok)

	require.NoError(t, g.Delete(context.Background(), created.ID))
	_, ok = findTask(g.Store().Tasks(), created.ID)
	assert.False(t, ok)

	recorded := rec.recorded()
	require.Len(t, recorded, 2)
	assert.IsType(t, activity.TaskCreated{}, recorded[0])
	assert.IsType(t, activity.TaskDeleted{}, recorded[1])
}

func TestGateway_RefreshFailureStillRecords(t *testing.T) {
	g, api, rec := newTestGateway(t)
	api.listErr = errBoom

	task, err := g.Apply(context.Background(), AssigneeChange{ID: 2, AssigneeID: 7})
	require.Error(t, err)
	assert.Equal(t, int64(2), task.ID, "the server record is still returned")
	assert.Len(t, rec.recorded(), 1)
}

func TestGateway_NilRecorder(t *testing.T) {
	api := newFakeAPI(sampleTasks()...)
	g := NewGateway(api, NewTaskStore(), nil, nil)
	require.NoError(t, g.Load(context.Background()))
	assert.Len(t, g.Store().Tasks(), 4)

	_, err := g.Apply(context.Background(), GenericUpdate{ID: 3})
	assert.NoError(t, err)
}

func TestGateway_OverlappingAppliesKeepLatestRefresh(t *testing.T) {
	g, api, _ := newTestGateway(t)

	held := make(chan struct{})
	release := make(chan struct{})
	api.mu.Lock()
	first := api.lists + 1
	api.afterList = func(n int) {
		if n == first {
			close(held)
			<-release
		}
	}
	api.mu.Unlock()

	errs := make(chan error, 1)
	go func() {
		_, err := g.Apply(context.Background(), StatusChange{ID: 1, Status: models.StatusDone})
		errs <- err
	}()
	<-held

	_, err := g.Apply(context.Background(), StatusChange{ID: 2, Status: models.StatusDone})
	require.NoError(t, err)
	close(release)
	require.NoError(t, <-errs)

	for _, id := range []int64{1, 2} {
		task, ok := findTask(g.Store().Tasks(), id)
		require.True(t, ok)
		assert.Equal(t, models.StatusDone, task.Status, "task %d", id)
	}
}
