package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmboard/internal/models"
)

func TestTaskStore_ReplaceNormalizes(t *testing.T) {
	s := NewTaskStore()
	assert.Empty(t, s.Tasks())

	s.Replace([]models.Task{{ID: 1, Status: "weird"}})
	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, models.StatusBacklog, tasks[0].Status)
	assert.Equal(t, models.PriorityMedium, tasks[0].Priority)
	assert.Equal(t, uint64(1), s.Version())
}

func TestTaskStore_SnapshotsAreCopies(t *testing.T) {
	s := NewTaskStore()
	s.Replace([]models.Task{{ID: 1, Title: "a", Status: models.StatusTodo}})

	snap := s.Tasks()
	snap[0].Title = "changed"
	assert.Equal(t, "a", s.Tasks()[0].Title)
}

func TestTaskStore_SubscribeKeepsLatest(t *testing.T) {
	s := NewTaskStore()
	updates, cancel := s.Subscribe()

	s.Replace([]models.Task{{ID: 1, Status: models.StatusTodo}})
	s.Replace([]models.Task{{ID: 2, Status: models.StatusTodo}})

	latest := <-updates
	require.Len(t, latest, 1)
	assert.Equal(t, int64(2), latest[0].ID, "an unread snapshot is superseded")

	cancel()
	_, open := <-updates
	assert.False(t, open)
	assert.NotPanics(t, cancel)
	assert.NotPanics(t, func() { s.Replace(nil) })
}

func TestTaskStore_Refresh(t *testing.T) {
	api := newFakeAPI(sampleTasks()...)
	s := NewTaskStore()
	project := int64(1)

	require.NoError(t, s.Refresh(context.Background(), api, &project))
	assert.Len(t, s.Tasks(), 3)

	api.listErr = errBoom
	assert.ErrorIs(t, s.Refresh(context.Background(), api, nil), errBoom)
	assert.Len(t, s.Tasks(), 3, "failed refresh leaves the store untouched")
}

func TestTaskStore_ReplaceIfNewerDropsStaleFetch(t *testing.T) {
	s := NewTaskStore()
	older := s.BeginFetch()
	newer := s.BeginFetch()

	assert.True(t, s.ReplaceIfNewer(newer, sampleTasks()[:2]))
	assert.False(t, s.ReplaceIfNewer(older, sampleTasks()[:1]))
	assert.Len(t, s.Tasks(), 2)

	s.Replace(sampleTasks())
	assert.False(t, s.ReplaceIfNewer(newer, nil), "replace supersedes fetches started before it")
	assert.Len(t, s.Tasks(), 4)
}
