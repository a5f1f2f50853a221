package board

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmboard/internal/models"
)

func TestGroup(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Status: models.StatusTodo},
		{ID: 2, Status: "archived"},
		{ID: 3, Status: models.StatusTodo},
		{ID: 4, Status: models.StatusDone},
	}
	columns := Group(tasks)

	require.Len(t, columns, 5)
	for i, status := range models.TaskStatuses {
		assert.Equal(t, status, columns[i].Status)
		assert.NotNil(t, columns[i].Tasks)
	}
	assert.Equal(t, []int64{2}, ids(columns[0].Tasks), "unknown status lands in backlog")
	assert.Equal(t, []int64{1, 3}, ids(columns[1].Tasks), "source order kept")
	assert.Empty(t, columns[2].Tasks)
	assert.Empty(t, columns[3].Tasks)
	assert.Equal(t, []int64{4}, ids(columns[4].Tasks))
}

func TestGroup_Empty(t *testing.T) {
	columns := Group(nil)
	require.Len(t, columns, 5)
	for _, c := range columns {
		assert.Empty(t, c.Tasks)
	}
}

func TestPresent_RendersOnEveryReplace(t *testing.T) {
	store := NewTaskStore()
	store.Replace([]models.Task{{ID: 1, Status: models.StatusTodo}})

	ctx, cancel := context.WithCancel(context.Background())
	renders := make(chan []Column, 4)
	done := make(chan struct{})
	go func() {
		Present(ctx, store, func(c []Column) { renders <- c })
		close(done)
	}()

	first := <-renders
	assert.Len(t, first[1].Tasks, 1)

	store.Replace([]models.Task{{ID: 1, Status: models.StatusDone}})
	select {
	case next := <-renders:
		assert.Empty(t, next[1].Tasks)
		assert.Len(t, next[4].Tasks, 1)
	case <-time.After(time.Second):
		t.Fatal("no render after replace")
	}

	cancel()
	<-done
}

func TestParseDropTarget(t *testing.T) {
	target, err := ParseDropTarget("done")
	require.NoError(t, err)
	assert.Equal(t, ColumnTarget(models.StatusDone), target)

	target, err = ParseDropTarget("7")
	require.NoError(t, err)
	assert.Equal(t, CardTarget(7), target)

	target, err = ParseDropTarget("")
	require.NoError(t, err)
	assert.True(t, target.IsNone())

	_, err = ParseDropTarget("nowhere")
	assert.Error(t, err)
}

func ids(tasks []models.Task) []int64 {
	out := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}
