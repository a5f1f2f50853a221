package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmboard/internal/activity"
	"pmboard/internal/models"
)

func TestResolveDrop(t *testing.T) {
	tasks := sampleTasks()

	tests := []struct {
		name       string
		ev         DragEnd
		wantOK     bool
		wantStatus models.TaskStatus
	}{
		{"no target", DragEnd{TaskID: 1}, false, ""},
		{"unknown task", DragEnd{TaskID: 99, Target: ColumnTarget(models.StatusDone)}, false, ""},
		{"own column", DragEnd{TaskID: 1, Target: ColumnTarget(models.StatusInProgress)}, false, ""},
		{"other column", DragEnd{TaskID: 1, Target: ColumnTarget(models.StatusDone)}, true, models.StatusDone},
		{"card in other column", DragEnd{TaskID: 1, Target: CardTarget(2)}, true, models.StatusTodo},
		{"card in same column", DragEnd{TaskID: 2, Target: CardTarget(4)}, false, ""},
		{"unknown card", DragEnd{TaskID: 1, Target: CardTarget(42)}, false, ""},
		{"onto itself", DragEnd{TaskID: 1, Target: CardTarget(1)}, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, ok := ResolveDrop(tasks, tt.ev)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Nil(t, intent)
				return
			}
			change, isStatus := intent.(StatusChange)
			require.True(t, isStatus)
			assert.Equal(t, tt.ev.TaskID, change.TaskID())
			assert.Equal(t, tt.wantStatus, change.Status)
			assert.Equal(t, []string{"status"}, change.Patch().Fields())
		})
	}
}

func TestIntentFor(t *testing.T) {
	done := models.StatusDone
	assignee := int64(3)
	title := "Renamed"

	intent := IntentFor(1, models.TaskPatch{Status: &done, AssigneeID: &assignee, Title: &title})
	change, ok := intent.(StatusChange)
	require.True(t, ok, "status wins over assignee")
	assert.Equal(t, []string{"title", "status", "assigneeId"}, change.Patch().Fields(), "other fields still sent")

	intent = IntentFor(1, models.TaskPatch{AssigneeID: &assignee, Title: &title})
	assign, ok := intent.(AssigneeChange)
	require.True(t, ok)
	assert.Equal(t, int64(3), assign.AssigneeID)
	assert.Equal(t, []string{"title", "assigneeId"}, assign.Patch().Fields())

	intent = IntentFor(1, models.TaskPatch{Title: &title})
	_, ok = intent.(GenericUpdate)
	assert.True(t, ok)
}

func TestIntentMutations(t *testing.T) {
	updated := models.Task{ID: 1, Title: "Setup", Status: models.StatusDone}

	m := StatusChange{ID: 1, Status: models.StatusDone}.Mutation(updated)
	assert.IsType(t, activity.TaskStatusChanged{}, m)

	m = AssigneeChange{ID: 1, AssigneeID: 2}.Mutation(updated)
	assert.IsType(t, activity.TaskAssigned{}, m)

	m = GenericUpdate{ID: 1}.Mutation(updated)
	assert.IsType(t, activity.TaskUpdated{}, m)
}
