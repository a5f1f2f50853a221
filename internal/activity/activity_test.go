package activity

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmboard/internal/models"
)

type fakeSink struct {
	mu      sync.Mutex
	records []models.Activity
	err     error
}

func (f *fakeSink) CreateActivity(_ context.Context, a models.Activity) (models.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.Activity{}, f.err
	}
	f.records = append(f.records, a)
	return a, nil
}

func TestDescribe(t *testing.T) {
	actor := Actor{ID: 1, Name: "Admin User"}
	task := models.Task{ID: 4, Title: "Setup", ProjectID: 2}
	team := "Dev"

	tests := []struct {
		name       string
		mutation   Mutation
		wantType   models.ActivityType
		wantEntity models.EntityType
		wantID     int64
		wantMsg    string
	}{
		{"status change", TaskStatusChanged{Task: task, Status: models.StatusDone}, models.ActivityTaskStatusChanged, models.EntityTask, 4, "moved task 'Setup' to done"},
		{"status change uses label", TaskStatusChanged{Task: task, Status: models.StatusInProgress}, models.ActivityTaskStatusChanged, models.EntityTask, 4, "moved task 'Setup' to in progress"},
		{"assignment", TaskAssigned{Task: task, AssigneeID: 3}, models.ActivityTaskAssigned, models.EntityTask, 4, "assigned task 'Setup'"},
		{"task created", TaskCreated{Task: task}, models.ActivityTaskCreated, models.EntityTask, 4, "created task 'Setup'"},
		{"task updated", TaskUpdated{Task: task, Fields: []string{"title"}}, models.ActivityTaskUpdated, models.EntityTask, 4, "updated task 'Setup'"},
		{"task deleted", TaskDeleted{TaskID: 4}, models.ActivityTaskDeleted, models.EntityTask, 4, "deleted a task"},
		{"project created", ProjectCreated{Project: models.Project{ID: 2, Name: "Sample"}}, models.ActivityProjectCreated, models.EntityProject, 2, "created project 'Sample'"},
		{"project updated", ProjectUpdated{Project: models.Project{ID: 2, Name: "Sample"}}, models.ActivityProjectUpdated, models.EntityProject, 2, "updated project 'Sample'"},
		{"project deleted", ProjectDeleted{ProjectID: 2}, models.ActivityProjectDeleted, models.EntityProject, 2, "deleted a project"},
		{"team created", TeamCreated{Team: models.Team{ID: 5, Name: "Dev"}}, models.ActivityTeamCreated, models.EntityTeam, 5, "created team 'Dev'"},
		{"team updated", TeamUpdated{Team: models.Team{ID: 5, Name: "Dev"}}, models.ActivityTeamUpdated, models.EntityTeam, 5, "updated team 'Dev'"},
		{"member added", TeamMemberAdded{Member: models.ProjectTeamMember{TeamID: 5, UserID: 3, Name: "Bob", TeamName: &team}}, models.ActivityTeamMemberAdded, models.EntityTeam, 5, "added Bob to team 'Dev'"},
		{"member removed", TeamMemberRemoved{MemberID: 8}, models.ActivityTeamMemberRemoved, models.EntityTeam, 8, "removed a team member"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Describe(tt.mutation, actor)
			assert.Equal(t, tt.wantType, a.Type)
			assert.True(t, a.Type.Valid())
			assert.Equal(t, tt.wantEntity, a.EntityType)
			assert.Equal(t, tt.wantID, a.EntityID)
			assert.Equal(t, tt.wantMsg, a.Message)
			require.NotNil(t, a.UserID)
			assert.Equal(t, int64(1), *a.UserID)
			assert.Equal(t, "Admin User", a.UserName)
		})
	}
}

func TestLogger_Record(t *testing.T) {
	sink := &fakeSink{}
	l := NewLogger(sink, nil)
	l.SetActor(&Actor{ID: 1, Name: "Admin User"})

	l.Record(context.Background(), TaskStatusChanged{Task: models.Task{ID: 1, Title: "Setup"}, Status: models.StatusDone})

	require.Len(t, sink.records, 1)
	assert.Contains(t, sink.records[0].Message, "Setup")
	assert.Contains(t, sink.records[0].Message, "done")
}

func TestLogger_NoActorRecordsNothing(t *testing.T) {
	sink := &fakeSink{}
	l := NewLogger(sink, nil)

	l.Record(context.Background(), TaskDeleted{TaskID: 1})
	assert.Empty(t, sink.records)

	l.SetActor(&Actor{ID: 1, Name: "A"})
	l.SetActor(nil)
	l.Record(context.Background(), TaskDeleted{TaskID: 1})
	assert.Empty(t, sink.records)
}

func TestLogger_SwallowsSinkErrors(t *testing.T) {
	sink := &fakeSink{err: errors.New("activities table is gone")}
	l := NewLogger(sink, nil)
	l.SetActor(&Actor{ID: 1, Name: "A"})

	assert.NotPanics(t, func() {
		l.Record(context.Background(), TaskDeleted{TaskID: 1})
	})
}

func TestLogger_NilSafe(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() { l.Record(context.Background(), TaskDeleted{TaskID: 1}) })
}
