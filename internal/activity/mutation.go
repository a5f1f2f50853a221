package activity

import (
	"fmt"

	"pmboard/internal/models"
)

// Actor is the signed-in user credited with an activity.
type Actor struct {
	ID   int64
	Name string
}

// Mutation is a successful change that deserves an activity record. The set
// of implementations is closed.
type Mutation interface {
	describe() models.Activity
}

// TaskCreated records a new task.
type TaskCreated struct{ Task models.Task }

// TaskStatusChanged records a task moved to another column.
type TaskStatusChanged struct {
	Task   models.Task
	Status models.TaskStatus
}

// TaskAssigned records a task handed to a user.
type TaskAssigned struct {
	Task       models.Task
	AssigneeID int64
}

// TaskUpdated records any other task edit.
type TaskUpdated struct {
	Task   models.Task
	Fields []string
}

// TaskDeleted records a removed task.
type TaskDeleted struct{ TaskID int64 }

// ProjectCreated records a new project.
type ProjectCreated struct{ Project models.Project }

// ProjectUpdated records a project edit.
type ProjectUpdated struct {
	Project models.Project
	Changes []string
}

// ProjectDeleted records a removed project.
type ProjectDeleted struct{ ProjectID int64 }

// TeamCreated records a new team.
type TeamCreated struct{ Team models.Team }

// TeamUpdated records a team edit.
type TeamUpdated struct{ Team models.Team }

// TeamMemberAdded records a user placed on a project team.
type TeamMemberAdded struct{ Member models.ProjectTeamMember }

// TeamMemberRemoved records a membership removal.
type TeamMemberRemoved struct{ MemberID int64 }

func (m TaskCreated) describe() models.Activity {
	return models.Activity{
		Type:       models.ActivityTaskCreated,
		EntityType: models.EntityTask,
		EntityID:   m.Task.ID,
		Message:    fmt.Sprintf("created task '%s'", m.Task.Title),
		Metadata:   models.Metadata{"taskTitle": m.Task.Title, "projectId": m.Task.ProjectID},
	}
}

func (m TaskStatusChanged) describe() models.Activity {
	return models.Activity{
		Type:       models.ActivityTaskStatusChanged,
		EntityType: models.EntityTask,
		EntityID:   m.Task.ID,
		Message:    fmt.Sprintf("moved task '%s' to %s", m.Task.Title, m.Status.Label()),
		Metadata:   models.Metadata{"taskTitle": m.Task.Title, "newStatus": string(m.Status)},
	}
}

func (m TaskAssigned) describe() models.Activity {
	return models.Activity{
		Type:       models.ActivityTaskAssigned,
		EntityType: models.EntityTask,
		EntityID:   m.Task.ID,
		Message:    fmt.Sprintf("assigned task '%s'", m.Task.Title),
		Metadata:   models.Metadata{"taskTitle": m.Task.Title, "assigneeId": m.AssigneeID},
	}
}

func (m TaskUpdated) describe() models.Activity {
	meta := models.Metadata{"taskTitle": m.Task.Title}
	if len(m.Fields) > 0 {
		meta["changes"] = m.Fields
	}
	return models.Activity{
		Type:       models.ActivityTaskUpdated,
		EntityType: models.EntityTask,
		EntityID:   m.Task.ID,
		Message:    fmt.Sprintf("updated task '%s'", m.Task.Title),
		Metadata:   meta,
	}
}

func (m TaskDeleted) describe() models.Activity {
	return models.Activity{
		Type:       models.ActivityTaskDeleted,
		EntityType: models.EntityTask,
		EntityID:   m.TaskID,
		Message:    "deleted a task",
	}
}

func (m ProjectCreated) describe() models.Activity {
	return models.Activity{
		Type:       models.ActivityProjectCreated,
		EntityType: models.EntityProject,
		EntityID:   m.Project.ID,
		Message:    fmt.Sprintf("created project '%s'", m.Project.Name),
		Metadata:   models.Metadata{"projectName": m.Project.Name},
	}
}

func (m ProjectUpdated) describe() models.Activity {
	meta := models.Metadata{"projectName": m.Project.Name}
	if len(m.Changes) > 0 {
		meta["changes"] = m.Changes
	}
	return models.Activity{
		Type:       models.ActivityProjectUpdated,
		EntityType: models.EntityProject,
		EntityID:   m.Project.ID,
		Message:    fmt.Sprintf("updated project '%s'", m.Project.Name),
		Metadata:   meta,
	}
}

func (m ProjectDeleted) describe() models.Activity {
	return models.Activity{
		Type:       models.ActivityProjectDeleted,
		EntityType: models.EntityProject,
		EntityID:   m.ProjectID,
		Message:    "deleted a project",
	}
}

func (m TeamCreated) describe() models.Activity {
	return models.Activity{
		Type:       models.ActivityTeamCreated,
		EntityType: models.EntityTeam,
		EntityID:   m.Team.ID,
		Message:    fmt.Sprintf("created team '%s'", m.Team.Name),
		Metadata:   models.Metadata{"teamName": m.Team.Name},
	}
}

func (m TeamUpdated) describe() models.Activity {
	return models.Activity{
		Type:       models.ActivityTeamUpdated,
		EntityType: models.EntityTeam,
		EntityID:   m.Team.ID,
		Message:    fmt.Sprintf("updated team '%s'", m.Team.Name),
		Metadata:   models.Metadata{"teamName": m.Team.Name},
	}
}

func (m TeamMemberAdded) describe() models.Activity {
	who := m.Member.Name
	if who == "" {
		who = fmt.Sprintf("user %d", m.Member.UserID)
	}
	team := fmt.Sprintf("team %d", m.Member.TeamID)
	if m.Member.TeamName != nil {
		team = fmt.Sprintf("team '%s'", *m.Member.TeamName)
	}
	return models.Activity{
		Type:       models.ActivityTeamMemberAdded,
		EntityType: models.EntityTeam,
		EntityID:   m.Member.TeamID,
		Message:    fmt.Sprintf("added %s to %s", who, team),
		Metadata: models.Metadata{
			"projectId": m.Member.ProjectID,
			"userId":    m.Member.UserID,
		},
	}
}

func (m TeamMemberRemoved) describe() models.Activity {
	return models.Activity{
		Type:       models.ActivityTeamMemberRemoved,
		EntityType: models.EntityTeam,
		EntityID:   m.MemberID,
		Message:    "removed a team member",
	}
}

// Describe builds the activity record for a mutation credited to actor.
func Describe(m Mutation, actor Actor) models.Activity {
	a := m.describe()
	id := actor.ID
	a.UserID = &id
	a.UserName = actor.Name
	return a
}
