package models

import (
	"errors"
	"fmt"
)

// ErrInvalid marks input that fails validation.
var ErrInvalid = errors.New("invalid input")

// TaskStatus is the board column a task lives in.
type TaskStatus string

const (
	StatusBacklog    TaskStatus = "backlog"
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusReview     TaskStatus = "review"
	StatusDone       TaskStatus = "done"
)

// TaskStatuses lists the board columns in display order.
var TaskStatuses = []TaskStatus{StatusBacklog, StatusTodo, StatusInProgress, StatusReview, StatusDone}

// Valid reports whether s is one of the board columns.
func (s TaskStatus) Valid() bool {
	for _, st := range TaskStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// Label returns the human readable column name, e.g. "in progress".
func (s TaskStatus) Label() string {
	switch s {
	case StatusInProgress:
		return "in progress"
	default:
		return string(s)
	}
}

// TaskPriority ranks a task.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// Valid reports whether p is a known priority.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// ProjectStatus is the lifecycle stage of a project.
type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
)

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectActive, ProjectOnHold, ProjectCompleted:
		return true
	}
	return false
}

// EntityType names the kind of record an activity refers to.
type EntityType string

const (
	EntityProject EntityType = "project"
	EntityTask    EntityType = "task"
	EntityTeam    EntityType = "team"
	EntityUser    EntityType = "user"
)

// Valid reports whether e is a known entity kind.
func (e EntityType) Valid() bool {
	switch e {
	case EntityProject, EntityTask, EntityTeam, EntityUser:
		return true
	}
	return false
}

// ActivityType is the closed set of change kinds recorded in the activity feed.
type ActivityType string

const (
	ActivityProjectCreated    ActivityType = "project_created"
	ActivityProjectUpdated    ActivityType = "project_updated"
	ActivityProjectDeleted    ActivityType = "project_deleted"
	ActivityTaskCreated       ActivityType = "task_created"
	ActivityTaskUpdated       ActivityType = "task_updated"
	ActivityTaskDeleted       ActivityType = "task_deleted"
	ActivityTaskStatusChanged ActivityType = "task_status_changed"
	ActivityTaskAssigned      ActivityType = "task_assigned"
	ActivityTeamCreated       ActivityType = "team_created"
	ActivityTeamUpdated       ActivityType = "team_updated"
	ActivityTeamMemberAdded   ActivityType = "team_member_added"
	ActivityTeamMemberRemoved ActivityType = "team_member_removed"
)

var activityTypes = map[ActivityType]struct{}{
	ActivityProjectCreated:    {},
	ActivityProjectUpdated:    {},
	ActivityProjectDeleted:    {},
	ActivityTaskCreated:       {},
	ActivityTaskUpdated:       {},
	ActivityTaskDeleted:       {},
	ActivityTaskStatusChanged: {},
	ActivityTaskAssigned:      {},
	ActivityTeamCreated:       {},
	ActivityTeamUpdated:       {},
	ActivityTeamMemberAdded:   {},
	ActivityTeamMemberRemoved: {},
}

// Valid reports whether t belongs to the closed activity set.
func (t ActivityType) Valid() bool {
	_, ok := activityTypes[t]
	return ok
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
