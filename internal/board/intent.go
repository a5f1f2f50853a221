package board

import (
	"pmboard/internal/activity"
	"pmboard/internal/models"
)

// Intent is a requested change to one task. The implementations are
// StatusChange, AssigneeChange and GenericUpdate; each decides which
// activity a successful update produces.
type Intent interface {
	// TaskID is the task being changed.
	TaskID() int64
	// Patch is the body sent to the API.
	Patch() models.TaskPatch
	// Mutation describes the applied change for the activity feed.
	Mutation(updated models.Task) activity.Mutation
}

// StatusChange moves a task to another column. Rest carries any other
// fields submitted together with the status.
type StatusChange struct {
	ID     int64
	Status models.TaskStatus
	Rest   models.TaskPatch
}

func (i StatusChange) TaskID() int64 { return i.ID }

func (i StatusChange) Patch() models.TaskPatch {
	p := i.Rest
	status := i.Status
	p.Status = &status
	return p
}

func (i StatusChange) Mutation(updated models.Task) activity.Mutation {
	return activity.TaskStatusChanged{Task: updated, Status: i.Status}
}

// AssigneeChange hands a task to a user.
type AssigneeChange struct {
	ID         int64
	AssigneeID int64
	Rest       models.TaskPatch
}

func (i AssigneeChange) TaskID() int64 { return i.ID }

func (i AssigneeChange) Patch() models.TaskPatch {
	p := i.Rest
	assignee := i.AssigneeID
	p.AssigneeID = &assignee
	return p
}

func (i AssigneeChange) Mutation(updated models.Task) activity.Mutation {
	return activity.TaskAssigned{Task: updated, AssigneeID: i.AssigneeID}
}

// GenericUpdate edits fields other than status and assignee.
type GenericUpdate struct {
	ID      int64
	Changes models.TaskPatch
}

func (i GenericUpdate) TaskID() int64 { return i.ID }

func (i GenericUpdate) Patch() models.TaskPatch { return i.Changes }

func (i GenericUpdate) Mutation(updated models.Task) activity.Mutation {
	return activity.TaskUpdated{Task: updated, Fields: i.Changes.Fields()}
}

// IntentFor classifies a free-form patch. A status wins over an assignee,
// which wins over everything else, so a combined edit is reported once as a
// status change.
func IntentFor(id int64, patch models.TaskPatch) Intent {
	switch {
	case patch.Status != nil:
		rest := patch
		rest.Status = nil
		return StatusChange{ID: id, Status: *patch.Status, Rest: rest}
	case patch.AssigneeID != nil:
		rest := patch
		rest.AssigneeID = nil
		return AssigneeChange{ID: id, AssigneeID: *patch.AssigneeID, Rest: rest}
	default:
		return GenericUpdate{ID: id, Changes: patch}
	}
}
