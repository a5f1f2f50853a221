package board

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"pmboard/internal/models"
)

// Column is one status bucket of the board.
type Column struct {
	Status models.TaskStatus
	Tasks  []models.Task
}

// Group partitions tasks into the five board columns in display order.
// Tasks keep their input order within a column. A status outside the enum
// lands in the backlog.
func Group(tasks []models.Task) []Column {
	columns := make([]Column, len(models.TaskStatuses))
	index := make(map[models.TaskStatus]int, len(models.TaskStatuses))
	for i, status := range models.TaskStatuses {
		columns[i] = Column{Status: status, Tasks: []models.Task{}}
		index[status] = i
	}
	for _, t := range tasks {
		i, ok := index[t.Status]
		if !ok {
			i = index[models.StatusBacklog]
		}
		columns[i].Tasks = append(columns[i].Tasks, t)
	}
	return columns
}

// Present re-renders the board on every store change until ctx is done.
// render runs once immediately with the current snapshot.
func Present(ctx context.Context, store *TaskStore, render func([]Column)) {
	updates, cancel := store.Subscribe()
	defer cancel()

	render(Group(store.Tasks()))
	for {
		select {
		case <-ctx.Done():
			return
		case tasks, ok := <-updates:
			if !ok {
				return
			}
			render(Group(tasks))
		}
	}
}

type targetKind int

const (
	targetNone targetKind = iota
	targetColumn
	targetCard
)

// DropTarget is where a card was released: a column, another card, or
// nothing when the drag was cancelled. The zero value is "nothing".
type DropTarget struct {
	kind   targetKind
	column models.TaskStatus
	taskID int64
}

// ColumnTarget is a drop onto a column.
func ColumnTarget(status models.TaskStatus) DropTarget {
	return DropTarget{kind: targetColumn, column: status}
}

// CardTarget is a drop onto another task's card.
func CardTarget(taskID int64) DropTarget {
	return DropTarget{kind: targetCard, taskID: taskID}
}

// ParseDropTarget reads a column name or a numeric task id.
func ParseDropTarget(s string) (DropTarget, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DropTarget{}, nil
	}
	if status := models.TaskStatus(s); status.Valid() {
		return ColumnTarget(status), nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return DropTarget{}, fmt.Errorf("drop target %q is neither a column nor a task id", s)
	}
	return CardTarget(id), nil
}

// IsNone reports whether nothing was targeted.
func (t DropTarget) IsNone() bool { return t.kind == targetNone }

func (t DropTarget) String() string {
	switch t.kind {
	case targetColumn:
		return "column " + string(t.column)
	case targetCard:
		return fmt.Sprintf("card %d", t.taskID)
	default:
		return "none"
	}
}
