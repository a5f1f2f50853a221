package board

import "pmboard/internal/models"

// ResolveDrop turns a finished drag into a status change. It returns false
// when the drag should not produce a request: no target, an unknown task,
// or a target in the task's current column.
func ResolveDrop(tasks []models.Task, ev DragEnd) (Intent, bool) {
	if ev.Target.IsNone() {
		return nil, false
	}
	dragged, ok := findTask(tasks, ev.TaskID)
	if !ok {
		return nil, false
	}

	var target models.TaskStatus
	switch ev.Target.kind {
	case targetColumn:
		target = ev.Target.column
	case targetCard:
		over, ok := findTask(tasks, ev.Target.taskID)
		if !ok {
			return nil, false
		}
		target = over.Status
	}

	if !target.Valid() || target == dragged.Status {
		return nil, false
	}
	return StatusChange{ID: dragged.ID, Status: target}, true
}

func findTask(tasks []models.Task, id int64) (models.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}
