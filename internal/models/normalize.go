package models

// NormalizeTask coerces a task coming from the API into the board's enums.
// The store does not enforce them, so unknown statuses land in the backlog
// and a missing priority becomes medium.
func NormalizeTask(t Task) Task {
	if !t.Status.Valid() {
		t.Status = StatusBacklog
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	return t
}

// NormalizeTasks returns a normalized copy of tasks.
func NormalizeTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = NormalizeTask(t)
	}
	return out
}
