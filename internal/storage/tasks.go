package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pmboard/internal/models"
)

const taskColumns = `id, title, description, status, priority, project_id, assignee_id, due_date,
        estimated_hours, actual_hours, created_at, updated_at`

// ListTasks returns tasks ordered by id, optionally restricted to one project.
func (s *Store) ListTasks(ctx context.Context, projectID *int64) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	var args []any
	if projectID != nil {
		query += ` WHERE project_id = ?`
		args = append(args, *projectID)
	}
	query += ` ORDER BY id`

	tasks := []models.Task{}
	if err := s.db.SelectContext(ctx, &tasks, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask inserts a new task for a project.
func (s *Store) CreateTask(ctx context.Context, t models.Task) (models.Task, error) {
	if err := models.ValidateNewTask(&t); err != nil {
		return models.Task{}, err
	}
	now := s.timestamp()
	id, err := s.insert(ctx, s.db,
		`INSERT INTO tasks(title, description, status, priority, project_id, assignee_id, due_date,
            estimated_hours, actual_hours, created_at, updated_at)
        VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Title, strings.TrimSpace(t.Description), t.Status, t.Priority, t.ProjectID, t.AssigneeID, t.DueDate,
		t.EstimatedHours, t.ActualHours, now, now)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return s.GetTask(ctx, id)
}

// GetTask retrieves a task by id.
func (s *Store) GetTask(ctx context.Context, id int64) (models.Task, error) {
	var t models.Task
	err := s.db.GetContext(ctx, &t, s.db.Rebind(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// UpdateTask merges the patch into the stored task. Fields left nil keep
// their value; updated_at is always stamped.
func (s *Store) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (models.Task, error) {
	if err := patch.Validate(); err != nil {
		return models.Task{}, err
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		patch.Title = &title
	}
	err := s.exec(ctx, "update task",
		`UPDATE tasks SET
            title = COALESCE(?, title),
            description = COALESCE(?, description),
            status = COALESCE(?, status),
            priority = COALESCE(?, priority),
            assignee_id = COALESCE(?, assignee_id),
            due_date = COALESCE(?, due_date),
            estimated_hours = COALESCE(?, estimated_hours),
            actual_hours = COALESCE(?, actual_hours),
            updated_at = ?
        WHERE id = ?`,
		patch.Title, patch.Description, patch.Status, patch.Priority, patch.AssigneeID, patch.DueDate,
		patch.EstimatedHours, patch.ActualHours, s.timestamp(), id)
	if err != nil {
		return models.Task{}, err
	}
	return s.GetTask(ctx, id)
}

// DeleteTask removes a task by id.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	return s.exec(ctx, "delete task", `DELETE FROM tasks WHERE id = ?`, id)
}
