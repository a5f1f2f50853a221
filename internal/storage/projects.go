package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pmboard/internal/models"
)

const projectColumns = `id, name, description, status, progress, start_date, end_date, created_at, updated_at`

// ListProjects retrieves all projects ordered by id.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	if err := s.db.SelectContext(ctx, &projects, `SELECT `+projectColumns+` FROM projects ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// CreateProject persists a new project, applying status and progress defaults.
func (s *Store) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	if err := models.ValidateNewProject(&p); err != nil {
		return models.Project{}, err
	}
	now := s.timestamp()
	id, err := s.insert(ctx, s.db,
		`INSERT INTO projects(name, description, status, progress, start_date, end_date, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, strings.TrimSpace(p.Description), p.Status, p.Progress, p.StartDate, p.EndDate, now, now)
	if err != nil {
		return models.Project{}, fmt.Errorf("insert project: %w", err)
	}
	return s.GetProject(ctx, id)
}

// GetProject fetches a single project by id.
func (s *Store) GetProject(ctx context.Context, id int64) (models.Project, error) {
	var p models.Project
	err := s.db.GetContext(ctx, &p, s.db.Rebind(`SELECT `+projectColumns+` FROM projects WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// UpdateProject merges the patch into the stored project and stamps updated_at.
func (s *Store) UpdateProject(ctx context.Context, id int64, patch models.ProjectPatch) (models.Project, error) {
	if err := patch.Validate(); err != nil {
		return models.Project{}, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}
	err := s.exec(ctx, "update project",
		`UPDATE projects SET
            name = COALESCE(?, name),
            description = COALESCE(?, description),
            status = COALESCE(?, status),
            progress = COALESCE(?, progress),
            start_date = COALESCE(?, start_date),
            end_date = COALESCE(?, end_date),
            updated_at = ?
        WHERE id = ?`,
		patch.Name, patch.Description, patch.Status, patch.Progress, patch.StartDate, patch.EndDate, s.timestamp(), id)
	if err != nil {
		return models.Project{}, err
	}
	return s.GetProject(ctx, id)
}

// DeleteProject removes a project along with its tasks. Team links and
// memberships go with it through the foreign keys.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete project: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM tasks WHERE project_id = ?`), id); err != nil {
		return fmt.Errorf("delete project tasks: %w", err)
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM projects WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	return tx.Commit()
}
