package storage

import (
	"context"
	"fmt"
	"log/slog"

	"pmboard/internal/models"
)

// SeedAdmin is the account created on an empty database.
const (
	SeedAdminEmail    = "admin@example.com"
	SeedAdminPassword = "admin123"
)

// Seed fills an empty database with a starter account, project, task and
// team. passwordHash is the hash of SeedAdminPassword. It does nothing when
// any user already exists.
func (s *Store) Seed(ctx context.Context, passwordHash string) error {
	n, err := s.CountUsers(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	if _, err := s.CreateUser(ctx, SeedAdminEmail, "Admin User", passwordHash); err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	project, err := s.CreateProject(ctx, models.Project{
		Name:        "Sample Project",
		Description: "A sample project to get started",
		Status:      models.ProjectActive,
		Progress:    30,
	})
	if err != nil {
		return fmt.Errorf("seed project: %w", err)
	}
	if _, err := s.CreateTask(ctx, models.Task{
		Title:       "Setup project",
		Description: "Initial project setup",
		Status:      models.StatusInProgress,
		Priority:    models.PriorityHigh,
		ProjectID:   project.ID,
	}); err != nil {
		return fmt.Errorf("seed task: %w", err)
	}
	if _, err := s.CreateTeam(ctx, models.Team{Name: "Development Team", Description: "Main development team"}); err != nil {
		return fmt.Errorf("seed team: %w", err)
	}

	s.logger.Info("database initialized with seed data", slog.String("admin", SeedAdminEmail))
	return nil
}
