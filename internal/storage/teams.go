package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pmboard/internal/models"
)

const teamColumns = `id, name, description, member_ids, created_at, updated_at`

// ListTeams returns every team ordered by id.
func (s *Store) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams := []models.Team{}
	if err := s.db.SelectContext(ctx, &teams, `SELECT `+teamColumns+` FROM teams ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

// GetTeam fetches a single team by id.
func (s *Store) GetTeam(ctx context.Context, id int64) (models.Team, error) {
	var t models.Team
	err := s.db.GetContext(ctx, &t, s.db.Rebind(`SELECT `+teamColumns+` FROM teams WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Team{}, fmt.Errorf("team %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Team{}, fmt.Errorf("get team: %w", err)
	}
	return t, nil
}

// CreateTeam persists a new team.
func (s *Store) CreateTeam(ctx context.Context, t models.Team) (models.Team, error) {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return models.Team{}, fmt.Errorf("%w: team name must not be empty", models.ErrInvalid)
	}
	if t.MemberIDs == nil {
		t.MemberIDs = models.IDList{}
	}
	now := s.timestamp()
	id, err := s.insert(ctx, s.db,
		`INSERT INTO teams(name, description, member_ids, created_at, updated_at) VALUES(?, ?, ?, ?, ?)`,
		t.Name, strings.TrimSpace(t.Description), t.MemberIDs, now, now)
	if err != nil {
		return models.Team{}, fmt.Errorf("insert team: %w", err)
	}
	return s.GetTeam(ctx, id)
}

// UpdateTeam merges the patch into the stored team.
func (s *Store) UpdateTeam(ctx context.Context, id int64, patch models.TeamPatch) (models.Team, error) {
	if err := patch.Validate(); err != nil {
		return models.Team{}, err
	}
	var members any
	if patch.MemberIDs != nil {
		members = *patch.MemberIDs
	}
	err := s.exec(ctx, "update team",
		`UPDATE teams SET name = COALESCE(?, name), description = COALESCE(?, description),
            member_ids = COALESCE(?, member_ids), updated_at = ? WHERE id = ?`,
		patch.Name, patch.Description, members, s.timestamp(), id)
	if err != nil {
		return models.Team{}, err
	}
	return s.GetTeam(ctx, id)
}

// DeleteTeam removes a team with its positions, project links and memberships.
func (s *Store) DeleteTeam(ctx context.Context, id int64) error {
	return s.exec(ctx, "delete team", `DELETE FROM teams WHERE id = ?`, id)
}

// ListProjectTeams returns the teams assigned to a project.
func (s *Store) ListProjectTeams(ctx context.Context, projectID int64) ([]models.ProjectTeam, error) {
	teams := []models.ProjectTeam{}
	err := s.db.SelectContext(ctx, &teams, s.db.Rebind(
		`SELECT pt.id, pt.project_id, pt.team_id, t.name, t.description, pt.created_at
        FROM project_teams pt JOIN teams t ON pt.team_id = t.id
        WHERE pt.project_id = ? ORDER BY pt.id`), projectID)
	if err != nil {
		return nil, fmt.Errorf("list project teams: %w", err)
	}
	return teams, nil
}

// AssignTeam links a team to a project. Linking twice is a conflict.
func (s *Store) AssignTeam(ctx context.Context, projectID, teamID int64) (models.ProjectTeam, error) {
	id, err := s.insert(ctx, s.db,
		`INSERT INTO project_teams(project_id, team_id, created_at) VALUES(?, ?, ?)`,
		projectID, teamID, s.timestamp())
	if err != nil {
		return models.ProjectTeam{}, fmt.Errorf("assign team: %w", err)
	}
	var pt models.ProjectTeam
	err = s.db.GetContext(ctx, &pt, s.db.Rebind(
		`SELECT pt.id, pt.project_id, pt.team_id, t.name, t.description, pt.created_at
        FROM project_teams pt JOIN teams t ON pt.team_id = t.id WHERE pt.id = ?`), id)
	if err != nil {
		return models.ProjectTeam{}, fmt.Errorf("get project team: %w", err)
	}
	return pt, nil
}

// UnassignTeam removes the link between a project and a team.
func (s *Store) UnassignTeam(ctx context.Context, projectID, teamID int64) error {
	return s.exec(ctx, "unassign team", `DELETE FROM project_teams WHERE project_id = ? AND team_id = ?`, projectID, teamID)
}

const positionColumns = `id, team_id, name, description, created_at, updated_at`

// ListPositions returns the positions defined for a team.
func (s *Store) ListPositions(ctx context.Context, teamID int64) ([]models.Position, error) {
	positions := []models.Position{}
	err := s.db.SelectContext(ctx, &positions,
		s.db.Rebind(`SELECT `+positionColumns+` FROM positions WHERE team_id = ? ORDER BY id`), teamID)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	return positions, nil
}

// GetPosition fetches a single position by id.
func (s *Store) GetPosition(ctx context.Context, id int64) (models.Position, error) {
	var p models.Position
	err := s.db.GetContext(ctx, &p, s.db.Rebind(`SELECT `+positionColumns+` FROM positions WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Position{}, fmt.Errorf("position %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Position{}, fmt.Errorf("get position: %w", err)
	}
	return p, nil
}

// CreatePosition adds a named role to a team.
func (s *Store) CreatePosition(ctx context.Context, teamID int64, name, description string) (models.Position, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Position{}, fmt.Errorf("%w: position name must not be empty", models.ErrInvalid)
	}
	now := s.timestamp()
	id, err := s.insert(ctx, s.db,
		`INSERT INTO positions(team_id, name, description, created_at, updated_at) VALUES(?, ?, ?, ?, ?)`,
		teamID, name, strings.TrimSpace(description), now, now)
	if err != nil {
		return models.Position{}, fmt.Errorf("insert position: %w", err)
	}
	return s.GetPosition(ctx, id)
}

// UpdatePosition merges the patch into the stored position.
func (s *Store) UpdatePosition(ctx context.Context, id int64, patch models.PositionPatch) (models.Position, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return models.Position{}, fmt.Errorf("%w: position name must not be empty", models.ErrInvalid)
	}
	err := s.exec(ctx, "update position",
		`UPDATE positions SET name = COALESCE(?, name), description = COALESCE(?, description), updated_at = ? WHERE id = ?`,
		patch.Name, patch.Description, s.timestamp(), id)
	if err != nil {
		return models.Position{}, err
	}
	return s.GetPosition(ctx, id)
}

// DeletePosition removes a position. Memberships holding it keep their row
// with the position cleared.
func (s *Store) DeletePosition(ctx context.Context, id int64) error {
	return s.exec(ctx, "delete position", `DELETE FROM positions WHERE id = ?`, id)
}

const memberSelect = `SELECT m.id, m.project_id, m.team_id, m.user_id, m.position_id, m.created_at,
            u.name, u.email, p.name AS position_name, t.name AS team_name
        FROM project_team_members m
        JOIN users u ON m.user_id = u.id
        LEFT JOIN positions p ON m.position_id = p.id
        LEFT JOIN teams t ON m.team_id = t.id`

// ListProjectMembers returns the members of a project grouped by team.
func (s *Store) ListProjectMembers(ctx context.Context, projectID int64) ([]models.ProjectTeamMember, error) {
	members := []models.ProjectTeamMember{}
	err := s.db.SelectContext(ctx, &members,
		s.db.Rebind(memberSelect+` WHERE m.project_id = ? ORDER BY m.team_id, m.id`), projectID)
	if err != nil {
		return nil, fmt.Errorf("list project members: %w", err)
	}
	return members, nil
}

// GetProjectMember fetches one membership by id.
func (s *Store) GetProjectMember(ctx context.Context, id int64) (models.ProjectTeamMember, error) {
	var m models.ProjectTeamMember
	err := s.db.GetContext(ctx, &m, s.db.Rebind(memberSelect+` WHERE m.id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ProjectTeamMember{}, fmt.Errorf("team member %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.ProjectTeamMember{}, fmt.Errorf("get team member: %w", err)
	}
	return m, nil
}

// AddProjectMember places a user on a project through a team. A user can
// appear at most once per (project, team).
func (s *Store) AddProjectMember(ctx context.Context, projectID, teamID, userID int64, positionID *int64) (models.ProjectTeamMember, error) {
	if teamID <= 0 || userID <= 0 {
		return models.ProjectTeamMember{}, fmt.Errorf("%w: teamId and userId are required", models.ErrInvalid)
	}
	id, err := s.insert(ctx, s.db,
		`INSERT INTO project_team_members(project_id, team_id, user_id, position_id, created_at) VALUES(?, ?, ?, ?, ?)`,
		projectID, teamID, userID, positionID, s.timestamp())
	if err != nil {
		return models.ProjectTeamMember{}, fmt.Errorf("add team member: %w", err)
	}
	return s.GetProjectMember(ctx, id)
}

// SetMemberPosition replaces the position of a membership; nil clears it.
func (s *Store) SetMemberPosition(ctx context.Context, id int64, positionID *int64) (models.ProjectTeamMember, error) {
	if err := s.exec(ctx, "update team member", `UPDATE project_team_members SET position_id = ? WHERE id = ?`, positionID, id); err != nil {
		return models.ProjectTeamMember{}, err
	}
	return s.GetProjectMember(ctx, id)
}

// RemoveProjectMember deletes a membership.
func (s *Store) RemoveProjectMember(ctx context.Context, id int64) error {
	return s.exec(ctx, "remove team member", `DELETE FROM project_team_members WHERE id = ?`, id)
}
