package board

import (
	"context"

	"pmboard/internal/activity"
	"pmboard/internal/models"
)

// DirectoryAPI is the part of the REST client used for projects and teams.
type DirectoryAPI interface {
	CreateProject(ctx context.Context, project models.Project) (models.Project, error)
	UpdateProject(ctx context.Context, id int64, patch models.ProjectPatch) (models.Project, error)
	DeleteProject(ctx context.Context, id int64) error
	CreateTeam(ctx context.Context, team models.Team) (models.Team, error)
	UpdateTeam(ctx context.Context, id int64, patch models.TeamPatch) (models.Team, error)
	AssignTeam(ctx context.Context, projectID, teamID int64) (models.ProjectTeam, error)
	AddProjectMember(ctx context.Context, projectID, teamID, userID int64, positionID *int64) (models.ProjectTeamMember, error)
	RemoveProjectMember(ctx context.Context, id int64) error
}

// Directory performs project and team mutations with the same contract as
// Gateway: one request, the server's record back, an activity on success.
type Directory struct {
	api      DirectoryAPI
	recorder Recorder
	tasks    *Gateway
}

// NewDirectory creates a Directory. tasks, when non-nil, is reloaded after a
// project delete because its tasks went with it.
func NewDirectory(api DirectoryAPI, recorder Recorder, tasks *Gateway) *Directory {
	return &Directory{api: api, recorder: recorder, tasks: tasks}
}

func (d *Directory) record(ctx context.Context, m activity.Mutation) {
	if d.recorder != nil {
		d.recorder.Record(ctx, m)
	}
}

// CreateProject creates a project.
func (d *Directory) CreateProject(ctx context.Context, project models.Project) (models.Project, error) {
	created, err := d.api.CreateProject(ctx, project)
	if err != nil {
		return models.Project{}, &MutationError{Op: "create project", Err: err}
	}
	d.record(ctx, activity.ProjectCreated{Project: created})
	return created, nil
}

// UpdateProject applies a partial project update.
func (d *Directory) UpdateProject(ctx context.Context, id int64, patch models.ProjectPatch) (models.Project, error) {
	updated, err := d.api.UpdateProject(ctx, id, patch)
	if err != nil {
		return models.Project{}, &MutationError{Op: "update project", Err: err}
	}
	d.record(ctx, activity.ProjectUpdated{Project: updated, Changes: patch.Fields()})
	return updated, nil
}

// DeleteProject removes a project and, on the server, its tasks.
func (d *Directory) DeleteProject(ctx context.Context, id int64) error {
	if err := d.api.DeleteProject(ctx, id); err != nil {
		return &MutationError{Op: "delete project", Err: err}
	}
	d.record(ctx, activity.ProjectDeleted{ProjectID: id})
	if d.tasks != nil {
		return d.tasks.Load(ctx)
	}
	return nil
}

// CreateTeam creates a team.
func (d *Directory) CreateTeam(ctx context.Context, team models.Team) (models.Team, error) {
	created, err := d.api.CreateTeam(ctx, team)
	if err != nil {
		return models.Team{}, &MutationError{Op: "create team", Err: err}
	}
	d.record(ctx, activity.TeamCreated{Team: created})
	return created, nil
}

// UpdateTeam applies a partial team update.
func (d *Directory) UpdateTeam(ctx context.Context, id int64, patch models.TeamPatch) (models.Team, error) {
	updated, err := d.api.UpdateTeam(ctx, id, patch)
	if err != nil {
		return models.Team{}, &MutationError{Op: "update team", Err: err}
	}
	d.record(ctx, activity.TeamUpdated{Team: updated})
	return updated, nil
}

// AssignTeam links a team to a project. No activity kind exists for it.
func (d *Directory) AssignTeam(ctx context.Context, projectID, teamID int64) (models.ProjectTeam, error) {
	link, err := d.api.AssignTeam(ctx, projectID, teamID)
	if err != nil {
		return models.ProjectTeam{}, &MutationError{Op: "assign team", Err: err}
	}
	return link, nil
}

// AddMember places a user on a project team.
func (d *Directory) AddMember(ctx context.Context, projectID, teamID, userID int64, positionID *int64) (models.ProjectTeamMember, error) {
	member, err := d.api.AddProjectMember(ctx, projectID, teamID, userID, positionID)
	if err != nil {
		return models.ProjectTeamMember{}, &MutationError{Op: "add team member", Err: err}
	}
	d.record(ctx, activity.TeamMemberAdded{Member: member})
	return member, nil
}

// RemoveMember deletes a membership.
func (d *Directory) RemoveMember(ctx context.Context, id int64) error {
	if err := d.api.RemoveProjectMember(ctx, id); err != nil {
		return &MutationError{Op: "remove team member", Err: err}
	}
	d.record(ctx, activity.TeamMemberRemoved{MemberID: id})
	return nil
}
