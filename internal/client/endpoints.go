package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"pmboard/internal/models"
)

// Session is the result of a successful login or registration.
type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// Login exchanges credentials for a session and keeps its token.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var s Session
	if err := c.do(ctx, http.MethodPost, "/login", credentials{Email: email, Password: password}, &s); err != nil {
		return Session{}, err
	}
	c.SetToken(s.Token)
	return s, nil
}

// Register creates an account and keeps the returned token.
func (c *Client) Register(ctx context.Context, email, password, name string) (Session, error) {
	var s Session
	if err := c.do(ctx, http.MethodPost, "/register", credentials{Email: email, Password: password, Name: name}, &s); err != nil {
		return Session{}, err
	}
	c.SetToken(s.Token)
	return s, nil
}

// ListUsers returns every account.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := c.do(ctx, http.MethodGet, "/users", nil, &users)
	return users, err
}

// ListTasks returns tasks, restricted to one project when projectID is non-nil.
func (c *Client) ListTasks(ctx context.Context, projectID *int64) ([]models.Task, error) {
	path := "/tasks"
	if projectID != nil {
		path += "?" + url.Values{"projectId": {strconv.FormatInt(*projectID, 10)}}.Encode()
	}
	var tasks []models.Task
	err := c.do(ctx, http.MethodGet, path, nil, &tasks)
	return tasks, err
}

// GetTask returns one task.
func (c *Client) GetTask(ctx context.Context, id int64) (models.Task, error) {
	var t models.Task
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d", id), nil, &t)
	return t, err
}

// CreateTask creates a task and returns the stored record.
func (c *Client) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	var t models.Task
	err := c.do(ctx, http.MethodPost, "/tasks", task, &t)
	return t, err
}

// UpdateTask sends a partial update and returns the stored record.
func (c *Client) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (models.Task, error) {
	var t models.Task
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/tasks/%d", id), patch, &t)
	return t, err
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}

// ListProjects returns all projects.
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := c.do(ctx, http.MethodGet, "/projects", nil, &projects)
	return projects, err
}

// GetProject returns one project.
func (c *Client) GetProject(ctx context.Context, id int64) (models.Project, error) {
	var p models.Project
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d", id), nil, &p)
	return p, err
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, project models.Project) (models.Project, error) {
	var p models.Project
	err := c.do(ctx, http.MethodPost, "/projects", project, &p)
	return p, err
}

// UpdateProject sends a partial project update.
func (c *Client) UpdateProject(ctx context.Context, id int64, patch models.ProjectPatch) (models.Project, error) {
	var p models.Project
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/projects/%d", id), patch, &p)
	return p, err
}

// DeleteProject removes a project and its tasks.
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, nil)
}

// ListTeams returns all teams.
func (c *Client) ListTeams(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	err := c.do(ctx, http.MethodGet, "/teams", nil, &teams)
	return teams, err
}

// CreateTeam creates a team.
func (c *Client) CreateTeam(ctx context.Context, team models.Team) (models.Team, error) {
	var t models.Team
	err := c.do(ctx, http.MethodPost, "/teams", team, &t)
	return t, err
}

// UpdateTeam sends a partial team update.
func (c *Client) UpdateTeam(ctx context.Context, id int64, patch models.TeamPatch) (models.Team, error) {
	var t models.Team
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/teams/%d", id), patch, &t)
	return t, err
}

// ListProjectTeams returns the teams assigned to a project.
func (c *Client) ListProjectTeams(ctx context.Context, projectID int64) ([]models.ProjectTeam, error) {
	var teams []models.ProjectTeam
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d/teams", projectID), nil, &teams)
	return teams, err
}

// AssignTeam links a team to a project.
func (c *Client) AssignTeam(ctx context.Context, projectID, teamID int64) (models.ProjectTeam, error) {
	var pt models.ProjectTeam
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/projects/%d/teams", projectID), map[string]int64{"teamId": teamID}, &pt)
	return pt, err
}

// UnassignTeam removes a team from a project.
func (c *Client) UnassignTeam(ctx context.Context, projectID, teamID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d/teams/%d", projectID, teamID), nil, nil)
}

// ListPositions returns the positions of a team.
func (c *Client) ListPositions(ctx context.Context, teamID int64) ([]models.Position, error) {
	var positions []models.Position
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/teams/%d/positions", teamID), nil, &positions)
	return positions, err
}

// CreatePosition adds a position to a team.
func (c *Client) CreatePosition(ctx context.Context, teamID int64, name, description string) (models.Position, error) {
	var p models.Position
	body := map[string]string{"name": name, "description": description}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/teams/%d/positions", teamID), body, &p)
	return p, err
}

// ListProjectMembers returns the members of a project.
func (c *Client) ListProjectMembers(ctx context.Context, projectID int64) ([]models.ProjectTeamMember, error) {
	var members []models.ProjectTeamMember
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d/team-members", projectID), nil, &members)
	return members, err
}

// AddProjectMember places a user on a project through a team.
func (c *Client) AddProjectMember(ctx context.Context, projectID, teamID, userID int64, positionID *int64) (models.ProjectTeamMember, error) {
	var m models.ProjectTeamMember
	body := struct {
		TeamID     int64  `json:"teamId"`
		UserID     int64  `json:"userId"`
		PositionID *int64 `json:"positionId,omitempty"`
	}{teamID, userID, positionID}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/projects/%d/team-members", projectID), body, &m)
	return m, err
}

// RemoveProjectMember deletes a membership.
func (c *Client) RemoveProjectMember(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/project-team-members/%d", id), nil, nil)
}

// ListActivities returns up to limit recent activities, newest first.
func (c *Client) ListActivities(ctx context.Context, limit int) ([]models.Activity, error) {
	path := "/activities"
	if limit > 0 {
		path += "?_limit=" + strconv.Itoa(limit)
	}
	var activities []models.Activity
	err := c.do(ctx, http.MethodGet, path, nil, &activities)
	return activities, err
}

// CreateActivity appends an activity record.
func (c *Client) CreateActivity(ctx context.Context, activity models.Activity) (models.Activity, error) {
	var a models.Activity
	err := c.do(ctx, http.MethodPost, "/activities", activity, &a)
	return a, err
}
