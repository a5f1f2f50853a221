package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pmboard/internal/models"
)

type assignTeamRequest struct {
	TeamID int64 `json:"teamId"`
}

type positionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type memberRequest struct {
	TeamID     int64  `json:"teamId"`
	UserID     int64  `json:"userId"`
	PositionID *int64 `json:"positionId"`
}

func (s *Server) handleListTeams(c *gin.Context) {
	teams, err := s.store.ListTeams(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, teams)
}

func (s *Server) handleGetTeam(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	team, err := s.store.GetTeam(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, team)
}

func (s *Server) handleCreateTeam(c *gin.Context) {
	var req models.Team
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	team, err := s.store.CreateTeam(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, team)
}

func (s *Server) handleUpdateTeam(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var patch models.TeamPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	team, err := s.store.UpdateTeam(c.Request.Context(), id, patch)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, team)
}

func (s *Server) handleDeleteTeam(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteTeam(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	respondDeleted(c)
}

// handleListProjectTeams returns the teams working on a project.
func (s *Server) handleListProjectTeams(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	teams, err := s.store.ListProjectTeams(c.Request.Context(), projectID)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, teams)
}

// handleAssignTeam links a team to a project.
func (s *Server) handleAssignTeam(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req assignTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	link, err := s.store.AssignTeam(c.Request.Context(), projectID, req.TeamID)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, link)
}

// handleUnassignTeam removes a team from a project.
func (s *Server) handleUnassignTeam(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	teamID, ok := parseID(c, "teamId")
	if !ok {
		return
	}
	if err := s.store.UnassignTeam(c.Request.Context(), projectID, teamID); err != nil {
		s.fail(c, err)
		return
	}
	respondDeleted(c)
}

func (s *Server) handleListPositions(c *gin.Context) {
	teamID, ok := parseID(c, "id")
	if !ok {
		return
	}
	positions, err := s.store.ListPositions(c.Request.Context(), teamID)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, positions)
}

func (s *Server) handleCreatePosition(c *gin.Context) {
	teamID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req positionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	position, err := s.store.CreatePosition(c.Request.Context(), teamID, req.Name, req.Description)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, position)
}

func (s *Server) handleUpdatePosition(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var patch models.PositionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	position, err := s.store.UpdatePosition(c.Request.Context(), id, patch)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, position)
}

func (s *Server) handleDeletePosition(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.store.DeletePosition(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	respondDeleted(c)
}

// handleListProjectMembers returns the project's members with their team and position names.
func (s *Server) handleListProjectMembers(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	members, err := s.store.ListProjectMembers(c.Request.Context(), projectID)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, members)
}

func (s *Server) handleAddProjectMember(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	member, err := s.store.AddProjectMember(c.Request.Context(), projectID, req.TeamID, req.UserID, req.PositionID)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, member)
}

// handleUpdateProjectMember replaces the member's position; omitting it clears the position.
func (s *Server) handleUpdateProjectMember(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	member, err := s.store.SetMemberPosition(c.Request.Context(), id, req.PositionID)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, member)
}

func (s *Server) handleRemoveProjectMember(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.store.RemoveProjectMember(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	respondDeleted(c)
}
