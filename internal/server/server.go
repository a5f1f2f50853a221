package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pmboard/internal/auth"
	"pmboard/internal/models"
	"pmboard/internal/storage"
)

// Options tunes the HTTP server.
type Options struct {
	StaticDir   string
	RequireAuth bool
}

// Server provides HTTP handlers for the project board backend.
type Server struct {
	engine      *gin.Engine
	store       *storage.Store
	tokens      *auth.TokenManager
	logger      *slog.Logger
	staticDir   string
	requireAuth bool
}

// New constructs the HTTP server with routes and middleware configured.
func New(store *storage.Store, tokens *auth.TokenManager, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/healthz"))
	router.Use(requestID())

	srv := &Server{
		engine:      router,
		store:       store,
		tokens:      tokens,
		logger:      logger,
		staticDir:   opts.StaticDir,
		requireAuth: opts.RequireAuth,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all API and static handlers together.
func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.POST("/login", s.handleLogin)
	s.engine.POST("/register", s.handleRegister)

	api := s.engine.Group("")
	api.Use(s.authenticate())
	{
		users := api.Group("/users")
		{
			users.GET("", s.handleListUsers)
			users.GET(":id", s.handleGetUser)
			users.PATCH(":id", s.handleUpdateUser)
			users.DELETE(":id", s.handleDeleteUser)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", s.handleListProjects)
			projects.POST("", s.handleCreateProject)
			projects.GET(":id", s.handleGetProject)
			projects.PATCH(":id", s.handleUpdateProject)
			projects.DELETE(":id", s.handleDeleteProject)
			projects.GET(":id/teams", s.handleListProjectTeams)
			projects.POST(":id/teams", s.handleAssignTeam)
			projects.DELETE(":id/teams/:teamId", s.handleUnassignTeam)
			projects.GET(":id/team-members", s.handleListProjectMembers)
			projects.POST(":id/team-members", s.handleAddProjectMember)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("", s.handleListTasks)
			tasks.POST("", s.handleCreateTask)
			tasks.GET(":id", s.handleGetTask)
			tasks.PATCH(":id", s.handleUpdateTask)
			tasks.DELETE(":id", s.handleDeleteTask)
		}

		teams := api.Group("/teams")
		{
			teams.GET("", s.handleListTeams)
			teams.POST("", s.handleCreateTeam)
			teams.GET(":id", s.handleGetTeam)
			teams.PATCH(":id", s.handleUpdateTeam)
			teams.DELETE(":id", s.handleDeleteTeam)
			teams.GET(":id/positions", s.handleListPositions)
			teams.POST(":id/positions", s.handleCreatePosition)
		}

		api.PATCH("/positions/:id", s.handleUpdatePosition)
		api.DELETE("/positions/:id", s.handleDeletePosition)
		api.PATCH("/project-team-members/:id", s.handleUpdateProjectMember)
		api.DELETE("/project-team-members/:id", s.handleRemoveProjectMember)

		api.GET("/activities", s.handleListActivities)
		api.POST("/activities", s.handleCreateActivity)
	}

	s.mountStatic()
}

// handleHealth reports readiness, including database reachability.
func (s *Server) handleHealth(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		s.respondError(c, http.StatusServiceUnavailable, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseID converts a path parameter to int64 with error handling.
func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identifier"})
		return 0, false
	}
	return id, true
}

// statusFor maps store and validation errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs the error and returns a JSON payload.
func (s *Server) respondError(c *gin.Context, status int, err error) {
	if err == nil {
		err = errors.New(http.StatusText(status))
	}
	attrs := []any{
		slog.String("path", c.FullPath()),
		slog.Int("status", status),
		slog.String("request_id", c.GetString(requestIDKey)),
		slog.String("error", err.Error()),
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", attrs...)
	} else {
		s.logger.Warn("request rejected", attrs...)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// fail responds with the status derived from err.
func (s *Server) fail(c *gin.Context, err error) {
	s.respondError(c, statusFor(err), err)
}

// respondSuccess writes a JSON payload, or only the status for nil payloads.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}

func respondDeleted(c *gin.Context) {
	respondSuccess(c, http.StatusOK, gin.H{"success": true})
}
