package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pmboard/internal/models"
	"pmboard/internal/storage"
)

// handleListActivities returns the latest activities, newest first.
func (s *Server) handleListActivities(c *gin.Context) {
	limit := storage.DefaultActivityLimit
	if raw := c.Query("_limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.respondError(c, http.StatusBadRequest, fmt.Errorf("invalid _limit %q", raw))
			return
		}
		limit = n
	}

	activities, err := s.store.ListActivities(c.Request.Context(), limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, activities)
}

// handleCreateActivity appends an activity. The author defaults to the
// authenticated caller.
func (s *Server) handleCreateActivity(c *gin.Context) {
	var req models.Activity
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if claims, ok := currentUser(c); ok {
		if req.UserID == nil {
			id := claims.UserID
			req.UserID = &id
		}
		if req.UserName == "" {
			req.UserName = claims.Name
		}
	}

	activity, err := s.store.AppendActivity(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, activity)
}
