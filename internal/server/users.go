package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pmboard/internal/auth"
	"pmboard/internal/models"
)

func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.store.ListUsers(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, users)
}

func (s *Server) handleGetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := s.store.GetUser(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, user)
}

// handleUpdateUser changes name, email or password of an account.
func (s *Server) handleUpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var patch models.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if patch.Email != nil {
		if err := models.ValidateEmail(*patch.Email); err != nil {
			s.fail(c, err)
			return
		}
	}

	var hash *string
	if patch.Password != nil && *patch.Password != "" {
		if err := models.ValidatePassword(*patch.Password); err != nil {
			s.fail(c, err)
			return
		}
		h, err := auth.HashPassword(*patch.Password)
		if err != nil {
			s.fail(c, err)
			return
		}
		hash = &h
	}

	user, err := s.store.UpdateUser(c.Request.Context(), id, patch.Name, patch.Email, hash)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, user)
}

func (s *Server) handleDeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteUser(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	respondDeleted(c)
}
