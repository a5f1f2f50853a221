package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pmboard/internal/auth"
	"pmboard/internal/models"
	"pmboard/internal/storage"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type sessionResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

var errInvalidCredentials = errors.New("Invalid credentials")

// handleLogin exchanges email and password for a bearer token.
func (s *Server) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	user, err := s.store.GetUserByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, storage.ErrNotFound) {
		s.respondError(c, http.StatusUnauthorized, errInvalidCredentials)
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}

	ok, err := auth.CheckPassword(user.PasswordHash, req.Password)
	if err != nil || !ok {
		s.respondError(c, http.StatusUnauthorized, errInvalidCredentials)
		return
	}
	s.issueSession(c, user)
}

// handleRegister creates an account and signs it in.
func (s *Server) handleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := models.ValidateEmail(req.Email); err != nil {
		s.fail(c, err)
		return
	}
	if err := models.ValidatePassword(req.Password); err != nil {
		s.fail(c, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	user, err := s.store.CreateUser(c.Request.Context(), req.Email, req.Name, hash)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.issueSession(c, user)
}

func (s *Server) issueSession(c *gin.Context, user models.User) {
	token, err := s.tokens.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, sessionResponse{Token: token, User: user})
}
