package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pmboard/internal/auth"
)

const (
	requestIDKey    = "requestID"
	claimsKey       = "claims"
	requestIDHeader = "X-Request-ID"
)

// requestID tags every request with an id echoed back in the response.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// authenticate attaches the bearer token claims to the context. Invalid or
// missing tokens are ignored unless the server requires authentication.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header != "" {
			token, err := auth.ExtractBearer(header)
			if err == nil {
				var claims *auth.Claims
				claims, err = s.tokens.Validate(token)
				if err == nil {
					c.Set(claimsKey, claims)
					c.Next()
					return
				}
			}
			if s.requireAuth {
				s.respondError(c, http.StatusUnauthorized, err)
				return
			}
		}
		if s.requireAuth {
			s.respondError(c, http.StatusUnauthorized, errors.New("authentication required"))
			return
		}
		c.Next()
	}
}

// currentUser returns the claims of the authenticated caller, if any.
func currentUser(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
