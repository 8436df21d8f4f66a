package middleware

import (
	"context"
	"net/http"
	"strings"

	"rentdesk/config"
	"rentdesk/internal/auth"
	"rentdesk/internal/models"

	"github.com/gin-gonic/gin"
)

// UserLookup loads the account behind a token.
type UserLookup interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// Authorizer validates bearer tokens and gates role-specific routes.
type Authorizer struct {
	cfg   *config.JWTConfig
	users UserLookup
}

func NewAuthorizer(cfg *config.JWTConfig, users UserLookup) *Authorizer {
	return &Authorizer{cfg: cfg, users: users}
}

// Authorize requires "Authorization: Bearer <token>" naming an existing user,
// and sets user_id, email, role and user in the context. Email and role come
// from the stored user, not the token claims.
func (a *Authorizer) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			unauthorized(c, "Not authorized, token failed")
			return
		}
		claims, err := auth.ParseToken(a.cfg, strings.TrimSpace(parts[1]))
		if err != nil {
			unauthorized(c, "Not authorized, invalid token")
			return
		}
		u, err := a.users.GetUser(c.Request.Context(), claims.UserID)
		if err != nil {
			unauthorized(c, "Not authorized, user not found")
			return
		}
		c.Set("user_id", u.ID)
		c.Set("email", u.Email)
		c.Set("role", u.Role)
		c.Set("user", u)
		c.Next()
	}
}

// AuthorizeRole continues only when the authenticated role equals role.
func (a *Authorizer) AuthorizeRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != role {
			unauthorized(c, "You are not authorized as a "+role)
			return
		}
		c.Next()
	}
}

// Logout drops the Authorization header from the request. Tokens are
// stateless and remain valid until they expire.
func Logout(c *gin.Context) {
	c.Request.Header.Del("Authorization")
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfuly"})
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
}

// GetUserID returns the authenticated user ID (empty before Authorize).
func GetUserID(c *gin.Context) string {
	return c.GetString("user_id")
}

func GetRole(c *gin.Context) string {
	return c.GetString("role")
}

// GetUser returns the user loaded by Authorize, or nil.
func GetUser(c *gin.Context) *models.User {
	if v, ok := c.Get("user"); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
