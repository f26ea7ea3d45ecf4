package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wbonfim/DeliveryApp/internal/models"
	"github.com/wbonfim/DeliveryApp/pkg/auth"
)

const (
	ctxUserID = "user_id"
	ctxUser   = "user"
)

// UserFinder resolves the account behind a token.
type UserFinder interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	users      UserFinder
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, users UserFinder) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager, users: users}
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:   http.StatusText(http.StatusUnauthorized),
		Message: msg,
	})
}

// AuthRequired validates the bearer token and loads its user. A bare
// token without the "Bearer " prefix is accepted too.
func (a *AuthMiddleware) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			unauthorized(c, "Token is missing")
			return
		}
		token = strings.TrimPrefix(token, "Bearer ")

		claims, err := a.jwtManager.ValidateToken(token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				unauthorized(c, "Token has expired")
				return
			}
			unauthorized(c, "Token is invalid")
			return
		}

		user, err := a.users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			unauthorized(c, "User not found")
			return
		}

		c.Set(ctxUserID, user.ID)
		c.Set(ctxUser, user)
		c.Next()
	}
}

// GetUserID returns the authenticated user's id, or 0.
func GetUserID(c *gin.Context) int64 {
	if userID, exists := c.Get(ctxUserID); exists {
		return userID.(int64)
	}
	return 0
}

// CurrentUser returns the authenticated user, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(ctxUser); exists {
		return user.(*models.User)
	}
	return nil
}
