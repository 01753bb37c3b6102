package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/couponhub/internal/domain/errors"
	"github.com/polkiloo/couponhub/internal/domain/model"
	pkgAuth "github.com/polkiloo/couponhub/internal/pkg/auth"
)

const (
	// UserIDContextKey is a gin context key for authenticated user identifier.
	UserIDContextKey = "userID"
	// UserContextKey is a gin context key for the authenticated *model.User.
	UserContextKey = "user"

	bearerPrefix = "Bearer "
)

// Authenticator resolves bearer tokens into accounts.
type Authenticator interface {
	ParseToken(token string) (int64, error)
	UserByID(ctx context.Context, id int64) (*model.User, error)
}

// AuthRequired ensures the request carries a valid bearer token of an existing user.
func AuthRequired(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, "missing token")
			return
		}

		userID, err := auth.ParseToken(token)
		if err != nil {
			switch {
			case errors.Is(err, pkgAuth.ErrTokenExpired):
				abortUnauthorized(c, "token expired")
			case errors.Is(err, pkgAuth.ErrInvalidToken):
				abortUnauthorized(c, "invalid token")
			default:
				_ = c.Error(err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
			return
		}

		user, err := auth.UserByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				abortUnauthorized(c, "user not found")
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.Set(UserIDContextKey, user.ID)
		c.Set(UserContextKey, user)
		c.Next()
	}
}

// bearerToken extracts the token from an exact "Bearer <token>" value.
func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := header[len(bearerPrefix):]
	if token == "" || strings.ContainsAny(token, " \t\r\n") {
		return "", false
	}
	return token, true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": message})
}
