package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"disciplix/internal/api"

	"github.com/gin-gonic/gin"
)

// RefreshCookieName is the httpOnly cookie carrying the refresh token.
const RefreshCookieName = "refreshToken"

// UserIDKey is the gin context key the middleware stores the caller's ID under.
const UserIDKey = "user_id"

// IdentityStore answers whether the user a token points at still exists and
// has confirmed their email. sql.ErrNoRows-style errors mean "gone".
type IdentityStore interface {
	IsVerified(ctx context.Context, userID int) (bool, error)
}

// Middleware validates the bearer token and confirms the referenced user
// still exists and is verified before any handler runs. Every failure is a
// 401; data access never happens for unauthenticated requests.
func Middleware(accessTokenSecret string, identities IdentityStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			api.Fail(c, http.StatusUnauthorized, "Access token is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) != "Bearer" {
			api.Fail(c, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			api.Fail(c, http.StatusUnauthorized, "Access token is required")
			return
		}

		claims, err := ValidateToken(tokenString, accessTokenSecret)
		if err != nil {
			switch {
			case errors.Is(err, ErrTokenExpired):
				api.Fail(c, http.StatusUnauthorized, "Token has expired")
			default:
				api.Fail(c, http.StatusUnauthorized, "Invalid token")
			}
			return
		}

		if claims.TokenType != "access" {
			api.Fail(c, http.StatusUnauthorized, "Access token required")
			return
		}

		verified, err := identities.IsVerified(c.Request.Context(), claims.UserID)
		if err != nil {
			api.Fail(c, http.StatusUnauthorized, "The user belonging to this token no longer exists")
			return
		}
		if !verified {
			api.Fail(c, http.StatusUnauthorized, "Please verify your email address first")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set("user_email", claims.Email)

		c.Next()
	}
}

func GetUserID(c *gin.Context) (int, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}

	id, ok := userID.(int)
	if !ok {
		return 0, false
	}

	return id, true
}

// SetRefreshCookie installs the refresh token as an httpOnly SameSite=Strict
// cookie scoped to the refresh endpoint's path.
func SetRefreshCookie(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(RefreshCookieName, token, int(RefreshTokenTTL.Seconds()), "/", "", secure, true)
}

func ClearRefreshCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(RefreshCookieName, "", -1, "/", "", secure, true)
}
