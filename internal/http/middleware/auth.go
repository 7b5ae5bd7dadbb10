package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ctxKeyUserID holds the authenticated user id (int64).
const ctxKeyUserID = "userID"

// Authenticator resolves an API token to a user id. Any error is treated as
// an authentication failure.
type Authenticator func(ctx context.Context, token string) (int64, error)

// Auth rejects requests without a valid API token with 401 and stores the
// resolved user id in the Gin context for handlers, rate limiting and logs.
//
// Accepted headers:
//
//	Authorization: Token <key>
//	Authorization: Bearer <key>
func Auth(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromHeader(c.GetHeader("Authorization"))
		if token == "" {
			unauthorized(c, "authentication credentials were not provided")
			return
		}
		uid, err := authn(c.Request.Context(), token)
		if err != nil {
			unauthorized(c, "invalid token")
			return
		}
		SetUserID(c, uid)
		c.Next()
	}
}

// SetUserID stores the authenticated user id on the context.
func SetUserID(c *gin.Context, id int64) { c.Set(ctxKeyUserID, id) }

// UserID returns the user id stored by Auth.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ctxKeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func tokenFromHeader(h string) string {
	scheme, rest, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok {
		return ""
	}
	switch strings.ToLower(scheme) {
	case "token", "bearer":
		return strings.TrimSpace(rest)
	}
	return ""
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", `Token realm="api"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get(requestIDHeader),
		"code":       "unauthorized",
		"message":    msg,
	})
}
