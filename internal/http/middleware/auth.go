package middleware

import (
	"net/http"

	"agencylms/internal/auth"
	"agencylms/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID  = "user_id"
	ctxEmail   = "email"
	ctxIsAdmin = "is_admin"
)

// TokenParser is satisfied by auth.Tokens.
type TokenParser interface {
	Parse(raw string) (auth.Claims, error)
}

// AuthOptional reads a bearer token when present. No header means anonymous, but a
// bad or expired token is rejected so the caller knows to log in again.
func AuthOptional(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := auth.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}
		claims, err := tokens.Parse(raw)
		if err != nil {
			abortAuth(c, http.StatusUnauthorized, err.Error())
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// AuthRequired rejects anonymous requests.
func AuthRequired(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := auth.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortAuth(c, http.StatusUnauthorized, "authentication required")
			return
		}
		claims, err := tokens.Parse(raw)
		if err != nil {
			abortAuth(c, http.StatusUnauthorized, err.Error())
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// RequireAdmin must run after AuthRequired.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ctxIsAdmin) {
			abortAuth(c, http.StatusForbidden, "admin access required")
			return
		}
		c.Next()
	}
}

// Caller returns the authenticated user, or the zero value for anonymous requests.
func Caller(c *gin.Context) domain.RequestContext {
	return domain.RequestContext{
		UserID:  domain.ID(c.GetInt64(ctxUserID)),
		Email:   c.GetString(ctxEmail),
		IsAdmin: c.GetBool(ctxIsAdmin),
	}
}

func setClaims(c *gin.Context, claims auth.Claims) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxEmail, claims.Email)
	c.Set(ctxIsAdmin, claims.IsAdmin)
}

func abortAuth(c *gin.Context, status int, msg string) {
	code := "unauthorized"
	if status == http.StatusForbidden {
		code = "forbidden"
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error":      msg,
		"code":       code,
		"request_id": GetRequestID(c),
	})
}
