package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agencylms/internal/auth"
	"agencylms/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func newEngine(tokens auth.Tokens) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/optional", AuthOptional(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, Caller(c))
	})
	r.GET("/admin", AuthRequired(tokens), RequireAdmin(), func(c *gin.Context) {
		c.String(http.StatusOK, utils.RequestIDFrom(c.Request.Context()))
	})
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthOptional(t *testing.T) {
	tokens := auth.NewTokens("secret", time.Hour, time.Hour)
	r := newEngine(tokens)

	assert.Equal(t, http.StatusOK, get(r, "/optional", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/optional", "garbage").Code)

	tok, _, err := tokens.Issue(4, "a@b.co", false, false)
	require.NoError(t, err)
	w := get(r, "/optional", tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":4`)
}

func TestRequireAdmin(t *testing.T) {
	tokens := auth.NewTokens("secret", time.Hour, time.Hour)
	r := newEngine(tokens)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/admin", "").Code)

	learner, _, _ := tokens.Issue(4, "a@b.co", false, false)
	assert.Equal(t, http.StatusForbidden, get(r, "/admin", learner).Code)

	admin, _, _ := tokens.Issue(1, "admin@b.co", true, false)
	w := get(r, "/admin", admin)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, w.Header().Get("X-Request-ID"), w.Body.String())
}
