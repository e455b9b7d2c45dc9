package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"videogames-be/internal/entities"
	"videogames-be/internal/jwt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedRouter(tokens *jwt.JWTService, roles ...string) *gin.Engine {
	r := gin.New()
	handlers := []gin.HandlerFunc{AuthMiddleware(tokens)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetInt64(UserIDKey),
			"roles":   c.GetStringSlice(RolesKey),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func do(r http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := jwt.NewJWTService(testSecret, time.Hour)
	valid, err := tokens.GenerateToken(7, "player@example.com", []string{entities.RoleUser})
	require.NoError(t, err)
	expired, err := jwt.NewJWTService(testSecret, -time.Hour).GenerateToken(7, "player@example.com", nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "no header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, status: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", status: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer not.a.token", status: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, status: http.StatusUnauthorized},
		{name: "valid", header: "Bearer " + valid, status: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + valid, status: http.StatusOK},
	}
	r := newProtectedRouter(tokens)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, do(r, tt.header).Code)
		})
	}

	w := do(r, "Bearer "+valid)
	assert.JSONEq(t, `{"user_id":7,"roles":["ROLE_USER"]}`, w.Body.String())
}

func TestRequireRoles(t *testing.T) {
	tokens := jwt.NewJWTService(testSecret, time.Hour)
	user, err := tokens.GenerateToken(2, "user@example.com", []string{entities.RoleUser})
	require.NoError(t, err)
	admin, err := tokens.GenerateToken(1, "admin@example.com", []string{entities.RoleAdmin})
	require.NoError(t, err)

	r := newProtectedRouter(tokens, entities.RoleAdmin)

	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
	assert.Equal(t, http.StatusForbidden, do(r, "Bearer "+user).Code)
	assert.Equal(t, http.StatusOK, do(r, "Bearer "+admin).Code)
}

func TestRequireRoles_WithoutAuth(t *testing.T) {
	r := gin.New()
	r.GET("/protected", RequireRoles(entities.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusForbidden, do(r, "").Code)
}

func TestHasRole(t *testing.T) {
	assert.True(t, HasRole([]string{entities.RoleAdmin}, entities.RoleAdmin))
	assert.True(t, HasRole([]string{entities.RoleAdmin}, entities.RoleUser))
	assert.True(t, HasRole([]string{entities.RoleUser}, entities.RoleUser))
	assert.False(t, HasRole([]string{entities.RoleUser}, entities.RoleAdmin))
	assert.False(t, HasRole(nil, entities.RoleUser))
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewRateLimiter(ctx, rate.Limit(1), 2)

	r := gin.New()
	r.GET("/protected", rl.LimitMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for range 3 {
		codes = append(codes, do(r, "").Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_SweepForgetsIdleVisitors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewRateLimiter(ctx, rate.Limit(1), 1)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getVisitor("10.0.0.1")
	now = now.Add(visitorIdleTTL + time.Second)
	rl.getVisitor("10.0.0.2")
	rl.sweep()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.visitors, "10.0.0.1")
	assert.Contains(t, rl.visitors, "10.0.0.2")
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(RequestLogger(logger))
	r.GET("/protected", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
		c.Status(http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected?page=2", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, `"msg":"GET /protected?page=2"`)
	assert.Contains(t, out, `"status":500`)
	assert.Contains(t, out, `"msg":"HTTP request error"`)
	assert.Contains(t, out, assert.AnError.Error())
}

func TestRequestLogger_IncludesAuthenticatedUser(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	tokens := jwt.NewJWTService(testSecret, time.Hour)
	token, err := tokens.GenerateToken(12, "admin@example.com", []string{entities.RoleAdmin})
	require.NoError(t, err)

	r := gin.New()
	r.Use(RequestLogger(logger))
	r.GET("/protected", AuthMiddleware(tokens), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	do(r, "Bearer "+token)
	assert.Contains(t, buf.String(), `"user_id":12`)

	buf.Reset()
	do(r, "")
	assert.NotContains(t, buf.String(), "user_id")
}
