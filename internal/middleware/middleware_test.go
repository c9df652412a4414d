package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nexacare/internal/domain"
	"nexacare/internal/store"
	"nexacare/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

// --- helpers ---

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, store.New(db).Init(context.Background()))
	return db
}

func addAccount(t *testing.T, db *gorm.DB, role domain.Role) *domain.Account {
	t.Helper()
	a, err := store.New(db).AddAccount(context.Background(), "Test "+string(role), "pw", role)
	require.NoError(t, err)
	return a
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// --- tests ---

func TestJWTAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", JWTAuthMiddleware(testSecret), func(c *gin.Context) {
		// The middleware must have placed username and role in the context
		c.JSON(http.StatusOK, gin.H{
			"username": c.MustGet("username"),
			"role":     c.MustGet("role"),
		})
	})

	// Missing header
	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Malformed token
	w = doRequest(r, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Token signed with a different secret
	bad, err := utils.GenerateJWT("2025D0001", domain.RoleDoctor, "other-secret")
	require.NoError(t, err)
	w = doRequest(r, bad)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token passes and carries the claims through
	good, err := utils.GenerateJWT("2025D0001", domain.RoleDoctor, testSecret)
	require.NoError(t, err)
	w = doRequest(r, good)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2025D0001")
	assert.Contains(t, w.Body.String(), "doctor")
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	hr := addAccount(t, db, domain.RoleHR)
	doctor := addAccount(t, db, domain.RoleDoctor)

	r := gin.New()
	r.GET("/probe", JWTAuthMiddleware(testSecret), RequireRole(db, domain.RoleHR), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	hrToken, err := utils.GenerateJWT(hr.Username, hr.Role, testSecret)
	require.NoError(t, err)
	doctorToken, err := utils.GenerateJWT(doctor.Username, doctor.Role, testSecret)
	require.NoError(t, err)

	// The matching role passes
	assert.Equal(t, http.StatusOK, doRequest(r, hrToken).Code)
	// The other role is rejected
	assert.Equal(t, http.StatusForbidden, doRequest(r, doctorToken).Code)

	// A token for an account that no longer exists is rejected even though
	// the signature is valid
	ghost, err := utils.GenerateJWT("2025H9999", domain.RoleHR, testSecret)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, doRequest(r, ghost).Code)
}
