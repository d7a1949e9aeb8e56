package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/auth"
	"github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/models"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "unit-test-secret")
	os.Exit(m.Run())
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	r := gin.New()
	r.GET("/me", AuthRequired(db), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUser(c).ID})
	})
	r.GET("/admin", AuthRequired(db), AdminOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, db
}

func seedUser(t *testing.T, db *gorm.DB, role models.Role) models.User {
	t.Helper()
	user := models.User{Name: "Awa", Email: string(role) + "@example.com", Password: "x", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func get(r *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired_NoCookie(t *testing.T) {
	r, _ := setupRouter(t)

	w := get(r, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	r, _ := setupRouter(t)

	w := get(r, "/me", &http.Cookie{Name: "token", Value: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_ValidTokenLoadsUser(t *testing.T) {
	r, db := setupRouter(t)
	user := seedUser(t, db, models.RoleUser)

	token, err := auth.CreateToken(user.ID, time.Hour)
	require.NoError(t, err)

	w := get(r, "/me", &http.Cookie{Name: "token", Value: token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID)
}

func TestAuthRequired_TokenForDeletedUser(t *testing.T) {
	r, db := setupRouter(t)
	user := seedUser(t, db, models.RoleUser)

	token, err := auth.CreateToken(user.ID, time.Hour)
	require.NoError(t, err)
	require.NoError(t, db.Delete(&models.User{}, "id = ?", user.ID).Error)

	w := get(r, "/me", &http.Cookie{Name: "token", Value: token})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOnly_RejectsRegularUser(t *testing.T) {
	r, db := setupRouter(t)
	user := seedUser(t, db, models.RoleUser)

	token, err := auth.CreateToken(user.ID, time.Hour)
	require.NoError(t, err)

	w := get(r, "/admin", &http.Cookie{Name: "token", Value: token})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminOnly_AllowsAdmin(t *testing.T) {
	r, db := setupRouter(t)
	admin := seedUser(t, db, models.RoleAdmin)

	token, err := auth.CreateToken(admin.ID, time.Hour)
	require.NoError(t, err)

	w := get(r, "/admin", &http.Cookie{Name: "token", Value: token})
	assert.Equal(t, http.StatusOK, w.Code)
}
