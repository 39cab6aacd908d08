// file: internals/features/users/auth/controller/auth_controller_test.go
package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	umodel "sekolahku_backend/internals/features/users/auth/model"
)

const testJWTSecret = "rahasia-uji"

func setupAuthTest(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&umodel.User{}))

	configs.JWTSecret = testJWTSecret

	ctl := &AuthController{DB: db}
	app := fiber.New()
	app.Post("/auth/register", ctl.Register)
	app.Post("/auth/login", ctl.Login)
	return app, db
}

func doAuth(t *testing.T, app *fiber.App, path string, body map[string]any) (*http.Response, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]any
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &parsed))
	return resp, parsed
}

func TestRegisterThenLogin(t *testing.T) {
	app, db := setupAuthTest(t)

	resp, parsed := doAuth(t, app, "/auth/register", map[string]any{
		"user_email":     "bendahara@sekolahku.id",
		"user_password":  "sandi-rahasia",
		"user_full_name": "Bendahara Sekolah",
		"user_role":      "accountant",
		"user_school_id": 6,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := parsed["data"].(map[string]any)
	assert.Equal(t, "accountant", data["user_role"])

	// Password tidak boleh kebawa di response maupun polos di DB
	_, hasPassword := data["user_password"]
	assert.False(t, hasPassword)
	var u umodel.User
	require.NoError(t, db.First(&u, "user_email = ?", "bendahara@sekolahku.id").Error)
	assert.NotEqual(t, "sandi-rahasia", u.UserPasswordHash)

	resp, parsed = doAuth(t, app, "/auth/login", map[string]any{
		"user_email":    "bendahara@sekolahku.id",
		"user_password": "sandi-rahasia",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = parsed["data"].(map[string]any)

	tokenStr, _ := data["access_token"].(string)
	require.NotEmpty(t, tokenStr)

	// Token harus HS256 dengan claims sub/role/school_id
	tok, err := jwt.Parse(tokenStr, func(tk *jwt.Token) (any, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, u.UserID.String(), claims["sub"])
	assert.Equal(t, "accountant", claims["role"])
	assert.EqualValues(t, 6, claims["school_id"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	app, _ := setupAuthTest(t)

	body := map[string]any{
		"user_email":     "admin@sekolahku.id",
		"user_password":  "sandi-rahasia",
		"user_full_name": "Admin",
	}
	resp, _ := doAuth(t, app, "/auth/register", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, parsed := doAuth(t, app, "/auth/register", body)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", parsed["error_code"])
}

func TestLogin_WrongPassword(t *testing.T) {
	app, _ := setupAuthTest(t)

	resp, _ := doAuth(t, app, "/auth/register", map[string]any{
		"user_email":     "guru@sekolahku.id",
		"user_password":  "sandi-rahasia",
		"user_full_name": "Guru",
		"user_role":      "teacher",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doAuth(t, app, "/auth/login", map[string]any{
		"user_email":    "guru@sekolahku.id",
		"user_password": "sandi-keliru",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doAuth(t, app, "/auth/login", map[string]any{
		"user_email":    "tidak-ada@sekolahku.id",
		"user_password": "apa-saja",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
