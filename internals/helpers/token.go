// file: internals/helpers/token.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Nama-nama Locals yang diisi middleware AuthJWT
const (
	LocRawToken = "raw_token"
	LocUserID   = "user_id"
	LocUserRole = "user_role"
	LocSchoolID = "school_id"
)

// GetRawAccessToken mengembalikan access token dari:
// 1) Locals("raw_token") yang diset middleware
// 2) Authorization header "Bearer <token>"
// 3) cookie "access_token"
func GetRawAccessToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	const p = "Bearer "
	if auth := c.Get(fiber.HeaderAuthorization); len(auth) > len(p) && strings.HasPrefix(auth, p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return strings.TrimSpace(c.Cookies("access_token"))
}

// GetUserIDFromToken membaca user_id yang dihydrate middleware dari claims.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	switch v := c.Locals(LocUserID).(type) {
	case uuid.UUID:
		return v, nil
	case string:
		return uuid.Parse(v)
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id tidak ditemukan di token")
}

// GetUserRole membaca role aktif dari Locals (default "user").
func GetUserRole(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocUserRole).(string); ok && v != "" {
		return v
	}
	return "user"
}

// GetSchoolIDFromToken membaca scope sekolah (integer) dari Locals.
func GetSchoolIDFromToken(c *fiber.Ctx) (int, bool) {
	switch v := c.Locals(LocSchoolID).(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	}
	return 0, false
}
