package auth

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/constants"
	helper "sekolahku_backend/internals/helpers"
)

// RequireRoles menolak request jika role di token tidak ada di daftar allowed.
func RequireRoles(feature string, allowed ...string) fiber.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		set[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := helper.GetUserRole(c)
		if _, ok := set[role]; !ok {
			return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorAdmin(feature))
		}
		return c.Next()
	}
}

// IsSchoolAdmin: guard grup /api/a
func IsSchoolAdmin() fiber.Handler {
	return RequireRoles("admin", constants.AdminAndAbove...)
}

// IsFinanceStaff: guard fitur keuangan (admin, accountant, owner)
func IsFinanceStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := helper.GetUserRole(c)
		for _, r := range constants.FinanceRoles {
			if role == r {
				return c.Next()
			}
		}
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorFinance("keuangan"))
	}
}
