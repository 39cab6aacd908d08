// file: internals/route/details/auth_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	AuthRoute "sekolahku_backend/internals/features/users/auth/route"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	AuthRoute.AuthRoutes(app, db)
}
