// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	uController "sekolahku_backend/internals/features/users/auth/controller"
	"sekolahku_backend/internals/middlewares"
	"sekolahku_backend/internals/middlewares/auth"
)

// Dipanggil dengan app root. Hasil endpoint: /api/auth/...
func AuthRoutes(app fiber.Router, db *gorm.DB) {
	ctl := &uController.AuthController{DB: db}

	a := app.Group("/api/auth")
	a.Post("/register", ctl.Register)
	a.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	a.Get("/me",
		auth.AuthJWT(auth.AuthJWTOpts{Secret: configs.JWTSecret, AllowCookieFallback: true}),
		ctl.Me,
	)
}
