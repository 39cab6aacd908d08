// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/middlewares/auth"
	routeDetails "sekolahku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== WEBHOOK (tanpa JWT) =====================
	log.Println("[INFO] Setting up device webhook...")
	routeDetails.SchoolWebhookRoutes(app, db)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u",
		auth.AuthJWT(auth.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
	)

	// ===================== ADMIN =====================
	// Role check per fitur (finance boleh accountant, students hanya admin+)
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		auth.AuthJWT(auth.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
	)

	// ===================== MOUNT =====================
	log.Println("[INFO] Mounting Finance routes...")
	routeDetails.FinanceAdminRoutes(admin, db)
	routeDetails.FinanceUserRoutes(private, db)

	log.Println("[INFO] Mounting School routes...")
	routeDetails.SchoolAdminRoutes(admin, db)
}
