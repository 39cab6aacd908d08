// file: internals/features/hr/attendance/route/attendance_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	aController "sekolahku_backend/internals/features/hr/attendance/controller"
	"sekolahku_backend/internals/middlewares"
	"sekolahku_backend/internals/middlewares/auth"
)

// Dipanggil dengan grup /api/a. Hasil endpoint: /api/a/attendance/...
func AttendanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &aController.AttendanceController{DB: db}

	a := r.Group("/attendance", auth.IsSchoolAdmin())
	a.Get("/", ctl.ListAttendance)
	a.Put("/", ctl.UpsertAttendance)
}

// Webhook mesin absensi — tanpa JWT, proteksi X-Device-Key + rate limiter.
// Dipanggil dengan app root. Hasil endpoint: /api/webhook/device/attendance
func AttendanceWebhookRoutes(app fiber.Router, db *gorm.DB) {
	ctl := &aController.AttendanceController{DB: db}

	app.Post("/api/webhook/device/attendance",
		middlewares.DeviceWebhookRateLimiter(),
		ctl.DeviceWebhook,
	)
}
