// file: internals/route/details/school_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	AttendanceRoute "sekolahku_backend/internals/features/hr/attendance/route"
	StudentRoute "sekolahku_backend/internals/features/students/students/route"
)

func SchoolAdminRoutes(r fiber.Router, db *gorm.DB) {
	StudentRoute.StudentAdminRoutes(r, db)
	AttendanceRoute.AttendanceAdminRoutes(r, db)
}

// Webhook device absensi dipasang di root app (tanpa JWT).
func SchoolWebhookRoutes(app *fiber.App, db *gorm.DB) {
	AttendanceRoute.AttendanceWebhookRoutes(app, db)
}
