// file: internals/features/students/students/route/student_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sController "sekolahku_backend/internals/features/students/students/controller"
	"sekolahku_backend/internals/middlewares/auth"
)

// Dipanggil dengan grup /api/a. Hasil endpoint: /api/a/students/...
func StudentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &sController.StudentController{DB: db}

	s := r.Group("/students", auth.IsSchoolAdmin())
	s.Post("/", ctl.CreateStudent)
	s.Get("/", ctl.ListStudents)
	s.Get("/resolve/:invoice_student_id", ctl.ResolveStudent)
	s.Get("/:school_id/:class_id", ctl.GetStudent)
	s.Patch("/:school_id/:class_id", ctl.UpdateStudent)
	s.Delete("/:school_id/:class_id", ctl.DeleteStudent)

	s.Post("/:school_id/:class_id/guardians", ctl.CreateGuardian)
	s.Get("/:school_id/:class_id/guardians", ctl.ListGuardians)
}
