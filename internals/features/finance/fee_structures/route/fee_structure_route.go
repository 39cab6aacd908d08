// file: internals/features/finance/fee_structures/route/fee_structure_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	fsController "sekolahku_backend/internals/features/finance/fee_structures/controller"
	"sekolahku_backend/internals/middlewares/auth"
)

// Dipanggil dengan grup /api/a. Hasil endpoint: /api/a/fee-structures/...
func FeeStructureAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &fsController.FeeStructureController{DB: db}

	fs := r.Group("/fee-structures", auth.IsFinanceStaff())
	fs.Post("/", ctl.CreateFeeStructure)
	fs.Get("/", ctl.ListFeeStructures)
	fs.Get("/:id", ctl.GetFeeStructure)
	fs.Patch("/:id", ctl.UpdateFeeStructure)
	fs.Delete("/:id", ctl.DeleteFeeStructure)
}
