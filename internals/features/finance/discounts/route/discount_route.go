// file: internals/features/finance/discounts/route/discount_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dController "sekolahku_backend/internals/features/finance/discounts/controller"
	"sekolahku_backend/internals/middlewares/auth"
)

// Dipanggil dengan grup /api/a. Hasil endpoint: /api/a/discounts/...
func DiscountAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &dController.DiscountController{DB: db}

	d := r.Group("/discounts", auth.IsFinanceStaff())
	d.Post("/", ctl.CreateDiscount)
	d.Get("/", ctl.ListDiscounts)
	d.Get("/:id", ctl.GetDiscount)
	d.Patch("/:id", ctl.UpdateDiscount)
	d.Delete("/:id", ctl.DeleteDiscount)
}
