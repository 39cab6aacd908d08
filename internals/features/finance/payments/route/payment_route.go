// file: internals/features/finance/payments/route/payment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	pController "sekolahku_backend/internals/features/finance/payments/controller"
	"sekolahku_backend/internals/middlewares/auth"
)

// Dipanggil dengan grup /api/a. Hasil endpoint: /api/a/payments/...
func PaymentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &pController.PaymentController{DB: db}

	p := r.Group("/payments", auth.IsFinanceStaff())
	p.Post("/", ctl.PostPayment)
	p.Post("/:invoice_id/snap-token", ctl.CreateSnapToken)
	p.Get("/", ctl.ListPayments)
	p.Get("/:id", ctl.GetPayment)
}

// Dipanggil dengan grup /api/u: wali murid minta snap token utk invoice anaknya.
func PaymentUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &pController.PaymentController{DB: db}

	p := r.Group("/payments")
	p.Post("/:invoice_id/snap-token", ctl.CreateSnapToken)
}
