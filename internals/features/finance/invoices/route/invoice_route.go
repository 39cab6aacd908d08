// file: internals/features/finance/invoices/route/invoice_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	invController "sekolahku_backend/internals/features/finance/invoices/controller"
	"sekolahku_backend/internals/middlewares/auth"
)

// Dipanggil dengan grup /api/a. Hasil endpoint: /api/a/invoices/...
func InvoiceAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &invController.InvoiceController{DB: db}

	inv := r.Group("/invoices", auth.IsFinanceStaff())
	inv.Post("/", ctl.CreateInvoice)
	inv.Post("/generate", ctl.GenerateInvoices)
	inv.Post("/run-late-fees", ctl.RunLateFees)
	inv.Get("/", ctl.ListInvoices)
	inv.Get("/:id", ctl.GetInvoice)
	inv.Post("/:id/cancel", ctl.CancelInvoice)
}
