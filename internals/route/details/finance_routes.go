// file: internals/route/details/finance_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	DiscountRoute "sekolahku_backend/internals/features/finance/discounts/route"
	FeeStructureRoute "sekolahku_backend/internals/features/finance/fee_structures/route"
	InvoiceRoute "sekolahku_backend/internals/features/finance/invoices/route"
	LateFeeRuleRoute "sekolahku_backend/internals/features/finance/late_fee_rules/route"
	PaymentRoute "sekolahku_backend/internals/features/finance/payments/route"
)

func FinanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	FeeStructureRoute.FeeStructureAdminRoutes(r, db)
	DiscountRoute.DiscountAdminRoutes(r, db)
	InvoiceRoute.InvoiceAdminRoutes(r, db)
	LateFeeRuleRoute.LateFeeRuleAdminRoutes(r, db)
	PaymentRoute.PaymentAdminRoutes(r, db)
}

func FinanceUserRoutes(r fiber.Router, db *gorm.DB) {
	PaymentRoute.PaymentUserRoutes(r, db)
}
