// file: internals/features/finance/late_fee_rules/route/late_fee_rule_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ruleController "sekolahku_backend/internals/features/finance/late_fee_rules/controller"
	"sekolahku_backend/internals/middlewares/auth"
)

// Dipanggil dengan grup /api/a. Hasil endpoint: /api/a/late-fee-rules/...
func LateFeeRuleAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &ruleController.Handler{DB: db}

	rules := r.Group("/late-fee-rules", auth.IsFinanceStaff())
	rules.Post("/", ctl.CreateLateFeeRule)
	rules.Get("/", ctl.ListLateFeeRules)
	rules.Get("/:id", ctl.GetLateFeeRule)
	rules.Patch("/:id", ctl.UpdateLateFeeRule)
	rules.Post("/:id/activate", ctl.ActivateLateFeeRule)
	rules.Post("/:id/deactivate", ctl.DeactivateLateFeeRule)
	rules.Delete("/:id", ctl.DeleteLateFeeRule)
}
