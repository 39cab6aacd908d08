// file: internals/features/finance/late_fee_rules/controller/late_fee_rule_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/finance/late_fee_rules/dto"
	rulemodel "sekolahku_backend/internals/features/finance/late_fee_rules/model"
	helper "sekolahku_backend/internals/helpers"
)

type Handler struct {
	DB *gorm.DB
}

func parseUUID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(param))
}

// POST /late-fee-rules
func (h *Handler) CreateLateFeeRule(c *fiber.Ctx) error {
	var in dto.LateFeeRuleCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if errs := helper.ValidateStruct(in); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	if in.LateFeeRuleValue.IsNegative() {
		return helper.JsonValidationError(c, map[string][]string{
			"late_fee_rule_value": {"tidak boleh negatif"},
		})
	}

	m := dto.LateFeeRuleCreateDTOToModel(in)
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "late fee rule created", dto.ToLateFeeRuleResponse(m))
}

// PATCH /late-fee-rules/:id
// Catatan: toggle is_active TIDAK menghitung ulang denda yang sudah ke-stamp
// di invoice; hanya evaluasi berikutnya yang terpengaruh.
func (h *Handler) UpdateLateFeeRule(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}

	var in dto.LateFeeRuleUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if errs := helper.ValidateStruct(in); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	var m rulemodel.LateFeeRule
	if err := h.DB.First(&m, "late_fee_rule_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "late_fee_rule not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	dto.ApplyLateFeeRuleUpdate(&m, in)
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "late fee rule updated", dto.ToLateFeeRuleResponse(m))
}

// POST /late-fee-rules/:id/activate
func (h *Handler) ActivateLateFeeRule(c *fiber.Ctx) error {
	return h.setActive(c, true)
}

// POST /late-fee-rules/:id/deactivate
// Denda yang sudah ke-stamp tetap; hanya evaluasi berikutnya yang berubah.
func (h *Handler) DeactivateLateFeeRule(c *fiber.Ctx) error {
	return h.setActive(c, false)
}

func (h *Handler) setActive(c *fiber.Ctx, active bool) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}
	var m rulemodel.LateFeeRule
	if err := h.DB.First(&m, "late_fee_rule_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "late_fee_rule not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	if m.LateFeeRuleIsActive != active {
		m.LateFeeRuleIsActive = active
		if err := h.DB.Model(&rulemodel.LateFeeRule{}).
			Where("late_fee_rule_id = ?", id).
			Update("late_fee_rule_is_active", active).Error; err != nil {
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}
	}
	return helper.JsonOK(c, "late fee rule updated", dto.ToLateFeeRuleResponse(m))
}

// GET /late-fee-rules
func (h *Handler) ListLateFeeRules(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := h.DB.Model(&rulemodel.LateFeeRule{})
	if v := c.Query("is_active"); v == "true" {
		q = q.Where("late_fee_rule_is_active = ?", true)
	} else if v == "false" {
		q = q.Where("late_fee_rule_is_active = ?", false)
	}

	allowed := map[string]string{
		"created_at": "late_fee_rule_created_at",
		"updated_at": "late_fee_rule_updated_at",
		"grace_days": "late_fee_rule_grace_days",
		"name":       "late_fee_rule_name",
	}
	orderClause, _ := p.SafeOrderClause(allowed, "created_at")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var list []rulemodel.LateFeeRule
	if err := q.Order(orderClause).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	out := make([]dto.LateFeeRuleResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.ToLateFeeRuleResponse(m))
	}
	return helper.JsonList(c, "late fee rules", out, helper.BuildPagination(total, p.Page, p.PerPage))
}

// GET /late-fee-rules/:id
func (h *Handler) GetLateFeeRule(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}
	var m rulemodel.LateFeeRule
	if err := h.DB.First(&m, "late_fee_rule_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "late_fee_rule not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "late fee rule", dto.ToLateFeeRuleResponse(m))
}

// DELETE /late-fee-rules/:id (soft delete)
func (h *Handler) DeleteLateFeeRule(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}
	res := h.DB.Delete(&rulemodel.LateFeeRule{}, "late_fee_rule_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, http.StatusNotFound, "late_fee_rule not found")
	}
	return helper.JsonOK(c, "late fee rule deleted", fiber.Map{"late_fee_rule_id": id})
}
