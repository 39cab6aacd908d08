// file: internals/features/finance/fee_structures/controller/fee_structure_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/finance/fee_structures/dto"
	fsmodel "sekolahku_backend/internals/features/finance/fee_structures/model"
	helper "sekolahku_backend/internals/helpers"
)

type FeeStructureController struct {
	DB *gorm.DB
}

// POST /fee-structures
func (ctl *FeeStructureController) CreateFeeStructure(c *fiber.Ctx) error {
	var in dto.FeeStructureCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if errs := helper.ValidateStruct(in); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	for _, l := range in.FeeStructureLines {
		if l.Amount.IsNegative() {
			return helper.JsonValidationError(c, map[string][]string{
				"fee_structure_lines": {"amount tidak boleh negatif"},
			})
		}
	}

	m := dto.FeeStructureCreateDTOToModel(in)
	if err := ctl.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "fee structure created", dto.ToFeeStructureResponse(m))
}

// PATCH /fee-structures/:id
func (ctl *FeeStructureController) UpdateFeeStructure(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}
	var in dto.FeeStructureUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if errs := helper.ValidateStruct(in); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	var m fsmodel.FeeStructure
	if err := ctl.DB.First(&m, "fee_structure_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "fee_structure not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	dto.ApplyFeeStructureUpdate(&m, in)
	if err := ctl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "fee structure updated", dto.ToFeeStructureResponse(m))
}

// GET /fee-structures — filter: grade, academic_year, is_active
func (ctl *FeeStructureController) ListFeeStructures(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := ctl.DB.Model(&fsmodel.FeeStructure{})
	if v := c.Query("grade"); v != "" {
		q = q.Where("fee_structure_grade_label = ?", v)
	}
	if v := c.Query("academic_year"); v != "" {
		q = q.Where("fee_structure_academic_year = ?", v)
	}
	if v := c.Query("is_active"); v == "true" {
		q = q.Where("fee_structure_is_active = ?", true)
	} else if v == "false" {
		q = q.Where("fee_structure_is_active = ?", false)
	}

	allowed := map[string]string{
		"created_at": "fee_structure_created_at",
		"name":       "fee_structure_name",
		"grade":      "fee_structure_grade_label",
	}
	orderClause, _ := p.SafeOrderClause(allowed, "created_at")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var list []fsmodel.FeeStructure
	if err := q.Order(orderClause).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	out := make([]dto.FeeStructureResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.ToFeeStructureResponse(m))
	}
	return helper.JsonList(c, "fee structures", out, helper.BuildPagination(total, p.Page, p.PerPage))
}

// GET /fee-structures/:id
func (ctl *FeeStructureController) GetFeeStructure(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}
	var m fsmodel.FeeStructure
	if err := ctl.DB.First(&m, "fee_structure_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "fee_structure not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "fee structure", dto.ToFeeStructureResponse(m))
}

// DELETE /fee-structures/:id (soft delete; invoice lama tetap pegang snapshot lines)
func (ctl *FeeStructureController) DeleteFeeStructure(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}
	res := ctl.DB.Delete(&fsmodel.FeeStructure{}, "fee_structure_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, http.StatusNotFound, "fee_structure not found")
	}
	return helper.JsonOK(c, "fee structure deleted", fiber.Map{"fee_structure_id": id})
}
