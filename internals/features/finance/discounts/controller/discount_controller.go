// file: internals/features/finance/discounts/controller/discount_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/finance/discounts/dto"
	dmodel "sekolahku_backend/internals/features/finance/discounts/model"
	sservice "sekolahku_backend/internals/features/students/students/service"
	helper "sekolahku_backend/internals/helpers"
)

type DiscountController struct {
	DB *gorm.DB
}

// POST /discounts — discount & scholarship (beda kind)
func (ctl *DiscountController) CreateDiscount(c *fiber.Ctx) error {
	var in dto.DiscountCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if errs := helper.ValidateStruct(in); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	if in.DiscountValue.IsNegative() {
		return helper.JsonValidationError(c, map[string][]string{
			"discount_value": {"tidak boleh negatif"},
		})
	}
	if in.DiscountFeeStructureID != nil && in.DiscountStudentID != nil {
		return helper.JsonValidationError(c, map[string][]string{
			"discount_student_id": {"pilih salah satu scope: fee structure atau student"},
		})
	}
	if in.DiscountStudentID != nil {
		if _, _, err := sservice.DecodeStudentUUID(*in.DiscountStudentID); err != nil {
			return helper.JsonValidationError(c, map[string][]string{
				"discount_student_id": {err.Error()},
			})
		}
	}

	m := dto.DiscountCreateDTOToModel(in)
	if err := ctl.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "discount created", dto.ToDiscountResponse(m))
}

// PATCH /discounts/:id
func (ctl *DiscountController) UpdateDiscount(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}
	var in dto.DiscountUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if errs := helper.ValidateStruct(in); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	if in.DiscountValue != nil && in.DiscountValue.IsNegative() {
		return helper.JsonValidationError(c, map[string][]string{
			"discount_value": {"tidak boleh negatif"},
		})
	}

	var m dmodel.Discount
	if err := ctl.DB.First(&m, "discount_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "discount not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	dto.ApplyDiscountUpdate(&m, in)
	if err := ctl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "discount updated", dto.ToDiscountResponse(m))
}

// GET /discounts — filter: kind, is_active, student_id, fee_structure_id
func (ctl *DiscountController) ListDiscounts(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := ctl.DB.Model(&dmodel.Discount{})
	if v := c.Query("kind"); v != "" {
		q = q.Where("discount_kind = ?", v)
	}
	if v := c.Query("is_active"); v == "true" {
		q = q.Where("discount_is_active = ?", true)
	} else if v == "false" {
		q = q.Where("discount_is_active = ?", false)
	}
	if v := c.Query("student_id"); v != "" {
		q = q.Where("discount_student_id = ?", v)
	}
	if v := c.Query("fee_structure_id"); v != "" {
		q = q.Where("discount_fee_structure_id = ?", v)
	}

	allowed := map[string]string{
		"created_at": "discount_created_at",
		"name":       "discount_name",
	}
	orderClause, _ := p.SafeOrderClause(allowed, "created_at")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var list []dmodel.Discount
	if err := q.Order(orderClause).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	out := make([]dto.DiscountResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.ToDiscountResponse(m))
	}
	return helper.JsonList(c, "discounts", out, helper.BuildPagination(total, p.Page, p.PerPage))
}

// GET /discounts/:id
func (ctl *DiscountController) GetDiscount(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}
	var m dmodel.Discount
	if err := ctl.DB.First(&m, "discount_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "discount not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "discount", dto.ToDiscountResponse(m))
}

// DELETE /discounts/:id (soft delete; invoice yang sudah kebagian potongan tidak berubah)
func (ctl *DiscountController) DeleteDiscount(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}
	res := ctl.DB.Delete(&dmodel.Discount{}, "discount_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, http.StatusNotFound, "discount not found")
	}
	return helper.JsonOK(c, "discount deleted", fiber.Map{"discount_id": id})
}
