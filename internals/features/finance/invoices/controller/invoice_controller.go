// file: internals/features/finance/invoices/controller/invoice_controller.go
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dismodel "sekolahku_backend/internals/features/finance/discounts/model"
	fsmodel "sekolahku_backend/internals/features/finance/fee_structures/model"
	"sekolahku_backend/internals/features/finance/invoices/dto"
	invmodel "sekolahku_backend/internals/features/finance/invoices/model"
	"sekolahku_backend/internals/features/finance/invoices/scheduler"
	invservice "sekolahku_backend/internals/features/finance/invoices/service"
	smodel "sekolahku_backend/internals/features/students/students/model"
	sservice "sekolahku_backend/internals/features/students/students/service"
	helper "sekolahku_backend/internals/helpers"
)

type InvoiceController struct {
	DB *gorm.DB
}

// POST /invoices — invoice manual satuan
func (ctl *InvoiceController) CreateInvoice(c *fiber.Ctx) error {
	var in dto.InvoiceCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if errs := helper.ValidateStruct(in); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	// Student ID wajib composite UUID yang valid
	if _, _, err := sservice.DecodeStudentUUID(in.InvoiceStudentID); err != nil {
		return helper.JsonValidationError(c, map[string][]string{
			"invoice_student_id": {err.Error()},
		})
	}
	if in.InvoiceDueDate.Before(in.InvoiceIssueDate) {
		return helper.JsonValidationError(c, map[string][]string{
			"invoice_due_date": {"tidak boleh sebelum issue date"},
		})
	}

	m := dto.InvoiceCreateDTOToModel(in)
	res := ctl.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "invoice_student_id"},
			{Name: "invoice_period_year"},
			{Name: "invoice_period_month"},
			{Name: "invoice_fee_category"},
		},
		DoNothing: true,
	}).Create(&m)
	if res.Error != nil {
		return helper.JsonError(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, http.StatusConflict, "invoice untuk student & periode ini sudah ada")
	}
	return helper.JsonCreated(c, "invoice created", dto.ToInvoiceResponse(m))
}

// GET /invoices — filter: status, student_id, period_year, period_month, category
func (ctl *InvoiceController) ListInvoices(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	q := ctl.DB.Model(&invmodel.Invoice{})
	if v := c.Query("status"); v != "" {
		q = q.Where("invoice_status = ?", v)
	}
	if v := c.Query("student_id"); v != "" {
		q = q.Where("invoice_student_id = ?", v)
	}
	if v := c.QueryInt("period_year"); v > 0 {
		q = q.Where("invoice_period_year = ?", v)
	}
	if v := c.QueryInt("period_month"); v > 0 {
		q = q.Where("invoice_period_month = ?", v)
	}
	if v := c.Query("category"); v != "" {
		q = q.Where("invoice_fee_category = ?", v)
	}

	allowed := map[string]string{
		"created_at": "invoice_created_at",
		"due_date":   "invoice_due_date",
		"period":     "invoice_period_year",
		"status":     "invoice_status",
	}
	orderClause, _ := p.SafeOrderClause(allowed, "created_at")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var list []invmodel.Invoice
	if err := q.Order(orderClause).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "invoices", dto.ToInvoiceResponses(list), helper.BuildPagination(total, p.Page, p.PerPage))
}

// GET /invoices/:id
func (ctl *InvoiceController) GetInvoice(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}
	var m invmodel.Invoice
	if err := ctl.DB.First(&m, "invoice_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "invoice not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "invoice", dto.ToInvoiceResponse(m))
}

// POST /invoices/:id/cancel
// CANCELLED bersifat final: invoice yang sudah PAID tidak bisa dibatalkan,
// dan invoice CANCELLED tidak pernah kembali ke status lain.
func (ctl *InvoiceController) CancelInvoice(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}

	var m invmodel.Invoice
	if err := ctl.DB.First(&m, "invoice_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "invoice not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	if m.InvoiceStatus == invmodel.InvoiceStatusPaid {
		return helper.JsonError(c, http.StatusConflict, "invoice sudah PAID, tidak bisa dibatalkan")
	}
	if m.InvoiceStatus == invmodel.InvoiceStatusCancelled {
		return helper.JsonOK(c, "invoice sudah dibatalkan", dto.ToInvoiceResponse(m))
	}

	m.InvoiceStatus = invmodel.InvoiceStatusCancelled
	if err := ctl.DB.Model(&invmodel.Invoice{}).
		Where("invoice_id = ?", id).
		Update("invoice_status", invmodel.InvoiceStatusCancelled).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "invoice cancelled", dto.ToInvoiceResponse(m))
}

// POST /invoices/generate
//
// Generate invoice massal utk satu fee structure + periode. Idempotent:
// student yang sudah punya invoice utk periode & kategori yang sama di-skip
// lewat ON CONFLICT DO NOTHING pada unique index periode.
func (ctl *InvoiceController) GenerateInvoices(c *fiber.Ctx) error {
	var in dto.GenerateInvoicesRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if errs := helper.ValidateStruct(in); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	if in.DueDate.Before(in.IssueDate) {
		return helper.JsonValidationError(c, map[string][]string{
			"due_date": {"tidak boleh sebelum issue date"},
		})
	}

	var fs fsmodel.FeeStructure
	if err := ctl.DB.First(&fs, "fee_structure_id = ?", in.FeeStructureID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "fee_structure not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	if !fs.FeeStructureIsActive {
		return helper.JsonError(c, http.StatusConflict, "fee_structure tidak aktif")
	}

	sq := ctl.DB.Where("student_school_id = ? AND student_is_active = ?", in.SchoolID, true)
	if len(in.ClassIDs) > 0 {
		sq = sq.Where("student_class_id IN ?", in.ClassIDs)
	}
	var students []smodel.Student
	if err := sq.Order("student_class_id ASC").Find(&students).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	// Diskon yang mungkin berlaku: umum, scoped ke fee structure ini, atau
	// scoped ke student tertentu
	var discounts []dismodel.Discount
	if err := ctl.DB.
		Where("discount_is_active = ?", true).
		Where("discount_fee_structure_id IS NULL OR discount_fee_structure_id = ?", fs.FeeStructureID).
		Order("discount_created_at ASC").
		Find(&discounts).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	total := fs.TotalAmount()
	lines := make(invmodel.InvoiceLines, 0, len(fs.FeeStructureLines))
	for _, l := range fs.FeeStructureLines {
		lines = append(lines, invmodel.InvoiceLine{Description: l.Description, Amount: l.Amount})
	}

	// Kuota max_recipients dihitung per batch generate (lihat DESIGN.md)
	remaining := make(map[uuid.UUID]int, len(discounts))
	for _, d := range discounts {
		if d.DiscountMaxRecipients != nil {
			remaining[d.DiscountID] = *d.DiscountMaxRecipients
		}
	}

	inserted, skipped := 0, 0
	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		for _, st := range students {
			studentID, err := sservice.EncodeStudentUUID(int64(st.StudentSchoolID), int64(st.StudentClassID))
			if err != nil {
				skipped++
				continue
			}

			discountAmount := decimal.Zero
			var applied invmodel.AppliedDiscounts
			for _, d := range discounts {
				if d.DiscountStudentID != nil && *d.DiscountStudentID != studentID {
					continue
				}
				if d.DiscountMaxRecipients != nil && remaining[d.DiscountID] <= 0 {
					continue
				}
				cut := d.ReductionFor(total)
				if !cut.IsPositive() {
					continue
				}
				discountAmount = discountAmount.Add(cut)
				applied = append(applied, invmodel.AppliedDiscount{
					DiscountID:   d.DiscountID,
					DiscountName: d.DiscountName,
					Amount:       cut,
				})
				if d.DiscountMaxRecipients != nil {
					remaining[d.DiscountID]--
				}
			}
			if discountAmount.GreaterThan(total) {
				discountAmount = total
			}
			net := total.Sub(discountAmount).Round(2)

			fsID := fs.FeeStructureID
			inv := invmodel.Invoice{
				InvoiceStudentID:        studentID,
				InvoiceFeeStructureID:   &fsID,
				InvoiceFeeCategory:      fs.FeeStructureCategory,
				InvoicePeriodYear:       in.PeriodYear,
				InvoicePeriodMonth:      in.PeriodMonth,
				InvoiceIssueDate:        in.IssueDate,
				InvoiceDueDate:          in.DueDate,
				InvoiceLines:            lines,
				InvoiceAppliedDiscounts: applied,
				InvoiceTotalAmount:      total,
				InvoiceDiscountAmount:   discountAmount.Round(2),
				InvoiceNetAmount:        net,
				InvoicePaidAmount:       decimal.Zero,
				InvoiceLateFeeAmount:    decimal.Zero,
				InvoiceStatus:           invmodel.InvoiceStatusIssued,
			}

			res := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "invoice_student_id"},
					{Name: "invoice_period_year"},
					{Name: "invoice_period_month"},
					{Name: "invoice_fee_category"},
				},
				DoNothing: true,
			}).Create(&inv)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				skipped++
			} else {
				inserted++
			}
		}
		return nil
	})
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "invoices generated", dto.GenerateInvoicesResponse{
		FeeStructureID: fs.FeeStructureID,
		PeriodYear:     in.PeriodYear,
		PeriodMonth:    in.PeriodMonth,
		Inserted:       inserted,
		Skipped:        skipped,
	})
}

// POST /invoices/run-late-fees — trigger manual sweep denda (selain scheduler harian)
func (ctl *InvoiceController) RunLateFees(c *fiber.Ctx) error {
	var in dto.RunLateFeesRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid json")
		}
	}

	asOf := time.Now()
	if in.AsOf != nil {
		asOf = *in.AsOf
	}

	evaluated, applied, err := scheduler.RunLateFeeSweep(ctl.DB, asOf)
	if err != nil {
		var verr *invservice.ValidationError
		if errors.As(err, &verr) {
			return helper.JsonError(c, http.StatusUnprocessableEntity, verr.Error())
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "late fee sweep selesai", dto.RunLateFeesResponse{
		Evaluated: evaluated,
		Applied:   applied,
		AsOf:      asOf,
	})
}
