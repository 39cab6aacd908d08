// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	invmodel "sekolahku_backend/internals/features/finance/invoices/model"
	invservice "sekolahku_backend/internals/features/finance/invoices/service"
	"sekolahku_backend/internals/features/finance/payments/dto"
	pmodel "sekolahku_backend/internals/features/finance/payments/model"
	pservice "sekolahku_backend/internals/features/finance/payments/service"
	helper "sekolahku_backend/internals/helpers"
)

type PaymentController struct {
	DB *gorm.DB
}

// POST /payments
//
// Posting pembayaran parsial/penuh ke satu invoice. Increment paid_amount
// dikerjakan atomik di SQL dengan guard anti-overpay, jadi dua kasir yang
// posting bersamaan tidak bisa melewati payable (net + denda).
func (ctl *PaymentController) PostPayment(c *fiber.Ctx) error {
	var in dto.PaymentCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if errs := helper.ValidateStruct(in); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	if !in.PaymentAmount.IsPositive() {
		return helper.JsonValidationError(c, map[string][]string{
			"payment_amount": {"harus lebih dari 0"},
		})
	}

	var payment pmodel.Payment
	var after invmodel.Invoice
	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var inv invmodel.Invoice
		if err := tx.First(&inv, "invoice_id = ?", in.PaymentInvoiceID).Error; err != nil {
			return err
		}
		if inv.InvoiceStatus == invmodel.InvoiceStatusCancelled {
			return fiber.NewError(http.StatusConflict, "invoice sudah dibatalkan, pembayaran ditolak")
		}

		res := tx.Model(&invmodel.Invoice{}).
			Where("invoice_id = ?", inv.InvoiceID).
			Where("invoice_paid_amount + ? <= invoice_net_amount + invoice_late_fee_amount", in.PaymentAmount).
			UpdateColumn("invoice_paid_amount", gorm.Expr("invoice_paid_amount + ?", in.PaymentAmount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(http.StatusConflict,
				fmt.Sprintf("pembayaran melebihi sisa tagihan (outstanding %s)", inv.OutstandingAmount()))
		}

		if err := tx.First(&after, "invoice_id = ?", inv.InvoiceID).Error; err != nil {
			return err
		}
		newStatus := invservice.DeriveStatus(after, time.Now())
		if newStatus != after.InvoiceStatus {
			if err := tx.Model(&invmodel.Invoice{}).
				Where("invoice_id = ?", after.InvoiceID).
				Update("invoice_status", newStatus).Error; err != nil {
				return err
			}
			after.InvoiceStatus = newStatus
		}

		payment = pmodel.Payment{
			PaymentInvoiceID: after.InvoiceID,
			PaymentAmount:    in.PaymentAmount,
			PaymentMethod:    pmodel.PaymentMethod(in.PaymentMethod),
			PaymentReference: in.PaymentReference,
			PaymentNote:      in.PaymentNote,
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "invoice not found")
		}
		return helper.FromFiberError(c, err)
	}

	out := dto.ToPaymentResponse(payment)
	out.InvoiceStatus = string(after.InvoiceStatus)
	out.InvoicePaidAmount = after.InvoicePaidAmount
	out.InvoiceOutstanding = after.OutstandingAmount()
	return helper.JsonCreated(c, "payment posted", out)
}

// GET /payments — filter: invoice_id, method
func (ctl *PaymentController) ListPayments(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	q := ctl.DB.Model(&pmodel.Payment{})
	if v := c.Query("invoice_id"); v != "" {
		q = q.Where("payment_invoice_id = ?", v)
	}
	if v := c.Query("method"); v != "" {
		q = q.Where("payment_method = ?", v)
	}

	allowed := map[string]string{
		"created_at": "payment_created_at",
		"posted_at":  "payment_posted_at",
		"amount":     "payment_amount",
	}
	orderClause, _ := p.SafeOrderClause(allowed, "created_at")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var list []pmodel.Payment
	if err := q.Order(orderClause).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	out := make([]dto.PaymentResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.ToPaymentResponse(m))
	}
	return helper.JsonList(c, "payments", out, helper.BuildPagination(total, p.Page, p.PerPage))
}

// GET /payments/:id
func (ctl *PaymentController) GetPayment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}
	var m pmodel.Payment
	if err := ctl.DB.First(&m, "payment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "payment not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "payment", dto.ToPaymentResponse(m))
}

// POST /payments/:invoice_id/snap-token
//
// Buat Snap token Midtrans utk bayar sisa tagihan satu invoice dari aplikasi
// wali murid. Settlement tetap diposting lewat PostPayment (method midtrans).
func (ctl *PaymentController) CreateSnapToken(c *fiber.Ctx) error {
	invoiceID, err := uuid.Parse(c.Params("invoice_id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid invoice_id")
	}

	var in dto.SnapTokenRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if errs := helper.ValidateStruct(in); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	var inv invmodel.Invoice
	if err := ctl.DB.First(&inv, "invoice_id = ?", invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "invoice not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	if inv.InvoiceStatus == invmodel.InvoiceStatusCancelled {
		return helper.JsonError(c, http.StatusConflict, "invoice sudah dibatalkan")
	}
	outstanding := inv.OutstandingAmount()
	if !outstanding.IsPositive() {
		return helper.JsonError(c, http.StatusConflict, "invoice sudah lunas")
	}

	orderID := fmt.Sprintf("INV-%s-%d", inv.InvoiceID.String()[:8], time.Now().Unix())
	token, err := pservice.GenerateSnapToken(orderID, outstanding.IntPart(), in.PayerName, in.PayerEmail)
	if err != nil {
		return helper.JsonError(c, http.StatusBadGateway, "gagal membuat snap token: "+err.Error())
	}

	return helper.JsonOK(c, "snap token created", dto.SnapTokenResponse{
		OrderID:   orderID,
		SnapToken: token,
	})
}
