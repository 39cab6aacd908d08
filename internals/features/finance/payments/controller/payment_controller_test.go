// file: internals/features/finance/payments/controller/payment_controller_test.go
package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	invmodel "sekolahku_backend/internals/features/finance/invoices/model"
	pmodel "sekolahku_backend/internals/features/finance/payments/model"
)

func setupPaymentTest(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&invmodel.Invoice{}, &pmodel.Payment{}))

	ctl := &PaymentController{DB: db}
	app := fiber.New()
	app.Post("/payments", ctl.PostPayment)
	app.Get("/payments", ctl.ListPayments)
	app.Get("/payments/:id", ctl.GetPayment)
	return app, db
}

func postPayment(t *testing.T, app *fiber.App, body map[string]any) (*http.Response, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]any
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &parsed))
	return resp, parsed
}

func seedInvoice(t *testing.T, db *gorm.DB, net, lateFee int64, status invmodel.InvoiceStatus) invmodel.Invoice {
	t.Helper()
	inv := invmodel.Invoice{
		InvoiceStudentID:     "00000000-0000-0000-0006-000000000001",
		InvoiceFeeCategory:   "SPP",
		InvoicePeriodYear:    2026,
		InvoicePeriodMonth:   3,
		InvoiceIssueDate:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		InvoiceDueDate:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		InvoiceTotalAmount:   decimal.NewFromInt(net),
		InvoiceNetAmount:     decimal.NewFromInt(net),
		InvoiceLateFeeAmount: decimal.NewFromInt(lateFee),
		InvoiceStatus:        status,
	}
	require.NoError(t, db.Create(&inv).Error)
	return inv
}

func TestPostPayment_PartialThenFull(t *testing.T) {
	app, db := setupPaymentTest(t)
	inv := seedInvoice(t, db, 1300, 0, invmodel.InvoiceStatusIssued)

	resp, parsed := postPayment(t, app, map[string]any{
		"payment_invoice_id": inv.InvoiceID,
		"payment_amount":     "500",
		"payment_method":     "cash",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := parsed["data"].(map[string]any)
	assert.Equal(t, string(invmodel.InvoiceStatusPartiallyPaid), data["invoice_status"])

	var after invmodel.Invoice
	require.NoError(t, db.First(&after, "invoice_id = ?", inv.InvoiceID).Error)
	assert.True(t, after.InvoicePaidAmount.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, invmodel.InvoiceStatusPartiallyPaid, after.InvoiceStatus)

	resp, parsed = postPayment(t, app, map[string]any{
		"payment_invoice_id": inv.InvoiceID,
		"payment_amount":     "800",
		"payment_method":     "transfer",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data = parsed["data"].(map[string]any)
	assert.Equal(t, string(invmodel.InvoiceStatusPaid), data["invoice_status"])

	require.NoError(t, db.First(&after, "invoice_id = ?", inv.InvoiceID).Error)
	assert.True(t, after.InvoicePaidAmount.Equal(decimal.NewFromInt(1300)))
	assert.Equal(t, invmodel.InvoiceStatusPaid, after.InvoiceStatus)
	assert.True(t, after.OutstandingAmount().IsZero())

	var count int64
	require.NoError(t, db.Model(&pmodel.Payment{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestPostPayment_CoversLateFee(t *testing.T) {
	app, db := setupPaymentTest(t)
	inv := seedInvoice(t, db, 1300, 100, invmodel.InvoiceStatusOverdue)

	// Bayar net saja belum lunas, payable = 1400
	resp, parsed := postPayment(t, app, map[string]any{
		"payment_invoice_id": inv.InvoiceID,
		"payment_amount":     "1300",
		"payment_method":     "cash",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := parsed["data"].(map[string]any)
	assert.Equal(t, string(invmodel.InvoiceStatusPartiallyPaid), data["invoice_status"])

	resp, parsed = postPayment(t, app, map[string]any{
		"payment_invoice_id": inv.InvoiceID,
		"payment_amount":     "100",
		"payment_method":     "cash",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data = parsed["data"].(map[string]any)
	assert.Equal(t, string(invmodel.InvoiceStatusPaid), data["invoice_status"])
}

func TestPostPayment_OverpayRejected(t *testing.T) {
	app, db := setupPaymentTest(t)
	inv := seedInvoice(t, db, 1300, 0, invmodel.InvoiceStatusIssued)

	resp, parsed := postPayment(t, app, map[string]any{
		"payment_invoice_id": inv.InvoiceID,
		"payment_amount":     "2000",
		"payment_method":     "cash",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", parsed["error_code"])

	// Tidak ada payment row tercatat, invoice tidak berubah
	var count int64
	require.NoError(t, db.Model(&pmodel.Payment{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	var after invmodel.Invoice
	require.NoError(t, db.First(&after, "invoice_id = ?", inv.InvoiceID).Error)
	assert.True(t, after.InvoicePaidAmount.IsZero())
	assert.Equal(t, invmodel.InvoiceStatusIssued, after.InvoiceStatus)
}

func TestPostPayment_CancelledInvoiceRejected(t *testing.T) {
	app, db := setupPaymentTest(t)
	inv := seedInvoice(t, db, 1300, 0, invmodel.InvoiceStatusCancelled)

	resp, _ := postPayment(t, app, map[string]any{
		"payment_invoice_id": inv.InvoiceID,
		"payment_amount":     "500",
		"payment_method":     "cash",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestPostPayment_UnknownInvoice(t *testing.T) {
	app, _ := setupPaymentTest(t)

	resp, _ := postPayment(t, app, map[string]any{
		"payment_invoice_id": "7b9d2f11-54e7-4f0a-9a57-1c2d3e4f5a6b",
		"payment_amount":     "500",
		"payment_method":     "cash",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPostPayment_NonPositiveAmount(t *testing.T) {
	app, db := setupPaymentTest(t)
	inv := seedInvoice(t, db, 1300, 0, invmodel.InvoiceStatusIssued)

	resp, parsed := postPayment(t, app, map[string]any{
		"payment_invoice_id": inv.InvoiceID,
		"payment_amount":     "0",
		"payment_method":     "cash",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", parsed["error_code"])
}
