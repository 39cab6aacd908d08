// file: internals/features/finance/invoices/controller/invoice_controller_test.go
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

	dismodel "sekolahku_backend/internals/features/finance/discounts/model"
	fsmodel "sekolahku_backend/internals/features/finance/fee_structures/model"
	invmodel "sekolahku_backend/internals/features/finance/invoices/model"
	rulemodel "sekolahku_backend/internals/features/finance/late_fee_rules/model"
	smodel "sekolahku_backend/internals/features/students/students/model"
)

func setupInvoiceTest(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&smodel.Student{},
		&fsmodel.FeeStructure{},
		&dismodel.Discount{},
		&rulemodel.LateFeeRule{},
		&invmodel.Invoice{},
	))

	ctl := &InvoiceController{DB: db}
	app := fiber.New()
	app.Post("/invoices", ctl.CreateInvoice)
	app.Post("/invoices/generate", ctl.GenerateInvoices)
	app.Post("/invoices/run-late-fees", ctl.RunLateFees)
	app.Get("/invoices", ctl.ListInvoices)
	app.Get("/invoices/:id", ctl.GetInvoice)
	app.Post("/invoices/:id/cancel", ctl.CancelInvoice)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp, parsed
}

func seedFeeStructure(t *testing.T, db *gorm.DB, category string, amounts ...int64) fsmodel.FeeStructure {
	t.Helper()
	lines := make(fsmodel.FeeStructureLines, 0, len(amounts))
	for _, a := range amounts {
		lines = append(lines, fsmodel.FeeStructureLine{
			Description: "iuran",
			Amount:      decimal.NewFromInt(a),
		})
	}
	fs := fsmodel.FeeStructure{
		FeeStructureName:         "SPP Kelas 1",
		FeeStructureGradeLabel:   "1",
		FeeStructureAcademicYear: "2025/2026",
		FeeStructureCategory:     category,
		FeeStructureLines:        lines,
		FeeStructureIsActive:     true,
	}
	require.NoError(t, db.Create(&fs).Error)
	return fs
}

func seedStudent(t *testing.T, db *gorm.DB, schoolID, classID int) {
	t.Helper()
	require.NoError(t, db.Create(&smodel.Student{
		StudentSchoolID: schoolID,
		StudentClassID:  classID,
		StudentFullName: "Siswa Uji",
		StudentIsActive: true,
	}).Error)
}

func TestGenerateInvoices_InsertsPerStudentAndIdempotent(t *testing.T) {
	app, db := setupInvoiceTest(t)

	fs := seedFeeStructure(t, db, "SPP", 1000, 300)
	seedStudent(t, db, 6, 1)
	seedStudent(t, db, 6, 2)
	seedStudent(t, db, 6, 3)

	body := map[string]any{
		"fee_structure_id": fs.FeeStructureID,
		"period_year":      2026,
		"period_month":     3,
		"issue_date":       "2026-03-01T00:00:00Z",
		"due_date":         "2026-03-10T00:00:00Z",
		"school_id":        6,
	}

	resp, parsed := doJSON(t, app, http.MethodPost, "/invoices/generate", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := parsed["data"].(map[string]any)
	assert.EqualValues(t, 3, data["inserted"])
	assert.EqualValues(t, 0, data["skipped"])

	// Run kedua tidak boleh menduplikasi invoice
	resp, parsed = doJSON(t, app, http.MethodPost, "/invoices/generate", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data = parsed["data"].(map[string]any)
	assert.EqualValues(t, 0, data["inserted"])
	assert.EqualValues(t, 3, data["skipped"])

	var count int64
	require.NoError(t, db.Model(&invmodel.Invoice{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)

	var inv invmodel.Invoice
	require.NoError(t, db.First(&inv, "invoice_student_id = ?", "00000000-0000-0000-0006-000000000002").Error)
	assert.True(t, inv.InvoiceNetAmount.Equal(decimal.NewFromInt(1300)),
		"net amount: %s", inv.InvoiceNetAmount)
	assert.Equal(t, invmodel.InvoiceStatusIssued, inv.InvoiceStatus)
}

func TestGenerateInvoices_StudentScopedDiscount(t *testing.T) {
	app, db := setupInvoiceTest(t)

	fs := seedFeeStructure(t, db, "SPP", 1300)
	seedStudent(t, db, 6, 1)
	seedStudent(t, db, 6, 2)

	scoped := "00000000-0000-0000-0006-000000000001"
	require.NoError(t, db.Create(&dismodel.Discount{
		DiscountName:      "Beasiswa Yatim",
		DiscountKind:      dismodel.DiscountKindScholarship,
		DiscountType:      dismodel.DiscountTypeFixedAmount,
		DiscountValue:     decimal.NewFromInt(300),
		DiscountStudentID: &scoped,
		DiscountIsActive:  true,
	}).Error)

	resp, _ := doJSON(t, app, http.MethodPost, "/invoices/generate", map[string]any{
		"fee_structure_id": fs.FeeStructureID,
		"period_year":      2026,
		"period_month":     4,
		"issue_date":       "2026-04-01T00:00:00Z",
		"due_date":         "2026-04-10T00:00:00Z",
		"school_id":        6,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var withDiscount, without invmodel.Invoice
	require.NoError(t, db.First(&withDiscount, "invoice_student_id = ?", scoped).Error)
	require.NoError(t, db.First(&without, "invoice_student_id = ?", "00000000-0000-0000-0006-000000000002").Error)

	assert.True(t, withDiscount.InvoiceNetAmount.Equal(decimal.NewFromInt(1000)),
		"net: %s", withDiscount.InvoiceNetAmount)
	assert.Len(t, withDiscount.InvoiceAppliedDiscounts, 1)
	assert.True(t, without.InvoiceNetAmount.Equal(decimal.NewFromInt(1300)))
	assert.Empty(t, without.InvoiceAppliedDiscounts)
}

func TestGenerateInvoices_MaxRecipientsCap(t *testing.T) {
	app, db := setupInvoiceTest(t)

	fs := seedFeeStructure(t, db, "SPP", 1000)
	for i := 1; i <= 3; i++ {
		seedStudent(t, db, 6, i)
	}

	maxRecipients := 2
	require.NoError(t, db.Create(&dismodel.Discount{
		DiscountName:          "Diskon Early Bird",
		DiscountKind:          dismodel.DiscountKindDiscount,
		DiscountType:          dismodel.DiscountTypePercentage,
		DiscountValue:         decimal.NewFromInt(10),
		DiscountMaxRecipients: &maxRecipients,
		DiscountIsActive:      true,
	}).Error)

	resp, _ := doJSON(t, app, http.MethodPost, "/invoices/generate", map[string]any{
		"fee_structure_id": fs.FeeStructureID,
		"period_year":      2026,
		"period_month":     5,
		"issue_date":       "2026-05-01T00:00:00Z",
		"due_date":         "2026-05-10T00:00:00Z",
		"school_id":        6,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var discounted int64
	require.NoError(t, db.Model(&invmodel.Invoice{}).
		Where("invoice_discount_amount > ?", 0).Count(&discounted).Error)
	assert.EqualValues(t, 2, discounted)
}

func TestCreateInvoice_RejectsMalformedStudentID(t *testing.T) {
	app, _ := setupInvoiceTest(t)

	resp, parsed := doJSON(t, app, http.MethodPost, "/invoices", map[string]any{
		"invoice_student_id":   "99999999-0000-0000-0006-000000000001", // prefix salah
		"invoice_fee_category": "SPP",
		"invoice_period_year":  2026,
		"invoice_period_month": 3,
		"invoice_issue_date":   "2026-03-01T00:00:00Z",
		"invoice_due_date":     "2026-03-10T00:00:00Z",
		"invoice_lines":        []map[string]any{{"description": "SPP Maret", "amount": "1300"}},
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", parsed["error_code"])
}

func TestCancelInvoice_PaidIsRejected(t *testing.T) {
	app, db := setupInvoiceTest(t)

	inv := invmodel.Invoice{
		InvoiceStudentID:   "00000000-0000-0000-0006-000000000001",
		InvoiceFeeCategory: "SPP",
		InvoicePeriodYear:  2026,
		InvoicePeriodMonth: 3,
		InvoiceIssueDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		InvoiceDueDate:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		InvoiceTotalAmount: decimal.NewFromInt(1300),
		InvoiceNetAmount:   decimal.NewFromInt(1300),
		InvoicePaidAmount:  decimal.NewFromInt(1300),
		InvoiceStatus:      invmodel.InvoiceStatusPaid,
	}
	require.NoError(t, db.Create(&inv).Error)

	resp, _ := doJSON(t, app, http.MethodPost, "/invoices/"+inv.InvoiceID.String()+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRunLateFees_StampsOnceAndFlipsStatus(t *testing.T) {
	app, db := setupInvoiceTest(t)

	require.NoError(t, db.Create(&rulemodel.LateFeeRule{
		LateFeeRuleName:      "Denda SPP",
		LateFeeRuleType:      rulemodel.LateFeeRuleTypeFixedAmount,
		LateFeeRuleValue:     decimal.NewFromInt(100),
		LateFeeRuleGraceDays: 10,
		LateFeeRuleIsActive:  true,
	}).Error)

	inv := invmodel.Invoice{
		InvoiceStudentID:   "00000000-0000-0000-0006-000000000003",
		InvoiceFeeCategory: "SPP",
		InvoicePeriodYear:  2025,
		InvoicePeriodMonth: 2,
		InvoiceIssueDate:   time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		InvoiceDueDate:     time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		InvoiceTotalAmount: decimal.NewFromInt(1300),
		InvoiceNetAmount:   decimal.NewFromInt(1300),
		InvoiceStatus:      invmodel.InvoiceStatusIssued,
	}
	require.NoError(t, db.Create(&inv).Error)

	// Hari ke-10 setelah due: masih dalam grace, tidak kena
	resp, parsed := doJSON(t, app, http.MethodPost, "/invoices/run-late-fees", map[string]any{
		"as_of": "2025-03-10T12:00:00Z",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := parsed["data"].(map[string]any)
	assert.EqualValues(t, 0, data["applied"])

	// Hari ke-11: lewat grace → denda 100 + status OVERDUE
	resp, parsed = doJSON(t, app, http.MethodPost, "/invoices/run-late-fees", map[string]any{
		"as_of": "2025-03-11T00:00:00Z",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = parsed["data"].(map[string]any)
	assert.EqualValues(t, 1, data["applied"])

	var after invmodel.Invoice
	require.NoError(t, db.First(&after, "invoice_id = ?", inv.InvoiceID).Error)
	assert.True(t, after.InvoiceLateFeeAmount.Equal(decimal.NewFromInt(100)),
		"late fee: %s", after.InvoiceLateFeeAmount)
	assert.Equal(t, invmodel.InvoiceStatusOverdue, after.InvoiceStatus)
	assert.True(t, after.PayableAmount().Equal(decimal.NewFromInt(1400)))

	// Run ulang: denda beku, tidak dobel
	resp, parsed = doJSON(t, app, http.MethodPost, "/invoices/run-late-fees", map[string]any{
		"as_of": "2025-04-01T00:00:00Z",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = parsed["data"].(map[string]any)
	assert.EqualValues(t, 0, data["applied"])

	require.NoError(t, db.First(&after, "invoice_id = ?", inv.InvoiceID).Error)
	assert.True(t, after.InvoiceLateFeeAmount.Equal(decimal.NewFromInt(100)))
}
