// file: internals/features/finance/invoices/model/invoice_model.go
package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — status invoice
// =========================================================

type InvoiceStatus string

const (
	InvoiceStatusIssued        InvoiceStatus = "ISSUED"
	InvoiceStatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoiceStatusPaid          InvoiceStatus = "PAID"
	InvoiceStatusOverdue       InvoiceStatus = "OVERDUE"
	InvoiceStatusCancelled     InvoiceStatus = "CANCELLED"
)

// =========================================================
// JSONB — line items & diskon yang dipakai
// =========================================================

type InvoiceLine struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type InvoiceLines []InvoiceLine

func (l InvoiceLines) Value() (driver.Value, error) { return json.Marshal(l) }

func (l *InvoiceLines) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	}
	return errors.New("invoice lines: unsupported scan type")
}

type AppliedDiscount struct {
	DiscountID   uuid.UUID       `json:"discount_id"`
	DiscountName string          `json:"discount_name"`
	Amount       decimal.Decimal `json:"amount"`
}

type AppliedDiscounts []AppliedDiscount

func (d AppliedDiscounts) Value() (driver.Value, error) { return json.Marshal(d) }

func (d *AppliedDiscounts) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	case nil:
		*d = nil
		return nil
	}
	return errors.New("applied discounts: unsupported scan type")
}

// =========================================================
// MODEL
// =========================================================

type Invoice struct {
	// PK
	InvoiceID uuid.UUID `json:"invoice_id" gorm:"column:invoice_id;type:uuid;default:gen_random_uuid();primaryKey"`

	// Student dikunci lewat composite UUID (lihat students/service):
	// 00000000-0000-0000-{school:4}-{class:12}
	InvoiceStudentID string `json:"invoice_student_id" gorm:"column:invoice_student_id;type:char(36);not null;index:idx_invoices_student;uniqueIndex:uniq_invoice_student_period,priority:1"`

	// Referensi struktur biaya yang jadi sumber line items (boleh null utk invoice manual)
	InvoiceFeeStructureID *uuid.UUID `json:"invoice_fee_structure_id,omitempty" gorm:"column:invoice_fee_structure_id;type:uuid;index"`

	// Kategori biaya, dipakai filter applicability late-fee rule
	InvoiceFeeCategory string `json:"invoice_fee_category" gorm:"column:invoice_fee_category;type:varchar(60);not null;default:'SPP';uniqueIndex:uniq_invoice_student_period,priority:4"`

	// Periode tagihan (satu invoice per student per bulan)
	InvoicePeriodYear  int16 `json:"invoice_period_year" gorm:"column:invoice_period_year;type:smallint;not null;uniqueIndex:uniq_invoice_student_period,priority:2"`
	InvoicePeriodMonth int16 `json:"invoice_period_month" gorm:"column:invoice_period_month;type:smallint;not null;uniqueIndex:uniq_invoice_student_period,priority:3"`

	InvoiceIssueDate time.Time `json:"invoice_issue_date" gorm:"column:invoice_issue_date;type:date;not null"`
	InvoiceDueDate   time.Time `json:"invoice_due_date" gorm:"column:invoice_due_date;type:date;not null;index:idx_invoices_due_date"`

	InvoiceLines            InvoiceLines     `json:"invoice_lines" gorm:"column:invoice_lines;type:jsonb"`
	InvoiceAppliedDiscounts AppliedDiscounts `json:"invoice_applied_discounts,omitempty" gorm:"column:invoice_applied_discounts;type:jsonb"`

	// Uang (dua desimal). Invariant: net = total - discount; paid <= net + late_fee
	InvoiceTotalAmount    decimal.Decimal `json:"invoice_total_amount" gorm:"column:invoice_total_amount;type:numeric(12,2);not null"`
	InvoiceDiscountAmount decimal.Decimal `json:"invoice_discount_amount" gorm:"column:invoice_discount_amount;type:numeric(12,2);not null;default:0"`
	InvoiceNetAmount      decimal.Decimal `json:"invoice_net_amount" gorm:"column:invoice_net_amount;type:numeric(12,2);not null"`
	InvoicePaidAmount     decimal.Decimal `json:"invoice_paid_amount" gorm:"column:invoice_paid_amount;type:numeric(12,2);not null;default:0"`

	// Denda keterlambatan: sekali di-stamp tidak pernah turun / di-apply ulang
	InvoiceLateFeeAmount decimal.Decimal `json:"invoice_late_fee_amount" gorm:"column:invoice_late_fee_amount;type:numeric(12,2);not null;default:0"`

	InvoiceStatus InvoiceStatus `json:"invoice_status" gorm:"column:invoice_status;type:varchar(20);not null;default:'ISSUED';index:idx_invoices_status"`

	// Timestamps (eksplisit)
	InvoiceCreatedAt time.Time      `json:"invoice_created_at" gorm:"column:invoice_created_at;not null;autoCreateTime"`
	InvoiceUpdatedAt time.Time      `json:"invoice_updated_at" gorm:"column:invoice_updated_at;not null;autoUpdateTime"`
	InvoiceDeletedAt gorm.DeletedAt `json:"-" gorm:"column:invoice_deleted_at;index"`
}

func (Invoice) TableName() string { return "invoices" }

func (m *Invoice) BeforeCreate(tx *gorm.DB) error {
	if m.InvoiceID == uuid.Nil {
		m.InvoiceID = uuid.New()
	}
	return nil
}

// PayableAmount = net + late fee (total yang harus dibayar)
func (m Invoice) PayableAmount() decimal.Decimal {
	return m.InvoiceNetAmount.Add(m.InvoiceLateFeeAmount)
}

// OutstandingAmount = sisa tagihan (tidak pernah negatif)
func (m Invoice) OutstandingAmount() decimal.Decimal {
	out := m.PayableAmount().Sub(m.InvoicePaidAmount)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}
