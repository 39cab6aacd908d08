// file: internals/features/finance/invoices/dto/invoice_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	invmodel "sekolahku_backend/internals/features/finance/invoices/model"
)

////////////////////////////////////////////////////////////////////////////////
// CREATE (invoice manual satuan)
////////////////////////////////////////////////////////////////////////////////

type InvoiceLineDTO struct {
	Description string          `json:"description" validate:"required,max=200"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
}

type InvoiceCreateDTO struct {
	InvoiceStudentID      string           `json:"invoice_student_id" validate:"required,len=36"`
	InvoiceFeeStructureID *uuid.UUID       `json:"invoice_fee_structure_id,omitempty"`
	InvoiceFeeCategory    string           `json:"invoice_fee_category" validate:"required,max=60"`
	InvoicePeriodYear     int16            `json:"invoice_period_year" validate:"required,min=2000,max=2100"`
	InvoicePeriodMonth    int16            `json:"invoice_period_month" validate:"required,min=1,max=12"`
	InvoiceIssueDate      time.Time        `json:"invoice_issue_date" validate:"required"`
	InvoiceDueDate        time.Time        `json:"invoice_due_date" validate:"required"`
	InvoiceLines          []InvoiceLineDTO `json:"invoice_lines" validate:"required,min=1,dive"`
	InvoiceDiscountAmount decimal.Decimal  `json:"invoice_discount_amount"`
}

func InvoiceCreateDTOToModel(in InvoiceCreateDTO) invmodel.Invoice {
	lines := make(invmodel.InvoiceLines, 0, len(in.InvoiceLines))
	total := decimal.Zero
	for _, l := range in.InvoiceLines {
		lines = append(lines, invmodel.InvoiceLine{Description: l.Description, Amount: l.Amount})
		total = total.Add(l.Amount)
	}
	total = total.Round(2)
	net := total.Sub(in.InvoiceDiscountAmount).Round(2)
	if net.IsNegative() {
		net = decimal.Zero
	}
	return invmodel.Invoice{
		InvoiceStudentID:      in.InvoiceStudentID,
		InvoiceFeeStructureID: in.InvoiceFeeStructureID,
		InvoiceFeeCategory:    in.InvoiceFeeCategory,
		InvoicePeriodYear:     in.InvoicePeriodYear,
		InvoicePeriodMonth:    in.InvoicePeriodMonth,
		InvoiceIssueDate:      in.InvoiceIssueDate,
		InvoiceDueDate:        in.InvoiceDueDate,
		InvoiceLines:          lines,
		InvoiceTotalAmount:    total,
		InvoiceDiscountAmount: in.InvoiceDiscountAmount.Round(2),
		InvoiceNetAmount:      net,
		InvoicePaidAmount:     decimal.Zero,
		InvoiceLateFeeAmount:  decimal.Zero,
		InvoiceStatus:         invmodel.InvoiceStatusIssued,
	}
}

////////////////////////////////////////////////////////////////////////////////
// GENERATE (bulk per billing cycle)
////////////////////////////////////////////////////////////////////////////////

type GenerateInvoicesRequest struct {
	FeeStructureID uuid.UUID `json:"fee_structure_id" validate:"required"`
	PeriodYear     int16     `json:"period_year" validate:"required,min=2000,max=2100"`
	PeriodMonth    int16     `json:"period_month" validate:"required,min=1,max=12"`
	IssueDate      time.Time `json:"issue_date" validate:"required"`
	DueDate        time.Time `json:"due_date" validate:"required"`

	// Target students: semua kelas aktif di satu sekolah, atau subset kelas
	SchoolID int   `json:"school_id" validate:"min=0,max=9999"`
	ClassIDs []int `json:"class_ids,omitempty"`
}

type GenerateInvoicesResponse struct {
	FeeStructureID uuid.UUID `json:"fee_structure_id"`
	PeriodYear     int16     `json:"period_year"`
	PeriodMonth    int16     `json:"period_month"`
	Inserted       int       `json:"inserted"`
	Skipped        int       `json:"skipped"`
}

////////////////////////////////////////////////////////////////////////////////
// RESPONSE
////////////////////////////////////////////////////////////////////////////////

type InvoiceResponse struct {
	InvoiceID               uuid.UUID                 `json:"invoice_id"`
	InvoiceStudentID        string                    `json:"invoice_student_id"`
	InvoiceFeeStructureID   *uuid.UUID                `json:"invoice_fee_structure_id,omitempty"`
	InvoiceFeeCategory      string                    `json:"invoice_fee_category"`
	InvoicePeriodYear       int16                     `json:"invoice_period_year"`
	InvoicePeriodMonth      int16                     `json:"invoice_period_month"`
	InvoiceIssueDate        time.Time                 `json:"invoice_issue_date"`
	InvoiceDueDate          time.Time                 `json:"invoice_due_date"`
	InvoiceLines            invmodel.InvoiceLines     `json:"invoice_lines"`
	InvoiceAppliedDiscounts invmodel.AppliedDiscounts `json:"invoice_applied_discounts,omitempty"`
	InvoiceTotalAmount      decimal.Decimal           `json:"invoice_total_amount"`
	InvoiceDiscountAmount   decimal.Decimal           `json:"invoice_discount_amount"`
	InvoiceNetAmount        decimal.Decimal           `json:"invoice_net_amount"`
	InvoicePaidAmount       decimal.Decimal           `json:"invoice_paid_amount"`
	InvoiceLateFeeAmount    decimal.Decimal           `json:"invoice_late_fee_amount"`
	InvoiceOutstanding      decimal.Decimal           `json:"invoice_outstanding"`
	InvoiceStatus           string                    `json:"invoice_status"`
	InvoiceCreatedAt        time.Time                 `json:"invoice_created_at"`
	InvoiceUpdatedAt        time.Time                 `json:"invoice_updated_at"`
}

func ToInvoiceResponse(m invmodel.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:               m.InvoiceID,
		InvoiceStudentID:        m.InvoiceStudentID,
		InvoiceFeeStructureID:   m.InvoiceFeeStructureID,
		InvoiceFeeCategory:      m.InvoiceFeeCategory,
		InvoicePeriodYear:       m.InvoicePeriodYear,
		InvoicePeriodMonth:      m.InvoicePeriodMonth,
		InvoiceIssueDate:        m.InvoiceIssueDate,
		InvoiceDueDate:          m.InvoiceDueDate,
		InvoiceLines:            m.InvoiceLines,
		InvoiceAppliedDiscounts: m.InvoiceAppliedDiscounts,
		InvoiceTotalAmount:      m.InvoiceTotalAmount,
		InvoiceDiscountAmount:   m.InvoiceDiscountAmount,
		InvoiceNetAmount:        m.InvoiceNetAmount,
		InvoicePaidAmount:       m.InvoicePaidAmount,
		InvoiceLateFeeAmount:    m.InvoiceLateFeeAmount,
		InvoiceOutstanding:      m.OutstandingAmount(),
		InvoiceStatus:           string(m.InvoiceStatus),
		InvoiceCreatedAt:        m.InvoiceCreatedAt,
		InvoiceUpdatedAt:        m.InvoiceUpdatedAt,
	}
}

func ToInvoiceResponses(ms []invmodel.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToInvoiceResponse(m))
	}
	return out
}

////////////////////////////////////////////////////////////////////////////////
// RUN LATE FEES (trigger manual batch)
////////////////////////////////////////////////////////////////////////////////

type RunLateFeesRequest struct {
	AsOf *time.Time `json:"as_of,omitempty"` // default: sekarang
}

type RunLateFeesResponse struct {
	Evaluated int       `json:"evaluated"`
	Applied   int       `json:"applied"`
	AsOf      time.Time `json:"as_of"`
}
