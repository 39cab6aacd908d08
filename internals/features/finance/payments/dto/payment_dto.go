// file: internals/features/finance/payments/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pmodel "sekolahku_backend/internals/features/finance/payments/model"
)

// Create (posting pembayaran ke satu invoice)
type PaymentCreateDTO struct {
	PaymentInvoiceID uuid.UUID       `json:"payment_invoice_id" validate:"required"`
	PaymentAmount    decimal.Decimal `json:"payment_amount" validate:"required"`
	PaymentMethod    string          `json:"payment_method" validate:"required,oneof=cash transfer midtrans"`
	PaymentReference *string         `json:"payment_reference,omitempty" validate:"omitempty,max=120"`
	PaymentNote      *string         `json:"payment_note,omitempty"`
}

// Response
type PaymentResponse struct {
	PaymentID              uuid.UUID       `json:"payment_id"`
	PaymentInvoiceID       uuid.UUID       `json:"payment_invoice_id"`
	PaymentAmount          decimal.Decimal `json:"payment_amount"`
	PaymentMethod          string          `json:"payment_method"`
	PaymentReference       *string         `json:"payment_reference,omitempty"`
	PaymentMidtransOrderID *string         `json:"payment_midtrans_order_id,omitempty"`
	PaymentPostedAt        time.Time       `json:"payment_posted_at"`
	PaymentNote            *string         `json:"payment_note,omitempty"`
	PaymentCreatedAt       time.Time       `json:"payment_created_at"`

	// Snapshot invoice setelah posting
	InvoiceStatus      string          `json:"invoice_status,omitempty"`
	InvoicePaidAmount  decimal.Decimal `json:"invoice_paid_amount"`
	InvoiceOutstanding decimal.Decimal `json:"invoice_outstanding"`
}

func ToPaymentResponse(m pmodel.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:              m.PaymentID,
		PaymentInvoiceID:       m.PaymentInvoiceID,
		PaymentAmount:          m.PaymentAmount,
		PaymentMethod:          string(m.PaymentMethod),
		PaymentReference:       m.PaymentReference,
		PaymentMidtransOrderID: m.PaymentMidtransOrderID,
		PaymentPostedAt:        m.PaymentPostedAt,
		PaymentNote:            m.PaymentNote,
		PaymentCreatedAt:       m.PaymentCreatedAt,
	}
}

// Snap token (Midtrans); invoice diambil dari path param
type SnapTokenRequest struct {
	PayerName  string `json:"payer_name" validate:"required,max=120"`
	PayerEmail string `json:"payer_email" validate:"required,email,max=120"`
}

type SnapTokenResponse struct {
	OrderID   string `json:"order_id"`
	SnapToken string `json:"snap_token"`
}
