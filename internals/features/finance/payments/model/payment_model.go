// file: internals/features/finance/payments/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodMidtrans PaymentMethod = "midtrans"
)

type Payment struct {
	// PK
	PaymentID uuid.UUID `json:"payment_id" gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey"`

	// FK → invoices(invoice_id)
	PaymentInvoiceID uuid.UUID `json:"payment_invoice_id" gorm:"column:payment_invoice_id;type:uuid;not null;index:idx_payments_invoice"`

	PaymentAmount decimal.Decimal `json:"payment_amount" gorm:"column:payment_amount;type:numeric(12,2);not null;check:payment_amount>0"`
	PaymentMethod PaymentMethod   `json:"payment_method" gorm:"column:payment_method;type:varchar(20);not null;default:'cash'"`

	// Referensi eksternal (no. transfer / order id gateway)
	PaymentReference       *string `json:"payment_reference,omitempty" gorm:"column:payment_reference;type:varchar(120)"`
	PaymentMidtransOrderID *string `json:"payment_midtrans_order_id,omitempty" gorm:"column:payment_midtrans_order_id;type:varchar(60);index"`

	PaymentPostedAt time.Time `json:"payment_posted_at" gorm:"column:payment_posted_at;not null"`
	PaymentNote     *string   `json:"payment_note,omitempty" gorm:"column:payment_note;type:text"`

	PaymentCreatedAt time.Time      `json:"payment_created_at" gorm:"column:payment_created_at;not null;autoCreateTime"`
	PaymentUpdatedAt time.Time      `json:"payment_updated_at" gorm:"column:payment_updated_at;not null;autoUpdateTime"`
	PaymentDeletedAt gorm.DeletedAt `json:"-" gorm:"column:payment_deleted_at;index"`
}

func (Payment) TableName() string { return "payments" }

func (m *Payment) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentID == uuid.Nil {
		m.PaymentID = uuid.New()
	}
	if m.PaymentPostedAt.IsZero() {
		m.PaymentPostedAt = time.Now()
	}
	return nil
}
