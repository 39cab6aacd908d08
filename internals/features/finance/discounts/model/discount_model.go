// file: internals/features/finance/discounts/model/discount_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- ENUM ---------------------------------------------------------------

type DiscountKind string

const (
	DiscountKindDiscount    DiscountKind = "discount"
	DiscountKindScholarship DiscountKind = "scholarship"
)

type DiscountType string

const (
	DiscountTypeFixedAmount DiscountType = "FIXED_AMOUNT"
	DiscountTypePercentage  DiscountType = "PERCENTAGE"
)

// --- MODEL discounts ----------------------------------------------------
//
// Discount & scholarship satu tabel; beda kind saja. Scope pilih salah satu:
// per fee structure atau per student (composite UUID).
type Discount struct {
	// PK
	DiscountID uuid.UUID `json:"discount_id" gorm:"column:discount_id;type:uuid;default:gen_random_uuid();primaryKey"`

	DiscountName string       `json:"discount_name" gorm:"column:discount_name;type:varchar(120);not null"`
	DiscountKind DiscountKind `json:"discount_kind" gorm:"column:discount_kind;type:varchar(20);not null;default:'discount'"`
	DiscountType DiscountType `json:"discount_type" gorm:"column:discount_type;type:varchar(20);not null"`

	// PERCENTAGE → persen dari total; FIXED_AMOUNT → nominal potongan
	DiscountValue decimal.Decimal `json:"discount_value" gorm:"column:discount_value;type:numeric(12,2);not null"`

	// Scope (salah satu; dua-duanya null = berlaku umum)
	DiscountFeeStructureID *uuid.UUID `json:"discount_fee_structure_id,omitempty" gorm:"column:discount_fee_structure_id;type:uuid;index"`
	DiscountStudentID      *string    `json:"discount_student_id,omitempty" gorm:"column:discount_student_id;type:char(36);index"`

	// Batas penerima (nil = tanpa batas); dihitung per batch generate
	DiscountMaxRecipients *int `json:"discount_max_recipients,omitempty" gorm:"column:discount_max_recipients"`

	DiscountIsActive bool `json:"discount_is_active" gorm:"column:discount_is_active;not null;default:true;index:idx_discounts_active"`

	DiscountCreatedAt time.Time      `json:"discount_created_at" gorm:"column:discount_created_at;not null;autoCreateTime"`
	DiscountUpdatedAt time.Time      `json:"discount_updated_at" gorm:"column:discount_updated_at;not null;autoUpdateTime"`
	DiscountDeletedAt gorm.DeletedAt `json:"-" gorm:"column:discount_deleted_at;index"`
}

func (Discount) TableName() string { return "discounts" }

func (m *Discount) BeforeCreate(tx *gorm.DB) error {
	if m.DiscountID == uuid.Nil {
		m.DiscountID = uuid.New()
	}
	return nil
}

// ReductionFor menghitung potongan terhadap suatu total (dua desimal).
func (m Discount) ReductionFor(total decimal.Decimal) decimal.Decimal {
	if m.DiscountType == DiscountTypePercentage {
		return total.Mul(m.DiscountValue).Div(decimal.NewFromInt(100)).Round(2)
	}
	return m.DiscountValue.Round(2)
}
