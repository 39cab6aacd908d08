// file: internals/features/finance/discounts/dto/discount_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dmodel "sekolahku_backend/internals/features/finance/discounts/model"
)

// Create
type DiscountCreateDTO struct {
	DiscountName           string          `json:"discount_name" validate:"required,max=120"`
	DiscountKind           string          `json:"discount_kind" validate:"required,oneof=discount scholarship"`
	DiscountType           string          `json:"discount_type" validate:"required,oneof=FIXED_AMOUNT PERCENTAGE"`
	DiscountValue          decimal.Decimal `json:"discount_value" validate:"required"`
	DiscountFeeStructureID *uuid.UUID      `json:"discount_fee_structure_id,omitempty"`
	DiscountStudentID      *string         `json:"discount_student_id,omitempty" validate:"omitempty,len=36"`
	DiscountMaxRecipients  *int            `json:"discount_max_recipients,omitempty" validate:"omitempty,min=1"`
	DiscountIsActive       *bool           `json:"discount_is_active,omitempty"`
}

// Update (partial)
type DiscountUpdateDTO struct {
	DiscountName          *string          `json:"discount_name,omitempty" validate:"omitempty,max=120"`
	DiscountType          *string          `json:"discount_type,omitempty" validate:"omitempty,oneof=FIXED_AMOUNT PERCENTAGE"`
	DiscountValue         *decimal.Decimal `json:"discount_value,omitempty"`
	DiscountMaxRecipients *int             `json:"discount_max_recipients,omitempty" validate:"omitempty,min=1"`
	DiscountIsActive      *bool            `json:"discount_is_active,omitempty"`
}

// Response
type DiscountResponse struct {
	DiscountID             uuid.UUID       `json:"discount_id"`
	DiscountName           string          `json:"discount_name"`
	DiscountKind           string          `json:"discount_kind"`
	DiscountType           string          `json:"discount_type"`
	DiscountValue          decimal.Decimal `json:"discount_value"`
	DiscountFeeStructureID *uuid.UUID      `json:"discount_fee_structure_id,omitempty"`
	DiscountStudentID      *string         `json:"discount_student_id,omitempty"`
	DiscountMaxRecipients  *int            `json:"discount_max_recipients,omitempty"`
	DiscountIsActive       bool            `json:"discount_is_active"`
	DiscountCreatedAt      time.Time       `json:"discount_created_at"`
	DiscountUpdatedAt      time.Time       `json:"discount_updated_at"`
}

func DiscountCreateDTOToModel(in DiscountCreateDTO) dmodel.Discount {
	m := dmodel.Discount{
		DiscountName:           in.DiscountName,
		DiscountKind:           dmodel.DiscountKind(in.DiscountKind),
		DiscountType:           dmodel.DiscountType(in.DiscountType),
		DiscountValue:          in.DiscountValue,
		DiscountFeeStructureID: in.DiscountFeeStructureID,
		DiscountStudentID:      in.DiscountStudentID,
		DiscountMaxRecipients:  in.DiscountMaxRecipients,
		DiscountIsActive:       true,
	}
	if in.DiscountIsActive != nil {
		m.DiscountIsActive = *in.DiscountIsActive
	}
	return m
}

func ApplyDiscountUpdate(m *dmodel.Discount, in DiscountUpdateDTO) {
	if in.DiscountName != nil {
		m.DiscountName = *in.DiscountName
	}
	if in.DiscountType != nil {
		m.DiscountType = dmodel.DiscountType(*in.DiscountType)
	}
	if in.DiscountValue != nil {
		m.DiscountValue = *in.DiscountValue
	}
	if in.DiscountMaxRecipients != nil {
		m.DiscountMaxRecipients = in.DiscountMaxRecipients
	}
	if in.DiscountIsActive != nil {
		m.DiscountIsActive = *in.DiscountIsActive
	}
}

func ToDiscountResponse(m dmodel.Discount) DiscountResponse {
	return DiscountResponse{
		DiscountID:             m.DiscountID,
		DiscountName:           m.DiscountName,
		DiscountKind:           string(m.DiscountKind),
		DiscountType:           string(m.DiscountType),
		DiscountValue:          m.DiscountValue,
		DiscountFeeStructureID: m.DiscountFeeStructureID,
		DiscountStudentID:      m.DiscountStudentID,
		DiscountMaxRecipients:  m.DiscountMaxRecipients,
		DiscountIsActive:       m.DiscountIsActive,
		DiscountCreatedAt:      m.DiscountCreatedAt,
		DiscountUpdatedAt:      m.DiscountUpdatedAt,
	}
}
