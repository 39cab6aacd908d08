// file: internals/features/finance/late_fee_rules/dto/late_fee_rule_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	rulemodel "sekolahku_backend/internals/features/finance/late_fee_rules/model"
)

// Create
type LateFeeRuleCreateDTO struct {
	LateFeeRuleName      string          `json:"late_fee_rule_name" validate:"required,max=120"`
	LateFeeRuleType      string          `json:"late_fee_rule_type" validate:"required,oneof=FIXED_AMOUNT PERCENTAGE"`
	LateFeeRuleValue     decimal.Decimal `json:"late_fee_rule_value" validate:"required"`
	LateFeeRuleGraceDays int             `json:"late_fee_rule_grace_days" validate:"min=0"`
	LateFeeRuleCategories []string       `json:"late_fee_rule_categories,omitempty" validate:"omitempty,dive,max=60"`
	LateFeeRuleIsActive  *bool           `json:"late_fee_rule_is_active,omitempty"`
}

// Update (partial)
type LateFeeRuleUpdateDTO struct {
	LateFeeRuleName       *string          `json:"late_fee_rule_name,omitempty" validate:"omitempty,max=120"`
	LateFeeRuleType       *string          `json:"late_fee_rule_type,omitempty" validate:"omitempty,oneof=FIXED_AMOUNT PERCENTAGE"`
	LateFeeRuleValue      *decimal.Decimal `json:"late_fee_rule_value,omitempty"`
	LateFeeRuleGraceDays  *int             `json:"late_fee_rule_grace_days,omitempty" validate:"omitempty,min=0"`
	LateFeeRuleCategories *[]string        `json:"late_fee_rule_categories,omitempty"`
	LateFeeRuleIsActive   *bool            `json:"late_fee_rule_is_active,omitempty"`
}

// Response
type LateFeeRuleResponse struct {
	LateFeeRuleID         uuid.UUID       `json:"late_fee_rule_id"`
	LateFeeRuleName       string          `json:"late_fee_rule_name"`
	LateFeeRuleType       string          `json:"late_fee_rule_type"`
	LateFeeRuleValue      decimal.Decimal `json:"late_fee_rule_value"`
	LateFeeRuleGraceDays  int             `json:"late_fee_rule_grace_days"`
	LateFeeRuleCategories []string        `json:"late_fee_rule_categories"`
	LateFeeRuleIsActive   bool            `json:"late_fee_rule_is_active"`
	LateFeeRuleCreatedAt  time.Time       `json:"late_fee_rule_created_at"`
	LateFeeRuleUpdatedAt  time.Time       `json:"late_fee_rule_updated_at"`
}

func LateFeeRuleCreateDTOToModel(in LateFeeRuleCreateDTO) rulemodel.LateFeeRule {
	m := rulemodel.LateFeeRule{
		LateFeeRuleName:       in.LateFeeRuleName,
		LateFeeRuleType:       rulemodel.LateFeeRuleType(in.LateFeeRuleType),
		LateFeeRuleValue:      in.LateFeeRuleValue,
		LateFeeRuleGraceDays:  in.LateFeeRuleGraceDays,
		LateFeeRuleCategories: in.LateFeeRuleCategories,
		LateFeeRuleIsActive:   true,
	}
	if in.LateFeeRuleIsActive != nil {
		m.LateFeeRuleIsActive = *in.LateFeeRuleIsActive
	}
	return m
}

func ApplyLateFeeRuleUpdate(m *rulemodel.LateFeeRule, in LateFeeRuleUpdateDTO) {
	if in.LateFeeRuleName != nil {
		m.LateFeeRuleName = *in.LateFeeRuleName
	}
	if in.LateFeeRuleType != nil {
		m.LateFeeRuleType = rulemodel.LateFeeRuleType(*in.LateFeeRuleType)
	}
	if in.LateFeeRuleValue != nil {
		m.LateFeeRuleValue = *in.LateFeeRuleValue
	}
	if in.LateFeeRuleGraceDays != nil {
		m.LateFeeRuleGraceDays = *in.LateFeeRuleGraceDays
	}
	if in.LateFeeRuleCategories != nil {
		m.LateFeeRuleCategories = *in.LateFeeRuleCategories
	}
	if in.LateFeeRuleIsActive != nil {
		// Catatan: toggle TIDAK retroaktif — denda yang sudah ke-stamp dibekukan,
		// hanya evaluasi berikutnya yang terpengaruh.
		m.LateFeeRuleIsActive = *in.LateFeeRuleIsActive
	}
}

func ToLateFeeRuleResponse(m rulemodel.LateFeeRule) LateFeeRuleResponse {
	return LateFeeRuleResponse{
		LateFeeRuleID:         m.LateFeeRuleID,
		LateFeeRuleName:       m.LateFeeRuleName,
		LateFeeRuleType:       string(m.LateFeeRuleType),
		LateFeeRuleValue:      m.LateFeeRuleValue,
		LateFeeRuleGraceDays:  m.LateFeeRuleGraceDays,
		LateFeeRuleCategories: m.LateFeeRuleCategories,
		LateFeeRuleIsActive:   m.LateFeeRuleIsActive,
		LateFeeRuleCreatedAt:  m.LateFeeRuleCreatedAt,
		LateFeeRuleUpdatedAt:  m.LateFeeRuleUpdatedAt,
	}
}
