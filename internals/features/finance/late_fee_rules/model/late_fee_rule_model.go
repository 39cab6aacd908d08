// file: internals/features/finance/late_fee_rules/model/late_fee_rule_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- ENUM late_fee_rule_type -------------------------------------------------
type LateFeeRuleType string

const (
	LateFeeRuleTypeFixedAmount LateFeeRuleType = "FIXED_AMOUNT"
	LateFeeRuleTypePercentage  LateFeeRuleType = "PERCENTAGE"
)

// --- MODEL late_fee_rules ----------------------------------------------------
type LateFeeRule struct {
	// PK
	LateFeeRuleID uuid.UUID `json:"late_fee_rule_id" gorm:"column:late_fee_rule_id;type:uuid;default:gen_random_uuid();primaryKey"`

	LateFeeRuleName string          `json:"late_fee_rule_name" gorm:"column:late_fee_rule_name;type:varchar(120);not null"`
	LateFeeRuleType LateFeeRuleType `json:"late_fee_rule_type" gorm:"column:late_fee_rule_type;type:varchar(20);not null"`

	// FIXED_AMOUNT → nominal; PERCENTAGE → persen dari net amount invoice
	LateFeeRuleValue decimal.Decimal `json:"late_fee_rule_value" gorm:"column:late_fee_rule_value;type:numeric(12,2);not null"`

	// Masa tenggang setelah jatuh tempo (hari); denda baru kena saat lewat STRICT
	LateFeeRuleGraceDays int `json:"late_fee_rule_grace_days" gorm:"column:late_fee_rule_grace_days;not null;default:0;check:late_fee_rule_grace_days>=0"`

	// Kategori biaya yang kena rule ini (SPP/REG/BOOK/...); kosong = semua kategori
	LateFeeRuleCategories pq.StringArray `json:"late_fee_rule_categories" gorm:"column:late_fee_rule_categories;type:text[]"`

	LateFeeRuleIsActive bool `json:"late_fee_rule_is_active" gorm:"column:late_fee_rule_is_active;not null;default:true;index:idx_late_fee_rules_active"`

	// Timestamps
	LateFeeRuleCreatedAt time.Time      `json:"late_fee_rule_created_at" gorm:"column:late_fee_rule_created_at;type:timestamptz;not null;autoCreateTime"`
	LateFeeRuleUpdatedAt time.Time      `json:"late_fee_rule_updated_at" gorm:"column:late_fee_rule_updated_at;type:timestamptz;not null;autoUpdateTime"`
	LateFeeRuleDeletedAt gorm.DeletedAt `json:"late_fee_rule_deleted_at,omitempty" gorm:"column:late_fee_rule_deleted_at;type:timestamptz;index"`
}

func (LateFeeRule) TableName() string { return "late_fee_rules" }

func (m *LateFeeRule) BeforeCreate(tx *gorm.DB) error {
	if m.LateFeeRuleID == uuid.Nil {
		m.LateFeeRuleID = uuid.New()
	}
	return nil
}

// AppliesTo: cek kategori invoice masuk cakupan rule. Daftar kosong berarti
// rule berlaku untuk semua kategori.
func (m LateFeeRule) AppliesTo(category string) bool {
	if len(m.LateFeeRuleCategories) == 0 {
		return true
	}
	for _, c := range m.LateFeeRuleCategories {
		if c == category {
			return true
		}
	}
	return false
}
