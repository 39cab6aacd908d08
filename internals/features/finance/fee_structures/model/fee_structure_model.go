// file: internals/features/finance/fee_structures/model/fee_structure_model.go
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
// JSONB — line items template biaya
// =========================================================

type FeeStructureLine struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type FeeStructureLines []FeeStructureLine

func (l FeeStructureLines) Value() (driver.Value, error) { return json.Marshal(l) }

func (l *FeeStructureLines) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	}
	return errors.New("fee structure lines: unsupported scan type")
}

// =========================================================
// MODEL — template biaya berulang per grade/kelas per tahun ajaran
// =========================================================

type FeeStructure struct {
	// PK
	FeeStructureID uuid.UUID `json:"fee_structure_id" gorm:"column:fee_structure_id;type:uuid;default:gen_random_uuid();primaryKey"`

	FeeStructureName         string `json:"fee_structure_name" gorm:"column:fee_structure_name;type:varchar(120);not null"`
	FeeStructureGradeLabel   string `json:"fee_structure_grade_label" gorm:"column:fee_structure_grade_label;type:varchar(30);not null;index:idx_fee_structures_grade"`
	FeeStructureAcademicYear string `json:"fee_structure_academic_year" gorm:"column:fee_structure_academic_year;type:varchar(9);not null;index:idx_fee_structures_year"` // "2025/2026"

	// Kategori biaya (SPP/REG/BOOK/...) — ikut ke invoice yang digenerate
	FeeStructureCategory string `json:"fee_structure_category" gorm:"column:fee_structure_category;type:varchar(60);not null;default:'SPP'"`

	FeeStructureLines FeeStructureLines `json:"fee_structure_lines" gorm:"column:fee_structure_lines;type:jsonb"`

	FeeStructureIsActive bool `json:"fee_structure_is_active" gorm:"column:fee_structure_is_active;not null;default:true;index:idx_fee_structures_active"`

	FeeStructureCreatedAt time.Time      `json:"fee_structure_created_at" gorm:"column:fee_structure_created_at;not null;autoCreateTime"`
	FeeStructureUpdatedAt time.Time      `json:"fee_structure_updated_at" gorm:"column:fee_structure_updated_at;not null;autoUpdateTime"`
	FeeStructureDeletedAt gorm.DeletedAt `json:"-" gorm:"column:fee_structure_deleted_at;index"`
}

func (FeeStructure) TableName() string { return "fee_structures" }

func (m *FeeStructure) BeforeCreate(tx *gorm.DB) error {
	if m.FeeStructureID == uuid.Nil {
		m.FeeStructureID = uuid.New()
	}
	return nil
}

// TotalAmount menjumlahkan seluruh line template.
func (m FeeStructure) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, line := range m.FeeStructureLines {
		total = total.Add(line.Amount)
	}
	return total.Round(2)
}
