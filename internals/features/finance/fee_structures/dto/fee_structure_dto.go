// file: internals/features/finance/fee_structures/dto/fee_structure_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	fsmodel "sekolahku_backend/internals/features/finance/fee_structures/model"
)

type FeeStructureLineDTO struct {
	Description string          `json:"description" validate:"required,max=200"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
}

// Create
type FeeStructureCreateDTO struct {
	FeeStructureName         string                `json:"fee_structure_name" validate:"required,max=120"`
	FeeStructureGradeLabel   string                `json:"fee_structure_grade_label" validate:"required,max=30"`
	FeeStructureAcademicYear string                `json:"fee_structure_academic_year" validate:"required,max=9"`
	FeeStructureCategory     string                `json:"fee_structure_category" validate:"required,max=60"`
	FeeStructureLines        []FeeStructureLineDTO `json:"fee_structure_lines" validate:"required,min=1,dive"`
	FeeStructureIsActive     *bool                 `json:"fee_structure_is_active,omitempty"`
}

// Update (partial)
type FeeStructureUpdateDTO struct {
	FeeStructureName         *string                `json:"fee_structure_name,omitempty" validate:"omitempty,max=120"`
	FeeStructureGradeLabel   *string                `json:"fee_structure_grade_label,omitempty" validate:"omitempty,max=30"`
	FeeStructureAcademicYear *string                `json:"fee_structure_academic_year,omitempty" validate:"omitempty,max=9"`
	FeeStructureCategory     *string                `json:"fee_structure_category,omitempty" validate:"omitempty,max=60"`
	FeeStructureLines        *[]FeeStructureLineDTO `json:"fee_structure_lines,omitempty" validate:"omitempty,min=1,dive"`
	FeeStructureIsActive     *bool                  `json:"fee_structure_is_active,omitempty"`
}

// Response
type FeeStructureResponse struct {
	FeeStructureID           uuid.UUID                 `json:"fee_structure_id"`
	FeeStructureName         string                    `json:"fee_structure_name"`
	FeeStructureGradeLabel   string                    `json:"fee_structure_grade_label"`
	FeeStructureAcademicYear string                    `json:"fee_structure_academic_year"`
	FeeStructureCategory     string                    `json:"fee_structure_category"`
	FeeStructureLines        fsmodel.FeeStructureLines `json:"fee_structure_lines"`
	FeeStructureTotalAmount  decimal.Decimal           `json:"fee_structure_total_amount"`
	FeeStructureIsActive     bool                      `json:"fee_structure_is_active"`
	FeeStructureCreatedAt    time.Time                 `json:"fee_structure_created_at"`
	FeeStructureUpdatedAt    time.Time                 `json:"fee_structure_updated_at"`
}

func linesToModel(in []FeeStructureLineDTO) fsmodel.FeeStructureLines {
	out := make(fsmodel.FeeStructureLines, 0, len(in))
	for _, l := range in {
		out = append(out, fsmodel.FeeStructureLine{Description: l.Description, Amount: l.Amount})
	}
	return out
}

func FeeStructureCreateDTOToModel(in FeeStructureCreateDTO) fsmodel.FeeStructure {
	m := fsmodel.FeeStructure{
		FeeStructureName:         in.FeeStructureName,
		FeeStructureGradeLabel:   in.FeeStructureGradeLabel,
		FeeStructureAcademicYear: in.FeeStructureAcademicYear,
		FeeStructureCategory:     in.FeeStructureCategory,
		FeeStructureLines:        linesToModel(in.FeeStructureLines),
		FeeStructureIsActive:     true,
	}
	if in.FeeStructureIsActive != nil {
		m.FeeStructureIsActive = *in.FeeStructureIsActive
	}
	return m
}

func ApplyFeeStructureUpdate(m *fsmodel.FeeStructure, in FeeStructureUpdateDTO) {
	if in.FeeStructureName != nil {
		m.FeeStructureName = *in.FeeStructureName
	}
	if in.FeeStructureGradeLabel != nil {
		m.FeeStructureGradeLabel = *in.FeeStructureGradeLabel
	}
	if in.FeeStructureAcademicYear != nil {
		m.FeeStructureAcademicYear = *in.FeeStructureAcademicYear
	}
	if in.FeeStructureCategory != nil {
		m.FeeStructureCategory = *in.FeeStructureCategory
	}
	if in.FeeStructureLines != nil {
		m.FeeStructureLines = linesToModel(*in.FeeStructureLines)
	}
	if in.FeeStructureIsActive != nil {
		m.FeeStructureIsActive = *in.FeeStructureIsActive
	}
}

func ToFeeStructureResponse(m fsmodel.FeeStructure) FeeStructureResponse {
	return FeeStructureResponse{
		FeeStructureID:           m.FeeStructureID,
		FeeStructureName:         m.FeeStructureName,
		FeeStructureGradeLabel:   m.FeeStructureGradeLabel,
		FeeStructureAcademicYear: m.FeeStructureAcademicYear,
		FeeStructureCategory:     m.FeeStructureCategory,
		FeeStructureLines:        m.FeeStructureLines,
		FeeStructureTotalAmount:  m.TotalAmount(),
		FeeStructureIsActive:     m.FeeStructureIsActive,
		FeeStructureCreatedAt:    m.FeeStructureCreatedAt,
		FeeStructureUpdatedAt:    m.FeeStructureUpdatedAt,
	}
}
