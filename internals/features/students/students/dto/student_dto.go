// file: internals/features/students/students/dto/student_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	smodel "sekolahku_backend/internals/features/students/students/model"
	sservice "sekolahku_backend/internals/features/students/students/service"
)

////////////////////////////////////////////////////////////////////////////////
// STUDENT
////////////////////////////////////////////////////////////////////////////////

type StudentCreateDTO struct {
	StudentSchoolID   int    `json:"student_school_id" validate:"min=0,max=9999"`
	StudentClassID    int    `json:"student_class_id" validate:"min=0"`
	StudentNIS        string `json:"student_nis" validate:"omitempty,max=30"`
	StudentFullName   string `json:"student_full_name" validate:"required,max=120"`
	StudentGradeLabel string `json:"student_grade_label" validate:"omitempty,max=30"`
	StudentIsActive   *bool  `json:"student_is_active,omitempty"`
}

type StudentUpdateDTO struct {
	StudentNIS        *string `json:"student_nis,omitempty" validate:"omitempty,max=30"`
	StudentFullName   *string `json:"student_full_name,omitempty" validate:"omitempty,max=120"`
	StudentGradeLabel *string `json:"student_grade_label,omitempty" validate:"omitempty,max=30"`
	StudentIsActive   *bool   `json:"student_is_active,omitempty"`
}

type StudentResponse struct {
	StudentSchoolID   int    `json:"student_school_id"`
	StudentClassID    int    `json:"student_class_id"`
	StudentInvoiceID  string `json:"student_invoice_id"` // composite UUID utk subsistem invoicing
	StudentNIS        string `json:"student_nis"`
	StudentFullName   string `json:"student_full_name"`
	StudentGradeLabel string `json:"student_grade_label"`
	StudentIsActive   bool   `json:"student_is_active"`
	StudentCreatedAt  time.Time `json:"student_created_at"`
	StudentUpdatedAt  time.Time `json:"student_updated_at"`
}

func StudentCreateDTOToModel(in StudentCreateDTO) smodel.Student {
	m := smodel.Student{
		StudentSchoolID:   in.StudentSchoolID,
		StudentClassID:    in.StudentClassID,
		StudentNIS:        in.StudentNIS,
		StudentFullName:   in.StudentFullName,
		StudentGradeLabel: in.StudentGradeLabel,
		StudentIsActive:   true,
	}
	if in.StudentIsActive != nil {
		m.StudentIsActive = *in.StudentIsActive
	}
	return m
}

func ApplyStudentUpdate(m *smodel.Student, in StudentUpdateDTO) {
	if in.StudentNIS != nil {
		m.StudentNIS = *in.StudentNIS
	}
	if in.StudentFullName != nil {
		m.StudentFullName = *in.StudentFullName
	}
	if in.StudentGradeLabel != nil {
		m.StudentGradeLabel = *in.StudentGradeLabel
	}
	if in.StudentIsActive != nil {
		m.StudentIsActive = *in.StudentIsActive
	}
}

func ToStudentResponse(m smodel.Student) StudentResponse {
	// encode tidak bisa gagal utk row yang lolos validasi create
	encoded, _ := sservice.EncodeStudentUUID(int64(m.StudentSchoolID), int64(m.StudentClassID))
	return StudentResponse{
		StudentSchoolID:   m.StudentSchoolID,
		StudentClassID:    m.StudentClassID,
		StudentInvoiceID:  encoded,
		StudentNIS:        m.StudentNIS,
		StudentFullName:   m.StudentFullName,
		StudentGradeLabel: m.StudentGradeLabel,
		StudentIsActive:   m.StudentIsActive,
		StudentCreatedAt:  m.StudentCreatedAt,
		StudentUpdatedAt:  m.StudentUpdatedAt,
	}
}

func ToStudentResponses(ms []smodel.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToStudentResponse(m))
	}
	return out
}

////////////////////////////////////////////////////////////////////////////////
// GUARDIAN
////////////////////////////////////////////////////////////////////////////////

type GuardianCreateDTO struct {
	GuardianStudentSchoolID int     `json:"guardian_student_school_id" validate:"min=0,max=9999"`
	GuardianStudentClassID  int     `json:"guardian_student_class_id" validate:"min=0"`
	GuardianFullName        string  `json:"guardian_full_name" validate:"required,max=120"`
	GuardianRelation        string  `json:"guardian_relation" validate:"omitempty,max=30"`
	GuardianPhone           *string `json:"guardian_phone,omitempty" validate:"omitempty,max=30"`
	GuardianEmail           *string `json:"guardian_email,omitempty" validate:"omitempty,email,max=120"`
	GuardianIsPrimary       bool    `json:"guardian_is_primary"`
}

type GuardianResponse struct {
	GuardianID              uuid.UUID `json:"guardian_id"`
	GuardianStudentSchoolID int       `json:"guardian_student_school_id"`
	GuardianStudentClassID  int       `json:"guardian_student_class_id"`
	GuardianFullName        string    `json:"guardian_full_name"`
	GuardianRelation        string    `json:"guardian_relation"`
	GuardianPhone           *string   `json:"guardian_phone,omitempty"`
	GuardianEmail           *string   `json:"guardian_email,omitempty"`
	GuardianIsPrimary       bool      `json:"guardian_is_primary"`
	GuardianCreatedAt       time.Time `json:"guardian_created_at"`
}

func GuardianCreateDTOToModel(in GuardianCreateDTO) smodel.Guardian {
	relation := in.GuardianRelation
	if relation == "" {
		relation = "wali"
	}
	return smodel.Guardian{
		GuardianStudentSchoolID: in.GuardianStudentSchoolID,
		GuardianStudentClassID:  in.GuardianStudentClassID,
		GuardianFullName:        in.GuardianFullName,
		GuardianRelation:        relation,
		GuardianPhone:           in.GuardianPhone,
		GuardianEmail:           in.GuardianEmail,
		GuardianIsPrimary:       in.GuardianIsPrimary,
	}
}

func ToGuardianResponse(m smodel.Guardian) GuardianResponse {
	return GuardianResponse{
		GuardianID:              m.GuardianID,
		GuardianStudentSchoolID: m.GuardianStudentSchoolID,
		GuardianStudentClassID:  m.GuardianStudentClassID,
		GuardianFullName:        m.GuardianFullName,
		GuardianRelation:        m.GuardianRelation,
		GuardianPhone:           m.GuardianPhone,
		GuardianEmail:           m.GuardianEmail,
		GuardianIsPrimary:       m.GuardianIsPrimary,
		GuardianCreatedAt:       m.GuardianCreatedAt,
	}
}
