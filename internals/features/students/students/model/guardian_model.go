// file: internals/features/students/students/model/guardian_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Guardian struct {
	// PK
	GuardianID uuid.UUID `json:"guardian_id" gorm:"column:guardian_id;type:uuid;default:gen_random_uuid();primaryKey"`

	// FK (composite) → students(student_school_id, student_class_id)
	GuardianStudentSchoolID int `json:"guardian_student_school_id" gorm:"column:guardian_student_school_id;not null;index:idx_guardians_student,priority:1"`
	GuardianStudentClassID  int `json:"guardian_student_class_id" gorm:"column:guardian_student_class_id;not null;index:idx_guardians_student,priority:2"`

	GuardianFullName string  `json:"guardian_full_name" gorm:"column:guardian_full_name;type:varchar(120);not null"`
	GuardianRelation string  `json:"guardian_relation" gorm:"column:guardian_relation;type:varchar(30);not null;default:'wali'"`
	GuardianPhone    *string `json:"guardian_phone,omitempty" gorm:"column:guardian_phone;type:varchar(30)"`
	GuardianEmail    *string `json:"guardian_email,omitempty" gorm:"column:guardian_email;type:varchar(120)"`

	// Penanggung jawab tagihan utama?
	GuardianIsPrimary bool `json:"guardian_is_primary" gorm:"column:guardian_is_primary;not null;default:false"`

	GuardianCreatedAt time.Time      `json:"guardian_created_at" gorm:"column:guardian_created_at;not null;autoCreateTime"`
	GuardianUpdatedAt time.Time      `json:"guardian_updated_at" gorm:"column:guardian_updated_at;not null;autoUpdateTime"`
	GuardianDeletedAt gorm.DeletedAt `json:"-" gorm:"column:guardian_deleted_at;index"`
}

func (Guardian) TableName() string { return "guardians" }

func (m *Guardian) BeforeCreate(tx *gorm.DB) error {
	if m.GuardianID == uuid.Nil {
		m.GuardianID = uuid.New()
	}
	return nil
}
