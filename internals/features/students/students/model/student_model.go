// file: internals/features/students/students/model/student_model.go
package model

import (
	"time"

	"gorm.io/gorm"
)

// Student hidup di tabel per-kelas dengan composite key (school_id, class_id).
// Subsistem invoicing TIDAK memakai key ini langsung — dia memakai composite
// UUID hasil encode (lihat students/service).
type Student struct {
	// Composite PK
	StudentSchoolID int `json:"student_school_id" gorm:"column:student_school_id;primaryKey;autoIncrement:false"`
	StudentClassID  int `json:"student_class_id" gorm:"column:student_class_id;primaryKey;autoIncrement:false"`

	StudentNIS        string `json:"student_nis" gorm:"column:student_nis;type:varchar(30);index:idx_students_nis"`
	StudentFullName   string `json:"student_full_name" gorm:"column:student_full_name;type:varchar(120);not null"`
	StudentGradeLabel string `json:"student_grade_label" gorm:"column:student_grade_label;type:varchar(30);index:idx_students_grade"`

	StudentIsActive bool `json:"student_is_active" gorm:"column:student_is_active;not null;default:true;index:idx_students_active"`

	// Timestamps
	StudentCreatedAt time.Time      `json:"student_created_at" gorm:"column:student_created_at;not null;autoCreateTime"`
	StudentUpdatedAt time.Time      `json:"student_updated_at" gorm:"column:student_updated_at;not null;autoUpdateTime"`
	StudentDeletedAt gorm.DeletedAt `json:"-" gorm:"column:student_deleted_at;index"`
}

func (Student) TableName() string { return "students" }
