// file: internals/features/users/auth/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	// PK
	UserID uuid.UUID `json:"user_id" gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey"`

	UserEmail        string `json:"user_email" gorm:"column:user_email;type:varchar(120);not null;uniqueIndex:uniq_users_email"`
	UserPasswordHash string `json:"-" gorm:"column:user_password_hash;type:varchar(100);not null"`
	UserFullName     string `json:"user_full_name" gorm:"column:user_full_name;type:varchar(120);not null"`

	// Role tunggal (lihat constants.AllRoles)
	UserRole string `json:"user_role" gorm:"column:user_role;type:varchar(20);not null;default:'user';index:idx_users_role"`

	// Scope sekolah (nil untuk owner global)
	UserSchoolID *int `json:"user_school_id,omitempty" gorm:"column:user_school_id;index"`

	UserIsActive bool `json:"user_is_active" gorm:"column:user_is_active;not null;default:true"`

	UserCreatedAt time.Time      `json:"user_created_at" gorm:"column:user_created_at;not null;autoCreateTime"`
	UserUpdatedAt time.Time      `json:"user_updated_at" gorm:"column:user_updated_at;not null;autoUpdateTime"`
	UserDeletedAt gorm.DeletedAt `json:"-" gorm:"column:user_deleted_at;index"`
}

func (User) TableName() string { return "users" }

func (m *User) BeforeCreate(tx *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	return nil
}
