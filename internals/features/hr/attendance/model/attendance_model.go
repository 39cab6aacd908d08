// file: internals/features/hr/attendance/model/attendance_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AttendanceSource string

const (
	AttendanceSourceManual AttendanceSource = "manual"
	AttendanceSourceDevice AttendanceSource = "device"
)

// StaffAttendance: satu baris per pegawai per tanggal.
type StaffAttendance struct {
	// PK
	StaffAttendanceID uuid.UUID `json:"staff_attendance_id" gorm:"column:staff_attendance_id;type:uuid;default:gen_random_uuid();primaryKey"`

	StaffAttendanceEmployeeCode string    `json:"staff_attendance_employee_code" gorm:"column:staff_attendance_employee_code;type:varchar(30);not null;uniqueIndex:uniq_attendance_employee_date,priority:1"`
	StaffAttendanceDate         time.Time `json:"staff_attendance_date" gorm:"column:staff_attendance_date;type:date;not null;uniqueIndex:uniq_attendance_employee_date,priority:2;index:idx_attendance_date"`

	StaffAttendanceCheckInAt  *time.Time `json:"staff_attendance_check_in_at,omitempty" gorm:"column:staff_attendance_check_in_at"`
	StaffAttendanceCheckOutAt *time.Time `json:"staff_attendance_check_out_at,omitempty" gorm:"column:staff_attendance_check_out_at"`

	StaffAttendanceSource   AttendanceSource `json:"staff_attendance_source" gorm:"column:staff_attendance_source;type:varchar(10);not null;default:'manual'"`
	StaffAttendanceDeviceID *string          `json:"staff_attendance_device_id,omitempty" gorm:"column:staff_attendance_device_id;type:varchar(60)"`
	StaffAttendanceNote     *string          `json:"staff_attendance_note,omitempty" gorm:"column:staff_attendance_note;type:text"`

	StaffAttendanceCreatedAt time.Time      `json:"staff_attendance_created_at" gorm:"column:staff_attendance_created_at;not null;autoCreateTime"`
	StaffAttendanceUpdatedAt time.Time      `json:"staff_attendance_updated_at" gorm:"column:staff_attendance_updated_at;not null;autoUpdateTime"`
	StaffAttendanceDeletedAt gorm.DeletedAt `json:"-" gorm:"column:staff_attendance_deleted_at;index"`
}

func (StaffAttendance) TableName() string { return "staff_attendances" }

func (m *StaffAttendance) BeforeCreate(tx *gorm.DB) error {
	if m.StaffAttendanceID == uuid.Nil {
		m.StaffAttendanceID = uuid.New()
	}
	return nil
}

// DeviceEvent: event mentah dari mesin absensi biometrik, disimpan apa adanya
// sebelum diringkas ke StaffAttendance (buat audit & replay).
type DeviceEvent struct {
	DeviceEventID uuid.UUID `json:"device_event_id" gorm:"column:device_event_id;type:uuid;default:gen_random_uuid();primaryKey"`

	DeviceEventDeviceID     string    `json:"device_event_device_id" gorm:"column:device_event_device_id;type:varchar(60);not null;index:idx_device_events_device"`
	DeviceEventEmployeeCode string    `json:"device_event_employee_code" gorm:"column:device_event_employee_code;type:varchar(30);not null;index:idx_device_events_employee"`
	DeviceEventType         string    `json:"device_event_type" gorm:"column:device_event_type;type:varchar(10);not null"` // check_in|check_out
	DeviceEventAt           time.Time `json:"device_event_at" gorm:"column:device_event_at;not null"`

	DeviceEventPayload datatypes.JSON `json:"device_event_payload,omitempty" gorm:"column:device_event_payload;type:jsonb"`

	DeviceEventCreatedAt time.Time `json:"device_event_created_at" gorm:"column:device_event_created_at;not null;autoCreateTime"`
}

func (DeviceEvent) TableName() string { return "device_events" }

func (m *DeviceEvent) BeforeCreate(tx *gorm.DB) error {
	if m.DeviceEventID == uuid.Nil {
		m.DeviceEventID = uuid.New()
	}
	return nil
}
