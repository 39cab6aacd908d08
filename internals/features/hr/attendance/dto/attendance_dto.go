// file: internals/features/hr/attendance/dto/attendance_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	amodel "sekolahku_backend/internals/features/hr/attendance/model"
)

////////////////////////////////////////////////////////////////////////////////
// WEBHOOK (mesin absensi biometrik)
////////////////////////////////////////////////////////////////////////////////

// Payload event dari device; timestamp RFC3339.
type DeviceEventDTO struct {
	DeviceID     string    `json:"device_id" validate:"required,max=60"`
	EmployeeCode string    `json:"employee_code" validate:"required,max=30"`
	EventType    string    `json:"event_type" validate:"required,oneof=check_in check_out"`
	Timestamp    time.Time `json:"timestamp" validate:"required"`
}

type DeviceEventResponse struct {
	DeviceEventID uuid.UUID `json:"device_event_id"`
	Accepted      bool      `json:"accepted"`
}

////////////////////////////////////////////////////////////////////////////////
// ATTENDANCE (koreksi manual + response)
////////////////////////////////////////////////////////////////////////////////

type AttendanceUpsertDTO struct {
	EmployeeCode string     `json:"employee_code" validate:"required,max=30"`
	Date         time.Time  `json:"date" validate:"required"`
	CheckInAt    *time.Time `json:"check_in_at,omitempty"`
	CheckOutAt   *time.Time `json:"check_out_at,omitempty"`
	Note         *string    `json:"note,omitempty"`
}

type AttendanceResponse struct {
	StaffAttendanceID uuid.UUID  `json:"staff_attendance_id"`
	EmployeeCode      string     `json:"employee_code"`
	Date              time.Time  `json:"date"`
	CheckInAt         *time.Time `json:"check_in_at,omitempty"`
	CheckOutAt        *time.Time `json:"check_out_at,omitempty"`
	Source            string     `json:"source"`
	DeviceID          *string    `json:"device_id,omitempty"`
	Note              *string    `json:"note,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func ToAttendanceResponse(m amodel.StaffAttendance) AttendanceResponse {
	return AttendanceResponse{
		StaffAttendanceID: m.StaffAttendanceID,
		EmployeeCode:      m.StaffAttendanceEmployeeCode,
		Date:              m.StaffAttendanceDate,
		CheckInAt:         m.StaffAttendanceCheckInAt,
		CheckOutAt:        m.StaffAttendanceCheckOutAt,
		Source:            string(m.StaffAttendanceSource),
		DeviceID:          m.StaffAttendanceDeviceID,
		Note:              m.StaffAttendanceNote,
		CreatedAt:         m.StaffAttendanceCreatedAt,
		UpdatedAt:         m.StaffAttendanceUpdatedAt,
	}
}

func ToAttendanceResponses(ms []amodel.StaffAttendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToAttendanceResponse(m))
	}
	return out
}
