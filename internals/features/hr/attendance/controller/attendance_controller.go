// file: internals/features/hr/attendance/controller/attendance_controller.go
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/features/hr/attendance/dto"
	amodel "sekolahku_backend/internals/features/hr/attendance/model"
	helper "sekolahku_backend/internals/helpers"
)

type AttendanceController struct {
	DB *gorm.DB
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// POST /webhook/device/attendance
//
// Endpoint mesin absensi biometrik. Autentikasi via header X-Device-Key
// (shared secret), bukan JWT. Event mentah disimpan dulu untuk audit,
// baru diringkas ke baris StaffAttendance per pegawai per tanggal:
// check_in menyimpan waktu paling awal, check_out paling akhir.
func (ctl *AttendanceController) DeviceWebhook(c *fiber.Ctx) error {
	key := c.Get("X-Device-Key")
	if configs.DeviceAPIKey == "" || key != configs.DeviceAPIKey {
		return helper.JsonError(c, http.StatusUnauthorized, "device key tidak valid")
	}

	var in dto.DeviceEventDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if errs := helper.ValidateStruct(in); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	event := amodel.DeviceEvent{
		DeviceEventDeviceID:     in.DeviceID,
		DeviceEventEmployeeCode: in.EmployeeCode,
		DeviceEventType:         in.EventType,
		DeviceEventAt:           in.Timestamp,
		DeviceEventPayload:      datatypes.JSON(c.Body()),
	}

	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		date := truncateDate(in.Timestamp)
		var att amodel.StaffAttendance
		err := tx.First(&att,
			"staff_attendance_employee_code = ? AND staff_attendance_date = ?",
			in.EmployeeCode, date).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			att = amodel.StaffAttendance{
				StaffAttendanceEmployeeCode: in.EmployeeCode,
				StaffAttendanceDate:         date,
				StaffAttendanceSource:       amodel.AttendanceSourceDevice,
				StaffAttendanceDeviceID:     &in.DeviceID,
			}
			applyEvent(&att, in)
			return tx.Create(&att).Error
		}
		if err != nil {
			return err
		}

		applyEvent(&att, in)
		att.StaffAttendanceDeviceID = &in.DeviceID
		return tx.Save(&att).Error
	})
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "event diterima", dto.DeviceEventResponse{
		DeviceEventID: event.DeviceEventID,
		Accepted:      true,
	})
}

func applyEvent(att *amodel.StaffAttendance, in dto.DeviceEventDTO) {
	ts := in.Timestamp
	if in.EventType == "check_in" {
		if att.StaffAttendanceCheckInAt == nil || ts.Before(*att.StaffAttendanceCheckInAt) {
			att.StaffAttendanceCheckInAt = &ts
		}
		return
	}
	if att.StaffAttendanceCheckOutAt == nil || ts.After(*att.StaffAttendanceCheckOutAt) {
		att.StaffAttendanceCheckOutAt = &ts
	}
}

// GET /attendance — filter: employee_code, date_from, date_to (YYYY-MM-DD)
func (ctl *AttendanceController) ListAttendance(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "date", "desc", helper.AdminOpts)

	q := ctl.DB.Model(&amodel.StaffAttendance{})
	if v := c.Query("employee_code"); v != "" {
		q = q.Where("staff_attendance_employee_code = ?", v)
	}
	if v := c.Query("date_from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			q = q.Where("staff_attendance_date >= ?", t)
		}
	}
	if v := c.Query("date_to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			q = q.Where("staff_attendance_date <= ?", t)
		}
	}

	allowed := map[string]string{
		"date":          "staff_attendance_date",
		"employee_code": "staff_attendance_employee_code",
		"created_at":    "staff_attendance_created_at",
	}
	orderClause, _ := p.SafeOrderClause(allowed, "date")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var list []amodel.StaffAttendance
	if err := q.Order(orderClause).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "attendance", dto.ToAttendanceResponses(list), helper.BuildPagination(total, p.Page, p.PerPage))
}

// PUT /attendance — koreksi manual oleh admin (upsert per pegawai per tanggal)
func (ctl *AttendanceController) UpsertAttendance(c *fiber.Ctx) error {
	var in dto.AttendanceUpsertDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if errs := helper.ValidateStruct(in); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	if in.CheckInAt != nil && in.CheckOutAt != nil && in.CheckOutAt.Before(*in.CheckInAt) {
		return helper.JsonValidationError(c, map[string][]string{
			"check_out_at": {"tidak boleh sebelum check_in_at"},
		})
	}

	date := truncateDate(in.Date)
	var att amodel.StaffAttendance
	err := ctl.DB.First(&att,
		"staff_attendance_employee_code = ? AND staff_attendance_date = ?",
		in.EmployeeCode, date).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		att = amodel.StaffAttendance{
			StaffAttendanceEmployeeCode: in.EmployeeCode,
			StaffAttendanceDate:         date,
			StaffAttendanceCheckInAt:    in.CheckInAt,
			StaffAttendanceCheckOutAt:   in.CheckOutAt,
			StaffAttendanceSource:       amodel.AttendanceSourceManual,
			StaffAttendanceNote:         in.Note,
		}
		if err := ctl.DB.Create(&att).Error; err != nil {
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}
		return helper.JsonCreated(c, "attendance created", dto.ToAttendanceResponse(att))
	}
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	if in.CheckInAt != nil {
		att.StaffAttendanceCheckInAt = in.CheckInAt
	}
	if in.CheckOutAt != nil {
		att.StaffAttendanceCheckOutAt = in.CheckOutAt
	}
	if in.Note != nil {
		att.StaffAttendanceNote = in.Note
	}
	att.StaffAttendanceSource = amodel.AttendanceSourceManual
	if err := ctl.DB.Save(&att).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "attendance updated", dto.ToAttendanceResponse(att))
}
