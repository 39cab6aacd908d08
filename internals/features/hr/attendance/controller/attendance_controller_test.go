// file: internals/features/hr/attendance/controller/attendance_controller_test.go
package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	amodel "sekolahku_backend/internals/features/hr/attendance/model"
)

const testDeviceKey = "device-key-uji"

func setupAttendanceTest(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&amodel.StaffAttendance{}, &amodel.DeviceEvent{}))

	configs.DeviceAPIKey = testDeviceKey

	ctl := &AttendanceController{DB: db}
	app := fiber.New()
	app.Post("/webhook/device/attendance", ctl.DeviceWebhook)
	app.Get("/attendance", ctl.ListAttendance)
	app.Put("/attendance", ctl.UpsertAttendance)
	return app, db
}

func postEvent(t *testing.T, app *fiber.App, key string, body map[string]any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/webhook/device/attendance", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("X-Device-Key", key)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestDeviceWebhook_RejectsBadKey(t *testing.T) {
	app, db := setupAttendanceTest(t)

	resp := postEvent(t, app, "kunci-salah", map[string]any{
		"device_id":     "mesin-lobby",
		"employee_code": "EMP001",
		"event_type":    "check_in",
		"timestamp":     "2026-08-03T08:00:00Z",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&amodel.DeviceEvent{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDeviceWebhook_CheckInThenCheckOut(t *testing.T) {
	app, db := setupAttendanceTest(t)

	resp := postEvent(t, app, testDeviceKey, map[string]any{
		"device_id":     "mesin-lobby",
		"employee_code": "EMP001",
		"event_type":    "check_in",
		"timestamp":     "2026-08-03T08:00:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postEvent(t, app, testDeviceKey, map[string]any{
		"device_id":     "mesin-lobby",
		"employee_code": "EMP001",
		"event_type":    "check_out",
		"timestamp":     "2026-08-03T16:05:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var rows []amodel.StaffAttendance
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1, "satu pegawai satu tanggal = satu baris")

	att := rows[0]
	assert.Equal(t, "EMP001", att.StaffAttendanceEmployeeCode)
	assert.Equal(t, amodel.AttendanceSourceDevice, att.StaffAttendanceSource)
	require.NotNil(t, att.StaffAttendanceCheckInAt)
	require.NotNil(t, att.StaffAttendanceCheckOutAt)
	assert.Equal(t, 8, att.StaffAttendanceCheckInAt.UTC().Hour())
	assert.Equal(t, 16, att.StaffAttendanceCheckOutAt.UTC().Hour())

	var events int64
	require.NoError(t, db.Model(&amodel.DeviceEvent{}).Count(&events).Error)
	assert.EqualValues(t, 2, events)
}

func TestDeviceWebhook_KeepsEarliestInAndLatestOut(t *testing.T) {
	app, db := setupAttendanceTest(t)

	stamps := []struct {
		eventType string
		ts        string
	}{
		{"check_in", "2026-08-03T08:00:00Z"},
		{"check_in", "2026-08-03T07:30:00Z"}, // lebih awal → menang
		{"check_in", "2026-08-03T09:00:00Z"}, // lebih siang → diabaikan
		{"check_out", "2026-08-03T15:00:00Z"},
		{"check_out", "2026-08-03T16:45:00Z"}, // paling akhir → menang
	}
	for _, s := range stamps {
		resp := postEvent(t, app, testDeviceKey, map[string]any{
			"device_id":     "mesin-lobby",
			"employee_code": "EMP002",
			"event_type":    s.eventType,
			"timestamp":     s.ts,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	var att amodel.StaffAttendance
	require.NoError(t, db.First(&att, "staff_attendance_employee_code = ?", "EMP002").Error)
	require.NotNil(t, att.StaffAttendanceCheckInAt)
	require.NotNil(t, att.StaffAttendanceCheckOutAt)

	in := att.StaffAttendanceCheckInAt.UTC()
	out := att.StaffAttendanceCheckOutAt.UTC()
	assert.Equal(t, "07:30", in.Format("15:04"))
	assert.Equal(t, "16:45", out.Format("15:04"))
}

func TestDeviceWebhook_RejectsUnknownEventType(t *testing.T) {
	app, _ := setupAttendanceTest(t)

	resp := postEvent(t, app, testDeviceKey, map[string]any{
		"device_id":     "mesin-lobby",
		"employee_code": "EMP001",
		"event_type":    "break_start",
		"timestamp":     "2026-08-03T12:00:00Z",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestUpsertAttendance_ManualCorrection(t *testing.T) {
	app, db := setupAttendanceTest(t)

	// Device isi dulu
	resp := postEvent(t, app, testDeviceKey, map[string]any{
		"device_id":     "mesin-lobby",
		"employee_code": "EMP003",
		"event_type":    "check_in",
		"timestamp":     "2026-08-03T08:15:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Admin koreksi check-out yang lupa tap
	note := "lupa tap pulang"
	body, err := json.Marshal(map[string]any{
		"employee_code": "EMP003",
		"date":          "2026-08-03T00:00:00Z",
		"check_out_at":  "2026-08-03T16:00:00Z",
		"note":          note,
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/attendance", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	putResp, err := app.Test(req, -1)
	require.NoError(t, err)
	b, _ := io.ReadAll(putResp.Body)
	require.Equal(t, http.StatusOK, putResp.StatusCode, string(b))

	var att amodel.StaffAttendance
	require.NoError(t, db.First(&att, "staff_attendance_employee_code = ?", "EMP003").Error)
	assert.Equal(t, amodel.AttendanceSourceManual, att.StaffAttendanceSource)
	require.NotNil(t, att.StaffAttendanceCheckInAt)
	require.NotNil(t, att.StaffAttendanceCheckOutAt)
	require.NotNil(t, att.StaffAttendanceNote)
	assert.Equal(t, note, *att.StaffAttendanceNote)
	assert.True(t, att.StaffAttendanceDate.Equal(time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)))
}
