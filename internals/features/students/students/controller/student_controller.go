// file: internals/features/students/students/controller/student_controller.go
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/students/students/dto"
	smodel "sekolahku_backend/internals/features/students/students/model"
	sservice "sekolahku_backend/internals/features/students/students/service"
	helper "sekolahku_backend/internals/helpers"
)

type StudentController struct {
	DB *gorm.DB
}

func parseCompositeKey(c *fiber.Ctx) (int, int, error) {
	schoolID, err := strconv.Atoi(c.Params("school_id"))
	if err != nil {
		return 0, 0, errors.New("school_id tidak valid")
	}
	classID, err := strconv.Atoi(c.Params("class_id"))
	if err != nil {
		return 0, 0, errors.New("class_id tidak valid")
	}
	return schoolID, classID, nil
}

// POST /students
func (ctl *StudentController) CreateStudent(c *fiber.Ctx) error {
	var in dto.StudentCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if errs := helper.ValidateStruct(in); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	// Pastikan key muat di layout composite UUID sebelum masuk DB
	if _, err := sservice.EncodeStudentUUID(int64(in.StudentSchoolID), int64(in.StudentClassID)); err != nil {
		return helper.JsonValidationError(c, map[string][]string{
			"student_class_id": {err.Error()},
		})
	}

	m := dto.StudentCreateDTOToModel(in)

	var existing smodel.Student
	err := ctl.DB.First(&existing,
		"student_school_id = ? AND student_class_id = ?", m.StudentSchoolID, m.StudentClassID).Error
	if err == nil {
		return helper.JsonError(c, http.StatusConflict, "student dengan school_id & class_id ini sudah ada")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	if err := ctl.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "student created", dto.ToStudentResponse(m))
}

// GET /students — filter: school_id, grade, is_active, q (nama)
func (ctl *StudentController) ListStudents(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	q := ctl.DB.Model(&smodel.Student{})
	if v := c.QueryInt("school_id", -1); v >= 0 {
		q = q.Where("student_school_id = ?", v)
	}
	if v := c.Query("grade"); v != "" {
		q = q.Where("student_grade_label = ?", v)
	}
	if v := c.Query("is_active"); v == "true" {
		q = q.Where("student_is_active = ?", true)
	} else if v == "false" {
		q = q.Where("student_is_active = ?", false)
	}
	if v := c.Query("q"); v != "" {
		q = q.Where("student_full_name LIKE ?", "%"+v+"%")
	}

	allowed := map[string]string{
		"created_at": "student_created_at",
		"name":       "student_full_name",
		"class_id":   "student_class_id",
		"nis":        "student_nis",
	}
	orderClause, _ := p.SafeOrderClause(allowed, "created_at")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var list []smodel.Student
	if err := q.Order(orderClause).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "students", dto.ToStudentResponses(list), helper.BuildPagination(total, p.Page, p.PerPage))
}

// GET /students/:school_id/:class_id
func (ctl *StudentController) GetStudent(c *fiber.Ctx) error {
	schoolID, classID, err := parseCompositeKey(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	var m smodel.Student
	if err := ctl.DB.First(&m,
		"student_school_id = ? AND student_class_id = ?", schoolID, classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "student not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "student", dto.ToStudentResponse(m))
}

// GET /students/resolve/:invoice_student_id
// Balikkan composite UUID invoicing ke (school_id, class_id) + data student.
func (ctl *StudentController) ResolveStudent(c *fiber.Ctx) error {
	schoolID, classID, err := sservice.DecodeStudentUUID(c.Params("invoice_student_id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	var m smodel.Student
	if err := ctl.DB.First(&m,
		"student_school_id = ? AND student_class_id = ?", schoolID, classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "student not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "student resolved", dto.ToStudentResponse(m))
}

// PATCH /students/:school_id/:class_id
func (ctl *StudentController) UpdateStudent(c *fiber.Ctx) error {
	schoolID, classID, err := parseCompositeKey(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	var in dto.StudentUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if errs := helper.ValidateStruct(in); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	var m smodel.Student
	if err := ctl.DB.First(&m,
		"student_school_id = ? AND student_class_id = ?", schoolID, classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "student not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	dto.ApplyStudentUpdate(&m, in)
	if err := ctl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "student updated", dto.ToStudentResponse(m))
}

// DELETE /students/:school_id/:class_id (soft delete)
func (ctl *StudentController) DeleteStudent(c *fiber.Ctx) error {
	schoolID, classID, err := parseCompositeKey(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	res := ctl.DB.Delete(&smodel.Student{},
		"student_school_id = ? AND student_class_id = ?", schoolID, classID)
	if res.Error != nil {
		return helper.JsonError(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, http.StatusNotFound, "student not found")
	}
	return helper.JsonOK(c, "student deleted", fiber.Map{
		"student_school_id": schoolID,
		"student_class_id":  classID,
	})
}

////////////////////////////////////////////////////////////////////////////////
// GUARDIAN
////////////////////////////////////////////////////////////////////////////////

// POST /students/:school_id/:class_id/guardians
func (ctl *StudentController) CreateGuardian(c *fiber.Ctx) error {
	schoolID, classID, err := parseCompositeKey(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	var in dto.GuardianCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	in.GuardianStudentSchoolID = schoolID
	in.GuardianStudentClassID = classID
	if errs := helper.ValidateStruct(in); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	var st smodel.Student
	if err := ctl.DB.First(&st,
		"student_school_id = ? AND student_class_id = ?", schoolID, classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "student not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	m := dto.GuardianCreateDTOToModel(in)
	if err := ctl.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "guardian created", dto.ToGuardianResponse(m))
}

// GET /students/:school_id/:class_id/guardians
func (ctl *StudentController) ListGuardians(c *fiber.Ctx) error {
	schoolID, classID, err := parseCompositeKey(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	var list []smodel.Guardian
	if err := ctl.DB.
		Where("guardian_student_school_id = ? AND guardian_student_class_id = ?", schoolID, classID).
		Order("guardian_is_primary DESC, guardian_created_at ASC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	out := make([]dto.GuardianResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.ToGuardianResponse(m))
	}
	return helper.JsonOK(c, "guardians", out)
}
