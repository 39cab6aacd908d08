// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/users/auth/dto"
	umodel "sekolahku_backend/internals/features/users/auth/model"
	helper "sekolahku_backend/internals/helpers"
)

const accessTokenTTL = 24 * time.Hour

type AuthController struct {
	DB *gorm.DB
}

// POST /auth/register
func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var in dto.RegisterDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if errs := helper.ValidateStruct(in); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	role := in.UserRole
	if role == "" {
		role = constants.RoleUser
	}

	var existing umodel.User
	err := ctl.DB.First(&existing, "user_email = ?", in.UserEmail).Error
	if err == nil {
		return helper.JsonError(c, http.StatusConflict, "email sudah terdaftar")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.UserPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, "gagal hash password")
	}

	m := umodel.User{
		UserEmail:        in.UserEmail,
		UserPasswordHash: string(hash),
		UserFullName:     in.UserFullName,
		UserRole:         role,
		UserSchoolID:     in.UserSchoolID,
		UserIsActive:     true,
	}
	if err := ctl.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "register berhasil", dto.ToUserResponse(m))
}

// POST /auth/login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var in dto.LoginDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if errs := helper.ValidateStruct(in); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	var m umodel.User
	if err := ctl.DB.First(&m, "user_email = ?", in.UserEmail).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusUnauthorized, "email atau password salah")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	if !m.UserIsActive {
		return helper.JsonError(c, http.StatusForbidden, "akun dinonaktifkan")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.UserPasswordHash), []byte(in.UserPassword)); err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, "email atau password salah")
	}

	expiresAt := time.Now().Add(accessTokenTTL)
	claims := jwt.MapClaims{
		"sub":  m.UserID.String(),
		"role": m.UserRole,
		"iat":  time.Now().Unix(),
		"exp":  expiresAt.Unix(),
	}
	if m.UserSchoolID != nil {
		claims["school_id"] = *m.UserSchoolID
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, "gagal membuat token")
	}

	return helper.JsonOK(c, "login berhasil", dto.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        dto.ToUserResponse(m),
	})
}

// GET /auth/me (butuh AuthJWT)
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, "Unauthorized")
	}
	var m umodel.User
	if err := ctl.DB.First(&m, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "user not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "profil", dto.ToUserResponse(m))
}
