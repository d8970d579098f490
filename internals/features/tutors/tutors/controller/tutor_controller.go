package controller

import (
	"errors"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	tutorDTO "tutorhub_backend/internals/features/tutors/tutors/dto"
	tutorModel "tutorhub_backend/internals/features/tutors/tutors/model"
	helper "tutorhub_backend/internals/helpers"
)

type TutorController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewTutorController(db *gorm.DB) *TutorController {
	return &TutorController{
		DB:       db,
		Validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

/* =======================================================
   TUTOR SIDE
   ======================================================= */

func (ctl *TutorController) MyProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var row tutorModel.TutorModel
	if err := ctl.DB.Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "You do not have an approved tutor profile yet")
		}
		return helper.JsonAppError(c, err)
	}
	return helper.Success(c, "OK", tutorDTO.FromModel(&row))
}

// UpdateMyProfile edits the approved profile. The originating application is
// the historical record and stays untouched.
func (ctl *TutorController) UpdateMyProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req tutorDTO.UpdateTutorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var row tutorModel.TutorModel
	if err := ctl.DB.Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "You do not have an approved tutor profile yet")
		}
		return helper.JsonAppError(c, err)
	}

	setIfFilled := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	setIfFilled(&row.FirstName, req.FirstName)
	setIfFilled(&row.LastName, req.LastName)
	setIfFilled(&row.Phone, req.Phone)
	setIfFilled(&row.City, req.City)
	setIfFilled(&row.State, req.State)
	setIfFilled(&row.Address, req.Address)
	setIfFilled(&row.PhotoURL, req.PhotoURL)
	setIfFilled(&row.Headline, req.Headline)
	setIfFilled(&row.Bio, req.Bio)
	if len(req.Subjects) > 0 {
		if b, err := sonic.Marshal(req.Subjects); err == nil {
			row.Subjects = datatypes.JSON(b)
		}
	}

	if err := ctl.DB.Save(&row).Error; err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.Success(c, "Profile updated", tutorDTO.FromModel(&row))
}

/* =======================================================
   ADMIN SIDE
   ======================================================= */

func (ctl *TutorController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	db := ctl.DB.Model(&tutorModel.TutorModel{})
	if city := strings.TrimSpace(c.Query("city")); city != "" {
		db = db.Where("LOWER(city) = ?", strings.ToLower(city))
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count tutors")
	}

	var rows []tutorModel.TutorModel
	if err := db.Order("created_at DESC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load tutors")
	}

	out := make([]tutorDTO.TutorResponse, 0, len(rows))
	for i := range rows {
		out = append(out, tutorDTO.FromModel(&rows[i]))
	}
	return helper.Success(c, "OK", fiber.Map{
		"items":      out,
		"pagination": helper.BuildPagination(p, total, len(out)),
	})
}

func (ctl *TutorController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid tutor id")
	}

	var row tutorModel.TutorModel
	if err := ctl.DB.Where("id = ?", id).First(&row).Error; err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.Success(c, "OK", tutorDTO.FromModel(&row))
}
