package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	appDTO "tutorhub_backend/internals/features/tutors/tutor_applications/dto"
	appModel "tutorhub_backend/internals/features/tutors/tutor_applications/model"
	appService "tutorhub_backend/internals/features/tutors/tutor_applications/service"
	helper "tutorhub_backend/internals/helpers"
)

type TutorApplicationController struct {
	DB       *gorm.DB
	Service  *appService.TutorLifecycleService
	Validate *validator.Validate
}

func NewTutorApplicationController(db *gorm.DB) *TutorApplicationController {
	return &TutorApplicationController{
		DB:       db,
		Service:  appService.NewTutorLifecycleService(db),
		Validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

/* =======================================================
   TUTOR SIDE
   ======================================================= */

// Submit handles both first submission and resubmission after rejection.
func (ctl *TutorApplicationController) Submit(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req appDTO.SubmitTutorApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := ctl.Service.Submit(userID, req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Application submitted", appDTO.FromModel(row))
}

// Mine returns the caller's application plus the derived display status.
func (ctl *TutorApplicationController) Mine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	status, err := ctl.Service.DerivedStatus(userID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var row appModel.TutorApplicationModel
	findErr := ctl.DB.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(findErr, gorm.ErrRecordNotFound) {
		return helper.Success(c, "OK", fiber.Map{
			"derived_status": status,
			"application":    nil,
		})
	}
	if findErr != nil {
		return helper.JsonAppError(c, findErr)
	}
	return helper.Success(c, "OK", fiber.Map{
		"derived_status": status,
		"application":    appDTO.FromModel(&row),
	})
}

/* =======================================================
   ADMIN SIDE
   ======================================================= */

func (ctl *TutorApplicationController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	db := ctl.DB.Model(&appModel.TutorApplicationModel{})
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count applications")
	}

	var rows []appModel.TutorApplicationModel
	if err := db.Order("created_at DESC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load applications")
	}

	out := make([]appDTO.TutorApplicationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, appDTO.FromModel(&rows[i]))
	}
	return helper.Success(c, "OK", fiber.Map{
		"items":      out,
		"pagination": helper.BuildPagination(p, total, len(out)),
	})
}

func (ctl *TutorApplicationController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid application id")
	}

	var row appModel.TutorApplicationModel
	if err := ctl.DB.Where("id = ?", id).First(&row).Error; err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.Success(c, "OK", appDTO.FromModel(&row))
}

func (ctl *TutorApplicationController) Approve(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid application id")
	}

	tutor, err := ctl.Service.Approve(adminID, id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.Success(c, "Application approved", tutor)
}

func (ctl *TutorApplicationController) Reject(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid application id")
	}

	var req appDTO.RejectTutorApplicationRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	row, err := ctl.Service.Reject(adminID, id, req.Reason)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.Success(c, "Application rejected", appDTO.FromModel(row))
}
