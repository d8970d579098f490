package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	bidDTO "tutorhub_backend/internals/features/tuitions/tuition_applications/dto"
	bidModel "tutorhub_backend/internals/features/tuitions/tuition_applications/model"
	bidService "tutorhub_backend/internals/features/tuitions/tuition_applications/service"
	tutorDTO "tutorhub_backend/internals/features/tutors/tutors/dto"
	tutorModel "tutorhub_backend/internals/features/tutors/tutors/model"
	helper "tutorhub_backend/internals/helpers"
	"tutorhub_backend/internals/mailer"
)

type TuitionApplicationController struct {
	DB       *gorm.DB
	Service  *bidService.TuitionApplicationService
	Validate *validator.Validate
}

func NewTuitionApplicationController(db *gorm.DB, dispatcher mailer.Dispatcher) *TuitionApplicationController {
	return &TuitionApplicationController{
		DB:       db,
		Service:  bidService.NewTuitionApplicationService(db, dispatcher),
		Validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

/* =======================================================
   TUTOR SIDE
   ======================================================= */

func (ctl *TuitionApplicationController) Apply(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req bidDTO.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := ctl.Service.Apply(userID, req.PostingID, req.CoverLetter)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Application submitted", bidDTO.FromModel(row))
}

// MyApplications lists the calling tutor's bids.
func (ctl *TuitionApplicationController) MyApplications(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var tutor tutorModel.TutorModel
	if err := ctl.DB.Select("id").Where("user_id = ?", userID).First(&tutor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusForbidden, "Only approved tutors have applications")
		}
		return helper.JsonAppError(c, err)
	}

	var rows []bidModel.TuitionApplicationModel
	if err := ctl.DB.Where("tutor_id = ?", tutor.ID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load your applications")
	}

	out := make([]bidDTO.TuitionApplicationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, bidDTO.FromModel(&rows[i]))
	}
	return helper.Success(c, "OK", out)
}

/* =======================================================
   ADMIN SIDE
   ======================================================= */

// ListForPosting shows every bid on one posting.
func (ctl *TuitionApplicationController) ListForPosting(c *fiber.Ctx) error {
	postingID, err := uuid.Parse(c.Params("postingId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid posting id")
	}

	db := ctl.DB.Where("posting_id = ?", postingID)
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		db = db.Where("status = ?", status)
	}

	var rows []bidModel.TuitionApplicationModel
	if err := db.Order("created_at ASC").Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load applications")
	}

	out := make([]bidDTO.TuitionApplicationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, bidDTO.FromModel(&rows[i]))
	}
	return helper.Success(c, "OK", out)
}

// GetByID returns the apply-time snapshot plus the live tutor profile, so the
// reviewer sees both what was true at application time and how to reach the
// tutor now.
func (ctl *TuitionApplicationController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid application id")
	}

	var row bidModel.TuitionApplicationModel
	if err := ctl.DB.Where("id = ?", id).First(&row).Error; err != nil {
		return helper.JsonAppError(c, err)
	}

	detail := bidDTO.AdminTuitionApplicationDetail{Application: bidDTO.FromModel(&row)}
	var tutor tutorModel.TutorModel
	if err := ctl.DB.Where("id = ?", row.TutorID).First(&tutor).Error; err == nil {
		resp := tutorDTO.FromModel(&tutor)
		detail.CurrentTutor = &resp
	}
	return helper.Success(c, "OK", detail)
}

func (ctl *TuitionApplicationController) Accept(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid application id")
	}

	row, err := ctl.Service.Accept(adminID, id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.Success(c, "Application accepted, tutor assigned", bidDTO.FromModel(row))
}

func (ctl *TuitionApplicationController) Reject(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid application id")
	}

	row, err := ctl.Service.Reject(adminID, id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.Success(c, "Application rejected", bidDTO.FromModel(row))
}
