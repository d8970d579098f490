package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	reqDTO "tutorhub_backend/internals/features/tuitions/tuition_requests/dto"
	reqModel "tutorhub_backend/internals/features/tuitions/tuition_requests/model"
	reqService "tutorhub_backend/internals/features/tuitions/tuition_requests/service"
	helper "tutorhub_backend/internals/helpers"
)

type TuitionRequestController struct {
	DB       *gorm.DB
	Service  *reqService.TuitionRequestService
	Validate *validator.Validate
}

func NewTuitionRequestController(db *gorm.DB) *TuitionRequestController {
	return &TuitionRequestController{
		DB:       db,
		Service:  reqService.NewTuitionRequestService(db),
		Validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

/* =======================================================
   PUBLIC — intake form
   ======================================================= */

func (ctl *TuitionRequestController) Submit(c *fiber.Ctx) error {
	var req reqDTO.SubmitTuitionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := ctl.Service.Submit(req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Tuition request submitted", reqDTO.FromModel(row))
}

/* =======================================================
   ADMIN
   ======================================================= */

func (ctl *TuitionRequestController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	db := ctl.DB.Model(&reqModel.TuitionRequestModel{})
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		db = db.Where("status = ?", status)
	}
	if city := strings.TrimSpace(c.Query("city")); city != "" {
		db = db.Where("LOWER(city) = ?", strings.ToLower(city))
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count requests")
	}

	var rows []reqModel.TuitionRequestModel
	if err := db.Order("created_at DESC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load requests")
	}

	out := make([]reqDTO.TuitionRequestResponse, 0, len(rows))
	for i := range rows {
		out = append(out, reqDTO.FromModel(&rows[i]))
	}
	return helper.Success(c, "OK", fiber.Map{
		"items":      out,
		"pagination": helper.BuildPagination(p, total, len(out)),
	})
}

func (ctl *TuitionRequestController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request id")
	}

	var row reqModel.TuitionRequestModel
	if err := ctl.DB.Where("id = ?", id).First(&row).Error; err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.Success(c, "OK", reqDTO.FromModel(&row))
}

func (ctl *TuitionRequestController) Approve(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request id")
	}

	posting, err := ctl.Service.Approve(adminID, id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Request approved, posting published", posting)
}

func (ctl *TuitionRequestController) Reject(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request id")
	}

	row, err := ctl.Service.Reject(adminID, id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.Success(c, "Request cancelled", reqDTO.FromModel(row))
}
