package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	postingDTO "tutorhub_backend/internals/features/tuitions/tuition_postings/dto"
	postingModel "tutorhub_backend/internals/features/tuitions/tuition_postings/model"
	tutorModel "tutorhub_backend/internals/features/tutors/tutors/model"
	helper "tutorhub_backend/internals/helpers"
)

type TuitionPostingController struct {
	DB *gorm.DB
}

func NewTuitionPostingController(db *gorm.DB) *TuitionPostingController {
	return &TuitionPostingController{DB: db}
}

// postingRow joins the posting with its application_count subquery.
type postingRow struct {
	postingModel.TuitionPostingModel
	ApplicationCount int64 `gorm:"column:application_count"`
}

const countSelect = `tuition_postings.*,
	(SELECT COUNT(*) FROM tuition_applications ta WHERE ta.posting_id = tuition_postings.id) AS application_count`

/* =======================================================
   BROWSE — tutors see only available postings
   ======================================================= */

func (ctl *TuitionPostingController) ListAvailable(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	db := ctl.DB.Model(&postingModel.TuitionPostingModel{}).
		Where("status = ?", postingModel.StatusAvailable)
	if city := strings.TrimSpace(c.Query("city")); city != "" {
		db = db.Where("LOWER(city) = ?", strings.ToLower(city))
	}
	if subject := strings.TrimSpace(c.Query("subject")); subject != "" {
		db = db.Where("LOWER(subject) = ?", strings.ToLower(subject))
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count postings")
	}

	var rows []postingRow
	if err := db.Select(countSelect).
		Order("created_at DESC").Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load postings")
	}

	out := make([]postingDTO.TuitionPostingResponse, 0, len(rows))
	for i := range rows {
		out = append(out, postingDTO.FromModel(&rows[i].TuitionPostingModel, rows[i].ApplicationCount))
	}
	return helper.Success(c, "OK", fiber.Map{
		"items":      out,
		"pagination": helper.BuildPagination(p, total, len(out)),
	})
}

/* =======================================================
   MY TUITIONS — postings assigned to the calling tutor
   ======================================================= */

func (ctl *TuitionPostingController) MyTuitions(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var tutor tutorModel.TutorModel
	if err := ctl.DB.Select("id").Where("user_id = ?", userID).First(&tutor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusForbidden, "Only approved tutors have assigned tuitions")
		}
		return helper.JsonAppError(c, err)
	}

	var rows []postingRow
	if err := ctl.DB.Model(&postingModel.TuitionPostingModel{}).
		Select(countSelect).
		Where("assigned_tutor_id = ?", tutor.ID).
		Order("updated_at DESC").
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load your tuitions")
	}

	out := make([]postingDTO.TuitionPostingResponse, 0, len(rows))
	for i := range rows {
		out = append(out, postingDTO.FromModel(&rows[i].TuitionPostingModel, rows[i].ApplicationCount))
	}
	return helper.Success(c, "OK", out)
}

/* =======================================================
   DETAIL / ADMIN LIST
   ======================================================= */

func (ctl *TuitionPostingController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid posting id")
	}

	var row postingRow
	if err := ctl.DB.Model(&postingModel.TuitionPostingModel{}).
		Select(countSelect).
		Where("tuition_postings.id = ?", id).
		First(&row).Error; err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.Success(c, "OK", postingDTO.FromModel(&row.TuitionPostingModel, row.ApplicationCount))
}

func (ctl *TuitionPostingController) ListAll(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	db := ctl.DB.Model(&postingModel.TuitionPostingModel{})
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count postings")
	}

	var rows []postingRow
	if err := db.Select(countSelect).
		Order("created_at DESC").Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load postings")
	}

	out := make([]postingDTO.TuitionPostingResponse, 0, len(rows))
	for i := range rows {
		out = append(out, postingDTO.FromModel(&rows[i].TuitionPostingModel, rows[i].ApplicationCount))
	}
	return helper.Success(c, "OK", fiber.Map{
		"items":      out,
		"pagination": helper.BuildPagination(p, total, len(out)),
	})
}
