package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	postingModel "tutorhub_backend/internals/features/tuitions/tuition_postings/model"
	tutorModel "tutorhub_backend/internals/features/tutors/tutors/model"
	helper "tutorhub_backend/internals/helpers"
)

// StatsController serves the marketing counters. The numbers are a read-only,
// best-effort view: any query failure falls back to placeholder values with a
// normal 200 rather than breaking the landing page.
type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

// Placeholder values used when the store is unreachable.
const (
	defaultTutorCount   = 100
	defaultStudentCount = 150
	platformRating      = 4.8
)

type cityCount struct {
	City  string `json:"city"`
	Count int64  `json:"count"`
}

func (ctl *StatsController) Overview(c *fiber.Ctx) error {
	tutorCount := int64(defaultTutorCount)
	if err := ctl.DB.Model(&tutorModel.TutorModel{}).Count(&tutorCount).Error; err != nil {
		log.Println("[WARN] stats tutor count:", err)
		tutorCount = defaultTutorCount
	}

	studentCount := int64(defaultStudentCount)
	if err := ctl.DB.Model(&postingModel.TuitionPostingModel{}).
		Where("status = ?", postingModel.StatusAssigned).
		Count(&studentCount).Error; err != nil {
		log.Println("[WARN] stats student count:", err)
		studentCount = defaultStudentCount
	}

	var cities []cityCount
	if err := ctl.DB.Model(&tutorModel.TutorModel{}).
		Select("city, COUNT(*) AS count").
		Group("city").
		Order("count DESC").
		Limit(10).
		Scan(&cities).Error; err != nil {
		log.Println("[WARN] stats city counts:", err)
		cities = nil
	}

	return helper.Success(c, "OK", fiber.Map{
		"active_tutors": tutorCount,
		"students":      studentCount,
		"rating":        platformRating,
		"cities":        cities,
	})
}
