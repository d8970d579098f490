// file: internals/features/tuitions/tuition_postings/route/tuition_posting_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "tutorhub_backend/internals/features/tuitions/tuition_postings/controller"
)

// TuitionPostingPublicRoutes — browsing; only available postings show here.
func TuitionPostingPublicRoutes(group fiber.Router, db *gorm.DB) {
	ctl := controller.NewTuitionPostingController(db)

	postings := group.Group("/tuition-postings")
	postings.Get("/", ctl.ListAvailable)
	postings.Get("/:id", ctl.GetByID)
}

// TuitionPostingUserRoutes — the assigned tutor's view.
func TuitionPostingUserRoutes(group fiber.Router, db *gorm.DB) {
	ctl := controller.NewTuitionPostingController(db)

	group.Get("/my-tuitions", ctl.MyTuitions)
}

func TuitionPostingAdminRoutes(group fiber.Router, db *gorm.DB) {
	ctl := controller.NewTuitionPostingController(db)

	postings := group.Group("/tuition-postings")
	postings.Get("/", ctl.ListAll)
	postings.Get("/:id", ctl.GetByID)
}
