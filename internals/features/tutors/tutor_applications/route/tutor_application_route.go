// file: internals/features/tutors/tutor_applications/route/tutor_application_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "tutorhub_backend/internals/features/tutors/tutor_applications/controller"
)

// TutorApplicationUserRoutes — authenticated user endpoints (submit / my status).
func TutorApplicationUserRoutes(group fiber.Router, db *gorm.DB) {
	ctl := controller.NewTutorApplicationController(db)

	apps := group.Group("/tutor-applications")
	apps.Post("/", ctl.Submit)
	apps.Get("/me", ctl.Mine)
}

// TutorApplicationAdminRoutes — review queue.
func TutorApplicationAdminRoutes(group fiber.Router, db *gorm.DB) {
	ctl := controller.NewTutorApplicationController(db)

	apps := group.Group("/tutor-applications")
	apps.Get("/", ctl.List)
	apps.Get("/:id", ctl.GetByID)
	apps.Post("/:id/approve", ctl.Approve)
	apps.Post("/:id/reject", ctl.Reject)
}
