// file: internals/features/tuitions/tuition_applications/route/tuition_application_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "tutorhub_backend/internals/features/tuitions/tuition_applications/controller"
	"tutorhub_backend/internals/mailer"
)

func TuitionApplicationUserRoutes(group fiber.Router, db *gorm.DB, dispatcher mailer.Dispatcher) {
	ctl := controller.NewTuitionApplicationController(db, dispatcher)

	apps := group.Group("/tuition-applications")
	apps.Post("/", ctl.Apply)
	apps.Get("/me", ctl.MyApplications)
}

func TuitionApplicationAdminRoutes(group fiber.Router, db *gorm.DB, dispatcher mailer.Dispatcher) {
	ctl := controller.NewTuitionApplicationController(db, dispatcher)

	apps := group.Group("/tuition-applications")
	apps.Get("/by-posting/:postingId", ctl.ListForPosting)
	apps.Get("/:id", ctl.GetByID)
	apps.Post("/:id/accept", ctl.Accept)
	apps.Post("/:id/reject", ctl.Reject)
}
