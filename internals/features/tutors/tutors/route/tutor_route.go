// file: internals/features/tutors/tutors/route/tutor_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "tutorhub_backend/internals/features/tutors/tutors/controller"
)

func TutorUserRoutes(group fiber.Router, db *gorm.DB) {
	ctl := controller.NewTutorController(db)

	tutors := group.Group("/tutors")
	tutors.Get("/me", ctl.MyProfile)
	tutors.Put("/me", ctl.UpdateMyProfile)
}

func TutorAdminRoutes(group fiber.Router, db *gorm.DB) {
	ctl := controller.NewTutorController(db)

	tutors := group.Group("/tutors")
	tutors.Get("/", ctl.List)
	tutors.Get("/:id", ctl.GetByID)
}
